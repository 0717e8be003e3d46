package calceval

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(*parsectx)
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
	depthopt int
)

// Function sets a function for parsing. To disable parsing a function, pass
// nil for fn.
func Function(name string, fn Func) ParseOption {
	return &funcopt{name, fn}
}

func (o *funcopt) parseOption(p *parsectx) {
	if p.funcs == nil {
		p.funcs = defaultFuncs()
	}
	if o.fn == nil {
		delete(p.funcs, o.name)
		return
	}
	p.funcs[o.name] = o.fn
}

// Functions sets a group of functions for parsing. To disable parsing any
// function, set it to nil.
func Functions(fns map[string]Func) ParseOption {
	return funcsopt(fns)
}

func (o funcsopt) parseOption(p *parsectx) {
	if p.funcs == nil {
		p.funcs = defaultFuncs()
	}
	for k, v := range o {
		if v == nil {
			delete(p.funcs, k)
			continue
		}
		p.funcs[k] = v
	}
}

// MaxDepth sets the expression nesting limit enforced during parsing.
// Values below DefaultMaxDepth are raised to it.
func MaxDepth(n int) ParseOption {
	return depthopt(n)
}

func (o depthopt) parseOption(p *parsectx) {
	if int(o) < DefaultMaxDepth {
		o = DefaultMaxDepth
	}
	p.maxdepth = int(o)
}

// defaultFuncs copies the default function registry so that options can
// modify it.
func defaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}
