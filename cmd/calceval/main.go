package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"calceval"
)

const (
	historyFile = ".calceval_history"
	prompt      = "> "
	helpText    = `
Commands:
  :exact     Exact rational arithmetic
  :decimal   Decimal arithmetic (default)
  :deg       Trigonometry in degrees
  :rad       Trigonometry in radians (default)
  :help      Show this help
  :quit      Exit
`
)

func main() {
	log.SetFlags(0)
	var (
		expr  string
		exact bool
		deg   bool
		prec  int
	)
	flag.StringVar(&expr, "e", "", "evaluate the given expression and exit")
	flag.BoolVar(&exact, "exact", false, "exact rational arithmetic")
	flag.BoolVar(&deg, "deg", false, "trigonometry in degrees")
	flag.IntVar(&prec, "p", calceval.MinPrec, "working precision in significant digits")
	flag.Parse()

	mode := calceval.Mode{Exact: exact, Degrees: deg, Prec: prec}
	switch {
	case expr != "":
		os.Exit(evalOnce(expr, mode))
	case flag.NArg() > 0:
		code := 0
		for _, arg := range flag.Args() {
			if c := evalOnce(arg, mode); c != 0 {
				code = c
			}
		}
		os.Exit(code)
	default:
		os.Exit(repl(mode))
	}
}

func evalOnce(expr string, mode calceval.Mode) int {
	r, err := calceval.Evaluate(expr, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", calceval.KindOf(err), err)
		return 1
	}
	fmt.Println(r.Primary)
	if r.Hint != "" {
		fmt.Println(r.Hint)
	}
	return 0
}

func repl(mode calceval.Mode) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}

	for {
		line, err := ln.Prompt(prompt)
		switch {
		case err == nil: // do nothing
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			saveHistory(ln, histPath)
			fmt.Println()
			return 0
		default:
			log.Printf("read error: %v", err)
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			switch line {
			case ":exact":
				mode.Exact = true
			case ":decimal":
				mode.Exact = false
			case ":deg":
				mode.Degrees = true
			case ":rad":
				mode.Degrees = false
			case ":help":
				fmt.Print(helpText)
			case ":quit", ":exit":
				saveHistory(ln, histPath)
				return 0
			default:
				fmt.Printf("unknown command %q (:help for help)\n", line)
			}
			continue
		}
		r, err := calceval.Evaluate(line, mode)
		if err != nil {
			// Leave the previous result on screen; just report the failure.
			fmt.Printf("%v: %v\n", calceval.KindOf(err), err)
			continue
		}
		fmt.Println(r.Primary)
		if r.Hint != "" {
			fmt.Println(r.Hint)
		}
	}
}

func saveHistory(ln *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	ln.WriteHistory(f)
	f.Close()
}
