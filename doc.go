// Package calceval implements a safe arithmetic expression evaluator for
// calculator front ends.
//
// The evaluator accepts the text a calculator displays, including the glyphs
// ×, ÷, ^, and √, and computes it in one of two numeric domains: exact
// rational arithmetic, where "1/3 + 1/6" is exactly "1/2", or
// arbitrary-precision decimal arithmetic carrying at least fifty significant
// digits. The domain, the angle unit for trigonometry, and the working
// precision travel in an immutable Mode value passed to each call; nothing is
// shared between evaluations, so independent calls are safe to run
// concurrently.
//
// Exponentiation binds tighter than unary minus and associates to the right,
// so "-2^2" is -4 and "2^3^2" is 512; write "(-2)^2" for the square of a
// negative number.
//
// Expressions are parsed by a closed grammar into a private tree and walked
// directly. There is no path from input text to code execution, and the only
// identifiers accepted are the constants pi and e plus a whitelist of
// scientific functions.
package calceval
