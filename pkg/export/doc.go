// Package export serializes a result.QueryResult into delimiter-separated
// text.
//
// Two formats are supported:
//
//   - CSV: RFC 4180 style quoting with a single-character separator.
//     Every line, including the last, is terminated by a newline.
//   - DSV: UNIX style delimiter-separated values. Nothing is quoted; the
//     separator and the backslash are escaped with a backslash instead.
//     Lines are joined by a newline with no trailing newline.
//
// A Printer runs in one of two modes. In ModeFile it walks the result once
// and returns the whole body as a *Document. In any other mode it produces
// no text from the result and returns a *Link that carries the parameters
// needed to request the body later.
//
// Values of a multi-valued field are always joined with a literal comma
// before the outer encoding runs, whatever the output separator is.
package export
