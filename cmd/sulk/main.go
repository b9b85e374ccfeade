package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/check"
	"github.com/sulk-lang/sulk/internal/diag"
	"github.com/sulk-lang/sulk/internal/parser"
	"github.com/sulk-lang/sulk/internal/printer"
)

const stdinName = "<stdin>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// cli carries the streams shared by every sub-command.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *log.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    log.New(stderr, "sulk: ", 0),
	}

	fs := flag.NewFlagSet("sulk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sulk <command> [options] [file]\n")
		fmt.Fprintf(stderr, "\nCommands:\n")
		fmt.Fprintf(stderr, "  parse [file]    Print the expression tree of each expression\n")
		fmt.Fprintf(stderr, "  fmt [file]      Print each expression in canonical form\n")
		fmt.Fprintf(stderr, "  check [file]    Report invalid assignments, arguments and literals\n")
		fmt.Fprintf(stderr, "\nExpressions are separated by ';'. With no file, input is read from stdin.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	command := fs.Arg(0)
	rest := fs.Args()[1:]

	switch command {
	case "parse":
		return c.runParse(rest)
	case "fmt":
		return c.runFmt(rest)
	case "check":
		return c.runCheck(rest)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		fs.Usage()
		return 2
	}
}

func (c *cli) runParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	exprs, ok := c.load(fs.Args())
	for _, e := range exprs {
		fmt.Fprintln(c.stdout, printer.Dump(e))
	}
	return exitCode(ok)
}

func (c *cli) runFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	width := fs.Int("width", printer.DefaultWidth, "maximum line width")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	exprs, ok := c.load(fs.Args())
	if !ok {
		return 1
	}
	for _, e := range exprs {
		if err := printer.Fprint(c.stdout, e, *width); err != nil {
			c.log.Print(err)
			return 1
		}
		fmt.Fprintln(c.stdout, ";")
	}
	return 0
}

func (c *cli) runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	filename, src, err := c.readInput(fs.Args())
	if err != nil {
		c.log.Print(err)
		return 1
	}

	exprs, ds := parse(filename, src)
	if len(ds) == 0 {
		// Parse errors already cover malformed trees.
		ds = check.Exprs(exprs)
	}
	c.report(filename, src, ds)
	return exitCode(!diag.HasErrors(ds))
}

// load reads and parses the input, reporting any diagnostics. ok is false
// when the input could not be read or did not parse cleanly.
func (c *cli) load(args []string) (exprs []*ast.Expr, ok bool) {
	filename, src, err := c.readInput(args)
	if err != nil {
		c.log.Print(err)
		return nil, false
	}

	exprs, ds := parse(filename, src)
	c.report(filename, src, ds)
	return exprs, !diag.HasErrors(ds)
}

func parse(filename, src string) ([]*ast.Expr, []diag.Diagnostic) {
	p := parser.New(src, parser.WithFilename(filename))
	exprs := p.ParseExprList()
	return exprs, p.Diagnostics()
}

func (c *cli) report(filename, src string, ds []diag.Diagnostic) {
	if len(ds) == 0 {
		return
	}
	f := diag.NewFormatter(c.stderr)
	f.AddSource(filename, src)
	f.FormatAll(ds)
}

func (c *cli) readInput(args []string) (filename, src string, err error) {
	switch {
	case len(args) > 1:
		return "", "", errors.Errorf("expected at most one file, got %d", len(args))
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "reading stdin")
		}
		return stdinName, string(data), nil
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", errors.Wrapf(err, "reading %s", args[0])
		}
		return args[0], string(data), nil
	}
}

func exitCode(ok bool) int {
	if ok {
		return 0
	}
	return 1
}
