// Released under an MIT license. See LICENSE.

// Package options parses the command line.
package options

import (
	"fmt"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

const version = "liblisp 0.1.0"

//nolint:gochecknoglobals
var (
	args        []string
	color       bool
	expression  string
	halt        bool
	interactive bool
	prompt      bool
	script      string
	usage       = `liblisp

Usage:
  liblisp [-cpH] [SCRIPT [ARGUMENTS...]]
  liblisp [-cpH] -e EXPR
  liblisp -h
  liblisp -v

Arguments:
  SCRIPT     Path to a lisp script.
  ARGUMENTS  Positional parameters for the script.

Options:
  -c, --color      Colorize output.
  -e, --eval=EXPR  Evaluate the expression and exit.
  -H, --halt       Halt on the first evaluation error.
  -p, --prompt     Invert prompt mode.
  -h, --help       Display this help.
  -v, --version    Print the version.

If stdin is a TTY and no script or expression was given, the prompt and
the line editor are enabled. Otherwise forms are read from stdin without
either.
`
)

// Args returns the positional parameters.
func Args() []string {
	return args
}

// Color returns true if output should be colorized.
func Color() bool {
	return color
}

// Expression returns the expression passed with -e, if any.
func Expression() string {
	return expression
}

// Halt returns true if the first evaluation error should end the
// process.
func Halt() bool {
	return halt
}

// Interactive returns true if the session is interactive.
func Interactive() bool {
	return interactive
}

// Parse parses the command line.
func Parse() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	if v, _ := opts.Bool("--version"); v {
		fmt.Println(version)
		os.Exit(0)
	}

	color, _ = opts.Bool("--color")
	expression, _ = opts.String("--eval")
	halt, _ = opts.Bool("--halt")
	script, _ = opts.String("SCRIPT")

	if script == "" && expression == "" && isatty.IsTerminal(os.Stdin.Fd()) {
		interactive = true
		prompt = true
	}

	args, _ = opts["ARGUMENTS"].([]string)

	invertPrompt, _ := opts.Bool("--prompt")
	prompt = prompt != invertPrompt
}

// Prompt returns true if a prompt should be printed.
func Prompt() bool {
	return prompt
}

// Script returns the script path, if any.
func Script() string {
	return script
}
