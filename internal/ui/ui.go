// Released under an MIT license. See LICENSE.

// Package ui provides the interactive line editor. It looks like an
// io.Reader so the reader can pull forms across line boundaries without
// knowing it is talking to a human.
package ui

import (
	"io"

	"github.com/peterh/liner"
)

// T (ui) is a line editor presented as a reader.
type T struct {
	cli    *liner.State
	prompt string
	buf    []byte
	closed bool
}

type ui = T

// New creates a line editor that shows prompt before each line.
func New(prompt string) *T {
	cli := liner.NewLiner()
	cli.SetCtrlCAborts(true)

	return &ui{cli: cli, prompt: prompt}
}

// Read hands out the current line, prompting for a new one when the
// previous line is exhausted. Ctrl-D ends the stream; Ctrl-C abandons
// the current line but not the session.
func (u *ui) Read(p []byte) (int, error) {
	for len(u.buf) == 0 {
		if u.closed {
			return 0, io.EOF
		}

		line, err := u.cli.Prompt(u.prompt)

		switch err {
		case nil:
			if line != "" {
				u.cli.AppendHistory(line)
			}

			u.buf = append([]byte(line), '\n')
		case liner.ErrPromptAborted:
			u.buf = []byte{'\n'}
		default:
			u.closed = true

			return 0, io.EOF
		}
	}

	n := copy(p, u.buf)
	u.buf = u.buf[n:]

	return n, nil
}

// Close releases the terminal.
func (u *ui) Close() error {
	u.closed = true

	return u.cli.Close()
}
