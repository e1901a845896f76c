// Released under an MIT license. See LICENSE.

// Package read parses S-expressions from an input port, one expression
// per call. Symbols are interned through the interpreter so symbol
// identity is cell identity.
package read

import (
	"io"
	"strconv"

	"github.com/michaelmacinnis/adapted"
	"github.com/moneytech/liblisp/internal/cell"
	"github.com/moneytech/liblisp/internal/lisp"
	"github.com/moneytech/liblisp/internal/port"
)

// SyntaxError is a parse failure, distinct from end of stream (io.EOF).
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

// T (reader) reads cell trees from a port.
type T struct {
	l  *lisp.T
	in *port.T
}

type reader = T

type token struct {
	kind byte // One of ( ) ' . a " or 0 for end of stream.
	text string
}

// New creates a reader that parses from in, interning through l.
func New(l *lisp.T, in *port.T) *T {
	return &reader{l: l, in: in}
}

// String parses a single expression from s.
func String(l *lisp.T, s string) (*cell.T, error) {
	return New(l, port.Sin(s)).Read()
}

// Read parses and returns one expression. It returns io.EOF when the
// stream ends before any input, and a *SyntaxError for malformed input;
// after a syntax error the caller should not continue reading the same
// form.
func (r *reader) Read() (*cell.T, error) {
	fence := r.l.Fence()
	defer r.l.Restore(fence)

	t, err := r.next()
	if err != nil {
		return nil, err
	}

	if t.kind == 0 {
		return nil, io.EOF
	}

	return r.parse(t)
}

func (r *reader) parse(t token) (*cell.T, error) {
	switch t.kind {
	case '(':
		return r.list()
	case ')':
		return nil, &SyntaxError{Msg: "unexpected ')'"}
	case '.':
		return nil, &SyntaxError{Msg: "unexpected '.'"}
	case '\'':
		t, err := r.next()
		if err != nil {
			return nil, err
		}

		if t.kind == 0 {
			return nil, &SyntaxError{Msg: "end of stream after quote"}
		}

		v, err := r.parse(t)
		if err != nil {
			return nil, err
		}

		r.l.Root(v)
		inner := r.l.Root(r.l.Cons(v, cell.Nil))

		return r.l.Cons(cell.Quote, inner), nil
	case '"':
		return r.l.Str(t.text), nil
	default:
		return r.atom(t.text), nil
	}
}

// list parses the remainder of a parenthesized form, including dotted
// pairs.
func (r *reader) list() (*cell.T, error) {
	fence := r.l.Fence()
	defer r.l.Restore(fence)

	head := cell.Nil

	var tail *cell.T

	for {
		t, err := r.next()
		if err != nil {
			return nil, err
		}

		switch t.kind {
		case 0:
			return nil, &SyntaxError{Msg: "end of stream in list"}
		case ')':
			return head, nil
		case '.':
			if tail == nil {
				return nil, &SyntaxError{Msg: "unexpected '.'"}
			}

			t, err := r.next()
			if err != nil {
				return nil, err
			}

			if t.kind == 0 || t.kind == ')' {
				return nil, &SyntaxError{Msg: "expected expression after '.'"}
			}

			v, err := r.parse(t)
			if err != nil {
				return nil, err
			}

			cell.SetCdr(tail, v)

			t, err = r.next()
			if err != nil {
				return nil, err
			}

			if t.kind != ')' {
				return nil, &SyntaxError{Msg: "expected ')' after dotted tail"}
			}

			return head, nil
		}

		v, err := r.parse(t)
		if err != nil {
			return nil, err
		}

		r.l.Root(v)
		n := r.l.Cons(v, cell.Nil)

		if tail == nil {
			head = r.l.Root(n)
		} else {
			cell.SetCdr(tail, n)
		}

		tail = n
	}
}

// atom classifies a token as an integer, a float, or an interned symbol.
func (r *reader) atom(text string) *cell.T {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return r.l.Int(i)
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return r.l.Float(f)
	}

	return r.l.Intern(text)
}

// next scans the next token. One byte of pushback on the port is enough
// lookahead for this grammar.
func (r *reader) next() (token, error) {
	c := r.in.Getc()

	// Skip whitespace and comments.
	for {
		for c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			c = r.in.Getc()
		}

		if c != ';' {
			break
		}

		for c != '\n' && c != port.EOF {
			c = r.in.Getc()
		}
	}

	switch c {
	case port.EOF:
		return token{}, nil
	case '(', ')', '\'':
		return token{kind: byte(c)}, nil
	case '"':
		return r.str()
	}

	// An atom: any run of non-delimiter, non-whitespace bytes.
	buf := []byte{byte(c)}

	for {
		c = r.in.Getc()
		if c == port.EOF {
			break
		}

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' ||
			c == '(' || c == ')' || c == '"' || c == ';' || c == '\'' {
			r.in.Ungetc(byte(c))

			break
		}

		buf = append(buf, byte(c))
	}

	text := string(buf)
	if text == "." {
		return token{kind: '.'}, nil
	}

	return token{kind: 'a', text: text}, nil
}

// str scans a double-quoted string, expanding each escape sequence to
// the bytes it denotes.
func (r *reader) str() (token, error) {
	buf := []byte{}

	for {
		c := r.in.Getc()

		switch c {
		case port.EOF:
			return token{}, &SyntaxError{Msg: "end of stream in string"}
		case '"':
			return token{kind: '"', text: string(buf)}, nil
		case '\\':
			s, err := r.escape()
			if err != nil {
				return token{}, err
			}

			buf = append(buf, s...)
		default:
			buf = append(buf, byte(c))
		}
	}
}

// escape collects one backslash escape and expands it. Octal byte
// escapes are what the printer emits for non-printable bytes; the
// single-character and hex forms are accepted for symmetry with what
// adapted understands.
func (r *reader) escape() (string, error) {
	c := r.in.Getc()
	if c == port.EOF {
		return "", &SyntaxError{Msg: "end of stream in escape"}
	}

	seq := []byte{'\\', byte(c)}

	switch {
	case c >= '0' && c <= '7':
		for i := 0; i < 2; i++ {
			c = r.in.Getc()
			if c < '0' || c > '7' {
				if c != port.EOF {
					r.in.Ungetc(byte(c))
				}

				break
			}

			seq = append(seq, byte(c))
		}
	case c == 'x':
		for i := 0; i < 2; i++ {
			c = r.in.Getc()
			if c == port.EOF {
				return "", &SyntaxError{Msg: "end of stream in escape"}
			}

			seq = append(seq, byte(c))
		}
	}

	s, err := adapted.ActualBytes(string(seq))
	if err != nil {
		return "", &SyntaxError{Msg: "bad escape " + string(seq)}
	}

	return s, nil
}
