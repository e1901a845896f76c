// Released under an MIT license. See LICENSE.

// Package port provides the byte-stream abstraction the reader and printer
// depend on: character-level get with one character of pushback on input,
// put on output, and end-of-file and error queries. Concrete ports wrap a
// file, a string, or nothing at all (the null output port).
package port

import (
	"io"
	"strconv"
)

// Kind discriminates the concrete port implementations.
type Kind uint8

// Port kinds.
const (
	Invalid Kind = iota
	FileIn
	FileOut
	StrIn
	StrOut
	NullOut
)

// EOF is returned by Getc at the end of the stream.
const EOF = -1

// T (port) is a readable or writable byte stream.
type T struct {
	kind Kind

	r io.Reader
	w io.Writer

	str []byte // StrIn source and StrOut sink.
	pos int

	c      byte // One character of pushback.
	ungot  bool
	eof    bool
	failed bool

	color  bool
	pretty bool
}

type port = T

// Fin wraps a reader as a file input port.
func Fin(r io.Reader) *T {
	return &port{kind: FileIn, r: r}
}

// Fout wraps a writer as a file output port.
func Fout(w io.Writer) *T {
	return &port{kind: FileOut, w: w}
}

// Sin makes an input port that reads from s.
func Sin(s string) *T {
	return &port{kind: StrIn, str: []byte(s)}
}

// Sout makes an output port that collects bytes in memory.
func Sout() *T {
	return &port{kind: StrOut}
}

// Null makes an output port that discards everything written to it.
func Null() *T {
	return &port{kind: NullOut}
}

// Kind returns the port's kind.
func (p *port) Kind() Kind {
	return p.kind
}

// IsIn returns true if p is an input port.
func (p *port) IsIn() bool {
	return p.kind == FileIn || p.kind == StrIn
}

// IsOut returns true if p is an output port.
func (p *port) IsOut() bool {
	return p.kind == FileOut || p.kind == StrOut || p.kind == NullOut
}

// Getc returns the next byte, or EOF.
func (p *port) Getc() int {
	if p.ungot {
		p.ungot = false

		return int(p.c)
	}

	switch p.kind {
	case StrIn:
		if p.pos >= len(p.str) {
			p.eof = true

			return EOF
		}

		c := p.str[p.pos]
		p.pos++

		return int(c)
	case FileIn:
		var b [1]byte

		n, err := p.r.Read(b[:])
		if n == 1 {
			return int(b[0])
		}

		p.eof = true

		if err != nil && err != io.EOF {
			p.failed = true
		}

		return EOF
	default:
		p.failed = true

		return EOF
	}
}

// Ungetc pushes one byte back onto the stream. A second push before the
// next Getc overwrites the first.
func (p *port) Ungetc(c byte) {
	p.ungot = true
	p.c = c
	p.eof = false
}

// Putc writes one byte. It returns EOF if the port cannot accept it.
func (p *port) Putc(c byte) int {
	switch p.kind {
	case StrOut:
		p.str = append(p.str, c)
	case FileOut:
		if _, err := p.w.Write([]byte{c}); err != nil {
			p.failed = true

			return EOF
		}
	case NullOut:
	default:
		p.failed = true

		return EOF
	}

	return int(c)
}

// Puts writes a string, stopping at the first failure.
func (p *port) Puts(s string) int {
	switch p.kind {
	case StrOut:
		p.str = append(p.str, s...)
	case FileOut:
		if _, err := p.w.Write([]byte(s)); err != nil {
			p.failed = true

			return EOF
		}
	case NullOut:
	default:
		p.failed = true

		return EOF
	}

	return len(s)
}

// Putd writes the decimal form of n.
func (p *port) Putd(n int64) int {
	return p.Puts(strconv.FormatInt(n, 10))
}

// Flush pushes pending bytes through the underlying writer, for writers
// that buffer. Ports that write directly have nothing to flush.
func (p *port) Flush() bool {
	if p.kind == FileOut {
		type flusher interface{ Flush() error }

		if f, ok := p.w.(flusher); ok && f.Flush() != nil {
			p.failed = true

			return false
		}
	}

	return p.kind != Invalid
}

// Tell returns the stream position, accounting for pushback, or -1 when
// the port has no notion of position.
func (p *port) Tell() int64 {
	pos := int64(-1)

	switch p.kind {
	case StrIn:
		pos = int64(p.pos)
	case StrOut:
		pos = int64(len(p.str))
	case FileIn:
		if s, ok := p.r.(io.Seeker); ok {
			if n, err := s.Seek(0, io.SeekCurrent); err == nil {
				pos = n
			}
		}
	case FileOut:
		if s, ok := p.w.(io.Seeker); ok {
			if n, err := s.Seek(0, io.SeekCurrent); err == nil {
				pos = n
			}
		}
	}

	if pos > 0 && p.ungot {
		pos--
	}

	return pos
}

// Seek moves the stream position, discarding any pushback, and returns
// the new position or -1 on failure. whence is io.SeekStart, SeekCurrent,
// or SeekEnd.
func (p *port) Seek(offset int64, whence int) int64 {
	switch p.kind {
	case StrIn:
		var base int64

		switch whence {
		case io.SeekStart:
			base = 0
		case io.SeekCurrent:
			base = int64(p.pos)
			if p.ungot {
				base--
			}
		case io.SeekEnd:
			base = int64(len(p.str))
		default:
			return -1
		}

		n := base + offset
		if n < 0 || n > int64(len(p.str)) {
			return -1
		}

		p.pos = int(n)
		p.ungot = false
		p.eof = false

		return n
	case FileIn:
		s, ok := p.r.(io.Seeker)
		if !ok {
			return -1
		}

		if whence == io.SeekCurrent && p.ungot {
			offset--
		}

		n, err := s.Seek(offset, whence)
		if err != nil {
			p.failed = true

			return -1
		}

		p.ungot = false
		p.eof = false

		return n
	case FileOut:
		s, ok := p.w.(io.Seeker)
		if !ok {
			return -1
		}

		n, err := s.Seek(offset, whence)
		if err != nil {
			p.failed = true

			return -1
		}

		return n
	}

	return -1
}

// IsEOF returns true once an input port has seen the end of its stream.
func (p *port) IsEOF() bool {
	return p.eof
}

// Failed returns true if the port has recorded an I/O error.
func (p *port) Failed() bool {
	return p.failed
}

// String returns everything written to a string output port.
func (p *port) String() string {
	return string(p.str)
}

// Color reports whether output should be colorized.
func (p *port) Color() bool {
	return p.color
}

// SetColor turns colorized output on or off.
func (p *port) SetColor(on bool) {
	p.color = on
}

// Pretty reports whether output should be indented.
func (p *port) Pretty() bool {
	return p.pretty
}

// SetPretty turns indented output on or off.
func (p *port) SetPretty(on bool) {
	p.pretty = on
}

// Close releases the underlying file, if any.
func (p *port) Close() error {
	var err error

	if c, ok := p.r.(io.Closer); ok {
		err = c.Close()
	}

	if c, ok := p.w.(io.Closer); ok {
		err = c.Close()
	}

	p.kind = Invalid
	p.str = nil

	return err
}
