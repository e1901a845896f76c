// Released under an MIT license. See LICENSE.

package port

import (
	"strings"
	"testing"
)

func TestSinGetc(t *testing.T) {
	p := Sin("ab")

	if c := p.Getc(); c != 'a' {
		t.Errorf("getc = %d; want 'a'", c)
	}

	if c := p.Getc(); c != 'b' {
		t.Errorf("getc = %d; want 'b'", c)
	}

	if c := p.Getc(); c != EOF {
		t.Errorf("getc = %d; want EOF", c)
	}

	if !p.IsEOF() {
		t.Error("port not at EOF after exhausting input")
	}
}

func TestUngetc(t *testing.T) {
	p := Sin("xy")

	c := p.Getc()
	p.Ungetc(byte(c))

	if again := p.Getc(); again != c {
		t.Errorf("getc after ungetc = %d; want %d", again, c)
	}

	if c = p.Getc(); c != 'y' {
		t.Errorf("getc = %d; want 'y'", c)
	}
}

func TestUngetcClearsEOF(t *testing.T) {
	p := Sin("")

	if c := p.Getc(); c != EOF {
		t.Fatalf("getc = %d; want EOF", c)
	}

	p.Ungetc('z')

	if p.IsEOF() {
		t.Error("port still at EOF after ungetc")
	}

	if c := p.Getc(); c != 'z' {
		t.Errorf("getc = %d; want 'z'", c)
	}
}

func TestFinGetc(t *testing.T) {
	p := Fin(strings.NewReader("hi"))

	if c := p.Getc(); c != 'h' {
		t.Errorf("getc = %d; want 'h'", c)
	}

	if c := p.Getc(); c != 'i' {
		t.Errorf("getc = %d; want 'i'", c)
	}

	if c := p.Getc(); c != EOF {
		t.Errorf("getc = %d; want EOF", c)
	}
}

func TestSout(t *testing.T) {
	p := Sout()

	p.Putc('(')
	p.Puts("+ 1")
	p.Putc(' ')
	p.Putd(23)
	p.Putc(')')

	if s := p.String(); s != "(+ 1 23)" {
		t.Errorf("string = %q; want %q", s, "(+ 1 23)")
	}

	if p.Failed() {
		t.Error("string output port failed")
	}
}

func TestNullDiscards(t *testing.T) {
	p := Null()

	if n := p.Puts("anything"); n == EOF {
		t.Error("null port rejected a write")
	}

	if !p.IsOut() {
		t.Error("null port is not an output port")
	}
}

func TestDirection(t *testing.T) {
	if !Sin("").IsIn() || Sin("").IsOut() {
		t.Error("string input port direction wrong")
	}

	if Sout().IsIn() || !Sout().IsOut() {
		t.Error("string output port direction wrong")
	}
}

func TestWriteToInputFails(t *testing.T) {
	p := Sin("abc")

	if c := p.Putc('x'); c != EOF {
		t.Errorf("putc on input port = %d; want EOF", c)
	}

	if !p.Failed() {
		t.Error("input port did not record the failed write")
	}
}

func TestTell(t *testing.T) {
	p := Sin("abcd")

	if n := p.Tell(); n != 0 {
		t.Errorf("tell = %d; want 0", n)
	}

	p.Getc()
	p.Getc()

	if n := p.Tell(); n != 2 {
		t.Errorf("tell = %d; want 2", n)
	}

	// Pushback rewinds the reported position.
	p.Ungetc('b')

	if n := p.Tell(); n != 1 {
		t.Errorf("tell after ungetc = %d; want 1", n)
	}

	o := Sout()
	o.Puts("xyz")

	if n := o.Tell(); n != 3 {
		t.Errorf("tell on output = %d; want 3", n)
	}
}

func TestSeek(t *testing.T) {
	p := Sin("abcd")

	p.Getc()
	p.Getc()

	if n := p.Seek(0, 0); n != 0 {
		t.Errorf("seek to start = %d; want 0", n)
	}

	if c := p.Getc(); c != 'a' {
		t.Errorf("getc after rewind = %d; want 'a'", c)
	}

	if n := p.Seek(-1, 2); n != 3 {
		t.Errorf("seek from end = %d; want 3", n)
	}

	if c := p.Getc(); c != 'd' {
		t.Errorf("getc = %d; want 'd'", c)
	}

	if n := p.Seek(1, 1); n != -1 {
		t.Errorf("seek past the end = %d; want -1", n)
	}

	if n := p.Seek(-1, 0); n != -1 {
		t.Errorf("seek before the start = %d; want -1", n)
	}

	// Seeking clears a pending pushback and the EOF state.
	p.Seek(0, 2)
	p.Getc()

	if !p.IsEOF() {
		t.Fatal("port not at EOF after reading past the end")
	}

	if n := p.Seek(0, 0); n != 0 || p.IsEOF() {
		t.Error("seek did not clear the EOF state")
	}
}

func TestFlush(t *testing.T) {
	if !Sout().Flush() {
		t.Error("flush failed on a string output port")
	}

	if !Null().Flush() {
		t.Error("flush failed on the null port")
	}
}

func TestClose(t *testing.T) {
	p := Sin("abc")

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if p.Kind() != Invalid {
		t.Error("closed port still has a kind")
	}

	if c := p.Getc(); c != EOF {
		t.Errorf("getc on closed port = %d; want EOF", c)
	}
}
