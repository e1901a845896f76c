// Released under an MIT license. See LICENSE.

package lisp

// Random steps the instance's xorshift128+ generator and returns the
// next value. The stream is deterministic for a given seed.
func (l *lisp) Random() uint64 {
	x := l.random[0]
	y := l.random[1]

	l.random[0] = y
	x ^= x << 23
	x ^= x >> 17
	x ^= y ^ (y >> 26)
	l.random[1] = x

	return x + y
}

// Seed reseeds the generator and discards an initial stretch of output.
func (l *lisp) Seed(a, b uint64) {
	if a == 0 && b == 0 {
		b = 1
	}

	l.random[0] = a
	l.random[1] = b

	for i := 0; i < defaultLen; i++ {
		l.Random()
	}
}
