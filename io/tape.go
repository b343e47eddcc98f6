package io

import (
	"io"
)

// Tape is a sequential byte stream port, reading from Input and writing
// to Output. Either side may be nil.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	read    int
	written int
}

// ReadByte reads the next byte from the input stream.
func (tc *Tape) ReadByte() (value byte, err error) {
	if tc.Input == nil {
		err = ErrTapeMissing
		return
	}

	var one [1]byte
	_, err = io.ReadFull(tc.Input, one[:])
	if err != nil {
		return
	}

	value = one[0]
	tc.read++

	return
}

// WriteByte writes a byte to the output stream.
func (tc *Tape) WriteByte(value byte) (err error) {
	if tc.Output == nil {
		err = ErrTapeMissing
		return
	}

	_, err = tc.Output.Write([]byte{value})
	if err != nil {
		return
	}

	tc.written++

	return
}

// Counts returns the number of bytes read and written.
func (tc *Tape) Counts() (read, written int) {
	return tc.read, tc.written
}

// Rewind clears the byte counters. The streams themselves cannot be rewound.
func (tc *Tape) Rewind() {
	tc.read = 0
	tc.written = 0
}
