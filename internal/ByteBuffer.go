/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package internal holds collaborators shared across entropylab's public
// packages that are not themselves part of the public contract: the
// growable byte buffer backing bitstream.SymbolWriter and a coarse
// cardinality estimator used to pre-size PPM context tables.
package internal

import (
	"bytes"
	"errors"
)

// ByteBuffer is a closable write/read byte accumulator backed by
// bytes.Buffer. Ported from kanzi's BufferStream, trimmed to a small
// read/write/close surface; bitstream.SymbolWriter is its only user.
type ByteBuffer struct {
	buf    *bytes.Buffer
	closed bool
}

// NewByteBuffer creates an empty ByteBuffer, or one pre-seeded with
// initial if given.
func NewByteBuffer(initial ...[]byte) *ByteBuffer {
	b := &ByteBuffer{}

	if len(initial) == 1 {
		b.buf = bytes.NewBuffer(initial[0])
	} else {
		b.buf = bytes.NewBuffer(nil)
	}

	return b
}

// Write appends p to the buffer; returns an error if the buffer is closed.
func (b *ByteBuffer) Write(p []byte) (int, error) {
	if b.closed {
		return 0, errors.New("buffer closed")
	}
	return b.buf.Write(p)
}

// WriteByte appends a single byte; returns an error if the buffer is closed.
func (b *ByteBuffer) WriteByte(c byte) error {
	if b.closed {
		return errors.New("buffer closed")
	}
	return b.buf.WriteByte(c)
}

// Read reads into p from the buffer; returns an error if the buffer is closed.
func (b *ByteBuffer) Read(p []byte) (int, error) {
	if b.closed {
		return 0, errors.New("buffer closed")
	}
	return b.buf.Read(p)
}

// Close makes the buffer unavailable for future reads or writes.
func (b *ByteBuffer) Close() error {
	b.closed = true
	return nil
}

// Len returns the number of unread bytes in the buffer.
func (b *ByteBuffer) Len() int {
	return b.buf.Len()
}

// Bytes returns the buffer's contents. The slice is valid until the next
// mutating call.
func (b *ByteBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
