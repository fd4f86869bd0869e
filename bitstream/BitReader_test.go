package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitReaderMSBFirst(t *testing.T) {
	// 0xA3 = 1010 0011
	r := NewBitReader([]byte{0xA3})

	want := []int{1, 0, 1, 0, 0, 0, 1, 1}
	got := make([]int, 0, 8)

	for !r.Empty() {
		got = append(got, r.Next())
	}

	assert.Equal(t, want, got)
}

func TestBitReaderEmptyBuffer(t *testing.T) {
	r := NewBitReader(nil)
	assert.True(t, r.Empty())
}

func TestBitReaderPanicsPastEnd(t *testing.T) {
	r := NewBitReader([]byte{0x00})

	for i := 0; i < 8; i++ {
		r.Next()
	}

	assert.Panics(t, func() { r.Next() })
}

func TestBitReaderBitsReadAndRemaining(t *testing.T) {
	r := NewBitReader([]byte{0xFF, 0xFF})

	assert.Equal(t, uint64(16), r.BitsRemaining())

	for i := 0; i < 5; i++ {
		r.Next()
	}

	assert.Equal(t, uint64(5), r.BitsRead())
	assert.Equal(t, uint64(11), r.BitsRemaining())
}
