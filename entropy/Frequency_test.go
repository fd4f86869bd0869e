package entropy

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	entropylab "github.com/mlaurent/entropylab"
)

func sym(v uint64) entropylab.Symbol { return entropylab.SymbolFromUint64(v) }

func TestFrequencyBasicCounting(t *testing.T) {
	f := NewFrequencyFromWidth(8)

	f.CountOne(sym('a'))
	f.CountOne(sym('a'))
	f.CountOne(sym('b'))

	assert.Equal(t, uint64(2), f.Get(sym('a')))
	assert.Equal(t, uint64(1), f.Get(sym('b')))
	assert.Equal(t, uint64(0), f.Get(sym('c')))
	assert.Equal(t, uint64(3), f.Occurrences())
}

func TestFrequencyGetDoesNotRegisterNonzero(t *testing.T) {
	f := NewFrequencyFromWidth(8)

	assert.Equal(t, uint64(0), f.Get(sym('z')))
	assert.Equal(t, 0, f.CountNonzeros())

	f.CountOne(sym('z'))
	assert.Equal(t, 1, f.CountNonzeros())
}

func TestFrequencyInvariantSumEqualsOccurrences(t *testing.T) {
	f := NewFrequencyFromWidth(8)
	input := "mississippi"

	for _, c := range input {
		f.CountOne(sym(uint64(c)))
	}

	var sum uint64
	for _, k := range f.NonzeroKeys() {
		sum += f.Get(k)
	}

	assert.Equal(t, f.Occurrences(), sum)
	assert.Equal(t, len(f.NonzeroKeys()), f.CountNonzeros())
}

func TestFrequencyInsertionOrderPreserved(t *testing.T) {
	f := NewFrequencyFromWidth(8)

	order := []uint64{'c', 'a', 't', 'a', 'c'}
	for _, v := range order {
		f.CountOne(sym(v))
	}

	var got []uint64
	for _, k := range f.NonzeroKeys() {
		v, _ := k.Uint64()
		got = append(got, v)
	}

	assert.Equal(t, []uint64{'c', 'a', 't'}, got)
}

func TestFrequencySwitchesToDenseArray(t *testing.T) {
	// Small alphabet (width 4 -> 16 symbols), denom 10: switch once
	// nonzero count reaches 16/10 = 1 (integer division), i.e. immediately
	// after the first distinct symbol.
	f := NewFrequencyFromWidth(4)

	for i := uint64(0); i < 16; i++ {
		f.CountOne(sym(i))
	}

	assert.True(t, f.usingDenseArr)
	assert.Equal(t, uint64(16), f.Occurrences())
	assert.Equal(t, 16, f.CountNonzeros())

	for i := uint64(0); i < 16; i++ {
		assert.Equal(t, uint64(1), f.Get(sym(i)))
	}
}

func TestFrequencyDecoupledCountAndOccurrence(t *testing.T) {
	// Extended Huffman: a tuple's count aggregates by the product of base
	// counts, but occurrences (effective data size) advances by 1 per
	// input symbol regardless of the tuple's combined weight.
	f := NewFrequency(nil)

	f.CountOccurrence(sym(42), 6, 1)
	f.CountOccurrence(sym(42), 4, 1)

	assert.Equal(t, uint64(10), f.Get(sym(42)))
	assert.Equal(t, uint64(2), f.Occurrences())
}

func TestFrequencyUnboundedAlphabetNeverSwitchesDense(t *testing.T) {
	f := NewFrequency(nil)

	for i := uint64(0); i < 64; i++ {
		f.CountOne(sym(i))
	}

	assert.False(t, f.usingDenseArr)
}

func TestFrequencyHugeAlphabetStaysSparse(t *testing.T) {
	nelem := new(big.Int).Lsh(big.NewInt(1), 100)
	f := NewFrequency(nelem)

	for i := uint64(0); i < 50; i++ {
		f.CountOne(sym(i))
	}

	assert.False(t, f.denseOK)
	assert.False(t, f.usingDenseArr)
}
