// Copyright (c) 2023 Colin McRae

package field

import (
	"math"
	"testing"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRationals(t *testing.T) {
	var q Field[*bignumber.BigNumber] = Rationals{}
	half, err := bignumber.NewFraction(1, 2)
	require.NoError(t, err)
	third, err := bignumber.NewFraction(1, 3)
	require.NoError(t, err)

	assert.Equal(t, "5/6", q.Format(q.Add(half, third)))
	assert.Equal(t, "1/6", q.Format(q.Sub(half, third)))
	assert.Equal(t, "1/6", q.Format(q.Mul(half, third)))
	assert.Equal(t, "-1/2", q.Format(q.Neg(half)))
	assert.Equal(t, "1/2", half.String(), "operands must not be mutated")

	inv, err := q.Reciprocal(third)
	assert.NoError(t, err)
	assert.True(t, q.Equal(inv, bignumber.NewFromInt64(3)))

	_, err = q.Reciprocal(q.Zero())
	assert.ErrorIs(t, err, ErrZeroReciprocal)
	assert.True(t, q.IsZero(q.Zero()))
	assert.False(t, q.IsZero(q.One()))

	copied, err := q.FromRational(half)
	assert.NoError(t, err)
	assert.NotSame(t, half, copied)
	assert.True(t, q.Equal(half, copied))
}

func TestNewModP(t *testing.T) {
	for _, p := range []int64{2, 3, 5, 101, 1000000007, 9223372036854775783} {
		f, err := NewModP(p)
		assert.NoErrorf(t, err, "p = %d", p)
		assert.Equal(t, p, f.Modulus())
	}
	for _, p := range []int64{-7, 0, 1, 4, 91, 1000000008} {
		_, err := NewModP(p)
		assert.ErrorIsf(t, err, ErrNotPrime, "p = %d", p)
	}
}

func TestModP_Arithmetic(t *testing.T) {
	f, err := NewModP(7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.Add(3, 5))
	assert.Equal(t, int64(5), f.Sub(3, 5))
	assert.Equal(t, int64(1), f.Mul(3, 5))
	assert.Equal(t, int64(4), f.Neg(3))
	assert.Equal(t, int64(0), f.Neg(0))
	assert.Equal(t, int64(6), f.FromInt64(-1))
	assert.Equal(t, int64(6), f.FromInt64(-8))

	for x := int64(1); x < 7; x++ {
		inv, err := f.Reciprocal(x)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), f.Mul(x, inv), "x = %d", x)
	}
	_, err = f.Reciprocal(0)
	assert.ErrorIs(t, err, ErrZeroReciprocal)
}

func TestModP_LargePrime(t *testing.T) {
	// Largest prime below 2^63; the product of two residues needs 126 bits
	const p = int64(9223372036854775783)
	f, err := NewModP(p)
	require.NoError(t, err)
	x := int64(math.MaxInt64 - 100)
	inv, err := f.Reciprocal(x)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), f.Mul(x, inv))
	assert.Equal(t, int64(0), f.Add(x, f.Neg(x)))
	assert.Equal(t, f.Neg(1), f.Sub(0, 1))
}

func TestModP_FromRational(t *testing.T) {
	f, err := NewModP(5)
	require.NoError(t, err)
	twoThirds, err := bignumber.NewFraction(2, 3)
	require.NoError(t, err)
	actual, err := f.FromRational(twoThirds)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), actual) // 2 * 3^-1 = 2 * 2 = 4

	oneFifth, err := bignumber.NewFraction(1, 5)
	require.NoError(t, err)
	_, err = f.FromRational(oneFifth)
	assert.ErrorIs(t, err, bignumber.ErrNotInvertible)
}
