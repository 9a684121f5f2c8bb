// Copyright (c) 2023 Colin McRae

package bigmatrix

import (
	"math/rand"
	"testing"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/field"
	"github.com/predrag3141/qseries/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rationals field.Field[*bignumber.BigNumber] = field.Rationals{}

// newFromInt64Array creates a numRows x numCols matrix with integer-valued
// elements from input, reduced into f
func newFromInt64Array[E any](
	t *testing.T, f field.Field[E], input []int64, numRows int, numCols int,
) *BigMatrix[E] {
	require.Equal(t, numRows*numCols, len(input))
	rows := make([][]E, numRows)
	for i := range rows {
		rows[i] = make([]E, numCols)
		for j := range rows[i] {
			element, err := f.FromRational(bignumber.NewFromInt64(input[i*numCols+j]))
			require.NoError(t, err)
			rows[i][j] = element
		}
	}
	retVal, err := NewFromRows(f, rows)
	require.NoError(t, err)
	return retVal
}

func newRational(t *testing.T, input []int64, numRows, numCols int) *BigMatrix[*bignumber.BigNumber] {
	return newFromInt64Array(t, rationals, input, numRows, numCols)
}

func newIdentity(t *testing.T, dim int) *BigMatrix[*bignumber.BigNumber] {
	input := make([]int64, dim*dim)
	for i := 0; i < dim; i++ {
		input[i*dim+i] = 1
	}
	return newRational(t, input, dim, dim)
}

func checkEntries(t *testing.T, expected []string, actual *BigMatrix[*bignumber.BigNumber]) {
	require.Equal(t, len(expected), len(actual.values))
	for i := range expected {
		assert.Equalf(t, expected[i], actual.values[i].String(), "entry %d", i)
	}
}

func checkNullVectors[E any](t *testing.T, bm *BigMatrix[E], basis [][]E) {
	f := bm.Field()
	for k, v := range basis {
		product, err := bm.MulVec(v)
		require.NoError(t, err)
		for i := range product {
			assert.Truef(t, f.IsZero(product[i]), "null vector %d, row %d", k, i)
		}
	}
	annihilated, err := bm.Annihilates(basis)
	require.NoError(t, err)
	assert.True(t, annihilated)
}

func TestNewFromRows(t *testing.T) {
	one := bignumber.NewFromInt64(1)
	two := bignumber.NewFromInt64(2)
	x, err := NewFromRows(rationals, [][]*bignumber.BigNumber{{one, two}, {two, one}})
	assert.NoError(t, err)
	checkEntries(t, []string{"1", "2", "2", "1"}, x)

	_, err = NewFromRows(rationals, [][]*bignumber.BigNumber{{one, two}, {two}})
	assert.ErrorIs(t, err, ErrDimensions)

	x, err = NewFromRows(rationals, nil)
	assert.NoError(t, err)
	numRows, numCols := x.Dimensions()
	assert.Equal(t, 0, numRows)
	assert.Equal(t, 0, numCols)

	x = newRational(t, []int64{1, 2, 3, 4, 5, 6}, 2, 3)
	assert.Equal(t, "1, 2, 3, \n4, 5, 6, \n", x.String())
}

func TestBigMatrix_Mul(t *testing.T) {
	x := newRational(t, []int64{1, 2, 3, 4, 5, 6}, 2, 3)
	y := newRational(t, []int64{7, 8, 9, 10, 11, 12}, 3, 2)
	xy, err := NewEmpty(rationals, 0, 0).Mul(x, y)
	assert.NoError(t, err)
	checkEntries(t, []string{"58", "64", "139", "154"}, xy)

	// Mismatched dimensions
	out, err := NewEmpty(rationals, 0, 0).Mul(x, x)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrDimensions)

	// Empty operand
	out, err = NewEmpty(rationals, 0, 0).Mul(x, NewEmpty(rationals, 0, 0))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrDimensions)
}

func TestBigMatrix_MulVec(t *testing.T) {
	x := newRational(t, []int64{1, 2, 3, 4, 5, 6}, 2, 3)
	v := []*bignumber.BigNumber{
		bignumber.NewFromInt64(1), bignumber.NewFromInt64(0), bignumber.NewFromInt64(-1),
	}
	product, err := x.MulVec(v)
	assert.NoError(t, err)
	assert.Equal(t, "-2", product[0].String())
	assert.Equal(t, "-2", product[1].String())

	_, err = x.MulVec(v[:2])
	assert.ErrorIs(t, err, ErrDimensions)
}

func TestBigMatrix_Transpose(t *testing.T) {
	x := newRational(t, []int64{1, 2, 3, 4, 5, 6}, 2, 3)
	xt, err := NewEmpty(rationals, 0, 0).Transpose(x)
	assert.NoError(t, err)
	numRows, numCols := xt.Dimensions()
	assert.Equal(t, 3, numRows)
	assert.Equal(t, 2, numCols)
	checkEntries(t, []string{"1", "4", "2", "5", "3", "6"}, xt)

	_, err = NewEmpty(rationals, 0, 0).Transpose(NewEmpty(rationals, 0, 3))
	assert.ErrorIs(t, err, ErrDimensions)
}

func TestBigMatrix_PermuteRows(t *testing.T) {
	x := newRational(t, []int64{0, 0, 1, 1, 2, 2, 3, 3}, 4, 2)
	err := x.PermuteRows([][]int{{0, 2, 3}})
	assert.NoError(t, err)
	checkEntries(t, []string{"3", "3", "1", "1", "0", "0", "2", "2"}, x)

	err = x.PermuteRows([][]int{{0, 4}})
	assert.ErrorIs(t, err, ErrIndex)
	err = x.PermuteRows(nil)
	assert.Error(t, err)
}

func TestBigMatrix_Equals(t *testing.T) {
	x := newRational(t, []int64{1, 2, 3, 4}, 2, 2)
	y := newRational(t, []int64{1, 2, 3, 4}, 2, 2)
	equal, err := x.Equals(y)
	assert.NoError(t, err)
	assert.True(t, equal)
	y = newRational(t, []int64{0, 2, 3, 4}, 2, 2)
	equal, err = x.Equals(y)
	assert.NoError(t, err)
	assert.False(t, equal)
	_, err = x.Equals(newRational(t, []int64{1}, 1, 1))
	assert.ErrorIs(t, err, ErrDimensions)
}

func TestBigMatrix_RowReduce(t *testing.T) {
	x := newRational(t, []int64{
		0, 2, 4,
		1, 1, 1,
		2, 4, 6,
	}, 3, 3)
	rref, pivots, err := x.RowReduce()
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1}, pivots)
	checkEntries(t, []string{"1", "0", "-1", "0", "1", "2", "0", "0", "0"}, rref)

	// x is unchanged
	assert.True(t, x.values[0].IsZero())

	rank, err := x.Rank()
	assert.NoError(t, err)
	assert.Equal(t, 2, rank)
}

func TestBigMatrix_NullSpace(t *testing.T) {
	x := newRational(t, []int64{
		0, 2, 4,
		1, 1, 1,
		2, 4, 6,
	}, 3, 3)
	basis, err := x.NullSpace()
	assert.NoError(t, err)
	require.Len(t, basis, 1)
	assert.Equal(t, "1", basis[0][0].String())
	assert.Equal(t, "-2", basis[0][1].String())
	assert.Equal(t, "1", basis[0][2].String())
	checkNullVectors(t, x, basis)

	// Fractions appear in the basis when a pivot must be inverted
	x = newRational(t, []int64{2, 3, 5, 4, 6, 7}, 2, 3)
	basis, err = x.NullSpace()
	assert.NoError(t, err)
	require.Len(t, basis, 1)
	assert.Equal(t, "-3/2", basis[0][0].String())
	assert.Equal(t, "1", basis[0][1].String())
	assert.Equal(t, "0", basis[0][2].String())
	checkNullVectors(t, x, basis)
}

func TestBigMatrix_NullSpaceEdgeCases(t *testing.T) {
	basis, err := newIdentity(t, 4).NullSpace()
	assert.NoError(t, err)
	assert.Empty(t, basis)

	// The zero matrix has the standard basis as its null space
	zero := NewEmpty(rationals, 2, 3)
	basis, err = zero.NullSpace()
	assert.NoError(t, err)
	require.Len(t, basis, 3)
	for k := 0; k < 3; k++ {
		for j := 0; j < 3; j++ {
			if j == k {
				assert.True(t, basis[k][j].IsOne())
			} else {
				assert.True(t, basis[k][j].IsZero())
			}
		}
	}

	// No rows at all still leaves every column free
	basis, err = NewEmpty(rationals, 0, 2).NullSpace()
	assert.NoError(t, err)
	assert.Len(t, basis, 2)

	// No columns
	basis, err = NewEmpty(rationals, 3, 0).NullSpace()
	assert.NoError(t, err)
	assert.Empty(t, basis)
}

func TestBigMatrix_Annihilates(t *testing.T) {
	x := newRational(t, []int64{1, 1, 0, 0, 1, 1}, 2, 3)
	one := bignumber.NewFromInt64(1)
	minusOne := bignumber.NewFromInt64(-1)
	zero := bignumber.NewFromInt64(0)

	annihilated, err := x.Annihilates([][]*bignumber.BigNumber{{one, minusOne, one}})
	assert.NoError(t, err)
	assert.True(t, annihilated)

	annihilated, err = x.Annihilates([][]*bignumber.BigNumber{{one, minusOne, one}, {one, zero, zero}})
	assert.NoError(t, err)
	assert.False(t, annihilated)

	_, err = x.Annihilates([][]*bignumber.BigNumber{{one, minusOne}})
	assert.ErrorIs(t, err, ErrDimensions)

	annihilated, err = x.Annihilates(nil)
	assert.NoError(t, err)
	assert.True(t, annihilated)
}

func TestBigMatrix_NullSpaceModP(t *testing.T) {
	f, err := field.NewModP(7)
	require.NoError(t, err)

	// Over Q this matrix has full rank; mod 7 the rows are dependent.
	x := newFromInt64Array[int64](t, f, []int64{1, 2, 3, 13}, 2, 2)
	basis, err := x.NullSpace()
	assert.NoError(t, err)
	require.Len(t, basis, 1)
	assert.Equal(t, []int64{5, 1}, basis[0])
	checkNullVectors(t, x, basis)

	q := newRational(t, []int64{1, 2, 3, 13}, 2, 2)
	basis2, err := q.NullSpace()
	assert.NoError(t, err)
	assert.Empty(t, basis2)
}

// toCycles converts a permutation, sending i to permutation[i], into the cycle
// notation PermuteRows expects
func toCycles(permutation []int) [][]int {
	var retVal [][]int
	visited := make([]bool, len(permutation))
	for i := range permutation {
		if visited[i] {
			continue
		}
		var cycle []int
		for j := i; !visited[j]; j = permutation[j] {
			visited[j] = true
			cycle = append(cycle, j)
		}
		retVal = append(retVal, cycle)
	}
	return retVal
}

func TestBigMatrix_NullSpaceRandom(t *testing.T) {
	const dim = 5
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		// Rows 3 and 4 depend on rows 0, 1 and 2
		b := util.RandomInt64s(rng, 3*dim, 6)
		entries := make([]int64, dim*dim)
		copy(entries, b)
		for j := 0; j < dim; j++ {
			entries[3*dim+j] = b[j] + b[dim+j]
			entries[4*dim+j] = b[dim+j] - b[2*dim+j]
		}
		a := newRational(t, entries, dim, dim)
		rank, err := a.Rank()
		require.NoError(t, err)
		assert.LessOrEqual(t, rank, 3)

		// Left multiplication by an invertible matrix keeps the null space
		uEntries, _, err := util.CreateInversePair(rng, dim)
		require.NoError(t, err)
		ua, err := NewEmpty(rationals, 0, 0).Mul(newRational(t, uEntries, dim, dim), a)
		require.NoError(t, err)
		basis, err := ua.NullSpace()
		require.NoError(t, err)
		assert.Lenf(t, basis, dim-rank, "trial %d", trial)
		checkNullVectors(t, ua, basis)
		checkNullVectors(t, a, basis)

		// So does permuting the rows
		require.NoError(t, ua.PermuteRows(toCycles(util.GetPermutation(rng, dim))))
		permutedRank, err := ua.Rank()
		require.NoError(t, err)
		assert.Equal(t, rank, permutedRank)
		checkNullVectors(t, ua, basis)
	}
}
