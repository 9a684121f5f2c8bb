// Copyright (c) 2023 Colin McRae

package relations

import (
	"slices"
	"testing"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/prodmake"
	"github.com/predrag3141/qseries/products"
	"github.com/predrag3141/qseries/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eulerSeries(t *testing.T, d, trunc int) *series.Series {
	retVal, err := products.QPochhammer(d, trunc)
	require.NoError(t, err)
	return retVal
}

func exponentsOf(found []ProductRelation) [][]int {
	retVal := make([][]int, len(found))
	for i, pr := range found {
		retVal[i] = pr.Exponents
	}
	return retVal
}

func TestFindProd(t *testing.T) {
	const trunc = 30
	e1 := eulerSeries(t, 1, trunc)
	e1Squared := e1.Mul(e1)
	p := products.PartitionGF(trunc)
	s := []*series.Series{e1, e1Squared, p}

	found, err := FindProd(s, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{0, 1, 2}, {1, -1, -1}, {1, 0, 1}, {2, -2, -2}, {2, -1, 0}, {2, 0, 2},
	}, exponentsOf(found))
	assert.Equal(t, "[1 -1 -1]", found[1].String())

	found, err = FindProd(s, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}, {1, -1, -1}, {1, 0, 1}, {2, -1, 0}}, exponentsOf(found))
}

func TestFindProdScalars(t *testing.T) {
	const trunc = 30
	e1 := eulerSeries(t, 1, trunc)
	twiceP := products.PartitionGF(trunc).ScalarMul(bignumber.NewFromInt64(2))
	found, err := FindProd([]*series.Series{e1, e1.Mul(e1), twiceP}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2, -1, 0}}, exponentsOf(found))
}

func TestFindProdEta(t *testing.T) {
	const trunc = 40
	s := []*series.Series{products.DistinctPartsGF(trunc), eulerSeries(t, 1, trunc), eulerSeries(t, 2, trunc)}
	found, err := FindProd(s, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 1, -1}}, exponentsOf(found))

	// A power of q is not 1
	shifted := []*series.Series{eulerSeries(t, 1, trunc), products.PartitionGF(trunc).Shift(1)}
	found, err = FindProd(shifted, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindProdErrors(t *testing.T) {
	p := products.PartitionGF(10)
	_, err := FindProd(nil, 1, 0)
	assert.ErrorIs(t, err, ErrEmptyCandidates)
	_, err = FindProd([]*series.Series{p}, 0, 0)
	assert.ErrorIs(t, err, ErrBadBound)
	_, err = FindProd([]*series.Series{p, series.Zero(10)}, 1, 0)
	assert.ErrorIs(t, err, prodmake.ErrZeroSeries)
}

func TestExponentVectors(t *testing.T) {
	assert.Equal(t, [][]int{{0, 1}, {1, -1}, {1, 0}, {1, 1}}, slices.Collect(exponentVectors(2, 1, 0)))
	assert.Equal(t, [][]int{{0, 1}, {1, 0}}, slices.Collect(exponentVectors(2, 1, 1)))
	assert.Equal(t, [][]int{{1}, {2}}, slices.Collect(exponentVectors(1, 2, 0)))
}
