// Copyright (c) 2023 Colin McRae

package relations

import (
	"testing"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/series"
	"github.com/predrag3141/qseries/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPolyAffine(t *testing.T) {
	const trunc = 30
	y := int64Series(trunc, 0, 1, 2, 3, 4)
	x := y.Add(series.One(trunc))
	relation, found, err := FindPoly(x, y, 1, 1, 2)
	require.NoError(t, err)
	require.True(t, found)

	c10 := relation.Coeff(1, 0)
	require.False(t, c10.IsZero())
	normalized := func(i, j int) string {
		quotient, err := bignumber.NewFromInt64(0).Quo(relation.Coeff(i, j), c10)
		require.NoError(t, err)
		return quotient.String()
	}
	assert.Equal(t, "1", normalized(1, 0))
	assert.Equal(t, "-1", normalized(0, 1))
	assert.Equal(t, "-1", normalized(0, 0))
	assert.Equal(t, "0", normalized(1, 1))
	assert.Equal(t, "0", relation.Coeff(5, 5).String())
	assert.Equal(t, "(-1) + (-1)*Y + (1)*X = 0", relation.String())
}

func TestFindPolyQuadratic(t *testing.T) {
	const trunc = 30
	x := int64Series(trunc, 1, 1, 1)
	xSquared, err := x.Pow(2)
	require.NoError(t, err)
	y := xSquared.Negate()
	relation, found, err := FindPoly(x, y, 2, 1, 10)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, relation.DegX)
	assert.Equal(t, 1, relation.DegY)

	// y + x^2 = 0 and nothing else
	c20 := relation.Coeff(2, 0)
	require.False(t, c20.IsZero())
	assert.True(t, c20.Equals(relation.Coeff(0, 1)))
	for _, ij := range [][2]int{{0, 0}, {1, 0}, {1, 1}, {2, 1}} {
		assert.Truef(t, relation.Coeff(ij[0], ij[1]).IsZero(), "c%d%d", ij[0], ij[1])
	}
}

func TestFindPolyNotFound(t *testing.T) {
	const trunc = 50
	fibonacci := make([]int64, trunc)
	fibonacci[0], fibonacci[1] = 1, 1
	for i := 2; i < trunc; i++ {
		fibonacci[i] = fibonacci[i-1] + fibonacci[i-2]
	}
	var primes []int64
	for n := int64(2); len(primes) < trunc; n++ {
		if util.IsPrime(n) {
			primes = append(primes, n)
		}
	}
	_, found, err := FindPoly(int64Series(trunc, fibonacci...), int64Series(trunc, primes...), 1, 1, 20)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindPolyErrors(t *testing.T) {
	x := int64Series(10, 1, 1)
	_, _, err := FindPoly(x, x, -1, 1, 0)
	assert.ErrorIs(t, err, ErrBadDegree)
	_, _, err = FindPoly(x, x, 1, 1, -3)
	assert.ErrorIs(t, err, ErrBadTopshift)
}
