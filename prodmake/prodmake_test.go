// Copyright (c) 2023 Colin McRae

package prodmake

import (
	"testing"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/products"
	"github.com/predrag3141/qseries/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProdmakePartitions(t *testing.T) {
	ipf, err := Prodmake(products.PartitionGF(20), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, ipf.TermsUsed)
	assert.True(t, ipf.IsIntegral())
	assert.True(t, ipf.Scalar.IsOne())
	assert.Equal(t, 0, ipf.LeadingExponent)
	for n := 1; n <= 10; n++ {
		assert.Equalf(t, "1", ipf.Exponent(n).String(), "a_%d", n)
	}
	assert.Equal(t, "0", ipf.Exponent(11).String())
}

func TestProdmakeEuler(t *testing.T) {
	euler, err := products.Etaq(1, 1, 6)
	require.NoError(t, err)
	ipf, err := Prodmake(euler, 100)
	require.NoError(t, err)

	// capped by the truncation order
	assert.Equal(t, 5, ipf.TermsUsed)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ipf.Indices())
	for _, n := range ipf.Indices() {
		assert.Equal(t, "-1", ipf.Exponent(n).String())
	}

	ipf, err = Prodmake(euler, 2)
	require.NoError(t, err)
	assert.Equal(t, "(1-q)^1 * (1-q^2)^1", ipf.String())
}

func TestProdmakeNormalizes(t *testing.T) {
	// 3 q^2 / (q;q)_inf
	f := products.PartitionGF(20).ScalarMul(bignumber.NewFromInt64(3)).Shift(2)
	ipf, err := Prodmake(f, 100)
	require.NoError(t, err)
	assert.Equal(t, "3", ipf.Scalar.String())
	assert.Equal(t, 2, ipf.LeadingExponent)
	assert.Equal(t, 19, ipf.TermsUsed)
	for n := 1; n <= 19; n++ {
		assert.Equal(t, "1", ipf.Exponent(n).String())
	}

	ipf, err = Prodmake(f, 2)
	require.NoError(t, err)
	assert.Equal(t, "3 * q^2 * (1-q)^-1 * (1-q^2)^-1", ipf.String())
}

func TestProdmakeNonIntegral(t *testing.T) {
	half, err := bignumber.NewFraction(1, 2)
	require.NoError(t, err)
	f := series.FromMap(map[int]*bignumber.BigNumber{0: bignumber.NewFromInt64(1), 1: half}, 10)
	ipf, err := Prodmake(f, 9)
	require.NoError(t, err)
	assert.False(t, ipf.IsIntegral())
	assert.Contains(t, ipf.NonIntegral(), 1)
	assert.Equal(t, "1/2", ipf.Exponent(1).String())
}

func TestProdmakeReexpands(t *testing.T) {
	const trunc = 40
	for name, f := range map[string]*series.Series{
		"rogers-ramanujan G": products.RogersRamanujanG(trunc),
		"theta3":             products.Theta3(trunc),
		"2q(-q;q)":           products.DistinctPartsGF(trunc - 1).ScalarMul(bignumber.NewFromInt64(2)).Shift(1),
	} {
		for _, maxN := range []int{5, 20, trunc} {
			ipf, err := Prodmake(f, maxN)
			require.NoError(t, err, name)
			exponents, ok := ipf.oneMinusExponents()
			require.True(t, ok, name)
			body := ipf.TermsUsed + 1
			product, err := products.OneMinusProduct(exponents, body)
			require.NoError(t, err, name)
			expansion := product.ScalarMul(ipf.Scalar).Shift(ipf.LeadingExponent)
			assert.Truef(t, expansion.Equal(f), "%s, maxN = %d", name, maxN)
		}
	}
}

func TestProdmakeErrors(t *testing.T) {
	_, err := Prodmake(series.Zero(10), 5)
	assert.ErrorIs(t, err, ErrZeroSeries)
	_, err = Prodmake(series.One(10), 0)
	assert.ErrorIs(t, err, ErrBadOrder)
	_, err = Etamake(series.Zero(10), 5)
	assert.ErrorIs(t, err, ErrZeroSeries)
	_, err = Jacprodmake(series.One(10), -1, PeriodSearch{})
	assert.ErrorIs(t, err, ErrBadOrder)

	// Nothing beyond the constant term is known
	ipf, err := Prodmake(series.One(1), 5)
	require.NoError(t, err)
	assert.Equal(t, 0, ipf.TermsUsed)
	assert.Equal(t, "1", ipf.String())
}

func TestEtamake(t *testing.T) {
	// (-q;q)_inf = eta(2tau)/eta(tau) * q^(-1/24)
	eq, err := Etamake(products.DistinctPartsGF(30), 29)
	require.NoError(t, err)
	assert.True(t, eq.Exact)
	assert.Equal(t, map[int]int{1: -1, 2: 1}, eq.Factors)
	assert.Equal(t, "1/24", eq.QShift.String())
	assert.Equal(t, "-1/24", eq.Prefactor().String())
	assert.Equal(t, "q^(-1/24) * eta(1tau)^-1 * eta(2tau)^1", eq.String())

	// theta3 = eta(2tau)^5 / (eta(tau)^2 eta(4tau)^2)
	eq, err = Etamake(products.Theta3(50), 49)
	require.NoError(t, err)
	assert.True(t, eq.Exact)
	assert.Equal(t, map[int]int{1: -2, 2: 5, 4: -2}, eq.Factors)
	assert.True(t, eq.QShift.IsZero())

	// Round trip through products.EtaQuotient
	factors := map[int]int{1: 3, 3: -1, 6: 2}
	f, err := products.EtaQuotient(factors, 60)
	require.NoError(t, err)
	eq, err = Etamake(f, 59)
	require.NoError(t, err)
	assert.Equal(t, factors, eq.Factors)
	assert.Equal(t, "1/2", eq.QShift.String())
}

func TestEtamakeNonIntegral(t *testing.T) {
	half, err := bignumber.NewFraction(1, 2)
	require.NoError(t, err)
	f := series.FromMap(map[int]*bignumber.BigNumber{0: bignumber.NewFromInt64(1), 1: half}, 10)
	eq, err := Etamake(f, 9)
	require.NoError(t, err)
	assert.False(t, eq.Exact)
	assert.Contains(t, eq.NonIntegral, 1)
	_, ok := eq.Factors[1]
	assert.False(t, ok)
}

func TestQetamake(t *testing.T) {
	f := products.DistinctPartsGF(30).Shift(1)
	qe, err := Qetamake(f, 100)
	require.NoError(t, err)
	assert.True(t, qe.Exact)
	assert.Equal(t, 1, qe.QShift)
	assert.Equal(t, map[int]int{1: -1, 2: 1}, qe.Factors)
	assert.Equal(t, "q^1 * (q^1;q^1)^-1 * (q^2;q^2)^1", qe.String())
}

func TestJacprodmake(t *testing.T) {
	// G(q) = 1/((q;q^5)(q^4;q^5)) = JAC(1,5)^-1 JAC(0,5)
	g := products.RogersRamanujanG(50)
	jpf, err := Jacprodmake(g, 49, PeriodSearch{})
	require.NoError(t, err)
	assert.True(t, jpf.Exact)
	assert.Equal(t, 5, jpf.Period)
	assert.Equal(t, map[int]int{1: -1}, jpf.Factors)
	assert.Equal(t, 1, jpf.PeriodExponent)
	assert.Equal(t, "JAC(1,5)^-1 * JAC(0,5)^1", jpf.String())

	expansion, err := jpf.Expand(50)
	require.NoError(t, err)
	assert.True(t, expansion.Equal(g))

	// A supplied period restricts the search to its divisors
	jpf, err = Jacprodmake(g, 49, PeriodSearch{Period: 10})
	require.NoError(t, err)
	assert.True(t, jpf.Exact)
	assert.Equal(t, 5, jpf.Period)
	jpf, err = Jacprodmake(g, 49, PeriodSearch{Period: 7})
	require.NoError(t, err)
	assert.False(t, jpf.Exact)
	assert.Equal(t, 7, jpf.Period)

	// MaxPeriod below 5 cannot explain G
	jpf, err = Jacprodmake(g, 49, PeriodSearch{MaxPeriod: 4})
	require.NoError(t, err)
	assert.False(t, jpf.Exact)
}

func TestJacprodmakeJacProd(t *testing.T) {
	jac, err := products.JacProd(2, 7, 60)
	require.NoError(t, err)
	f := jac.ScalarMul(bignumber.NewFromInt64(-2)).Shift(3)
	jpf, err := Jacprodmake(f, 100, PeriodSearch{})
	require.NoError(t, err)
	assert.True(t, jpf.Exact)
	assert.Equal(t, 7, jpf.Period)
	assert.Equal(t, map[int]int{2: 1}, jpf.Factors)
	assert.Equal(t, 0, jpf.PeriodExponent)
	assert.Equal(t, 3, jpf.LeadingExponent)
	assert.Equal(t, "-2 * q^3 * JAC(2,7)^1", jpf.String())
}

func TestJacprodmakeNonIntegral(t *testing.T) {
	half, err := bignumber.NewFraction(1, 2)
	require.NoError(t, err)
	f := series.FromMap(map[int]*bignumber.BigNumber{0: bignumber.NewFromInt64(1), 1: half}, 10)
	jpf, err := Jacprodmake(f, 9, PeriodSearch{})
	require.NoError(t, err)
	assert.False(t, jpf.Exact)
	assert.Equal(t, 0, jpf.Period)
}

func TestMprodmake(t *testing.T) {
	mpf, err := Mprodmake(products.DistinctPartsGF(30), 29)
	require.NoError(t, err)
	assert.True(t, mpf.Exact)
	assert.Len(t, mpf.Factors, 29)
	for n := 1; n <= 29; n++ {
		assert.Equalf(t, 1, mpf.Factors[n], "m_%d", n)
	}

	// 1/(q;q) = (1+q)(1+q^2)^2(1+q^3)(1+q^4)^3...
	mpf, err = Mprodmake(products.PartitionGF(10), 4)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 1, 4: 3}, mpf.Factors)
	assert.Equal(t, "(1+q)^1 * (1+q^2)^2 * (1+q^3)^1 * (1+q^4)^3", mpf.String())
}
