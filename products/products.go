// Copyright (c) 2023 Colin McRae

// Package products builds the classical q-series that product conversion and
// relation search are run against: eta products, partition generating
// functions, Jacobi triple products, theta functions and the Rogers-Ramanujan
// functions.
package products

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/series"
)

// ErrBadParameter is returned for parameters outside a product's domain.
var ErrBadParameter = errors.New("products: invalid parameter")

// dense is a coefficient array for exponents 0..len-1, used while building
// integer products factor by factor.
type dense []*big.Int

func newDense(trunc int, constant int64) dense {
	retVal := make(dense, max(trunc, 0))
	for i := range retVal {
		retVal[i] = big.NewInt(0)
	}
	if len(retVal) > 0 {
		retVal[0].SetInt64(constant)
	}
	return retVal
}

// mulOneMinus multiplies d by (1 - sign*q^e) in place, for e > 0.
func (d dense) mulOneMinus(e int, sign int64) {
	for k := len(d) - 1; k >= e; k-- {
		if sign > 0 {
			d[k].Sub(d[k], d[k-e])
		} else {
			d[k].Add(d[k], d[k-e])
		}
	}
}

// divOneMinus divides d by (1 - q^e) in place, for e > 0.
func (d dense) divOneMinus(e int) {
	for k := e; k < len(d); k++ {
		d[k].Add(d[k], d[k-e])
	}
}

func (d dense) toSeries(trunc int) *series.Series {
	coeffs := make(map[int]*bignumber.BigNumber, len(d))
	for k, c := range d {
		if c.Sign() != 0 {
			coeffs[k] = bignumber.NewFromInt(c)
		}
	}
	return series.FromMap(coeffs, trunc)
}

// Etaq returns prod(1 - q^(b+t*n), n >= 0) + O(q^trunc). b and t must be
// positive.
func Etaq(b, t, trunc int) (*series.Series, error) {
	if b <= 0 || t <= 0 {
		return nil, fmt.Errorf("Etaq: b = %d, t = %d must be positive: %w", b, t, ErrBadParameter)
	}
	d := newDense(trunc, 1)
	for e := b; e < trunc; e += t {
		d.mulOneMinus(e, 1)
	}
	return d.toSeries(trunc), nil
}

// QPochhammer returns (q^d;q^d)_inf = prod(1 - q^(d*n), n >= 1), the q-series
// part of the eta function eta(d*tau) = q^(d/24) (q^d;q^d)_inf.
func QPochhammer(d, trunc int) (*series.Series, error) {
	return Etaq(d, d, trunc)
}

// EtaQuotient returns prod((q^d;q^d)_inf^factors[d]) + O(q^trunc). Every d
// must be positive; exponents may be negative.
func EtaQuotient(factors map[int]int, trunc int) (*series.Series, error) {
	exponents := map[int]int{}
	for period, exponent := range factors {
		if period <= 0 {
			return nil, fmt.Errorf("EtaQuotient: period %d must be positive: %w", period, ErrBadParameter)
		}
		for n := period; n < trunc; n += period {
			exponents[n] += exponent
		}
	}
	return OneMinusProduct(exponents, trunc)
}

// OneMinusProduct returns prod((1 - q^n)^exponents[n]) + O(q^trunc). Every n
// must be positive; exponents may be negative.
func OneMinusProduct(exponents map[int]int, trunc int) (*series.Series, error) {
	d := newDense(trunc, 1)
	for n, exponent := range exponents {
		if n <= 0 {
			return nil, fmt.Errorf("OneMinusProduct: index %d must be positive: %w", n, ErrBadParameter)
		}
		if n >= trunc {
			continue
		}
		for i := 0; i < exponent; i++ {
			d.mulOneMinus(n, 1)
		}
		for i := 0; i < -exponent; i++ {
			d.divOneMinus(n)
		}
	}
	return d.toSeries(trunc), nil
}

// JacProd returns JAC(a,b) = (q^a;q^b)_inf (q^(b-a);q^b)_inf (q^b;q^b)_inf
// for 0 < a < b.
func JacProd(a, b, trunc int) (*series.Series, error) {
	if a <= 0 || a >= b {
		return nil, fmt.Errorf("JacProd: requires 0 < a < b, got a = %d, b = %d: %w", a, b, ErrBadParameter)
	}
	d := newDense(trunc, 1)
	for _, start := range []int{a, b - a, b} {
		for e := start; e < trunc; e += b {
			d.mulOneMinus(e, 1)
		}
	}
	return d.toSeries(trunc), nil
}

// PartitionGF returns sum(p(n) q^n) = 1/(q;q)_inf
func PartitionGF(trunc int) *series.Series {
	d := newDense(trunc, 1)
	for e := 1; e < trunc; e++ {
		d.divOneMinus(e)
	}
	return d.toSeries(trunc)
}

// DistinctPartsGF returns (-q;q)_inf = prod(1 + q^n, n >= 1)
func DistinctPartsGF(trunc int) *series.Series {
	d := newDense(trunc, 1)
	for e := 1; e < trunc; e++ {
		d.mulOneMinus(e, -1)
	}
	return d.toSeries(trunc)
}

// Theta3 returns sum(q^(n^2), n in Z)
func Theta3(trunc int) *series.Series {
	return thetaSum(trunc, false)
}

// Theta4 returns sum((-1)^n q^(n^2), n in Z)
func Theta4(trunc int) *series.Series {
	return thetaSum(trunc, true)
}

func thetaSum(trunc int, alternating bool) *series.Series {
	d := newDense(trunc, 1)
	for n := 1; n*n < trunc; n++ {
		if alternating && n%2 == 1 {
			d[n*n].SetInt64(-2)
		} else {
			d[n*n].SetInt64(2)
		}
	}
	return d.toSeries(trunc)
}

// Theta2 returns theta2 as a series in X = q^(1/4):
// sum(X^((2n+1)^2), n in Z) = 2 sum(X^((2n+1)^2), n >= 0).
func Theta2(trunc int) *series.Series {
	d := newDense(trunc, 0)
	for n := 0; (2*n+1)*(2*n+1) < trunc; n++ {
		d[(2*n+1)*(2*n+1)].SetInt64(2)
	}
	return d.toSeries(trunc)
}

// Theta2Fourth returns theta2(q)^4 as a series in q:
// 16 q prod((1 - q^(2n))^4 (1 + q^(2n))^8, n >= 1).
func Theta2Fourth(trunc int) *series.Series {
	d := newDense(trunc, 0)
	if trunc > 1 {
		d[1].SetInt64(16)
	}
	for e := 2; e < trunc; e += 2 {
		for i := 0; i < 4; i++ {
			d.mulOneMinus(e, 1)
		}
		for i := 0; i < 8; i++ {
			d.mulOneMinus(e, -1)
		}
	}
	return d.toSeries(trunc)
}

// RogersRamanujanG returns G(q) = sum(q^(n^2) / (q;q)_n, n >= 0)
func RogersRamanujanG(trunc int) *series.Series {
	return rogersRamanujan(trunc, 0)
}

// RogersRamanujanH returns H(q) = sum(q^(n^2+n) / (q;q)_n, n >= 0)
func RogersRamanujanH(trunc int) *series.Series {
	return rogersRamanujan(trunc, 1)
}

func rogersRamanujan(trunc, linear int) *series.Series {
	sum := newDense(trunc, 0)
	for n := 0; n*n+linear*n < trunc; n++ {
		term := newDense(trunc, 0)
		term[n*n+linear*n].SetInt64(1)
		for k := 1; k <= n; k++ {
			term.divOneMinus(k)
		}
		for i := range sum {
			sum[i].Add(sum[i], term[i])
		}
	}
	return sum.toSeries(trunc)
}
