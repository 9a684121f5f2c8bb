// Copyright (c) 2023 Colin McRae

// Package qseries holds the series utilities shared by product conversion
// and relation discovery: subsequence extraction, degree queries and
// factoring into (1 - q^i) factors.
package qseries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/series"
)

var (
	// ErrSiftIndex is returned when the residue is outside [0, m) or m is not
	// positive.
	ErrSiftIndex = errors.New("qseries: sift requires m > 0 and 0 <= j < m")

	// ErrZeroSeries is returned when factoring the zero series.
	ErrZeroSeries = errors.New("qseries: series is zero")
)

// Sift returns g with g_i = f_(m*i+j). g is known below ceil((T-j)/m) when f
// is known below T.
func Sift(f *series.Series, m, j int) (*series.Series, error) {
	if m <= 0 || j < 0 || j >= m {
		return nil, fmt.Errorf("Sift: m = %d, j = %d: %w", m, j, ErrSiftIndex)
	}
	coeffs := map[int]*bignumber.BigNumber{}
	for _, e := range f.Exponents() {
		if floorMod(e-j, m) != 0 {
			continue
		}
		coeffs[floorDiv(e-j, m)] = f.Coeff(e)
	}
	return series.FromMap(coeffs, ceilDiv(f.TruncationOrder()-j, m)), nil
}

// QDegree returns the largest exponent of f with a non-zero coefficient. ok
// is false for the zero series.
func QDegree(f *series.Series) (degree int, ok bool) {
	return f.MaxOrder()
}

// LQDegree returns the smallest exponent of f with a non-zero coefficient.
// ok is false for the zero series.
func LQDegree(f *series.Series) (degree int, ok bool) {
	return f.MinOrder()
}

// QFactorization represents
//
//	f(q) = Scalar * q^QShift * prod((1 - q^i)^Factors[i]) * Remainder
//
// Exact is true when Remainder is 1, so that the known coefficients of f are
// those of the product.
type QFactorization struct {
	Factors   map[int]int
	Scalar    *bignumber.BigNumber
	QShift    int
	Exact     bool
	Remainder *series.Series
}

// QFactor factors the known coefficients of f, read as a polynomial, into
// (1 - q^i) factors. After stripping the leading term Scalar*q^QShift, the
// remainder is divided by (1 - q^i) for i from its degree down to 1, each i
// as many times as it divides. Trying large i first keeps (1 - q^(2i)) from
// being split into (1 - q^i)(1 + q^i). Every division lowers the degree, so
// the loop ends after at most degree values of i. For a truncated series
// that is not a polynomial the result is partial, with Exact false.
func QFactor(f *series.Series) (*QFactorization, error) {
	k, ok := f.MinOrder()
	if !ok {
		return nil, fmt.Errorf("QFactor: %w", ErrZeroSeries)
	}
	scalar := f.Coeff(k)
	degree, _ := f.MaxOrder()

	// g is f/(scalar q^k) as a dense polynomial
	g := make([]*bignumber.BigNumber, degree-k+1)
	for n := range g {
		c := f.Coeff(n + k)
		quotient, err := c.Quo(c, scalar)
		if err != nil {
			return nil, fmt.Errorf("QFactor: normalizing coefficient %d: %w", n+k, err)
		}
		g[n] = quotient
	}

	retVal := &QFactorization{
		Factors: map[int]int{},
		Scalar:  scalar,
		QShift:  k,
	}
	for i := len(g) - 1; i >= 1; i-- {
		for {
			quotient, divides := divideOneMinus(g, i)
			if !divides {
				break
			}
			g = quotient
			retVal.Factors[i]++
		}
	}

	coeffs := make(map[int]*bignumber.BigNumber, len(g))
	for n, c := range g {
		coeffs[n] = c
	}
	retVal.Remainder = series.FromMap(coeffs, f.TruncationOrder()-k)
	retVal.Exact = len(g) == 1
	return retVal, nil
}

// divideOneMinus returns g/(1 - q^i) if (1 - q^i) divides the polynomial g,
// whose last entry is non-zero. The quotient h satisfies h_n = g_n + h_(n-i)
// and divides exactly when h vanishes above deg(g) - i.
func divideOneMinus(g []*bignumber.BigNumber, i int) ([]*bignumber.BigNumber, bool) {
	degree := len(g) - 1
	if degree < i {
		return nil, false
	}
	h := make([]*bignumber.BigNumber, len(g))
	for n := range g {
		h[n] = bignumber.NewFromBigNumber(g[n])
		if n >= i {
			h[n].Add(h[n], h[n-i])
		}
		if n > degree-i && !h[n].IsZero() {
			return nil, false
		}
	}
	return h[:degree-i+1], true
}

// String formats the factorization as, for example, "2 * q^3 * (1-q)^2 * (1-q^5)^1"
func (qf *QFactorization) String() string {
	var parts []string
	if !qf.Scalar.IsOne() {
		parts = append(parts, qf.Scalar.String())
	}
	if qf.QShift != 0 {
		parts = append(parts, fmt.Sprintf("q^%d", qf.QShift))
	}
	for i := 1; i <= qf.maxFactor(); i++ {
		m, ok := qf.Factors[i]
		if !ok {
			continue
		}
		if i == 1 {
			parts = append(parts, fmt.Sprintf("(1-q)^%d", m))
		} else {
			parts = append(parts, fmt.Sprintf("(1-q^%d)^%d", i, m))
		}
	}
	if !qf.Exact {
		parts = append(parts, fmt.Sprintf("(%s)", qf.Remainder.String()))
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " * ")
}

func (qf *QFactorization) maxFactor() int {
	retVal := 0
	for i := range qf.Factors {
		retVal = max(retVal, i)
	}
	return retVal
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - b*floorDiv(a, b)
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
