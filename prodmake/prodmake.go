// Copyright (c) 2023 Colin McRae

// Package prodmake recovers product representations of a truncated q-series
// from its coefficients: infinite products prod((1-q^n)^(-a_n)), eta
// quotients, Jacobi products, products of (1+q^n) and products of
// (q^d;q^d)_inf.
//
// Prodmake is the first stage of every conversion. Its result, an
// InfiniteProductForm, has a method per second stage, and the package
// functions Etamake, Jacprodmake, Mprodmake and Qetamake run both stages.
package prodmake

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/series"
	"github.com/predrag3141/qseries/util"
)

var (
	// ErrZeroSeries is returned when the series to convert has no non-zero
	// coefficient.
	ErrZeroSeries = errors.New("prodmake: series is zero")

	// ErrBadOrder is returned for a non-positive number of product terms.
	ErrBadOrder = errors.New("prodmake: maxN must be positive")
)

// InfiniteProductForm represents
//
//	f(q) = Scalar * q^LeadingExponent * prod((1 - q^n)^(-a_n), n = 1..TermsUsed)
//
// up to the truncation order of f. Exponents holds the non-zero a_n.
type InfiniteProductForm struct {
	Exponents       map[int]*bignumber.BigNumber
	TermsUsed       int
	Scalar          *bignumber.BigNumber
	LeadingExponent int
}

// Prodmake runs Andrews' algorithm on f for n = 1..maxN, capped by what the
// truncation order of f determines. f is first normalized to g = f/(c q^k)
// with g(0) = 1, where c q^k is the leading term of f. With b_n the
// coefficients of g,
//
//	c_n = n b_n - sum(c_j b_(n-j), j = 1..n-1)
//	a_n = (1/n) sum(mu(n/d) c_d, d | n)
//
// A non-integral a_n is kept exactly; see NonIntegral.
func Prodmake(f *series.Series, maxN int) (*InfiniteProductForm, error) {
	if maxN < 1 {
		return nil, fmt.Errorf("Prodmake: maxN = %d: %w", maxN, ErrBadOrder)
	}
	k, ok := f.MinOrder()
	if !ok {
		return nil, fmt.Errorf("Prodmake: %w", ErrZeroSeries)
	}
	leading := f.Coeff(k)
	termsUsed := min(maxN, f.TruncationOrder()-k-1)
	retVal := &InfiniteProductForm{
		Exponents:       map[int]*bignumber.BigNumber{},
		TermsUsed:       max(termsUsed, 0),
		Scalar:          leading,
		LeadingExponent: k,
	}
	if termsUsed < 1 {
		return retVal, nil
	}

	// b[n] is the coefficient of q^n in f/(leading q^k)
	b := make([]*bignumber.BigNumber, termsUsed+1)
	for n := 0; n <= termsUsed; n++ {
		coeff := f.Coeff(n + k)
		quotient, err := coeff.Quo(coeff, leading)
		if err != nil {
			return nil, fmt.Errorf("Prodmake: normalizing coefficient %d: %w", n+k, err)
		}
		b[n] = quotient
	}

	// c[n] is the coefficient of q^n in q f'/f
	c := make([]*bignumber.BigNumber, termsUsed+1)
	c[0] = bignumber.NewFromInt64(0)
	for n := 1; n <= termsUsed; n++ {
		cn := bignumber.NewFromInt64(0).Int64Mul(int64(n), b[n])
		sum := bignumber.NewFromInt64(0)
		for j := 1; j < n; j++ {
			if c[j].IsZero() || b[n-j].IsZero() {
				continue
			}
			sum.MulAdd(c[j], b[n-j])
		}
		c[n] = cn.Sub(cn, sum)
	}

	for n := 1; n <= termsUsed; n++ {
		sum := bignumber.NewFromInt64(0)
		for _, d := range util.Divisors(n) {
			mu := util.Mobius(n / d)
			if mu == 0 || c[d].IsZero() {
				continue
			}
			sum.Int64MulAdd(int64(mu), c[d])
		}
		if sum.IsZero() {
			continue
		}
		an, err := sum.Int64Quo(sum, int64(n))
		if err != nil {
			return nil, fmt.Errorf("Prodmake: a_%d: %w", n, err)
		}
		retVal.Exponents[n] = an
	}
	return retVal, nil
}

// Exponent returns a_n, which is 0 for n not in Exponents
func (ipf *InfiniteProductForm) Exponent(n int) *bignumber.BigNumber {
	if an, ok := ipf.Exponents[n]; ok {
		return bignumber.NewFromBigNumber(an)
	}
	return bignumber.NewFromInt64(0)
}

// Indices returns the n with a_n != 0 in increasing order
func (ipf *InfiniteProductForm) Indices() []int {
	return sortedKeys(ipf.Exponents)
}

// NonIntegral returns the n whose a_n is not an integer, in increasing order.
// A non-empty result means f has no integer-exponent product form through
// TermsUsed.
func (ipf *InfiniteProductForm) NonIntegral() []int {
	var retVal []int
	for _, n := range ipf.Indices() {
		if !ipf.Exponents[n].IsInt() {
			retVal = append(retVal, n)
		}
	}
	return retVal
}

// IsIntegral reports whether every a_n is an integer
func (ipf *InfiniteProductForm) IsIntegral() bool {
	return len(ipf.NonIntegral()) == 0
}

// String formats the form as, for example, "2 * q^3 * (1-q)^-1 (1-q^2)^1/2"
func (ipf *InfiniteProductForm) String() string {
	parts := prefixParts(ipf.Scalar, ipf.LeadingExponent)
	for _, n := range ipf.Indices() {
		exponent := bignumber.NewFromInt64(0).Neg(ipf.Exponents[n])
		parts = append(parts, fmt.Sprintf("%s^%s", oneMinus(n), exponent.String()))
	}
	return joinParts(parts)
}

// oneMinusExponents returns e_n = -a_n, the exponent of (1 - q^n), for the
// non-zero integral a_n. ok is false if some a_n is not an integer.
func (ipf *InfiniteProductForm) oneMinusExponents() (map[int]int, bool) {
	retVal := make(map[int]int, len(ipf.Exponents))
	for n, an := range ipf.Exponents {
		value, err := an.AsInt64()
		if err != nil {
			return nil, false
		}
		retVal[n] = -int(value)
	}
	return retVal, true
}

func sortedKeys[V any](m map[int]V) []int {
	retVal := make([]int, 0, len(m))
	for k := range m {
		retVal = append(retVal, k)
	}
	sort.Ints(retVal)
	return retVal
}

func prefixParts(scalar *bignumber.BigNumber, leadingExponent int) []string {
	var parts []string
	if !scalar.IsOne() {
		parts = append(parts, scalar.String())
	}
	if leadingExponent != 0 {
		parts = append(parts, fmt.Sprintf("q^%d", leadingExponent))
	}
	return parts
}

func oneMinus(n int) string {
	if n == 1 {
		return "(1-q)"
	}
	return fmt.Sprintf("(1-q^%d)", n)
}

func joinParts(parts []string) string {
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " * ")
}
