// Copyright (c) 2023 Colin McRae

// Package series implements truncated formal power series in q with exact
// rational coefficients. A Series with truncation order T is known exactly
// for every exponent below T and unknown from T on, written O(q^T).
package series

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/predrag3141/qseries/bignumber"
)

var (
	// ErrZeroConstantTerm is returned when an operation needs f(0) != 0.
	ErrZeroConstantTerm = errors.New("series: constant term is zero")

	// ErrTruncation is returned when a coefficient at or beyond the
	// truncation order is written.
	ErrTruncation = errors.New("series: exponent at or beyond truncation order")
)

// Series is a sparse truncated power series. Exponents may be negative.
// Only non-zero coefficients below the truncation order are stored.
//
// Operations never modify their operands; SetCoeff is the only mutator and
// is meant for building a series before it is shared.
type Series struct {
	coeffs map[int]*bignumber.BigNumber
	trunc  int
}

// Zero returns 0 + O(q^trunc)
func Zero(trunc int) *Series {
	return &Series{coeffs: map[int]*bignumber.BigNumber{}, trunc: trunc}
}

// One returns 1 + O(q^trunc)
func One(trunc int) *Series {
	return Monomial(bignumber.NewFromInt64(1), 0, trunc)
}

// Monomial returns c q^k + O(q^trunc)
func Monomial(c *bignumber.BigNumber, k int, trunc int) *Series {
	retVal := Zero(trunc)
	if k < trunc && !c.IsZero() {
		retVal.coeffs[k] = bignumber.NewFromBigNumber(c)
	}
	return retVal
}

// FromInt64s returns sum(coeffs[i] q^i) + O(q^trunc). Entries at or beyond
// trunc are dropped.
func FromInt64s(coeffs []int64, trunc int) *Series {
	retVal := Zero(trunc)
	for i, c := range coeffs {
		if i >= trunc {
			break
		}
		if c != 0 {
			retVal.coeffs[i] = bignumber.NewFromInt64(c)
		}
	}
	return retVal
}

// FromStrings returns sum(coeffs[i] q^i) + O(q^trunc) with each coefficient
// given as an integer, a fraction or a terminating decimal. Entries at or
// beyond trunc are dropped but must still parse.
func FromStrings(coeffs []string, trunc int) (*Series, error) {
	retVal := Zero(trunc)
	for i, text := range coeffs {
		c, err := bignumber.NewFromDecimalString(text)
		if err != nil {
			return nil, fmt.Errorf("FromStrings: coefficient of q^%d: %w", i, err)
		}
		if i < trunc && !c.IsZero() {
			retVal.coeffs[i] = c
		}
	}
	return retVal, nil
}

// FromMap returns sum(coeffs[k] q^k) + O(q^trunc). The coefficients are
// copied; zeros and exponents at or beyond trunc are dropped.
func FromMap(coeffs map[int]*bignumber.BigNumber, trunc int) *Series {
	retVal := Zero(trunc)
	for k, c := range coeffs {
		if k < trunc && !c.IsZero() {
			retVal.coeffs[k] = bignumber.NewFromBigNumber(c)
		}
	}
	return retVal
}

// SetCoeff sets the coefficient of q^k to c. k must be below the truncation
// order.
func (s *Series) SetCoeff(k int, c *bignumber.BigNumber) error {
	if k >= s.trunc {
		return fmt.Errorf("Series.SetCoeff: exponent %d, truncation order %d: %w", k, s.trunc, ErrTruncation)
	}
	if c.IsZero() {
		delete(s.coeffs, k)
		return nil
	}
	s.coeffs[k] = bignumber.NewFromBigNumber(c)
	return nil
}

// Coeff returns a copy of the coefficient of q^k. Asking for a coefficient
// at or beyond the truncation order is a programming error and panics.
func (s *Series) Coeff(k int) *bignumber.BigNumber {
	if k >= s.trunc {
		panic(fmt.Sprintf("Series.Coeff: exponent %d is not below truncation order %d", k, s.trunc))
	}
	c, ok := s.coeffs[k]
	if !ok {
		return bignumber.NewFromInt64(0)
	}
	return bignumber.NewFromBigNumber(c)
}

// TruncationOrder returns T, where s is known modulo q^T
func (s *Series) TruncationOrder() int {
	return s.trunc
}

// IsZero reports whether every known coefficient of s is 0
func (s *Series) IsZero() bool {
	return len(s.coeffs) == 0
}

// NumTerms returns the number of non-zero coefficients
func (s *Series) NumTerms() int {
	return len(s.coeffs)
}

// Exponents returns the exponents with non-zero coefficients in increasing order
func (s *Series) Exponents() []int {
	retVal := make([]int, 0, len(s.coeffs))
	for k := range s.coeffs {
		retVal = append(retVal, k)
	}
	sort.Ints(retVal)
	return retVal
}

// MinOrder returns the smallest exponent with a non-zero coefficient. The
// second return value is false for the zero series.
func (s *Series) MinOrder() (int, bool) {
	if len(s.coeffs) == 0 {
		return 0, false
	}
	first := true
	retVal := 0
	for k := range s.coeffs {
		if first || k < retVal {
			retVal = k
			first = false
		}
	}
	return retVal, true
}

// MaxOrder returns the largest exponent with a non-zero coefficient. The
// second return value is false for the zero series.
func (s *Series) MaxOrder() (int, bool) {
	if len(s.coeffs) == 0 {
		return 0, false
	}
	first := true
	retVal := 0
	for k := range s.coeffs {
		if first || k > retVal {
			retVal = k
			first = false
		}
	}
	return retVal, true
}

// valuation is MinOrder, or the truncation order for the zero series
func (s *Series) valuation() int {
	if v, ok := s.MinOrder(); ok {
		return v
	}
	return s.trunc
}

// Add returns s + x, known up to the smaller truncation order
func (s *Series) Add(x *Series) *Series {
	return s.combine(x, false)
}

// Sub returns s - x, known up to the smaller truncation order
func (s *Series) Sub(x *Series) *Series {
	return s.combine(x, true)
}

func (s *Series) combine(x *Series, subtract bool) *Series {
	retVal := Zero(min(s.trunc, x.trunc))
	for k, c := range s.coeffs {
		if k < retVal.trunc {
			retVal.coeffs[k] = bignumber.NewFromBigNumber(c)
		}
	}
	for k, c := range x.coeffs {
		if k >= retVal.trunc {
			continue
		}
		sum, ok := retVal.coeffs[k]
		if !ok {
			sum = bignumber.NewFromInt64(0)
		}
		if subtract {
			sum.Sub(sum, c)
		} else {
			sum.Add(sum, c)
		}
		if sum.IsZero() {
			delete(retVal.coeffs, k)
		} else {
			retVal.coeffs[k] = sum
		}
	}
	return retVal
}

// Negate returns -s
func (s *Series) Negate() *Series {
	retVal := Zero(s.trunc)
	for k, c := range s.coeffs {
		retVal.coeffs[k] = bignumber.NewFromInt64(0).Neg(c)
	}
	return retVal
}

// ScalarMul returns c s
func (s *Series) ScalarMul(c *bignumber.BigNumber) *Series {
	retVal := Zero(s.trunc)
	if c.IsZero() {
		return retVal
	}
	for k, x := range s.coeffs {
		retVal.coeffs[k] = bignumber.NewFromInt64(0).Mul(c, x)
	}
	return retVal
}

// Shift returns q^k s. The truncation order moves with the series.
func (s *Series) Shift(k int) *Series {
	retVal := Zero(s.trunc + k)
	for e, c := range s.coeffs {
		retVal.coeffs[e+k] = bignumber.NewFromBigNumber(c)
	}
	return retVal
}

// Mul returns the truncated product s x. If s = O(q^a) exactly from
// valuation va and x from vb, the product is known below
// min(s.trunc + vb, x.trunc + va).
func (s *Series) Mul(x *Series) *Series {
	trunc := min(s.trunc+x.valuation(), x.trunc+s.valuation())
	retVal := Zero(trunc)
	for ks, cs := range s.coeffs {
		for kx, cx := range x.coeffs {
			k := ks + kx
			if k >= trunc {
				continue
			}
			sum, ok := retVal.coeffs[k]
			if !ok {
				sum = bignumber.NewFromInt64(0)
				retVal.coeffs[k] = sum
			}
			sum.MulAdd(cs, cx)
		}
	}
	for k, c := range retVal.coeffs {
		if c.IsZero() {
			delete(retVal.coeffs, k)
		}
	}
	return retVal
}

// Invert returns 1/s, which requires s to be a power series with s(0) != 0.
// The coefficients satisfy g_0 = 1/s_0 and
//
//	g_n = -(1/s_0) sum(s_k g_{n-k}, k = 1..n)
func (s *Series) Invert() (*Series, error) {
	if v, ok := s.MinOrder(); !ok || v != 0 {
		return nil, fmt.Errorf("Series.Invert: %w", ErrZeroConstantTerm)
	}
	inverseOfConstant, err := bignumber.NewFromInt64(0).Quo(bignumber.NewFromInt64(1), s.coeffs[0])
	if err != nil {
		return nil, fmt.Errorf("Series.Invert: %w", err)
	}
	exponents := s.Exponents()
	g := make([]*bignumber.BigNumber, s.trunc)
	retVal := Zero(s.trunc)
	for n := 0; n < s.trunc; n++ {
		if n == 0 {
			g[0] = inverseOfConstant
		} else {
			sum := bignumber.NewFromInt64(0)
			for _, k := range exponents[1:] {
				if k > n {
					break
				}
				sum.MulAdd(s.coeffs[k], g[n-k])
			}
			g[n] = sum.Neg(sum.Mul(sum, inverseOfConstant))
		}
		if !g[n].IsZero() {
			retVal.coeffs[n] = g[n]
		}
	}
	return retVal, nil
}

// Pow returns s^n by repeated squaring. Negative n inverts s first, which
// requires s(0) != 0. s^0 is 1 + O(q^T).
func (s *Series) Pow(n int) (*Series, error) {
	base := s
	if n < 0 {
		inverse, err := s.Invert()
		if err != nil {
			return nil, fmt.Errorf("Series.Pow: exponent %d: %w", n, err)
		}
		base = inverse
		n = -n
	}
	retVal := One(base.trunc)
	for n > 0 {
		if n&1 == 1 {
			retVal = retVal.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return retVal, nil
}

// Truncate returns s known only below min(trunc, s.TruncationOrder())
func (s *Series) Truncate(trunc int) *Series {
	retVal := Zero(min(trunc, s.trunc))
	for k, c := range s.coeffs {
		if k < retVal.trunc {
			retVal.coeffs[k] = bignumber.NewFromBigNumber(c)
		}
	}
	return retVal
}

// Equal reports whether s and x agree on every exponent below the smaller
// of their truncation orders.
func (s *Series) Equal(x *Series) bool {
	trunc := min(s.trunc, x.trunc)
	for k, c := range s.coeffs {
		if k >= trunc {
			continue
		}
		other, ok := x.coeffs[k]
		if !ok || !c.Equals(other) {
			return false
		}
	}
	for k := range x.coeffs {
		if k >= trunc {
			continue
		}
		if _, ok := s.coeffs[k]; !ok {
			return false
		}
	}
	return true
}

// String formats s as, for example, "1 - q + 3/2*q^4 + O(q^10)"
func (s *Series) String() string {
	var sb strings.Builder
	for i, k := range s.Exponents() {
		c := s.coeffs[k]
		magnitude := bignumber.NewFromInt64(0).Abs(c)
		switch {
		case i == 0 && c.IsNegative():
			sb.WriteString("-")
		case i > 0 && c.IsNegative():
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		switch {
		case k == 0:
			sb.WriteString(magnitude.String())
		case magnitude.IsOne():
			sb.WriteString(monomialString(k))
		default:
			sb.WriteString(magnitude.String() + "*" + monomialString(k))
		}
	}
	if sb.Len() > 0 {
		sb.WriteString(" + ")
	}
	sb.WriteString(fmt.Sprintf("O(%s)", monomialString(s.trunc)))
	return sb.String()
}

func monomialString(k int) string {
	switch k {
	case 0:
		return "1"
	case 1:
		return "q"
	}
	return fmt.Sprintf("q^%d", k)
}
