// Copyright (c) 2023 Colin McRae

// Package bignumber provides BigNumber, an exact rational number whose
// arithmetic never rounds.
package bignumber

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrDivisionByZero is returned when a quotient or reciprocal of zero is requested.
	ErrDivisionByZero = errors.New("bignumber: division by zero")

	// ErrNotInvertible is returned by ModP when the denominator vanishes mod p.
	ErrNotInvertible = errors.New("bignumber: denominator not invertible mod p")

	// ErrParse is returned when a string cannot be read as a rational.
	ErrParse = errors.New("bignumber: could not parse")

	// ErrNotInt64 is returned by AsInt64 for non-integers and integers out of range.
	ErrNotInt64 = errors.New("bignumber: not representable as int64")
)

// BigNumber is an exact rational number, always held in lowest terms with a
// positive denominator. The zero value is 0 and ready to use.
//
// Like big.Rat, arithmetic methods set the receiver and return it, so
//
//	sum := bignumber.NewFromInt64(0).Add(x, y)
//
// leaves x and y unchanged.
type BigNumber struct {
	value big.Rat
}

// NewFromInt64 constructs an instance equal to the provided int64
// and denominator 1
func NewFromInt64(input int64) *BigNumber {
	retVal := &BigNumber{}
	retVal.value.SetInt64(input)
	return retVal
}

// NewFromInt returns a BigNumber with the value of the provided big.Int
// and denominator 1
func NewFromInt(input *big.Int) *BigNumber {
	retVal := &BigNumber{}
	retVal.value.SetInt(input)
	return retVal
}

// NewFromRat returns a BigNumber with the value of input. input is copied.
func NewFromRat(input *big.Rat) *BigNumber {
	retVal := &BigNumber{}
	retVal.value.Set(input)
	return retVal
}

// NewFraction returns numerator/denominator reduced to lowest terms. A zero
// denominator is an error.
func NewFraction(numerator, denominator int64) (*BigNumber, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("BigNumber.NewFraction: %d/0: %w", numerator, ErrDivisionByZero)
	}
	retVal := &BigNumber{}
	retVal.value.SetFrac64(numerator, denominator)
	return retVal, nil
}

// NewFromDecimalString parses input as an integer ("-12"), a fraction
// ("3/4") or a terminating decimal ("1.25"). Decimals are converted exactly.
func NewFromDecimalString(input string) (*BigNumber, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return nil, fmt.Errorf("NewFromDecimalString: input must have length > 0: %w", ErrParse)
	}
	retVal := &BigNumber{}
	if _, ok := retVal.value.SetString(input); !ok {
		return nil, fmt.Errorf("NewFromDecimalString: %q: %w", input, ErrParse)
	}
	return retVal, nil
}

// NewFromBigNumber returns a deep copy of input
func NewFromBigNumber(input *BigNumber) *BigNumber {
	return NewFromInt64(0).Set(input)
}

// Set sets bn to x and returns bn. This is a deep copy
func (bn *BigNumber) Set(x *BigNumber) *BigNumber {
	bn.value.Set(&x.value)
	return bn
}

// SetInt64 sets bn to x and returns bn
func (bn *BigNumber) SetInt64(x int64) *BigNumber {
	bn.value.SetInt64(x)
	return bn
}

// Add sets bn to the sum x+y and returns bn.
func (bn *BigNumber) Add(x *BigNumber, y *BigNumber) *BigNumber {
	bn.value.Add(&x.value, &y.value)
	return bn
}

// Sub sets bn to the difference x-y and returns bn.
func (bn *BigNumber) Sub(x *BigNumber, y *BigNumber) *BigNumber {
	bn.value.Sub(&x.value, &y.value)
	return bn
}

// Mul sets bn to the product xy and returns bn.
func (bn *BigNumber) Mul(x *BigNumber, y *BigNumber) *BigNumber {
	bn.value.Mul(&x.value, &y.value)
	return bn
}

// MulAdd adds xy to bn and returns bn.
func (bn *BigNumber) MulAdd(x *BigNumber, y *BigNumber) *BigNumber {
	var product big.Rat
	product.Mul(&x.value, &y.value)
	bn.value.Add(&bn.value, &product)
	return bn
}

// Int64Mul sets bn to the product xy and returns bn.
func (bn *BigNumber) Int64Mul(x int64, y *BigNumber) *BigNumber {
	var xAsRat big.Rat
	xAsRat.SetInt64(x)
	bn.value.Mul(&xAsRat, &y.value)
	return bn
}

// Int64MulAdd adds xy to bn and returns bn.
func (bn *BigNumber) Int64MulAdd(x int64, y *BigNumber) *BigNumber {
	var product big.Rat
	product.SetInt64(x)
	product.Mul(&product, &y.value)
	bn.value.Add(&bn.value, &product)
	return bn
}

// Quo sets bn to the quotient x/y for y != 0 and returns bn. The quotient is
// exact. If y == 0, a division-by-zero error is returned and bn is unchanged.
func (bn *BigNumber) Quo(x *BigNumber, y *BigNumber) (*BigNumber, error) {
	if y.value.Sign() == 0 {
		return nil, fmt.Errorf("BigNumber.Quo: %w", ErrDivisionByZero)
	}
	bn.value.Quo(&x.value, &y.value)
	return bn, nil
}

// Int64Quo sets bn to x/y for an integer y != 0 and returns bn.
func (bn *BigNumber) Int64Quo(x *BigNumber, y int64) (*BigNumber, error) {
	if y == 0 {
		return nil, fmt.Errorf("BigNumber.Int64Quo: %w", ErrDivisionByZero)
	}
	var yAsRat big.Rat
	yAsRat.SetInt64(y)
	bn.value.Quo(&x.value, &yAsRat)
	return bn, nil
}

// Neg sets bn to -x and returns bn
func (bn *BigNumber) Neg(x *BigNumber) *BigNumber {
	bn.value.Neg(&x.value)
	return bn
}

// Abs sets bn to |x| (the absolute value of x) and returns bn
func (bn *BigNumber) Abs(x *BigNumber) *BigNumber {
	bn.value.Abs(&x.value)
	return bn
}

// Pow sets bn to x^n and returns bn. Negative n requires x != 0.
func (bn *BigNumber) Pow(x *BigNumber, n int) (*BigNumber, error) {
	if n < 0 {
		if x.value.Sign() == 0 {
			return nil, fmt.Errorf("BigNumber.Pow: 0^%d: %w", n, ErrDivisionByZero)
		}
		n = -n
		var inverse big.Rat
		inverse.Inv(&x.value)
		bn.value.Set(powRat(&inverse, n))
		return bn, nil
	}
	bn.value.Set(powRat(&x.value, n))
	return bn, nil
}

// IsInt reports whether bn is an integer
func (bn *BigNumber) IsInt() bool {
	return bn.value.IsInt()
}

// IsZero reports whether bn is 0
func (bn *BigNumber) IsZero() bool {
	return bn.value.Sign() == 0
}

// IsOne reports whether bn is 1
func (bn *BigNumber) IsOne() bool {
	return bn.value.IsInt() && bn.value.Num().IsInt64() && bn.value.Num().Int64() == 1
}

// IsNegative reports whether bn < 0
func (bn *BigNumber) IsNegative() bool {
	return bn.value.Sign() < 0
}

// Sign returns -1, 0 or +1 according to the sign of bn
func (bn *BigNumber) Sign() int {
	return bn.value.Sign()
}

// AsInt64 returns bn as an int64, if possible; otherwise 0 with an error
// message.
func (bn *BigNumber) AsInt64() (int64, error) {
	if !bn.value.IsInt() {
		return 0, fmt.Errorf("AsInt64: bn = %q is not an integer: %w", bn.value.RatString(), ErrNotInt64)
	}
	if !bn.value.Num().IsInt64() {
		return 0, fmt.Errorf("AsInt64: could not represent bn = %q as an int64: %w", bn.value.RatString(), ErrNotInt64)
	}
	return bn.value.Num().Int64(), nil
}

// Numerator returns a copy of the numerator of bn in lowest terms
func (bn *BigNumber) Numerator() *big.Int {
	return big.NewInt(0).Set(bn.value.Num())
}

// Denominator returns a copy of the (positive) denominator of bn in lowest terms
func (bn *BigNumber) Denominator() *big.Int {
	return big.NewInt(0).Set(bn.value.Denom())
}

// AsRat returns a copy of bn as a big.Rat
func (bn *BigNumber) AsRat() *big.Rat {
	return new(big.Rat).Set(&bn.value)
}

// ModP returns the residue of bn in {0,...,p-1}, interpreting the denominator
// as its inverse mod p. p must be at least 2; it is not checked for primality,
// but the denominator must be invertible mod p.
func (bn *BigNumber) ModP(p int64) (int64, error) {
	if p < 2 {
		return 0, fmt.Errorf("BigNumber.ModP: modulus %d < 2", p)
	}
	bigP := big.NewInt(p)
	num := big.NewInt(0).Mod(bn.value.Num(), bigP)
	if bn.value.IsInt() {
		return num.Int64(), nil
	}
	den := big.NewInt(0).Mod(bn.value.Denom(), bigP)
	inv := big.NewInt(0).ModInverse(den, bigP)
	if inv == nil {
		return 0, fmt.Errorf(
			"BigNumber.ModP: denominator of %s mod %d: %w", bn.value.RatString(), p, ErrNotInvertible,
		)
	}
	num.Mul(num, inv)
	num.Mod(num, bigP)
	return num.Int64(), nil
}

// Cmp compares bn and y and returns:
//
// -1 if bn <  y
//
//	0 if bn == y
//
// +1 if bn >  y
func (bn *BigNumber) Cmp(y *BigNumber) int {
	return bn.value.Cmp(&y.value)
}

// Equals returns whether bn and x are equal. Both are exact, so no tolerance
// is involved.
func (bn *BigNumber) Equals(x *BigNumber) bool {
	return bn.value.Cmp(&x.value) == 0
}

// String formats bn as a decimal integer or as numerator/denominator.
func (bn *BigNumber) String() string {
	return bn.value.RatString()
}

// powRat returns x^n for n >= 0 by repeated squaring
func powRat(x *big.Rat, n int) *big.Rat {
	retVal := big.NewRat(1, 1)
	base := new(big.Rat).Set(x)
	for n > 0 {
		if n&1 == 1 {
			retVal.Mul(retVal, base)
		}
		n >>= 1
		if n > 0 {
			base.Mul(base, base)
		}
	}
	return retVal
}
