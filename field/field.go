// Copyright (c) 2023 Colin McRae

// Package field defines the exact scalar fields that relation search runs
// over: the rationals and the integers modulo a prime.
package field

import (
	"errors"
	"fmt"

	"github.com/predrag3141/qseries/bignumber"
)

var (
	// ErrNotPrime is returned when a modulus for a prime field is not prime.
	ErrNotPrime = errors.New("field: modulus is not prime")

	// ErrZeroReciprocal is returned when the reciprocal of zero is requested.
	ErrZeroReciprocal = errors.New("field: reciprocal of zero")
)

// Field is the set of operations Gaussian elimination needs. Implementations
// never mutate their arguments; every operation returns a fresh element.
type Field[E any] interface {
	Zero() E
	One() E
	Add(x, y E) E
	Sub(x, y E) E
	Mul(x, y E) E
	Neg(x E) E

	// Reciprocal returns 1/x, or ErrZeroReciprocal for x == 0.
	Reciprocal(x E) (E, error)
	IsZero(x E) bool
	Equal(x, y E) bool

	// FromRational maps a rational into the field. It fails when the
	// rational has no image, as with a denominator divisible by p.
	FromRational(x *bignumber.BigNumber) (E, error)
	Format(x E) string
}

// Rationals is the field Q with elements *bignumber.BigNumber.
type Rationals struct{}

func (Rationals) Zero() *bignumber.BigNumber { return bignumber.NewFromInt64(0) }
func (Rationals) One() *bignumber.BigNumber { return bignumber.NewFromInt64(1) }

func (Rationals) Add(x, y *bignumber.BigNumber) *bignumber.BigNumber {
	return bignumber.NewFromInt64(0).Add(x, y)
}

func (Rationals) Sub(x, y *bignumber.BigNumber) *bignumber.BigNumber {
	return bignumber.NewFromInt64(0).Sub(x, y)
}

func (Rationals) Mul(x, y *bignumber.BigNumber) *bignumber.BigNumber {
	return bignumber.NewFromInt64(0).Mul(x, y)
}

func (Rationals) Neg(x *bignumber.BigNumber) *bignumber.BigNumber {
	return bignumber.NewFromInt64(0).Neg(x)
}

func (Rationals) Reciprocal(x *bignumber.BigNumber) (*bignumber.BigNumber, error) {
	if x.IsZero() {
		return nil, fmt.Errorf("Rationals.Reciprocal: %w", ErrZeroReciprocal)
	}
	return bignumber.NewFromInt64(0).Quo(bignumber.NewFromInt64(1), x)
}

func (Rationals) IsZero(x *bignumber.BigNumber) bool { return x.IsZero() }
func (Rationals) Equal(x, y *bignumber.BigNumber) bool { return x.Equals(y) }
func (Rationals) Format(x *bignumber.BigNumber) string { return x.String() }

func (Rationals) FromRational(x *bignumber.BigNumber) (*bignumber.BigNumber, error) {
	return bignumber.NewFromBigNumber(x), nil
}
