// Copyright (c) 2023 Colin McRae

package field

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/util"
)

// ModP is the prime field Z/pZ. Elements are int64 residues in {0,...,p-1}.
// Products are formed in 128 bits, so any prime that fits in an int64 works.
type ModP struct {
	p int64
}

// NewModP returns the field of integers mod p, or ErrNotPrime when p is not
// a prime.
func NewModP(p int64) (*ModP, error) {
	if !util.IsPrime(p) {
		return nil, fmt.Errorf("NewModP: p = %d: %w", p, ErrNotPrime)
	}
	return &ModP{p: p}, nil
}

// Modulus returns p
func (f *ModP) Modulus() int64 {
	return f.p
}

func (f *ModP) Zero() int64 { return 0 }
func (f *ModP) One() int64 { return 1 }

func (f *ModP) Add(x, y int64) int64 {
	sum := uint64(x) + uint64(y)
	if sum >= uint64(f.p) {
		sum -= uint64(f.p)
	}
	return int64(sum)
}

func (f *ModP) Sub(x, y int64) int64 {
	if x >= y {
		return x - y
	}
	return int64(uint64(x) + uint64(f.p) - uint64(y))
}

func (f *ModP) Mul(x, y int64) int64 {
	hi, lo := bits.Mul64(uint64(x), uint64(y))
	return int64(bits.Rem64(hi, lo, uint64(f.p)))
}

func (f *ModP) Neg(x int64) int64 {
	if x == 0 {
		return 0
	}
	return f.p - x
}

// Reciprocal returns x^(p-2), the inverse of x by Fermat's little theorem.
func (f *ModP) Reciprocal(x int64) (int64, error) {
	if x == 0 {
		return 0, fmt.Errorf("ModP.Reciprocal: mod %d: %w", f.p, ErrZeroReciprocal)
	}
	return f.Pow(x, uint64(f.p-2)), nil
}

// Pow returns x^e mod p by repeated squaring
func (f *ModP) Pow(x int64, e uint64) int64 {
	retVal := int64(1)
	base := x
	for e > 0 {
		if e&1 == 1 {
			retVal = f.Mul(retVal, base)
		}
		e >>= 1
		if e > 0 {
			base = f.Mul(base, base)
		}
	}
	return retVal
}

func (f *ModP) IsZero(x int64) bool { return x == 0 }
func (f *ModP) Equal(x, y int64) bool { return x == y }
func (f *ModP) Format(x int64) string { return strconv.FormatInt(x, 10) }

// FromInt64 reduces any int64 into {0,...,p-1}
func (f *ModP) FromInt64(x int64) int64 {
	r := x % f.p
	if r < 0 {
		r += f.p
	}
	return r
}

func (f *ModP) FromRational(x *bignumber.BigNumber) (int64, error) {
	retVal, err := x.ModP(f.p)
	if err != nil {
		return 0, fmt.Errorf("ModP.FromRational: %w", err)
	}
	return retVal, nil
}
