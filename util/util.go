// Copyright (c) 2023 Colin McRae

package util

import (
	"math/big"
)

// PrimePower is p^Exponent for a prime p
type PrimePower struct {
	Prime    int64
	Exponent int
}

// Value returns p^Exponent
func (pp PrimePower) Value() *big.Int {
	return new(big.Int).Exp(big.NewInt(pp.Prime), big.NewInt(int64(pp.Exponent)), nil)
}

// Mobius returns the Möbius function of n: 0 if n has a squared prime factor,
// otherwise (-1)^k for k distinct prime factors. Mobius(1) = 1. n must be positive.
func Mobius(n int) int {
	if n <= 0 {
		return 0
	}
	retVal := 1
	for p := 2; p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		n /= p
		if n%p == 0 {
			return 0
		}
		retVal = -retVal
	}
	if n > 1 {
		retVal = -retVal
	}
	return retVal
}

// Divisors returns the positive divisors of n in increasing order, or nil
// if n is not positive.
func Divisors(n int) []int {
	if n <= 0 {
		return nil
	}
	var small, large []int
	for d := 1; d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		small = append(small, d)
		if d*d != n {
			large = append(large, n/d)
		}
	}
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}
	return small
}

// PrimePowerFactors returns the factorization of |n| into prime powers,
// in increasing order of prime. Primes up to trialBound are found by trial
// division; a remaining cofactor is reported as a prime only if it is one
// that fits in an int64. Otherwise it is returned as cofactor, which is nil
// when the factorization is complete. For n = 0 the cofactor is 0.
func PrimePowerFactors(n *big.Int, trialBound int64) (factors []PrimePower, cofactor *big.Int) {
	remaining := new(big.Int).Abs(n)
	if remaining.Sign() == 0 {
		return nil, remaining
	}
	one := big.NewInt(1)
	quotient := new(big.Int)
	remainder := new(big.Int)
	for p := int64(2); p <= trialBound; p++ {
		if remaining.Cmp(one) == 0 {
			break
		}
		bigP := big.NewInt(p)
		if new(big.Int).Mul(bigP, bigP).Cmp(remaining) > 0 {
			break
		}
		exponent := 0
		for {
			quotient.QuoRem(remaining, bigP, remainder)
			if remainder.Sign() != 0 {
				break
			}
			remaining.Set(quotient)
			exponent++
		}
		if exponent > 0 {
			factors = append(factors, PrimePower{Prime: p, Exponent: exponent})
		}
	}
	if remaining.Cmp(one) > 0 {
		if remaining.IsInt64() && remaining.ProbablyPrime(20) {
			factors = append(factors, PrimePower{Prime: remaining.Int64(), Exponent: 1})
		} else {
			cofactor = remaining
		}
	}
	return factors, cofactor
}

// IsPrime reports whether n is prime
func IsPrime(n int64) bool {
	return n >= 2 && big.NewInt(n).ProbablyPrime(20)
}

// IntSqrt returns floor(sqrt(n)) for n >= 0
func IntSqrt(n int) int {
	if n <= 0 {
		return 0
	}
	return int(new(big.Int).Sqrt(big.NewInt(int64(n))).Int64())
}
