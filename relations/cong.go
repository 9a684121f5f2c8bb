// Copyright (c) 2023 Colin McRae

package relations

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/predrag3141/qseries/qseries"
	"github.com/predrag3141/qseries/series"
	"github.com/predrag3141/qseries/util"
)

const defaultTrialBound = 10000

// CongruenceOptions bounds FindCong. Zero values select the defaults.
type CongruenceOptions struct {
	// MaxModulus is the largest modulus tried when Moduli is empty. The
	// default is floor(sqrt(maxIndex)).
	MaxModulus int

	// Moduli, if not empty, are the only moduli tried
	Moduli []int

	// ExcludePrimes are never reported
	ExcludePrimes []int64

	// TrialBound limits trial division of the common divisor of a residue
	// class. The default is 10000.
	TrialBound int64
}

// Congruence states that the coefficient of q^(Modulus*n + Residue) is
// divisible by Prime^Exponent for every n checked, and that
// Prime^(Exponent+1) does not divide all of them.
//
// When trial division cannot split part of the common divisor, that part is
// reported on its own with Prime = 0 and the unfactored number in Cofactor.
// The class is then divisible by Cofactor, but the prime powers inside it
// were not searched.
type Congruence struct {
	Residue  int
	Modulus  int
	Prime    int64
	Exponent int
	Cofactor *big.Int
}

// Factored reports whether c names a prime power rather than an unfactored
// cofactor
func (c Congruence) Factored() bool {
	return c.Prime != 0
}

// Divisor returns Prime^Exponent, or Cofactor when c is not factored
func (c Congruence) Divisor() *big.Int {
	if !c.Factored() {
		return new(big.Int).Set(c.Cofactor)
	}
	return util.PrimePower{Prime: c.Prime, Exponent: c.Exponent}.Value()
}

func (c Congruence) String() string {
	if !c.Factored() {
		return fmt.Sprintf("a(%dn+%d) = 0 (mod %s, not factored)", c.Modulus, c.Residue, c.Cofactor)
	}
	return fmt.Sprintf("a(%dn+%d) = 0 (mod %s)", c.Modulus, c.Residue, c.Divisor())
}

// impliedBy reports whether c follows from other: the residue class of c lies
// inside that of other and other's divisor is a multiple of c's
func (c Congruence) impliedBy(other Congruence) bool {
	if c.Prime != other.Prime ||
		c.Modulus%other.Modulus != 0 ||
		c.Residue%other.Modulus != other.Residue {
		return false
	}
	if c.Factored() {
		return other.Exponent >= c.Exponent
	}
	return new(big.Int).Rem(other.Cofactor, c.Cofactor).Sign() == 0
}

// FindCong searches the coefficients of f at exponents 0..maxIndex, capped by
// the truncation order, for congruences a(Mn+r) = 0 (mod p^k). Each residue
// class must hold at least two integral coefficients, at least one non-zero.
// Every prime power exactly dividing the gcd of the class is reported unless
// it is excluded or follows from a congruence already found for a smaller
// modulus. A part of the gcd that trial division up to TrialBound cannot
// split is reported as an unfactored Congruence, so that an incomplete search
// is not mistaken for the absence of a congruence. Results are ordered by
// modulus, residue and prime, with an unfactored cofactor last in its class.
func FindCong(f *series.Series, maxIndex int, opts CongruenceOptions) ([]Congruence, error) {
	limit := min(maxIndex, f.TruncationOrder()-1)
	if limit < 1 {
		return nil, fmt.Errorf("FindCong: maxIndex = %d with truncation order %d: %w",
			maxIndex, f.TruncationOrder(), ErrBadBound)
	}
	moduli := opts.Moduli
	if len(moduli) == 0 {
		maxModulus := opts.MaxModulus
		if maxModulus <= 0 {
			maxModulus = util.IntSqrt(limit)
		}
		for m := 2; m <= maxModulus; m++ {
			moduli = append(moduli, m)
		}
	} else {
		moduli = slices.Clone(moduli)
		slices.Sort(moduli)
	}
	trialBound := opts.TrialBound
	if trialBound <= 0 {
		trialBound = defaultTrialBound
	}
	known := f.Truncate(limit + 1)

	retVal := []Congruence{}
	for _, m := range moduli {
		if m < 1 {
			return nil, fmt.Errorf("FindCong: modulus %d: %w", m, ErrBadBound)
		}
		for r := 0; r < m; r++ {
			gcd, ok, err := classGCD(known, m, r)
			if err != nil {
				return nil, fmt.Errorf("FindCong: modulus %d, residue %d: %w", m, r, err)
			}
			if !ok {
				continue
			}
			factors, cofactor := util.PrimePowerFactors(gcd, trialBound)
			var candidates []Congruence
			for _, factor := range factors {
				if slices.Contains(opts.ExcludePrimes, factor.Prime) {
					continue
				}
				candidates = append(candidates,
					Congruence{Residue: r, Modulus: m, Prime: factor.Prime, Exponent: factor.Exponent})
			}
			if cofactor != nil {
				candidates = append(candidates, Congruence{Residue: r, Modulus: m, Cofactor: cofactor})
			}
			for _, candidate := range candidates {
				implied := slices.ContainsFunc(retVal, func(found Congruence) bool {
					return candidate.impliedBy(found)
				})
				if !implied {
					retVal = append(retVal, candidate)
				}
			}
		}
	}
	return retVal, nil
}

// classGCD returns the gcd of the coefficients of q^(m*n+r) in f for
// n = 0, 1, ... below the truncation order. ok is false when the class has
// fewer than two coefficients, a non-integral coefficient, or a gcd of 0 or 1.
func classGCD(f *series.Series, m, r int) (gcd *big.Int, ok bool, err error) {
	sifted, err := qseries.Sift(f, m, r)
	if err != nil {
		return nil, false, err
	}
	if sifted.TruncationOrder() < 2 {
		return nil, false, nil
	}
	gcd = new(big.Int)
	for n := 0; n < sifted.TruncationOrder(); n++ {
		c := sifted.Coeff(n)
		if !c.IsInt() {
			return nil, false, nil
		}
		gcd.GCD(nil, nil, gcd, new(big.Int).Abs(c.Numerator()))
	}
	if gcd.Sign() == 0 || gcd.Cmp(big.NewInt(1)) == 0 {
		return nil, false, nil
	}
	return gcd, true, nil
}
