// Copyright (c) 2023 Colin McRae

package prodmake

import (
	"fmt"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/products"
	"github.com/predrag3141/qseries/series"
	"github.com/predrag3141/qseries/util"
)

// PeriodSearch bounds the periods Jacprodmake tries. If Period is positive,
// only its divisors greater than 1 are tried. Otherwise the periods are
// 2..MaxPeriod, where a non-positive MaxPeriod means TermsUsed/2, so that
// every residue class holds at least two exponents.
type PeriodSearch struct {
	Period    int
	MaxPeriod int
}

// JacobiProductForm represents
//
//	f(q) = Scalar * q^LeadingExponent * prod(JAC(a,b)^Factors[a]) * JAC(0,b)^PeriodExponent
//
// with b = Period, 0 < a <= b/2, JAC(a,b) = (q^a;q^b)(q^(b-a);q^b)(q^b;q^b)
// and JAC(0,b) = (q^b;q^b)_inf. Explained counts the non-zero prodmake
// exponents accounted for by the period. Exact is true only when all of
// them are and re-expanding the form reproduces f through its truncation
// order. Period is 0 when no period is consistent with any exponent.
type JacobiProductForm struct {
	Period          int
	Factors         map[int]int
	PeriodExponent  int
	Scalar          *bignumber.BigNumber
	LeadingExponent int
	Explained       int
	Exact           bool
}

// periodFit is the outcome of grouping exponents by residue mod b
type periodFit struct {
	period         int
	factors        map[int]int
	periodExponent int
	explained      int
	complete       bool
}

// fitPeriod groups e_n = -a_n, n = 1..termsUsed, by n mod b. A residue class
// r != 0 is usable when it is constant, equal to class b-r, and, for r = b/2,
// even. Class 0 is usable when constant and every other class is usable.
func fitPeriod(exponents map[int]int, termsUsed, b int) periodFit {
	classValue := make([]int, b)
	classSeen := make([]bool, b)
	classConsistent := make([]bool, b)
	classNonZero := make([]int, b)
	for r := 0; r < b; r++ {
		classConsistent[r] = true
	}
	for n := 1; n <= termsUsed; n++ {
		r := n % b
		e := exponents[n]
		if e != 0 {
			classNonZero[r]++
		}
		if !classSeen[r] {
			classSeen[r] = true
			classValue[r] = e
		} else if classValue[r] != e {
			classConsistent[r] = false
		}
	}

	retVal := periodFit{period: b, factors: map[int]int{}, complete: true}
	sum := 0
	allNonZeroUsable := true
	for r := 1; r <= b/2; r++ {
		usable := classConsistent[r] && classConsistent[b-r] && classValue[r] == classValue[b-r]
		if 2*r == b {
			usable = classConsistent[r] && classValue[r]%2 == 0
		}
		if !usable {
			allNonZeroUsable = false
			retVal.complete = false
			continue
		}
		x := classValue[r]
		if 2*r == b {
			x /= 2
			retVal.explained += classNonZero[r]
		} else {
			retVal.explained += classNonZero[r] + classNonZero[b-r]
		}
		if x != 0 {
			retVal.factors[r] = x
			sum += x
		}
	}
	if classConsistent[0] && allNonZeroUsable {
		retVal.explained += classNonZero[0]
		retVal.periodExponent = classValue[0] - sum
	} else {
		retVal.complete = false
	}
	return retVal
}

// JacobiProduct converts ipf to a Jacobi product, choosing the period that
// explains the most non-zero exponents, the smallest such period on ties.
// f is the series ipf was computed from; it is re-expanded against to decide
// Exact.
func (ipf *InfiniteProductForm) JacobiProduct(f *series.Series, search PeriodSearch) (*JacobiProductForm, error) {
	retVal := &JacobiProductForm{
		Factors:         map[int]int{},
		Scalar:          bignumber.NewFromBigNumber(ipf.Scalar),
		LeadingExponent: ipf.LeadingExponent,
	}
	exponents, integral := ipf.oneMinusExponents()
	if !integral {
		return retVal, nil
	}

	var periods []int
	if search.Period > 0 {
		for _, d := range util.Divisors(search.Period) {
			if d > 1 {
				periods = append(periods, d)
			}
		}
	} else {
		maxPeriod := search.MaxPeriod
		if maxPeriod <= 0 {
			maxPeriod = ipf.TermsUsed / 2
		}
		for b := 2; b <= maxPeriod; b++ {
			periods = append(periods, b)
		}
	}

	best := periodFit{explained: -1}
	for _, b := range periods {
		fit := fitPeriod(exponents, ipf.TermsUsed, b)
		if fit.explained > best.explained {
			best = fit
		}
	}
	if best.period == 0 {
		return retVal, nil
	}
	retVal.Period = best.period
	retVal.Factors = best.factors
	retVal.PeriodExponent = best.periodExponent
	retVal.Explained = best.explained
	if !best.complete || best.explained != len(exponents) {
		return retVal, nil
	}

	expansion, err := retVal.Expand(f.TruncationOrder())
	if err != nil {
		return nil, fmt.Errorf("JacobiProduct: re-expanding period %d: %w", best.period, err)
	}
	retVal.Exact = expansion.Equal(f)
	return retVal, nil
}

// Jacprodmake writes f as a product of Jacobi triple products using prodmake
// exponents through maxN
func Jacprodmake(f *series.Series, maxN int, search PeriodSearch) (*JacobiProductForm, error) {
	ipf, err := Prodmake(f, maxN)
	if err != nil {
		return nil, fmt.Errorf("Jacprodmake: %w", err)
	}
	retVal, err := ipf.JacobiProduct(f, search)
	if err != nil {
		return nil, fmt.Errorf("Jacprodmake: %w", err)
	}
	return retVal, nil
}

// Expand returns the series jpf represents, known below trunc
func (jpf *JacobiProductForm) Expand(trunc int) (*series.Series, error) {
	b := jpf.Period
	body := trunc - jpf.LeadingExponent
	exponents := map[int]int{}
	if b > 0 {
		for n := 1; n < body; n++ {
			r := n % b
			switch {
			case r == 0:
				exponents[n] = jpf.PeriodExponent
				for _, x := range jpf.Factors {
					exponents[n] += x
				}
			case 2*r == b:
				exponents[n] = 2 * jpf.Factors[r]
			case r < b-r:
				exponents[n] = jpf.Factors[r]
			default:
				exponents[n] = jpf.Factors[b-r]
			}
		}
	}
	product, err := products.OneMinusProduct(exponents, body)
	if err != nil {
		return nil, fmt.Errorf("JacobiProductForm.Expand: %w", err)
	}
	return product.ScalarMul(jpf.Scalar).Shift(jpf.LeadingExponent), nil
}

func (jpf *JacobiProductForm) String() string {
	parts := prefixParts(jpf.Scalar, jpf.LeadingExponent)
	for _, a := range sortedKeys(jpf.Factors) {
		parts = append(parts, fmt.Sprintf("JAC(%d,%d)^%d", a, jpf.Period, jpf.Factors[a]))
	}
	if jpf.PeriodExponent != 0 {
		parts = append(parts, fmt.Sprintf("JAC(0,%d)^%d", jpf.Period, jpf.PeriodExponent))
	}
	return joinParts(parts)
}
