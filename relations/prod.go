// Copyright (c) 2023 Colin McRae

package relations

import (
	"fmt"
	"iter"
	"slices"

	"github.com/predrag3141/qseries/bigmatrix"
	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/field"
	"github.com/predrag3141/qseries/prodmake"
	"github.com/predrag3141/qseries/series"
)

// ProductRelation is prod(s_i^Exponents[i]) = 1 through the known
// coefficients of the series s_i.
type ProductRelation struct {
	Exponents []int
}

func (pr ProductRelation) String() string {
	return fmt.Sprint(pr.Exponents)
}

// FindProd returns every exponent vector e with |e_i| <= maxCoeff, the first
// non-zero entry positive and sum(|e_i|) <= maxExp such that
// prod(s_i^e_i) = 1 up to the smallest truncation order. maxExp <= 0 leaves
// the total unbounded. Results are in lexicographic order of e.
//
// With s_i = c_i q^k_i prod((1-q^n)^(-a_n^(i))) from Prodmake, the product is
// 1 exactly when sum(e_i k_i) = 0, every sum(e_i a_n^(i)) = 0 and
// prod(c_i^e_i) = 1. The first two conditions form a linear system whose
// null space is checked before any vector is enumerated.
func FindProd(s []*series.Series, maxCoeff, maxExp int) ([]ProductRelation, error) {
	if err := checkSeries("FindProd", s); err != nil {
		return nil, err
	}
	if maxCoeff < 1 {
		return nil, fmt.Errorf("FindProd: maxCoeff = %d: %w", maxCoeff, ErrBadBound)
	}

	forms := make([]*prodmake.InfiniteProductForm, len(s))
	termsUsed := -1
	for i, f := range s {
		k, ok := f.MinOrder()
		if !ok {
			return nil, fmt.Errorf("FindProd: series %d: %w", i, prodmake.ErrZeroSeries)
		}
		form, err := prodmake.Prodmake(f, max(f.TruncationOrder()-k-1, 1))
		if err != nil {
			return nil, fmt.Errorf("FindProd: series %d: %w", i, err)
		}
		forms[i] = form
		if termsUsed < 0 || form.TermsUsed < termsUsed {
			termsUsed = form.TermsUsed
		}
	}

	// Row 0 holds the leading exponents and row n the a_n
	rows := make([][]*bignumber.BigNumber, termsUsed+1)
	for n := range rows {
		rows[n] = make([]*bignumber.BigNumber, len(s))
		for i, form := range forms {
			if n == 0 {
				rows[n][i] = bignumber.NewFromInt64(int64(form.LeadingExponent))
			} else {
				rows[n][i] = form.Exponent(n)
			}
		}
	}
	system, err := bigmatrix.NewFromRows[*bignumber.BigNumber](field.Rationals{}, rows)
	if err != nil {
		return nil, fmt.Errorf("FindProd: %w", err)
	}
	basis, err := system.NullSpace()
	if err != nil {
		return nil, fmt.Errorf("FindProd: %w", err)
	}
	retVal := []ProductRelation{}
	if len(basis) == 0 {
		return retVal, nil
	}

	for e := range exponentVectors(len(s), maxCoeff, maxExp) {
		v := make([]*bignumber.BigNumber, len(e))
		for i, ei := range e {
			v[i] = bignumber.NewFromInt64(int64(ei))
		}
		image, err := system.MulVec(v)
		if err != nil {
			return nil, fmt.Errorf("FindProd: %w", err)
		}
		if slices.ContainsFunc(image, func(x *bignumber.BigNumber) bool { return !x.IsZero() }) {
			continue
		}
		scalar, err := scalarProduct(forms, e)
		if err != nil {
			return nil, fmt.Errorf("FindProd: %w", err)
		}
		if scalar.IsOne() {
			retVal = append(retVal, ProductRelation{Exponents: e})
		}
	}
	return retVal, nil
}

// scalarProduct returns prod(c_i^e_i) for the leading coefficients c_i
func scalarProduct(forms []*prodmake.InfiniteProductForm, e []int) (*bignumber.BigNumber, error) {
	retVal := bignumber.NewFromInt64(1)
	for i, form := range forms {
		if e[i] == 0 {
			continue
		}
		power, err := bignumber.NewFromInt64(0).Pow(form.Scalar, e[i])
		if err != nil {
			return nil, err
		}
		retVal.Mul(retVal, power)
	}
	return retVal, nil
}

// exponentVectors enumerates e in [-maxCoeff, maxCoeff]^k in lexicographic
// order, keeping those whose first non-zero entry is positive and whose
// absolute sum is at most maxExp when maxExp > 0
func exponentVectors(k, maxCoeff, maxExp int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		e := make([]int, k)
		for i := range e {
			e[i] = -maxCoeff
		}
		for {
			if leadingPositive(e) && (maxExp <= 0 || absSum(e) <= maxExp) {
				if !yield(slices.Clone(e)) {
					return
				}
			}

			// Advance like an odometer, last entry fastest
			i := k - 1
			for i >= 0 && e[i] == maxCoeff {
				e[i] = -maxCoeff
				i--
			}
			if i < 0 {
				return
			}
			e[i]++
		}
	}
}

func leadingPositive(e []int) bool {
	for _, ei := range e {
		if ei != 0 {
			return ei > 0
		}
	}
	return false
}

func absSum(e []int) int {
	retVal := 0
	for _, ei := range e {
		retVal += max(ei, -ei)
	}
	return retVal
}
