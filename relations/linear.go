// Copyright (c) 2023 Colin McRae

package relations

import (
	"fmt"
	"slices"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/field"
	"github.com/predrag3141/qseries/series"
)

// FindLinCombo finds c with f = sum(c[i] * basis[i]). found is false unless
// exactly one relation among f and the basis involves f.
func FindLinCombo(f *series.Series, basis []*series.Series, topshift int) (
	coefficients []*bignumber.BigNumber, found bool, err error,
) {
	if err = checkSeries("FindLinCombo", basis); err != nil {
		return nil, false, err
	}
	coefficients, found, err = combination[*bignumber.BigNumber](
		field.Rationals{}, f, slices.Values(basis), topshift,
	)
	if err != nil {
		return nil, false, fmt.Errorf("FindLinCombo: %w", err)
	}
	return coefficients, found, nil
}

// FindHom returns a basis of the homogeneous polynomial relations of the
// given degree among s. The monomials are those of Monomials(len(s), degree).
func FindHom(s []*series.Series, degree, topshift int) ([]*Relation[*bignumber.BigNumber], error) {
	if err := checkSeries("FindHom", s); err != nil {
		return nil, err
	}
	if err := checkDegree("FindHom", degree); err != nil {
		return nil, err
	}
	retVal, err := homogeneous[*bignumber.BigNumber](field.Rationals{}, s, Monomials(len(s), degree), topshift)
	if err != nil {
		return nil, fmt.Errorf("FindHom: %w", err)
	}
	return retVal, nil
}

// FindNonHom returns a basis of the polynomial relations of degree at most
// degree among s, over the monomials of NonHomMonomials(len(s), degree).
func FindNonHom(s []*series.Series, degree, topshift int) ([]*Relation[*bignumber.BigNumber], error) {
	if err := checkSeries("FindNonHom", s); err != nil {
		return nil, err
	}
	if err := checkDegree("FindNonHom", degree); err != nil {
		return nil, err
	}
	retVal, err := homogeneous[*bignumber.BigNumber](
		field.Rationals{}, s, NonHomMonomials(len(s), degree), topshift,
	)
	if err != nil {
		return nil, fmt.Errorf("FindNonHom: %w", err)
	}
	return retVal, nil
}

// FindHomCombo writes f as a combination of the monomials of the given
// degree in basis. The relation's coefficients are those of the monomials,
// so f equals the sum of the terms rather than their sum being zero.
func FindHomCombo(f *series.Series, basis []*series.Series, degree, topshift int) (
	*Relation[*bignumber.BigNumber], bool, error,
) {
	if err := checkSeries("FindHomCombo", basis); err != nil {
		return nil, false, err
	}
	if err := checkDegree("FindHomCombo", degree); err != nil {
		return nil, false, err
	}
	retVal, found, err := homogeneousCombo[*bignumber.BigNumber](
		field.Rationals{}, f, basis, Monomials(len(basis), degree), topshift,
	)
	if err != nil {
		return nil, false, fmt.Errorf("FindHomCombo: %w", err)
	}
	return retVal, found, nil
}

// FindNonHomCombo writes f as a combination of the monomials of degree at
// most degree in basis.
func FindNonHomCombo(f *series.Series, basis []*series.Series, degree, topshift int) (
	*Relation[*bignumber.BigNumber], bool, error,
) {
	if err := checkSeries("FindNonHomCombo", basis); err != nil {
		return nil, false, err
	}
	if err := checkDegree("FindNonHomCombo", degree); err != nil {
		return nil, false, err
	}
	retVal, found, err := homogeneousCombo[*bignumber.BigNumber](
		field.Rationals{}, f, basis, NonHomMonomials(len(basis), degree), topshift,
	)
	if err != nil {
		return nil, false, fmt.Errorf("FindNonHomCombo: %w", err)
	}
	return retVal, found, nil
}

// FindMaxInd returns the indices of a maximal linearly independent subset
// of s: the pivot columns of the reduced coefficient matrix, so each index
// is independent of the ones before it.
func FindMaxInd(s []*series.Series, topshift int) ([]int, error) {
	if err := checkSeries("FindMaxInd", s); err != nil {
		return nil, err
	}
	if topshift < 0 {
		return nil, fmt.Errorf("FindMaxInd: topshift = %d: %w", topshift, ErrBadTopshift)
	}
	matrix, ok, err := coefficientMatrix[*bignumber.BigNumber](field.Rationals{}, slices.Values(s), topshift)
	if err != nil {
		return nil, fmt.Errorf("FindMaxInd: %w", err)
	}
	if !ok {
		return []int{}, nil
	}
	_, pivots, err := matrix.RowReduce()
	if err != nil {
		return nil, fmt.Errorf("FindMaxInd: %w", err)
	}
	return pivots, nil
}
