// Copyright (c) 2023 Colin McRae

package relations

import (
	"fmt"
	"slices"

	"github.com/predrag3141/qseries/field"
	"github.com/predrag3141/qseries/series"
)

// FindLinComboModP is FindLinCombo over the integers modulo the prime p.
// Coefficients are returned in [0, p).
func FindLinComboModP(f *series.Series, basis []*series.Series, p int64, topshift int) ([]int64, bool, error) {
	fp, err := field.NewModP(p)
	if err != nil {
		return nil, false, fmt.Errorf("FindLinComboModP: %w", err)
	}
	if err = checkSeries("FindLinComboModP", basis); err != nil {
		return nil, false, err
	}
	coefficients, found, err := combination[int64](fp, f, slices.Values(basis), topshift)
	if err != nil {
		return nil, false, fmt.Errorf("FindLinComboModP: %w", err)
	}
	return coefficients, found, nil
}

// FindHomModP is FindHom over the integers modulo the prime p
func FindHomModP(s []*series.Series, p int64, degree, topshift int) ([]*Relation[int64], error) {
	fp, err := field.NewModP(p)
	if err != nil {
		return nil, fmt.Errorf("FindHomModP: %w", err)
	}
	if err = checkSeries("FindHomModP", s); err != nil {
		return nil, err
	}
	if err = checkDegree("FindHomModP", degree); err != nil {
		return nil, err
	}
	retVal, err := homogeneous[int64](fp, s, Monomials(len(s), degree), topshift)
	if err != nil {
		return nil, fmt.Errorf("FindHomModP: %w", err)
	}
	return retVal, nil
}

// FindNonHomModP is FindNonHom over the integers modulo the prime p
func FindNonHomModP(s []*series.Series, p int64, degree, topshift int) ([]*Relation[int64], error) {
	fp, err := field.NewModP(p)
	if err != nil {
		return nil, fmt.Errorf("FindNonHomModP: %w", err)
	}
	if err = checkSeries("FindNonHomModP", s); err != nil {
		return nil, err
	}
	if err = checkDegree("FindNonHomModP", degree); err != nil {
		return nil, err
	}
	retVal, err := homogeneous[int64](fp, s, NonHomMonomials(len(s), degree), topshift)
	if err != nil {
		return nil, fmt.Errorf("FindNonHomModP: %w", err)
	}
	return retVal, nil
}

// FindHomComboModP is FindHomCombo over the integers modulo the prime p
func FindHomComboModP(f *series.Series, basis []*series.Series, p int64, degree, topshift int) (
	*Relation[int64], bool, error,
) {
	fp, err := field.NewModP(p)
	if err != nil {
		return nil, false, fmt.Errorf("FindHomComboModP: %w", err)
	}
	if err = checkSeries("FindHomComboModP", basis); err != nil {
		return nil, false, err
	}
	if err = checkDegree("FindHomComboModP", degree); err != nil {
		return nil, false, err
	}
	retVal, found, err := homogeneousCombo[int64](fp, f, basis, Monomials(len(basis), degree), topshift)
	if err != nil {
		return nil, false, fmt.Errorf("FindHomComboModP: %w", err)
	}
	return retVal, found, nil
}

// FindNonHomComboModP is FindNonHomCombo over the integers modulo the prime p
func FindNonHomComboModP(f *series.Series, basis []*series.Series, p int64, degree, topshift int) (
	*Relation[int64], bool, error,
) {
	fp, err := field.NewModP(p)
	if err != nil {
		return nil, false, fmt.Errorf("FindNonHomComboModP: %w", err)
	}
	if err = checkSeries("FindNonHomComboModP", basis); err != nil {
		return nil, false, err
	}
	if err = checkDegree("FindNonHomComboModP", degree); err != nil {
		return nil, false, err
	}
	retVal, found, err := homogeneousCombo[int64](fp, f, basis, NonHomMonomials(len(basis), degree), topshift)
	if err != nil {
		return nil, false, fmt.Errorf("FindNonHomComboModP: %w", err)
	}
	return retVal, found, nil
}
