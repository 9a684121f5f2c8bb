// Copyright (c) 2023 Colin McRae

package relations

import (
	"fmt"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/field"
	"github.com/predrag3141/qseries/series"
)

// PolyRelation is P(x, y) = sum(c_ij x^i y^j) = 0 with i <= DegX and
// j <= DegY. The embedded relation's monomials are the pairs (i, j).
type PolyRelation struct {
	Relation[*bignumber.BigNumber]
	DegX int
	DegY int
}

// Coeff returns c_ij, which is 0 outside the degree bounds
func (pr *PolyRelation) Coeff(i, j int) *bignumber.BigNumber {
	if c, ok := pr.Coefficient(i, j); ok {
		return bignumber.NewFromBigNumber(c)
	}
	return bignumber.NewFromInt64(0)
}

func (pr *PolyRelation) String() string {
	return pr.Format([]string{"X", "Y"})
}

// FindPoly finds a polynomial P with P(x, y) = 0, of degree at most degX in x
// and degY in y. The candidates are x^i y^j with i ascending slowest. When the
// null space has several vectors the first is returned.
func FindPoly(x, y *series.Series, degX, degY, topshift int) (*PolyRelation, bool, error) {
	if degX < 0 || degY < 0 {
		return nil, false, fmt.Errorf("FindPoly: degX = %d, degY = %d: %w", degX, degY, ErrBadDegree)
	}
	xPowers, err := powers(x, degX)
	if err != nil {
		return nil, false, fmt.Errorf("FindPoly: powers of x: %w", err)
	}
	yPowers, err := powers(y, degY)
	if err != nil {
		return nil, false, fmt.Errorf("FindPoly: powers of y: %w", err)
	}

	var monomials [][]int
	candidates := func(yield func(*series.Series) bool) {
		for i := 0; i <= degX; i++ {
			for j := 0; j <= degY; j++ {
				monomials = append(monomials, []int{i, j})
				if !yield(xPowers[i].Mul(yPowers[j])) {
					return
				}
			}
		}
	}
	basis, err := nullSpace[*bignumber.BigNumber](field.Rationals{}, candidates, topshift)
	if err != nil {
		return nil, false, fmt.Errorf("FindPoly: %w", err)
	}
	if len(basis) == 0 {
		return nil, false, nil
	}
	return &PolyRelation{
		Relation: Relation[*bignumber.BigNumber]{Monomials: monomials, Coefficients: basis[0]},
		DegX:     degX,
		DegY:     degY,
	}, true, nil
}

// powers returns s^0, ..., s^n, each by repeated squaring
func powers(s *series.Series, n int) ([]*series.Series, error) {
	retVal := make([]*series.Series, n+1)
	for i := range retVal {
		power, err := s.Pow(i)
		if err != nil {
			return nil, err
		}
		retVal[i] = power
	}
	return retVal, nil
}
