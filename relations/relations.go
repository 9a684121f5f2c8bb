// Copyright (c) 2023 Colin McRae

// Package relations discovers linear, polynomial, congruence, independence
// and multiplicative relations among truncated q-series.
//
// Every search follows the same pipeline. Candidate series are generated
// (the inputs, or monomials in them), their coefficients are copied into the
// columns of a matrix over an exact field, and the null space of that matrix
// is read back as relations. Rows run from min(0, lowest valuation) for
// min(#columns + topshift, available) exponents, where available is bounded
// by the smallest truncation order among the candidates, so no unknown
// coefficient is ever read. A larger topshift adds rows and rejects
// relations that only hold on too few coefficients.
//
// Each search over the rationals has a counterpart over the integers modulo
// a prime p, with the same algorithm and an extra p argument.
package relations

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/predrag3141/qseries/bigmatrix"
	"github.com/predrag3141/qseries/field"
	"github.com/predrag3141/qseries/series"
)

var (
	// ErrEmptyCandidates is returned when there are no series to search
	// among.
	ErrEmptyCandidates = errors.New("relations: no candidate series")

	// ErrBadDegree is returned for a negative degree.
	ErrBadDegree = errors.New("relations: degree must be non-negative")

	// ErrBadTopshift is returned for a negative topshift.
	ErrBadTopshift = errors.New("relations: topshift must be non-negative")

	// ErrBadBound is returned for a search bound that admits nothing.
	ErrBadBound = errors.New("relations: invalid search bound")
)

// Relation is sum(Coefficients[i] * prod(x_j^Monomials[i][j])) = 0, where
// x_j is the j-th input series. Monomials are listed in the order they were
// enumerated.
type Relation[E any] struct {
	Monomials    [][]int
	Coefficients []E
}

// Coefficient returns the coefficient of the monomial with the given
// exponents. ok is false if the monomial was not a candidate.
func (r *Relation[E]) Coefficient(exponents ...int) (coefficient E, ok bool) {
	for i, monomial := range r.Monomials {
		if slices.Equal(monomial, exponents) {
			return r.Coefficients[i], true
		}
	}
	return coefficient, false
}

// Format writes the relation with names[j] standing for the j-th series,
// omitting zero terms, as in "(2)*f + (-1)*g^2 = 0".
func (r *Relation[E]) Format(names []string) string {
	return r.Terms(names) + " = 0"
}

// Terms writes the left side of Format alone, which for the combination
// searches is the combination itself. It is "0" when every coefficient is.
func (r *Relation[E]) Terms(names []string) string {
	var terms []string
	for i, c := range r.Coefficients {
		text := fmt.Sprint(c)
		if text == "0" {
			continue
		}
		monomial := monomialString(r.Monomials[i], names)
		if monomial == "" {
			terms = append(terms, fmt.Sprintf("(%s)", text))
			continue
		}
		terms = append(terms, fmt.Sprintf("(%s)*%s", text, monomial))
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

func (r *Relation[E]) String() string {
	numVars := 0
	if len(r.Monomials) > 0 {
		numVars = len(r.Monomials[0])
	}
	names := make([]string, numVars)
	for j := range names {
		names[j] = fmt.Sprintf("X%d", j+1)
	}
	return r.Format(names)
}

func monomialString(exponents []int, names []string) string {
	var factors []string
	for j, e := range exponents {
		name := fmt.Sprintf("X%d", j+1)
		if j < len(names) {
			name = names[j]
		}
		switch {
		case e == 1:
			factors = append(factors, name)
		case e > 1:
			factors = append(factors, fmt.Sprintf("%s^%d", name, e))
		}
	}
	return strings.Join(factors, "*")
}

// Monomials enumerates the exponent tuples of the monomials of degree d in k
// variables, lexicographically: the first exponent ascends slowest and the
// last varies fastest. For k = 2, d = 2 that is (0,2), (1,1), (2,0). Each
// yielded slice is freshly allocated.
func Monomials(k, d int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k <= 0 || d < 0 {
			return
		}
		current := make([]int, k)
		var fill func(pos, remaining int) bool
		fill = func(pos, remaining int) bool {
			if pos == k-1 {
				current[pos] = remaining
				return yield(slices.Clone(current))
			}
			for v := 0; v <= remaining; v++ {
				current[pos] = v
				if !fill(pos+1, remaining-v) {
					return false
				}
			}
			return true
		}
		fill(0, d)
	}
}

// NonHomMonomials enumerates the monomials of degree 0, 1, ..., d in k
// variables, each degree in the order of Monomials.
func NonHomMonomials(k, d int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		for degree := 0; degree <= d; degree++ {
			for monomial := range Monomials(k, degree) {
				if !yield(monomial) {
					return
				}
			}
		}
	}
}

// powerTable builds monomials in a fixed list of series, computing each
// power by one multiplication from the previous one and keeping it for the
// rest of the search.
type powerTable struct {
	base   []*series.Series
	powers [][]*series.Series
	trunc  int
}

func newPowerTable(base []*series.Series) *powerTable {
	retVal := &powerTable{
		base:   base,
		powers: make([][]*series.Series, len(base)),
		trunc:  base[0].TruncationOrder(),
	}
	for i, s := range base {
		retVal.trunc = min(retVal.trunc, s.TruncationOrder())
		retVal.powers[i] = []*series.Series{series.One(s.TruncationOrder())}
	}
	return retVal
}

func (pt *powerTable) power(i, e int) *series.Series {
	for len(pt.powers[i]) <= e {
		last := pt.powers[i][len(pt.powers[i])-1]
		pt.powers[i] = append(pt.powers[i], last.Mul(pt.base[i]))
	}
	return pt.powers[i][e]
}

func (pt *powerTable) monomial(exponents []int) *series.Series {
	retVal := series.One(pt.trunc)
	for i, e := range exponents {
		if e > 0 {
			retVal = retVal.Mul(pt.power(i, e))
		}
	}
	return retVal
}

// monomialSeries returns the monomials in base, in the order of monomials,
// together with the exponent tuples it consumed.
func monomialSeries(base []*series.Series, monomials iter.Seq[[]int]) (iter.Seq[*series.Series], *[][]int) {
	table := newPowerTable(base)
	exponents := &[][]int{}
	return func(yield func(*series.Series) bool) {
		for monomial := range monomials {
			*exponents = append(*exponents, monomial)
			if !yield(table.monomial(monomial)) {
				return
			}
		}
	}, exponents
}

// column is one candidate series converted into the field
type column[E any] struct {
	coeffs       map[int]E
	trunc        int
	valuation    int
	hasValuation bool
}

// coefficientMatrix copies each candidate into a column and returns the
// matrix whose rows are the exponents of the row window. ok is false when
// the window is empty, in which case nothing can be concluded.
func coefficientMatrix[E any](
	fl field.Field[E], candidates iter.Seq[*series.Series], topshift int,
) (matrix *bigmatrix.BigMatrix[E], ok bool, err error) {
	var columns []column[E]
	for candidate := range candidates {
		col := column[E]{coeffs: map[int]E{}, trunc: candidate.TruncationOrder()}
		col.valuation, col.hasValuation = candidate.MinOrder()
		for _, k := range candidate.Exponents() {
			element, err := fl.FromRational(candidate.Coeff(k))
			if err != nil {
				return nil, false, fmt.Errorf(
					"coefficientMatrix: coefficient %d of candidate %d: %w", k, len(columns), err,
				)
			}
			if !fl.IsZero(element) {
				col.coeffs[k] = element
			}
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return nil, false, fmt.Errorf("coefficientMatrix: %w", ErrEmptyCandidates)
	}

	start, end := 0, columns[0].trunc
	for _, col := range columns {
		if col.hasValuation {
			start = min(start, col.valuation)
		}
		end = min(end, col.trunc)
	}
	numRows := min(len(columns)+topshift, end-start)
	if numRows <= 0 {
		return nil, false, nil
	}
	rows := make([][]E, numRows)
	for i := range rows {
		rows[i] = make([]E, len(columns))
		for j, col := range columns {
			if element, found := col.coeffs[start+i]; found {
				rows[i][j] = element
			} else {
				rows[i][j] = fl.Zero()
			}
		}
	}
	matrix, err = bigmatrix.NewFromRows(fl, rows)
	if err != nil {
		return nil, false, fmt.Errorf("coefficientMatrix: %w", err)
	}
	return matrix, true, nil
}

// nullSpace returns the null space of the coefficient matrix of candidates,
// or nil when the row window is empty.
func nullSpace[E any](fl field.Field[E], candidates iter.Seq[*series.Series], topshift int) ([][]E, error) {
	if topshift < 0 {
		return nil, fmt.Errorf("nullSpace: topshift = %d: %w", topshift, ErrBadTopshift)
	}
	matrix, ok, err := coefficientMatrix(fl, candidates, topshift)
	if err != nil || !ok {
		return nil, err
	}
	basis, err := matrix.NullSpace()
	if err != nil {
		return nil, fmt.Errorf("nullSpace: %w", err)
	}
	return basis, nil
}

// combination finds f as a combination of candidates. The null space of
// [f, candidates...] must hold exactly one vector with a non-zero f
// component; that vector, scaled so the f component is 1, gives the
// coefficients as the negatives of its other components.
func combination[E any](
	fl field.Field[E], f *series.Series, candidates iter.Seq[*series.Series], topshift int,
) ([]E, bool, error) {
	withTarget := func(yield func(*series.Series) bool) {
		if !yield(f) {
			return
		}
		for candidate := range candidates {
			if !yield(candidate) {
				return
			}
		}
	}
	basis, err := nullSpace(fl, withTarget, topshift)
	if err != nil {
		return nil, false, err
	}
	var qualifying [][]E
	for _, v := range basis {
		if !fl.IsZero(v[0]) {
			qualifying = append(qualifying, v)
		}
	}
	if len(qualifying) != 1 {
		return nil, false, nil
	}
	v := qualifying[0]
	scale, err := fl.Reciprocal(v[0])
	if err != nil {
		return nil, false, fmt.Errorf("combination: %w", err)
	}
	retVal := make([]E, len(v)-1)
	for i := range retVal {
		retVal[i] = fl.Neg(fl.Mul(v[i+1], scale))
	}
	return retVal, true, nil
}

// homogeneous returns the relations among the monomials in s enumerated by
// monomials
func homogeneous[E any](
	fl field.Field[E], s []*series.Series, monomials iter.Seq[[]int], topshift int,
) ([]*Relation[E], error) {
	candidates, exponents := monomialSeries(s, monomials)
	basis, err := nullSpace(fl, candidates, topshift)
	if err != nil {
		return nil, err
	}
	retVal := make([]*Relation[E], 0, len(basis))
	for _, v := range basis {
		retVal = append(retVal, &Relation[E]{Monomials: *exponents, Coefficients: v})
	}
	return retVal, nil
}

// homogeneousCombo writes f as a combination of the monomials in basis
func homogeneousCombo[E any](
	fl field.Field[E], f *series.Series, basis []*series.Series, monomials iter.Seq[[]int], topshift int,
) (*Relation[E], bool, error) {
	candidates, exponents := monomialSeries(basis, monomials)
	coefficients, found, err := combination(fl, f, candidates, topshift)
	if err != nil || !found {
		return nil, false, err
	}
	return &Relation[E]{Monomials: *exponents, Coefficients: coefficients}, true, nil
}

func checkSeries(caller string, s []*series.Series) error {
	if len(s) == 0 {
		return fmt.Errorf("%s: %w", caller, ErrEmptyCandidates)
	}
	return nil
}

func checkDegree(caller string, degree int) error {
	if degree < 0 {
		return fmt.Errorf("%s: degree = %d: %w", caller, degree, ErrBadDegree)
	}
	return nil
}
