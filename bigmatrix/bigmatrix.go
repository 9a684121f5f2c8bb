// Copyright (c) 2023 Colin McRae

// Package bigmatrix represents a matrix with exact field elements in it
package bigmatrix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/predrag3141/qseries/field"
)

var (
	// ErrDimensions is returned for malformed or mismatched matrix shapes.
	ErrDimensions = errors.New("bigmatrix: invalid dimensions")

	// ErrIndex is returned when a row or column index is out of range.
	ErrIndex = errors.New("bigmatrix: index out of range")

	// ErrNotAnnihilated is returned when a computed null space vector v has
	// bm v != 0.
	ErrNotAnnihilated = errors.New("bigmatrix: vector is not in the null space")
)

// BigMatrix is a numRows x numCols matrix over a field, stored row-major so
// that entry (i, j) is values[i*numCols+j]. Field elements are treated as
// immutable, so matrices may share them.
type BigMatrix[E any] struct {
	field   field.Field[E]
	values  []E
	numRows int
	numCols int
}

// NewFromRows creates a matrix whose i-th row is rows[i]. All rows must have
// the same length. The elements are shared with rows, not copied.
func NewFromRows[E any](f field.Field[E], rows [][]E) (*BigMatrix[E], error) {
	if len(rows) == 0 {
		return NewEmpty(f, 0, 0), nil
	}
	numCols := len(rows[0])
	retVal := &BigMatrix[E]{
		field:   f,
		values:  make([]E, 0, len(rows)*numCols),
		numRows: len(rows),
		numCols: numCols,
	}
	for i, row := range rows {
		if len(row) != numCols {
			return nil, fmt.Errorf(
				"BigMatrix.NewFromRows: row %d has %d entries, expected %d: %w",
				i, len(row), numCols, ErrDimensions,
			)
		}
		retVal.values = append(retVal.values, row...)
	}
	return retVal, nil
}

// NewEmpty returns a numRows x numCols matrix with 0s in each value. Negative numRows
// or numCols is interpreted as 0. A 0 x n matrix keeps its n columns, so that
// its null space is still n-dimensional.
func NewEmpty[E any](f field.Field[E], numRows int, numCols int) *BigMatrix[E] {
	if numRows < 0 {
		numRows = 0
	}
	if numCols < 0 {
		numCols = 0
	}
	retVal := &BigMatrix[E]{
		field:   f,
		values:  make([]E, numRows*numCols),
		numRows: numRows,
		numCols: numCols,
	}
	for i := 0; i < numRows*numCols; i++ {
		retVal.values[i] = f.Zero()
	}
	return retVal
}

// Field returns the field bm is defined over
func (bm *BigMatrix[E]) Field() field.Field[E] {
	return bm.field
}

// DotProduct returns sum(x[row][k] y[k][col]) over k in {start,...,end-1}
func DotProduct[E any](x *BigMatrix[E], y *BigMatrix[E], row, column, start, end int) (E, error) {
	f := x.field
	if start < 0 || end < start || x.numCols < end || y.numRows < end {
		return f.Zero(), fmt.Errorf(
			"DotProduct: invalid range {%d,...,%d} for x %dx%d and y %dx%d: %w",
			start, end-1, x.numRows, x.numCols, y.numRows, y.numCols, ErrDimensions,
		)
	}
	retVal := f.Zero()
	for k := start; k < end; k++ {
		xEntry := x.values[row*x.numCols+k]
		if f.IsZero(xEntry) {
			continue
		}
		retVal = f.Add(retVal, f.Mul(xEntry, y.values[k*y.numCols+column]))
	}
	return retVal, nil
}

// Mul replaces the contents of bm with the matrix xy and returns bm. If
// dimensions of x and y are invalid or do not match, an error is returned.
func (bm *BigMatrix[E]) Mul(x *BigMatrix[E], y *BigMatrix[E]) (*BigMatrix[E], error) {
	err := checkInput(x, y, "Mul")
	if err != nil {
		return nil, err
	}
	retVal := NewEmpty(x.field, x.numRows, y.numCols)
	for i := 0; i < x.numRows; i++ {
		for j := 0; j < y.numCols; j++ {
			retVal.values[i*retVal.numCols+j], err = DotProduct(x, y, i, j, 0, x.numCols)
			if err != nil {
				return nil, fmt.Errorf("BigMatrix.Mul: error when computing dot product: %w", err)
			}
		}
	}
	bm.Copy(retVal)
	return bm, nil
}

// MulVec returns the product of bm with the column vector v.
func (bm *BigMatrix[E]) MulVec(v []E) ([]E, error) {
	if len(v) != bm.numCols {
		return nil, fmt.Errorf(
			"BigMatrix.MulVec: vector of length %d for a %d x %d matrix: %w",
			len(v), bm.numRows, bm.numCols, ErrDimensions,
		)
	}
	f := bm.field
	retVal := make([]E, bm.numRows)
	for i := 0; i < bm.numRows; i++ {
		sum := f.Zero()
		for j := 0; j < bm.numCols; j++ {
			sum = f.Add(sum, f.Mul(bm.values[i*bm.numCols+j], v[j]))
		}
		retVal[i] = sum
	}
	return retVal, nil
}

// Copy copies x to bm and returns bm. Elements are immutable, so sharing
// them between bm and x is safe.
func (bm *BigMatrix[E]) Copy(x *BigMatrix[E]) *BigMatrix[E] {
	bm.field = x.field
	bm.numRows = x.numRows
	bm.numCols = x.numCols
	bm.values = make([]E, len(x.values))
	copy(bm.values, x.values)
	return bm
}

// Transpose replaces the contents of bm with the transpose of matrix x. If
// dimensions of x are invalid, an error is returned.
func (bm *BigMatrix[E]) Transpose(x *BigMatrix[E]) (*BigMatrix[E], error) {
	err := checkInput(x, nil, "Transpose")
	if err != nil {
		return nil, err
	}
	retVal := NewEmpty(x.field, x.numCols, x.numRows)
	for i := 0; i < retVal.numRows; i++ {
		for j := 0; j < retVal.numCols; j++ {
			retVal.values[i*retVal.numCols+j] = x.values[j*x.numCols+i]
		}
	}
	bm.Copy(retVal)
	return bm, nil
}

// PermuteRows performs the row operation on bm:
// row cycles[i][0] -> row cycles[i][1], row cycles[i][1] -> row cycles[i][2], etc.
// for i in {0,...,len(cycles)-1}.
//
// Each cycles[i][j] must contain a valid row number for bm, or an error is returned.
// PermuteRows does not verify that cycles represents a valid permutation of the
// rows of bm.
func (bm *BigMatrix[E]) PermuteRows(cycles [][]int) error {
	if len(cycles) == 0 {
		return fmt.Errorf("PermuteRows: permutation was empty")
	}
	numCols := bm.numCols
	for _, cycle := range cycles {
		for _, row := range cycle {
			if row < 0 || bm.numRows <= row {
				return fmt.Errorf(
					"PermuteRows: cycle contains row %d not in {0,...,%d}: %w", row, bm.numRows-1, ErrIndex,
				)
			}
		}
		if len(cycle) < 2 {
			continue
		}

		// The last row of the cycle is overwritten by the one before it, and so on
		// back to the first, which receives what was in the last.
		last := cycle[len(cycle)-1]
		saved := make([]E, numCols)
		copy(saved, bm.values[last*numCols:(last+1)*numCols])
		for j := len(cycle) - 1; j > 0; j-- {
			copy(
				bm.values[cycle[j]*numCols:(cycle[j]+1)*numCols],
				bm.values[cycle[j-1]*numCols:(cycle[j-1]+1)*numCols],
			)
		}
		copy(bm.values[cycle[0]*numCols:(cycle[0]+1)*numCols], saved)
	}
	return nil
}

// Equals returns whether all corresponding elements of bm and x are equal.
//
// If bm and x have different dimensions, an error is returned.
func (bm *BigMatrix[E]) Equals(x *BigMatrix[E]) (bool, error) {
	if (bm.numRows != x.numRows) || (bm.numCols != x.numCols) {
		return false, fmt.Errorf("BigMatrix.Equals: cannot compare bm[%d][%d] to x[%d][%d]: %w",
			bm.numRows, bm.numCols, x.numRows, x.numCols, ErrDimensions)
	}
	for i := range bm.values {
		if !bm.field.Equal(bm.values[i], x.values[i]) {
			return false, nil
		}
	}
	return true, nil
}

// Dimensions returns the number of rows and columns in bm, in that order.
func (bm *BigMatrix[E]) Dimensions() (int, int) {
	return bm.numRows, bm.numCols
}

// String returns a string representing bm with rows separated by newlines.
func (bm *BigMatrix[E]) String() string {
	var sb strings.Builder
	for i := 0; i < bm.numRows; i++ {
		for j := 0; j < bm.numCols; j++ {
			sb.WriteString(fmt.Sprintf("%s, ", bm.field.Format(bm.values[i*bm.numCols+j])))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func checkInput[E any](x, y *BigMatrix[E], caller string) error {
	if len(x.values) != x.numRows*x.numCols || x.numRows <= 0 || x.numCols <= 0 {
		return fmt.Errorf(
			"BigMatrix.%s: malformed input matrix x[%d][%d] with %d entries: %w",
			caller, x.numRows, x.numCols, len(x.values), ErrDimensions,
		)
	}
	if y == nil {
		return nil
	}
	if len(y.values) != y.numRows*y.numCols || y.numRows <= 0 || y.numCols <= 0 {
		return fmt.Errorf(
			"BigMatrix.%s: malformed input matrix y[%d][%d] with %d entries: %w",
			caller, y.numRows, y.numCols, len(y.values), ErrDimensions,
		)
	}
	if caller == "Mul" && (x.numCols != y.numRows) {
		return fmt.Errorf(
			"BigMatrix.Mul: mismatched dimensions for operands x (%d x %d) and y (%d x %d): %w",
			x.numRows, x.numCols, y.numRows, y.numCols, ErrDimensions,
		)
	}
	return nil
}
