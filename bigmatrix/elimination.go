// Copyright (c) 2023 Colin McRae

package bigmatrix

import (
	"fmt"
)

// RowReduce returns the reduced row echelon form of bm together with the
// pivot column of each non-zero row, in increasing order. bm is not modified.
//
// Pivots are the first non-zero entry at or below the current pivot row.
// Entries are exact, so no magnitude-based pivoting is needed.
func (bm *BigMatrix[E]) RowReduce() (*BigMatrix[E], []int, error) {
	if len(bm.values) != bm.numRows*bm.numCols {
		return nil, nil, fmt.Errorf(
			"BigMatrix.RowReduce: malformed matrix [%d][%d] with %d entries: %w",
			bm.numRows, bm.numCols, len(bm.values), ErrDimensions,
		)
	}
	f := bm.field
	rref := NewEmpty(f, 0, 0).Copy(bm)
	numRows, numCols := rref.Dimensions()
	pivots := make([]int, 0, min(numRows, numCols))
	pivotRow := 0
	for col := 0; col < numCols && pivotRow < numRows; col++ {
		found := -1
		for i := pivotRow; i < numRows; i++ {
			if !f.IsZero(rref.values[i*numCols+col]) {
				found = i
				break
			}
		}
		if found == -1 {
			continue
		}
		if found != pivotRow {
			err := rref.PermuteRows([][]int{{found, pivotRow}})
			if err != nil {
				return nil, nil, fmt.Errorf("BigMatrix.RowReduce: could not swap rows: %w", err)
			}
		}

		// Scale the pivot row so the pivot is 1
		inverse, err := f.Reciprocal(rref.values[pivotRow*numCols+col])
		if err != nil {
			return nil, nil, fmt.Errorf("BigMatrix.RowReduce: pivot in column %d: %w", col, err)
		}
		for j := col; j < numCols; j++ {
			rref.values[pivotRow*numCols+j] = f.Mul(rref.values[pivotRow*numCols+j], inverse)
		}

		// Clear the pivot column in every other row
		for i := 0; i < numRows; i++ {
			if i == pivotRow {
				continue
			}
			factor := rref.values[i*numCols+col]
			if f.IsZero(factor) {
				continue
			}
			for j := col; j < numCols; j++ {
				rref.values[i*numCols+j] = f.Sub(
					rref.values[i*numCols+j], f.Mul(factor, rref.values[pivotRow*numCols+j]),
				)
			}
		}
		pivots = append(pivots, col)
		pivotRow++
	}
	return rref, pivots, nil
}

// Rank returns the rank of bm
func (bm *BigMatrix[E]) Rank() (int, error) {
	_, pivots, err := bm.RowReduce()
	if err != nil {
		return 0, fmt.Errorf("BigMatrix.Rank: %w", err)
	}
	return len(pivots), nil
}

// NullSpace returns a basis of {v : bm v = 0}, one vector per non-pivot column
// of the reduced row echelon form, in increasing column order. The basis
// vector for free column c has 1 at c, 0 at every other free column and
// -rref[r][c] at the pivot column of row r. The basis is checked against bm
// before it is returned.
func (bm *BigMatrix[E]) NullSpace() ([][]E, error) {
	rref, pivots, err := bm.RowReduce()
	if err != nil {
		return nil, fmt.Errorf("BigMatrix.NullSpace: %w", err)
	}
	f := bm.field
	numCols := rref.numCols
	isPivot := make([]bool, numCols)
	for _, col := range pivots {
		isPivot[col] = true
	}
	retVal := make([][]E, 0, numCols-len(pivots))
	for freeCol := 0; freeCol < numCols; freeCol++ {
		if isPivot[freeCol] {
			continue
		}
		v := make([]E, numCols)
		for j := range v {
			v[j] = f.Zero()
		}
		v[freeCol] = f.One()
		for row, pivotCol := range pivots {
			v[pivotCol] = f.Neg(rref.values[row*numCols+freeCol])
		}
		retVal = append(retVal, v)
	}
	annihilated, err := bm.Annihilates(retVal)
	if err != nil {
		return nil, fmt.Errorf("BigMatrix.NullSpace: %w", err)
	}
	if !annihilated {
		return nil, fmt.Errorf("BigMatrix.NullSpace: %w", ErrNotAnnihilated)
	}
	return retVal, nil
}

// Annihilates reports whether bm v = 0 for every v in vectors. The vectors
// are gathered as the columns of one matrix V and bm V is compared with 0.
func (bm *BigMatrix[E]) Annihilates(vectors [][]E) (bool, error) {
	if len(vectors) == 0 || bm.numRows == 0 || bm.numCols == 0 {
		return true, nil
	}
	asRows, err := NewFromRows(bm.field, vectors)
	if err != nil {
		return false, fmt.Errorf("BigMatrix.Annihilates: %w", err)
	}
	if asRows.numCols != bm.numCols {
		return false, fmt.Errorf(
			"BigMatrix.Annihilates: vectors of length %d for a %d x %d matrix: %w",
			asRows.numCols, bm.numRows, bm.numCols, ErrDimensions,
		)
	}
	columns, err := NewEmpty(bm.field, 0, 0).Transpose(asRows)
	if err != nil {
		return false, fmt.Errorf("BigMatrix.Annihilates: %w", err)
	}
	product, err := NewEmpty(bm.field, 0, 0).Mul(bm, columns)
	if err != nil {
		return false, fmt.Errorf("BigMatrix.Annihilates: %w", err)
	}
	retVal, err := product.Equals(NewEmpty(bm.field, product.numRows, product.numCols))
	if err != nil {
		return false, fmt.Errorf("BigMatrix.Annihilates: %w", err)
	}
	return retVal, nil
}
