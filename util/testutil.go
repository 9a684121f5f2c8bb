// Copyright (c) 2023 Colin McRae

package util

import (
	"fmt"
	"math/rand"
)

// CreateInversePair creates a pair of dim x dim integer matrices, flattened
// row-major, that are inverses of each other. Both are products of random
// elementary row operations, so both have determinant 1.
func CreateInversePair(rng *rand.Rand, dim int) ([]int64, []int64, error) {
	const maxRowOpEntry = 10
	const maxRowOps = 10
	const maxMatrixEntry = 100
	retValA := identity(dim)
	retValB := identity(dim)
	if dim < 2 {
		return retValA, retValB, nil
	}

	// The inverse operation to adding c times row i to row j is to add -c
	// times row i to row j
	for i := 0; i < maxRowOps; i++ {
		srcRow := rng.Intn(dim)
		destRow := rng.Intn(dim)
		multiple := int64(rng.Intn(maxRowOpEntry) - (maxRowOpEntry / 2))
		if multiple == 0 {
			multiple = 1
		}
		if srcRow == destRow {
			destRow = (destRow + 1 + rng.Intn(dim-1)) % dim
		}
		rowOpA := identity(dim)
		rowOpB := identity(dim)
		rowOpA[destRow*dim+srcRow] = multiple
		rowOpB[destRow*dim+srcRow] = -multiple
		tmpA, err := MultiplyInt64(rowOpA, retValA, dim)
		if err != nil {
			return nil, nil, fmt.Errorf("CreateInversePair: could not multiply retValA by rowOpA: %w", err)
		}
		tmpB, err := MultiplyInt64(retValB, rowOpB, dim)
		if err != nil {
			return nil, nil, fmt.Errorf("CreateInversePair: could not multiply retValB by rowOpB: %w", err)
		}

		// An entry in tmpA or tmpB may exceed the maximum desired
		for j := 0; j < dim*dim; j++ {
			if tmpA[j] > maxMatrixEntry || tmpA[j] < -maxMatrixEntry ||
				tmpB[j] > maxMatrixEntry || tmpB[j] < -maxMatrixEntry {
				return retValA, retValB, nil
			}
		}
		retValA = tmpA
		retValB = tmpB
	}
	return retValA, retValB, nil
}

// MultiplyInt64 returns the product of two dim x dim row-major matrices
func MultiplyInt64(x, y []int64, dim int) ([]int64, error) {
	if len(x) != dim*dim || len(y) != dim*dim {
		return nil, fmt.Errorf(
			"MultiplyInt64: len(x) = %d, len(y) = %d, expected %d", len(x), len(y), dim*dim,
		)
	}
	retVal := make([]int64, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			for k := 0; k < dim; k++ {
				retVal[i*dim+j] += x[i*dim+k] * y[k*dim+j]
			}
		}
	}
	return retVal, nil
}

// GetPermutation returns a random permutation of {0,...,size-1} that is not
// the identity. size must be at least 2.
func GetPermutation(rng *rand.Rand, size int) []int {
	permutation := rng.Perm(size)
	for i := 0; i < size; i++ {
		if permutation[i] != i {
			return permutation
		}
	}

	// The random permutation is the identity. Return a random swap.
	src := rng.Intn(size)
	dest := (src + 1 + rng.Intn(size-1)) % size
	permutation[src] = dest
	permutation[dest] = src
	return permutation
}

// RandomInt64s returns n values drawn uniformly from [-maxAbs, maxAbs]
func RandomInt64s(rng *rand.Rand, n int, maxAbs int64) []int64 {
	retVal := make([]int64, n)
	for i := range retVal {
		retVal[i] = rng.Int63n(2*maxAbs+1) - maxAbs
	}
	return retVal
}

func identity(dim int) []int64 {
	retVal := make([]int64, dim*dim)
	for i := 0; i < dim; i++ {
		retVal[i*dim+i] = 1
	}
	return retVal
}
