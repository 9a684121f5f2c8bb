// Copyright (c) 2023 Colin McRae

package products

import (
	"fmt"
	"sort"
	"strings"

	"github.com/predrag3141/qseries/series"
)

type builder struct {
	numArgs int
	usage   string
	build   func(args []int, trunc int) (*series.Series, error)
}

var catalog = map[string]builder{
	"etaq": {2, "etaq b t: prod(1 - q^(b+t*n), n >= 0)", func(args []int, trunc int) (*series.Series, error) {
		return Etaq(args[0], args[1], trunc)
	}},
	"eta": {1, "eta d: (q^d;q^d)_inf", func(args []int, trunc int) (*series.Series, error) {
		return QPochhammer(args[0], trunc)
	}},
	"jacprod": {2, "jacprod a b: JAC(a,b)", func(args []int, trunc int) (*series.Series, error) {
		return JacProd(args[0], args[1], trunc)
	}},
	"partition": {0, "partition: 1/(q;q)_inf", func(_ []int, trunc int) (*series.Series, error) {
		return PartitionGF(trunc), nil
	}},
	"distinct": {0, "distinct: (-q;q)_inf", func(_ []int, trunc int) (*series.Series, error) {
		return DistinctPartsGF(trunc), nil
	}},
	"theta3": {0, "theta3: sum q^(n^2)", func(_ []int, trunc int) (*series.Series, error) {
		return Theta3(trunc), nil
	}},
	"theta4": {0, "theta4: sum (-1)^n q^(n^2)", func(_ []int, trunc int) (*series.Series, error) {
		return Theta4(trunc), nil
	}},
	"theta2^4": {0, "theta2^4: theta2(q)^4", func(_ []int, trunc int) (*series.Series, error) {
		return Theta2Fourth(trunc), nil
	}},
	"rrg": {0, "rrg: Rogers-Ramanujan G(q)", func(_ []int, trunc int) (*series.Series, error) {
		return RogersRamanujanG(trunc), nil
	}},
	"rrh": {0, "rrh: Rogers-Ramanujan H(q)", func(_ []int, trunc int) (*series.Series, error) {
		return RogersRamanujanH(trunc), nil
	}},
}

// Build returns the named series with the given integer arguments, known
// below trunc. "etaquotient" takes (d, r_d) pairs.
func Build(kind string, args []int, trunc int) (*series.Series, error) {
	if trunc < 1 {
		return nil, fmt.Errorf("Build: truncation order %d < 1: %w", trunc, ErrBadParameter)
	}
	if kind == "etaquotient" {
		if len(args)%2 != 0 {
			return nil, fmt.Errorf("Build: etaquotient takes (d, r) pairs, got %d args: %w", len(args), ErrBadParameter)
		}
		factors := map[int]int{}
		for i := 0; i < len(args); i += 2 {
			factors[args[i]] += args[i+1]
		}
		return EtaQuotient(factors, trunc)
	}
	b, ok := catalog[kind]
	if !ok {
		return nil, fmt.Errorf("Build: unknown series %q (known: %s): %w", kind, strings.Join(Kinds(), ", "), ErrBadParameter)
	}
	if len(args) != b.numArgs {
		return nil, fmt.Errorf("Build: %q takes %d args, got %d: %w", kind, b.numArgs, len(args), ErrBadParameter)
	}
	return b.build(args, trunc)
}

// Kinds returns the names accepted by Build, sorted
func Kinds() []string {
	retVal := []string{"etaquotient"}
	for kind := range catalog {
		retVal = append(retVal, kind)
	}
	sort.Strings(retVal)
	return retVal
}

// Usage returns a one-line description of each kind accepted by Build
func Usage() []string {
	retVal := []string{"etaquotient d1 r1 d2 r2 ...: prod((q^d;q^d)_inf^r)"}
	for _, kind := range Kinds() {
		if b, ok := catalog[kind]; ok {
			retVal = append(retVal, b.usage)
		}
	}
	return retVal
}
