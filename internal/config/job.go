// Copyright (c) 2023 Colin McRae

// Package config loads qsearch job files. A job names a set of q-series
// built from the products catalog and a list of analyses to run on them.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultOrder is the truncation order used when a job does not set one.
const DefaultOrder = 100

// ErrInvalidJob is returned when a job file decodes but cannot be run.
var ErrInvalidJob = errors.New("config: invalid job")

// Job is the top level of a job file.
type Job struct {
	// Order is the truncation order of every series unless overridden.
	Order int `toml:"order"`

	// Series are built once and referenced by name from the analyses.
	Series []SeriesSpec `toml:"series"`

	// Analyses run in file order.
	Analyses []Analysis `toml:"analysis"`
}

// CoeffsKind is the series kind whose coefficients are listed in the job
// file instead of built from the products catalog.
const CoeffsKind = "coeffs"

// SeriesSpec names a series from the products catalog, or lists its
// coefficients when Kind is CoeffsKind.
type SeriesSpec struct {
	Name  string `toml:"name"`
	Kind  string `toml:"kind"`
	Args  []int  `toml:"args,omitempty"`
	Order int    `toml:"order,omitempty"`

	// Coeffs are the coefficients of q^0, q^1, ... as integers ("-3"),
	// fractions ("1/2") or terminating decimals ("0.25").
	Coeffs []string `toml:"coeffs,omitempty"`
}

// Analysis is one operation on named series. Fields that do not apply to
// Op are ignored.
type Analysis struct {
	Op string `toml:"op"`

	// Target is the series converted, sifted or expressed as a combination.
	Target string `toml:"target,omitempty"`

	// Series are the candidates or basis of a relation search.
	Series []string `toml:"series,omitempty"`

	Degree   int `toml:"degree,omitempty"`
	DegX     int `toml:"deg_x,omitempty"`
	DegY     int `toml:"deg_y,omitempty"`
	Topshift int `toml:"topshift,omitempty"`

	// P selects the mod-p variant of a linear or polynomial search when
	// non-zero.
	P int64 `toml:"p,omitempty"`

	MaxN      int `toml:"max_n,omitempty"`
	Period    int `toml:"period,omitempty"`
	MaxPeriod int `toml:"max_period,omitempty"`

	Modulus int `toml:"modulus,omitempty"`
	Residue int `toml:"residue,omitempty"`

	MaxIndex      int     `toml:"max_index,omitempty"`
	MaxModulus    int     `toml:"max_modulus,omitempty"`
	Moduli        []int   `toml:"moduli,omitempty"`
	ExcludePrimes []int64 `toml:"exclude_primes,omitempty"`
	TrialBound    int64   `toml:"trial_bound,omitempty"`

	MaxCoeff int `toml:"max_coeff,omitempty"`
	MaxExp   int `toml:"max_exp,omitempty"`
}

// opShape says which series references an operation takes
type opShape struct {
	target    bool
	minSeries int
	maxSeries int
	modP      bool
}

var ops = map[string]opShape{
	"prodmake":        {target: true},
	"etamake":         {target: true},
	"jacprodmake":     {target: true},
	"mprodmake":       {target: true},
	"qetamake":        {target: true},
	"qfactor":         {target: true},
	"qdegree":         {target: true},
	"sift":            {target: true},
	"findcong":        {target: true},
	"findlincombo":    {target: true, minSeries: 1, maxSeries: -1, modP: true},
	"findhomcombo":    {target: true, minSeries: 1, maxSeries: -1, modP: true},
	"findnonhomcombo": {target: true, minSeries: 1, maxSeries: -1, modP: true},
	"findhom":         {minSeries: 1, maxSeries: -1, modP: true},
	"findnonhom":      {minSeries: 1, maxSeries: -1, modP: true},
	"findmaxind":      {minSeries: 1, maxSeries: -1},
	"findprod":        {minSeries: 1, maxSeries: -1},
	"findpoly":        {minSeries: 2, maxSeries: 2},
}

// Ops returns the operation names a job may use, sorted
func Ops() []string {
	retVal := make([]string, 0, len(ops))
	for op := range ops {
		retVal = append(retVal, op)
	}
	slices.Sort(retVal)
	return retVal
}

// Load reads, defaults and validates the job file at path.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	job, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Parse decodes a job from TOML text, applies defaults and validates it.
// Keys the job format does not define are rejected.
func Parse(text string) (*Job, error) {
	var job Job
	md, err := toml.Decode(text, &job)
	if err != nil {
		return nil, fmt.Errorf("parsing job: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalidJob)
	}
	var explicit degreeKeys
	if _, err = toml.Decode(text, &explicit); err != nil {
		return nil, fmt.Errorf("parsing job: %w", err)
	}
	job.applyDefaults(explicit)
	if err = job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// degreeKeys records which degree settings a job file spells out, so that an
// explicit 0 is validated rather than replaced by the default
type degreeKeys struct {
	Analyses []struct {
		Degree *int `toml:"degree"`
		DegX   *int `toml:"deg_x"`
		DegY   *int `toml:"deg_y"`
	} `toml:"analysis"`
}

func (j *Job) applyDefaults(explicit degreeKeys) {
	if j.Order == 0 {
		j.Order = DefaultOrder
	}
	for i := range j.Series {
		if j.Series[i].Order == 0 {
			j.Series[i].Order = j.Order
		}
	}
	for i := range j.Analyses {
		a := &j.Analyses[i]
		keys := explicit.Analyses[i]
		switch a.Op {
		case "findhom", "findnonhom", "findhomcombo", "findnonhomcombo":
			if keys.Degree == nil {
				a.Degree = 1
			}
		case "findpoly":
			if keys.DegX == nil {
				a.DegX = 1
			}
			if keys.DegY == nil {
				a.DegY = 1
			}
		case "findprod":
			if a.MaxCoeff == 0 {
				a.MaxCoeff = 2
			}
		}
	}
}

// Validate checks that every analysis names a known operation and existing
// series, and that numeric settings are in range. The error names the
// offending analysis and field.
func (j *Job) Validate() error {
	if j.Order < 1 {
		return fmt.Errorf("order = %d must be positive: %w", j.Order, ErrInvalidJob)
	}
	if len(j.Series) == 0 {
		return fmt.Errorf("no series defined: %w", ErrInvalidJob)
	}
	names := map[string]bool{}
	for i, s := range j.Series {
		switch {
		case s.Name == "":
			return fmt.Errorf("series[%d]: name is empty: %w", i, ErrInvalidJob)
		case names[s.Name]:
			return fmt.Errorf("series[%d]: duplicate name %q: %w", i, s.Name, ErrInvalidJob)
		case s.Kind == "":
			return fmt.Errorf("series %q: kind is empty: %w", s.Name, ErrInvalidJob)
		case s.Order < 1:
			return fmt.Errorf("series %q: order = %d must be positive: %w", s.Name, s.Order, ErrInvalidJob)
		case s.Kind == CoeffsKind && len(s.Coeffs) == 0:
			return fmt.Errorf("series %q: kind %q needs coeffs: %w", s.Name, CoeffsKind, ErrInvalidJob)
		case s.Kind != CoeffsKind && len(s.Coeffs) > 0:
			return fmt.Errorf("series %q: coeffs are only read for kind %q: %w", s.Name, CoeffsKind, ErrInvalidJob)
		}
		names[s.Name] = true
	}
	for i, a := range j.Analyses {
		if err := a.validate(names); err != nil {
			return fmt.Errorf("analysis[%d] (%s): %w", i, a.Op, err)
		}
	}
	return nil
}

func (a *Analysis) validate(names map[string]bool) error {
	shape, ok := ops[a.Op]
	if !ok {
		return fmt.Errorf("op %q is not one of %s: %w", a.Op, strings.Join(Ops(), ", "), ErrInvalidJob)
	}
	if shape.target {
		if a.Target == "" {
			return fmt.Errorf("target is required: %w", ErrInvalidJob)
		}
		if !names[a.Target] {
			return fmt.Errorf("target %q is not a defined series: %w", a.Target, ErrInvalidJob)
		}
	}
	if len(a.Series) < shape.minSeries || (shape.maxSeries >= 0 && len(a.Series) > shape.maxSeries) {
		return fmt.Errorf("series has %d entries: %w", len(a.Series), ErrInvalidJob)
	}
	for _, name := range a.Series {
		if !names[name] {
			return fmt.Errorf("series %q is not defined: %w", name, ErrInvalidJob)
		}
	}
	usesDegree := slices.Contains([]string{"findhom", "findnonhom", "findhomcombo", "findnonhomcombo"}, a.Op)
	switch {
	case a.Degree < 0 || (usesDegree && a.Degree == 0):
		return fmt.Errorf("degree = %d must be at least 1: %w", a.Degree, ErrInvalidJob)
	case a.DegX < 0 || a.DegY < 0 || (a.Op == "findpoly" && (a.DegX == 0 || a.DegY == 0)):
		return fmt.Errorf("deg_x = %d, deg_y = %d must be at least 1: %w", a.DegX, a.DegY, ErrInvalidJob)
	case a.Topshift < 0:
		return fmt.Errorf("topshift = %d: %w", a.Topshift, ErrInvalidJob)
	case a.P != 0 && !shape.modP:
		return fmt.Errorf("p is not supported by %s: %w", a.Op, ErrInvalidJob)
	case a.P < 0 || a.P == 1:
		return fmt.Errorf("p = %d: %w", a.P, ErrInvalidJob)
	case a.MaxIndex < 0 || a.MaxModulus < 0 || a.TrialBound < 0:
		return fmt.Errorf("max_index, max_modulus and trial_bound must be non-negative: %w", ErrInvalidJob)
	case a.MaxN < 0 || a.Period < 0 || a.MaxPeriod < 0:
		return fmt.Errorf("max_n, period and max_period must be non-negative: %w", ErrInvalidJob)
	case a.Op == "sift" && (a.Modulus < 1 || a.Residue < 0 || a.Residue >= a.Modulus):
		return fmt.Errorf("sift needs 0 <= residue < modulus, got modulus = %d, residue = %d: %w",
			a.Modulus, a.Residue, ErrInvalidJob)
	case a.Op == "findprod" && (a.MaxCoeff < 1 || a.MaxExp < 0):
		return fmt.Errorf("max_coeff = %d, max_exp = %d: %w", a.MaxCoeff, a.MaxExp, ErrInvalidJob)
	}
	return nil
}
