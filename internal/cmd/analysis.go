// Copyright (c) 2023 Colin McRae

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/predrag3141/qseries/internal/config"
	"github.com/predrag3141/qseries/internal/style"
	"github.com/predrag3141/qseries/prodmake"
	"github.com/predrag3141/qseries/qseries"
	"github.com/predrag3141/qseries/relations"
	"github.com/predrag3141/qseries/series"
)

// outcome classifies a finished analysis for the summary and --strict
type outcome int

const (
	outcomeFound outcome = iota
	outcomeInexact
	outcomeNotFound
)

// workspace holds the named series an analysis may refer to
type workspace struct {
	series map[string]*series.Series
	logger *slog.Logger
}

func (ws *workspace) lookup(names ...string) ([]*series.Series, error) {
	retVal := make([]*series.Series, len(names))
	for i, name := range names {
		s, ok := ws.series[name]
		if !ok {
			return nil, fmt.Errorf("series %q is not defined", name)
		}
		retVal[i] = s
	}
	return retVal, nil
}

// runAnalysis runs a and writes its result to w
func runAnalysis(w io.Writer, ws *workspace, a *config.Analysis) (outcome, error) {
	heading := a.Op
	if a.Target != "" {
		heading += " " + a.Target
	}
	if len(a.Series) > 0 {
		heading += " [" + strings.Join(a.Series, ", ") + "]"
	}
	if a.P != 0 {
		heading += fmt.Sprintf(" mod %d", a.P)
	}
	style.Heading(w, "%s", heading)

	start := time.Now()
	result, err := dispatch(w, ws, a)
	ws.logger.Debug("analysis finished",
		slog.String("op", a.Op),
		slog.String("target", a.Target),
		slog.Int("candidates", len(a.Series)),
		slog.Int("topshift", a.Topshift),
		slog.Duration("elapsed", time.Since(start)),
	)
	if err != nil {
		style.Failed(w, err)
		return result, err
	}
	return result, nil
}

func dispatch(w io.Writer, ws *workspace, a *config.Analysis) (outcome, error) {
	var target *series.Series
	if a.Target != "" {
		found, err := ws.lookup(a.Target)
		if err != nil {
			return outcomeNotFound, err
		}
		target = found[0]
	}
	candidates, err := ws.lookup(a.Series...)
	if err != nil {
		return outcomeNotFound, err
	}

	switch a.Op {
	case "prodmake", "etamake", "jacprodmake", "mprodmake", "qetamake":
		return convert(w, a, target)
	case "qfactor":
		qf, err := qseries.QFactor(target)
		if err != nil {
			return outcomeNotFound, err
		}
		if !qf.Exact {
			style.Inexact(w, "%s, remainder %s", qf, qf.Remainder)
			return outcomeInexact, nil
		}
		style.Found(w, "%s", qf)
		return outcomeFound, nil
	case "qdegree":
		low, ok := qseries.LQDegree(target)
		if !ok {
			style.NotFound(w, "series is zero below q^%d", target.TruncationOrder())
			return outcomeNotFound, nil
		}
		high, _ := qseries.QDegree(target)
		style.Found(w, "lqdegree %d, qdegree %d", low, high)
		return outcomeFound, nil
	case "sift":
		sifted, err := qseries.Sift(target, a.Modulus, a.Residue)
		if err != nil {
			return outcomeNotFound, err
		}
		style.Found(w, "%s", sifted)
		return outcomeFound, nil
	case "findcong":
		return findCong(w, a, target)
	default:
		return search(w, a, target, candidates)
	}
}

// defaultMaxN uses every known coefficient of f
func defaultMaxN(a *config.Analysis, f *series.Series) int {
	if a.MaxN > 0 {
		return a.MaxN
	}
	return max(f.TruncationOrder()-1, 1)
}

func convert(w io.Writer, a *config.Analysis, f *series.Series) (outcome, error) {
	maxN := defaultMaxN(a, f)
	switch a.Op {
	case "prodmake":
		form, err := prodmake.Prodmake(f, maxN)
		if err != nil {
			return outcomeNotFound, err
		}
		if !form.IsIntegral() {
			style.Inexact(w, "%s (non-integral exponents at n = %v)", form, form.NonIntegral())
			return outcomeInexact, nil
		}
		style.Found(w, "%s  (n <= %d)", form, form.TermsUsed)
		return outcomeFound, nil
	case "etamake":
		eq, err := prodmake.Etamake(f, maxN)
		if err != nil {
			return outcomeNotFound, err
		}
		return report(w, eq.Exact, eq.String(), "not an eta quotient through n = %d", eq.TermsUsed)
	case "qetamake":
		qe, err := prodmake.Qetamake(f, maxN)
		if err != nil {
			return outcomeNotFound, err
		}
		return report(w, qe.Exact, qe.String(), "not a q-eta quotient through n = %d", qe.TermsUsed)
	case "mprodmake":
		mpf, err := prodmake.Mprodmake(f, maxN)
		if err != nil {
			return outcomeNotFound, err
		}
		return report(w, mpf.Exact, mpf.String(), "not a (1+q^n) product through n = %d", mpf.TermsUsed)
	default:
		jpf, err := prodmake.Jacprodmake(f, maxN, prodmake.PeriodSearch{Period: a.Period, MaxPeriod: a.MaxPeriod})
		if err != nil {
			return outcomeNotFound, err
		}
		if jpf.Period == 0 {
			style.NotFound(w, "no period fits the product exponents")
			return outcomeNotFound, nil
		}
		return report(w, jpf.Exact, jpf.String(), "period %d explains %d exponents", jpf.Period, jpf.Explained)
	}
}

// report writes form as found when exact, and otherwise as inexact followed
// by the reason
func report(w io.Writer, exact bool, form, reason string, args ...any) (outcome, error) {
	if exact {
		style.Found(w, "%s", form)
		return outcomeFound, nil
	}
	style.Inexact(w, "%s (%s)", form, fmt.Sprintf(reason, args...))
	return outcomeInexact, nil
}

func findCong(w io.Writer, a *config.Analysis, f *series.Series) (outcome, error) {
	maxIndex := a.MaxIndex
	if maxIndex == 0 {
		maxIndex = f.TruncationOrder() - 1
	}
	congruences, err := relations.FindCong(f, maxIndex, relations.CongruenceOptions{
		MaxModulus:    a.MaxModulus,
		Moduli:        a.Moduli,
		ExcludePrimes: a.ExcludePrimes,
		TrialBound:    a.TrialBound,
	})
	if err != nil {
		return outcomeNotFound, err
	}
	if len(congruences) == 0 {
		style.NotFound(w, "no congruences through q^%d", maxIndex)
		return outcomeNotFound, nil
	}
	retVal := outcomeFound
	for _, c := range congruences {
		if c.Factored() {
			style.Found(w, "%s", c)
			continue
		}
		style.Inexact(w, "%s", c)
		retVal = outcomeInexact
	}
	return retVal, nil
}

func search(w io.Writer, a *config.Analysis, f *series.Series, s []*series.Series) (outcome, error) {
	modulus := ""
	if a.P != 0 {
		modulus = fmt.Sprintf(" (mod %d)", a.P)
	}
	switch a.Op {
	case "findlincombo":
		if a.P != 0 {
			coefficients, found, err := relations.FindLinComboModP(f, s, a.P, a.Topshift)
			return combination(w, a, coefficients, found, err, modulus)
		}
		coefficients, found, err := relations.FindLinCombo(f, s, a.Topshift)
		return combination(w, a, coefficients, found, err, modulus)
	case "findhom", "findnonhom":
		homogeneous := a.Op == "findhom"
		if a.P != 0 {
			var found []*relations.Relation[int64]
			var err error
			if homogeneous {
				found, err = relations.FindHomModP(s, a.P, a.Degree, a.Topshift)
			} else {
				found, err = relations.FindNonHomModP(s, a.P, a.Degree, a.Topshift)
			}
			return relationList(w, a.Series, found, err, modulus)
		}
		if homogeneous {
			found, err := relations.FindHom(s, a.Degree, a.Topshift)
			return relationList(w, a.Series, found, err, modulus)
		}
		found, err := relations.FindNonHom(s, a.Degree, a.Topshift)
		return relationList(w, a.Series, found, err, modulus)
	case "findhomcombo", "findnonhomcombo":
		homogeneous := a.Op == "findhomcombo"
		if a.P != 0 {
			if homogeneous {
				r, found, err := relations.FindHomComboModP(f, s, a.P, a.Degree, a.Topshift)
				return monomialCombination(w, a, r, found, err, modulus)
			}
			r, found, err := relations.FindNonHomComboModP(f, s, a.P, a.Degree, a.Topshift)
			return monomialCombination(w, a, r, found, err, modulus)
		}
		if homogeneous {
			r, found, err := relations.FindHomCombo(f, s, a.Degree, a.Topshift)
			return monomialCombination(w, a, r, found, err, modulus)
		}
		r, found, err := relations.FindNonHomCombo(f, s, a.Degree, a.Topshift)
		return monomialCombination(w, a, r, found, err, modulus)
	case "findpoly":
		pr, found, err := relations.FindPoly(s[0], s[1], a.DegX, a.DegY, a.Topshift)
		if err != nil {
			return outcomeNotFound, err
		}
		if !found {
			style.NotFound(w, "no polynomial of degree (%d, %d)", a.DegX, a.DegY)
			return outcomeNotFound, nil
		}
		style.Found(w, "%s", pr.Format(a.Series))
		return outcomeFound, nil
	case "findmaxind":
		indices, err := relations.FindMaxInd(s, a.Topshift)
		if err != nil {
			return outcomeNotFound, err
		}
		names := make([]string, len(indices))
		for i, index := range indices {
			names[i] = a.Series[index]
		}
		style.Found(w, "independent: %s", strings.Join(names, ", "))
		return outcomeFound, nil
	case "findprod":
		found, err := relations.FindProd(s, a.MaxCoeff, a.MaxExp)
		if err != nil {
			return outcomeNotFound, err
		}
		if len(found) == 0 {
			style.NotFound(w, "no product relation with exponents up to %d", a.MaxCoeff)
			return outcomeNotFound, nil
		}
		for _, pr := range found {
			style.Found(w, "%s", productString(a.Series, pr.Exponents))
		}
		return outcomeFound, nil
	}
	return outcomeNotFound, fmt.Errorf("unknown op %q", a.Op)
}

func combination[E any](
	w io.Writer, a *config.Analysis, coefficients []E, found bool, err error, modulus string,
) (outcome, error) {
	if err != nil {
		return outcomeNotFound, err
	}
	if !found {
		style.NotFound(w, "%s is not a unique combination", a.Target)
		return outcomeNotFound, nil
	}
	terms := make([]string, len(coefficients))
	for i, c := range coefficients {
		terms[i] = fmt.Sprintf("(%v)*%s", c, a.Series[i])
	}
	style.Found(w, "%s = %s%s", a.Target, strings.Join(terms, " + "), modulus)
	return outcomeFound, nil
}

func monomialCombination[E any](
	w io.Writer, a *config.Analysis, r *relations.Relation[E], found bool, err error, modulus string,
) (outcome, error) {
	if err != nil {
		return outcomeNotFound, err
	}
	if !found {
		style.NotFound(w, "%s is not a unique combination of degree %d", a.Target, a.Degree)
		return outcomeNotFound, nil
	}
	style.Found(w, "%s = %s%s", a.Target, r.Terms(a.Series), modulus)
	return outcomeFound, nil
}

func relationList[E any](
	w io.Writer, names []string, found []*relations.Relation[E], err error, modulus string,
) (outcome, error) {
	if err != nil {
		return outcomeNotFound, err
	}
	if len(found) == 0 {
		style.NotFound(w, "no relation")
		return outcomeNotFound, nil
	}
	for _, r := range found {
		style.Found(w, "%s%s", r.Format(names), modulus)
	}
	return outcomeFound, nil
}

func productString(names []string, exponents []int) string {
	var factors []string
	for i, e := range exponents {
		if e != 0 {
			factors = append(factors, fmt.Sprintf("%s^%d", names[i], e))
		}
	}
	return strings.Join(factors, " * ") + " = 1"
}
