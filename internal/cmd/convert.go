// Copyright (c) 2023 Colin McRae

package cmd

import (
	"fmt"
	"strings"

	"github.com/predrag3141/qseries/internal/config"
	"github.com/predrag3141/qseries/internal/style"
	"github.com/predrag3141/qseries/products"
	"github.com/predrag3141/qseries/series"
	"github.com/spf13/cobra"
)

// seriesFlags select one series from the catalog
type seriesFlags struct {
	kind  string
	args  []int
	order int
}

func (sf *seriesFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&sf.kind, "series", "s", "", "Series kind (see 'qsearch series')")
	c.Flags().IntSliceVarP(&sf.args, "args", "a", nil, "Integer arguments of the series kind")
	c.Flags().IntVarP(&sf.order, "order", "o", config.DefaultOrder, "Truncation order")
	_ = c.MarkFlagRequired("series")
}

func (sf *seriesFlags) workspace(opts *rootOptions) (*workspace, error) {
	s, err := products.Build(sf.kind, sf.args, sf.order)
	if err != nil {
		return nil, err
	}
	return &workspace{series: map[string]*series.Series{sf.name(): s}, logger: opts.logger}, nil
}

func (sf *seriesFlags) name() string {
	if len(sf.args) == 0 {
		return sf.kind
	}
	args := make([]string, len(sf.args))
	for i, a := range sf.args {
		args[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("%s(%s)", sf.kind, strings.Join(args, ","))
}

var conversions = []struct {
	op    string
	short string
}{
	{"prodmake", "Write a series as prod((1-q^n)^-a_n)"},
	{"etamake", "Write a series as an eta quotient"},
	{"qetamake", "Write a series as a quotient of (q^d;q^d)_inf"},
	{"jacprodmake", "Write a series as a product of Jacobi triple products"},
	{"mprodmake", "Write a series as prod((1+q^n)^m_n)"},
	{"qfactor", "Factor a polynomial into (1-q^i) factors"},
	{"qdegree", "Report the lowest and highest non-zero exponents"},
}

func newConvertCmds(opts *rootOptions) []*cobra.Command {
	var retVal []*cobra.Command
	for _, conversion := range conversions {
		var sf seriesFlags
		var maxN, period, maxPeriod int
		op := conversion.op
		c := &cobra.Command{
			Use:   op,
			Short: conversion.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ws, err := sf.workspace(opts)
				if err != nil {
					return err
				}
				_, err = runAnalysis(cmd.OutOrStdout(), ws, &config.Analysis{
					Op:        op,
					Target:    sf.name(),
					MaxN:      maxN,
					Period:    period,
					MaxPeriod: maxPeriod,
				})
				return err
			},
		}
		sf.register(c)
		switch op {
		case "qfactor", "qdegree":
		default:
			c.Flags().IntVarP(&maxN, "max", "n", 0, "Largest n used from the product exponents (default order-1)")
		}
		if op == "jacprodmake" {
			c.Flags().IntVar(&period, "period", 0, "Only try divisors of this period")
			c.Flags().IntVar(&maxPeriod, "max-period", 0, "Largest period tried (default half the exponents used)")
		}
		retVal = append(retVal, c)
	}
	return retVal
}

func newFindCongCmd(opts *rootOptions) *cobra.Command {
	var sf seriesFlags
	var maxIndex, maxModulus int
	var moduli []int
	var exclude []int64
	var trialBound int64
	c := &cobra.Command{
		Use:   "findcong",
		Short: "Find congruences a(Mn+r) = 0 (mod p^k) among the coefficients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := sf.workspace(opts)
			if err != nil {
				return err
			}
			_, err = runAnalysis(cmd.OutOrStdout(), ws, &config.Analysis{
				Op:            "findcong",
				Target:        sf.name(),
				MaxIndex:      maxIndex,
				MaxModulus:    maxModulus,
				Moduli:        moduli,
				ExcludePrimes: exclude,
				TrialBound:    trialBound,
			})
			return err
		},
	}
	sf.register(c)
	c.Flags().IntVar(&maxIndex, "max-index", 0, "Largest exponent examined (default order-1)")
	c.Flags().IntVar(&maxModulus, "max-modulus", 0, "Largest modulus tried without --moduli (default sqrt(max-index))")
	c.Flags().IntSliceVar(&moduli, "moduli", nil, "Moduli to try (default 2..max-modulus)")
	c.Flags().Int64SliceVar(&exclude, "exclude", nil, "Primes never reported")
	c.Flags().Int64Var(&trialBound, "trial-bound", 0, "Trial division bound for common divisors (default 10000)")
	return c
}

func newSeriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "series",
		Short: "List the series kinds and their arguments",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, usage := range products.Usage() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", style.ArrowPrefix, usage)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", style.ArrowPrefix,
				style.Dim.Render(config.CoeffsKind+`: job files only, coeffs = ["1", "-1/2", ...]`))
		},
	}
}
