// Copyright (c) 2023 Colin McRae

package prodmake

import (
	"fmt"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/series"
)

// MProductForm represents
//
//	f(q) = Scalar * q^LeadingExponent * prod((1 + q^n)^Factors[n], n = 1..TermsUsed)
//
// Factors with non-integral exponents are listed in NonIntegral instead.
type MProductForm struct {
	Factors         map[int]int
	Scalar          *bignumber.BigNumber
	LeadingExponent int
	TermsUsed       int
	Exact           bool
	NonIntegral     []int
}

// MProduct converts ipf to a product of (1 + q^n). Since
// (1 + q^n) = (1 - q^(2n))/(1 - q^n), the exponents satisfy
// m_n = a_n + m_(n/2) for even n and m_n = a_n for odd n.
func (ipf *InfiniteProductForm) MProduct() *MProductForm {
	m := make([]*bignumber.BigNumber, ipf.TermsUsed+1)
	values := map[int]*bignumber.BigNumber{}
	for n := 1; n <= ipf.TermsUsed; n++ {
		m[n] = ipf.Exponent(n)
		if n%2 == 0 {
			m[n].Add(m[n], m[n/2])
		}
		if !m[n].IsZero() {
			values[n] = m[n]
		}
	}
	factors, nonIntegral := splitIntegral(values)
	return &MProductForm{
		Factors:         factors,
		Scalar:          bignumber.NewFromBigNumber(ipf.Scalar),
		LeadingExponent: ipf.LeadingExponent,
		TermsUsed:       ipf.TermsUsed,
		Exact:           len(nonIntegral) == 0,
		NonIntegral:     nonIntegral,
	}
}

// Mprodmake writes f as a product of (1 + q^n) using prodmake exponents
// through maxN
func Mprodmake(f *series.Series, maxN int) (*MProductForm, error) {
	ipf, err := Prodmake(f, maxN)
	if err != nil {
		return nil, fmt.Errorf("Mprodmake: %w", err)
	}
	return ipf.MProduct(), nil
}

func (mpf *MProductForm) String() string {
	parts := prefixParts(mpf.Scalar, mpf.LeadingExponent)
	for _, n := range sortedKeys(mpf.Factors) {
		if n == 1 {
			parts = append(parts, fmt.Sprintf("(1+q)^%d", mpf.Factors[n]))
			continue
		}
		parts = append(parts, fmt.Sprintf("(1+q^%d)^%d", n, mpf.Factors[n]))
	}
	return joinParts(parts)
}
