// Copyright (c) 2023 Colin McRae

package prodmake

import (
	"fmt"

	"github.com/predrag3141/qseries/bignumber"
	"github.com/predrag3141/qseries/series"
	"github.com/predrag3141/qseries/util"
)

// EtaQuotient represents
//
//	f(q) = Scalar * q^(LeadingExponent - QShift) * prod(eta(d tau)^Factors[d])
//
// where eta(d tau) = q^(d/24) (q^d;q^d)_inf and QShift = sum(Factors[d] d/24)
// is the q-power carried by the eta functions. When Exact is false the
// factors with non-integral exponents are listed in NonIntegral and left out
// of Factors.
type EtaQuotient struct {
	Factors         map[int]int
	QShift          *bignumber.BigNumber
	Scalar          *bignumber.BigNumber
	LeadingExponent int
	TermsUsed       int
	Exact           bool
	NonIntegral     []int
}

// QEtaForm represents
//
//	f(q) = Scalar * q^QShift * prod((q^d;q^d)_inf^Factors[d])
//
// which is the eta quotient without the q^(d/24) bookkeeping.
type QEtaForm struct {
	Factors     map[int]int
	QShift      int
	Scalar      *bignumber.BigNumber
	TermsUsed   int
	Exact       bool
	NonIntegral []int
}

// etaExponents returns r_d = sum(mu(d/k) (-a_k), k | d) for d = 1..TermsUsed,
// the exponents of (q^d;q^d)_inf, omitting zeros.
func (ipf *InfiniteProductForm) etaExponents() map[int]*bignumber.BigNumber {
	retVal := map[int]*bignumber.BigNumber{}
	for d := 1; d <= ipf.TermsUsed; d++ {
		rd := bignumber.NewFromInt64(0)
		for _, k := range util.Divisors(d) {
			ak, ok := ipf.Exponents[k]
			if !ok {
				continue
			}
			mu := util.Mobius(d / k)
			if mu == 0 {
				continue
			}
			rd.Int64MulAdd(int64(-mu), ak)
		}
		if !rd.IsZero() {
			retVal[d] = rd
		}
	}
	return retVal
}

// splitIntegral separates integral values from non-integral ones
func splitIntegral(values map[int]*bignumber.BigNumber) (map[int]int, []int) {
	integral := make(map[int]int, len(values))
	var nonIntegral []int
	for _, d := range sortedKeys(values) {
		value, err := values[d].AsInt64()
		if err != nil {
			nonIntegral = append(nonIntegral, d)
			continue
		}
		integral[d] = int(value)
	}
	return integral, nonIntegral
}

// EtaQuotient converts ipf to an eta quotient by Möbius inversion of
// e_n = sum(r_d, d | n), where e_n = -a_n is the exponent of (1 - q^n).
func (ipf *InfiniteProductForm) EtaQuotient() *EtaQuotient {
	factors, nonIntegral := splitIntegral(ipf.etaExponents())
	qShift := bignumber.NewFromInt64(0)
	for d, rd := range factors {
		qShift.Add(qShift, bignumber.NewFromInt64(int64(rd*d)))
	}
	qShift, _ = qShift.Int64Quo(qShift, 24)
	return &EtaQuotient{
		Factors:         factors,
		QShift:          qShift,
		Scalar:          bignumber.NewFromBigNumber(ipf.Scalar),
		LeadingExponent: ipf.LeadingExponent,
		TermsUsed:       ipf.TermsUsed,
		Exact:           len(nonIntegral) == 0,
		NonIntegral:     nonIntegral,
	}
}

// QEta converts ipf to a product of (q^d;q^d)_inf, with the same exponents as
// EtaQuotient.
func (ipf *InfiniteProductForm) QEta() *QEtaForm {
	factors, nonIntegral := splitIntegral(ipf.etaExponents())
	return &QEtaForm{
		Factors:     factors,
		QShift:      ipf.LeadingExponent,
		Scalar:      bignumber.NewFromBigNumber(ipf.Scalar),
		TermsUsed:   ipf.TermsUsed,
		Exact:       len(nonIntegral) == 0,
		NonIntegral: nonIntegral,
	}
}

// Etamake writes f as an eta quotient using prodmake exponents through maxN
func Etamake(f *series.Series, maxN int) (*EtaQuotient, error) {
	ipf, err := Prodmake(f, maxN)
	if err != nil {
		return nil, fmt.Errorf("Etamake: %w", err)
	}
	return ipf.EtaQuotient(), nil
}

// Qetamake writes f as a product of (q^d;q^d)_inf using prodmake exponents
// through maxN
func Qetamake(f *series.Series, maxN int) (*QEtaForm, error) {
	ipf, err := Prodmake(f, maxN)
	if err != nil {
		return nil, fmt.Errorf("Qetamake: %w", err)
	}
	return ipf.QEta(), nil
}

// Prefactor returns LeadingExponent - QShift, the power of q multiplying the
// eta functions.
func (eq *EtaQuotient) Prefactor() *bignumber.BigNumber {
	retVal := bignumber.NewFromInt64(int64(eq.LeadingExponent))
	return retVal.Sub(retVal, eq.QShift)
}

func (eq *EtaQuotient) String() string {
	parts := prefixParts(eq.Scalar, 0)
	if prefactor := eq.Prefactor(); !prefactor.IsZero() {
		parts = append(parts, fmt.Sprintf("q^(%s)", prefactor.String()))
	}
	for _, d := range sortedKeys(eq.Factors) {
		parts = append(parts, fmt.Sprintf("eta(%dtau)^%d", d, eq.Factors[d]))
	}
	return joinParts(parts)
}

func (qe *QEtaForm) String() string {
	parts := prefixParts(qe.Scalar, qe.QShift)
	for _, d := range sortedKeys(qe.Factors) {
		parts = append(parts, fmt.Sprintf("(q^%d;q^%d)^%d", d, d, qe.Factors[d]))
	}
	return joinParts(parts)
}
