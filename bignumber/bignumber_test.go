// Copyright (c) 2023 Colin McRae

package bignumber

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) *BigNumber {
	retVal, err := NewFromDecimalString(input)
	require.NoErrorf(t, err, "unexpected error from NewFromDecimalString(%q)", input)
	return retVal
}

// testBinary checks operation on inputs given as strings, with the receiver
// distinct from both inputs and aliased to each of them in turn.
func testBinary(t *testing.T, inputAStr, inputBStr, expectedStr, operation string) {
	expected := mustParse(t, expectedStr)
	for aliasing := 0; aliasing < 3; aliasing++ {
		a := mustParse(t, inputAStr)
		b := mustParse(t, inputBStr)
		receiver := NewFromInt64(0)
		switch aliasing {
		case 1:
			receiver = a
		case 2:
			receiver = b
		}
		var actual *BigNumber
		var err error
		switch operation {
		case "Add":
			actual = receiver.Add(a, b)
		case "Sub":
			actual = receiver.Sub(a, b)
		case "Mul":
			actual = receiver.Mul(a, b)
		case "Quo":
			actual, err = receiver.Quo(a, b)
			assert.NoError(t, err)
		default:
			t.Fatalf("unknown operation %s", operation)
		}
		assert.Truef(
			t, actual.Equals(expected), "%s %s %s: expected %s, got %s (aliasing %d)",
			inputAStr, operation, inputBStr, expectedStr, actual.String(), aliasing,
		)
		assert.Same(t, receiver, actual)
	}
}

func TestNewFromDecimalString(t *testing.T) {
	x := mustParse(t, "-12")
	assert.True(t, x.IsInt())
	assert.Equal(t, "-12", x.String())

	x = mustParse(t, "6/8")
	assert.False(t, x.IsInt())
	assert.Equal(t, "3/4", x.String())

	x = mustParse(t, "1.25")
	assert.Equal(t, "5/4", x.String())

	for _, bad := range []string{"", "  ", "1/0", "abc", "1-2"} {
		_, err := NewFromDecimalString(bad)
		assert.ErrorIsf(t, err, ErrParse, "input %q", bad)
	}
}

func TestNewFraction(t *testing.T) {
	x, err := NewFraction(10, -4)
	assert.NoError(t, err)
	assert.Equal(t, "-5/2", x.String())
	assert.Equal(t, int64(2), x.Denominator().Int64())
	assert.Equal(t, int64(-5), x.Numerator().Int64())

	_, err = NewFraction(1, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestBigNumber_NewFromInt(t *testing.T) {
	input := big.NewInt(12345)
	x := NewFromInt(input)
	input.SetInt64(0)
	assert.Equal(t, "12345", x.String())
}

func TestBigNumber_NewFromBigNumber(t *testing.T) {
	x := mustParse(t, "7/3")
	y := NewFromBigNumber(x)
	x.SetInt64(0)
	assert.Equal(t, "7/3", y.String())
}

func TestBigNumber_Add(t *testing.T) {
	testBinary(t, "1/2", "1/3", "5/6", "Add")
	testBinary(t, "-7", "7", "0", "Add")
	testBinary(t, "123456789012345678901234567890", "1", "123456789012345678901234567891", "Add")
}

func TestBigNumber_Sub(t *testing.T) {
	testBinary(t, "1/2", "1/3", "1/6", "Sub")
	testBinary(t, "3", "5/2", "1/2", "Sub")
}

func TestBigNumber_Mul(t *testing.T) {
	testBinary(t, "2/3", "9/4", "3/2", "Mul")
	testBinary(t, "-5", "0", "0", "Mul")
}

func TestBigNumber_Quo(t *testing.T) {
	testBinary(t, "2/3", "4/9", "3/2", "Quo")
	testBinary(t, "-1", "3", "-1/3", "Quo")

	x := mustParse(t, "5")
	actual, err := x.Quo(x, NewFromInt64(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.Nil(t, actual)
	assert.Equal(t, "5", x.String())

	actual, err = NewFromInt64(0).Int64Quo(x, 10)
	assert.NoError(t, err)
	assert.Equal(t, "1/2", actual.String())
	_, err = NewFromInt64(0).Int64Quo(x, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestBigNumber_MulAdd(t *testing.T) {
	acc := mustParse(t, "1")
	acc.MulAdd(mustParse(t, "1/2"), mustParse(t, "2/3"))
	assert.Equal(t, "4/3", acc.String())
	acc.Int64MulAdd(-3, mustParse(t, "1/9"))
	assert.Equal(t, "1", acc.String())
	assert.True(t, acc.IsOne())
	acc.Int64Mul(4, mustParse(t, "-1/8"))
	assert.Equal(t, "-1/2", acc.String())
}

func TestBigNumber_Pow(t *testing.T) {
	x := mustParse(t, "-2/3")
	actual, err := NewFromInt64(0).Pow(x, 3)
	assert.NoError(t, err)
	assert.Equal(t, "-8/27", actual.String())

	actual, err = NewFromInt64(0).Pow(x, -2)
	assert.NoError(t, err)
	assert.Equal(t, "9/4", actual.String())

	actual, err = NewFromInt64(0).Pow(x, 0)
	assert.NoError(t, err)
	assert.True(t, actual.IsOne())

	_, err = NewFromInt64(0).Pow(NewFromInt64(0), -1)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestBigNumber_AsInt64(t *testing.T) {
	actual, err := mustParse(t, "-42").AsInt64()
	assert.NoError(t, err)
	assert.Equal(t, int64(-42), actual)

	_, err = mustParse(t, "1/2").AsInt64()
	assert.ErrorIs(t, err, ErrNotInt64)

	_, err = mustParse(t, "123456789012345678901234567890").AsInt64()
	assert.ErrorIs(t, err, ErrNotInt64)
}

func TestBigNumber_ModP(t *testing.T) {
	actual, err := mustParse(t, "-1").ModP(7)
	assert.NoError(t, err)
	assert.Equal(t, int64(6), actual)

	// 1/2 = 4 mod 7
	actual, err = mustParse(t, "1/2").ModP(7)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), actual)

	// -5/3 = -5 * 5 = -25 = 3 mod 7
	actual, err = mustParse(t, "-5/3").ModP(7)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), actual)

	_, err = mustParse(t, "1/14").ModP(7)
	assert.ErrorIs(t, err, ErrNotInvertible)

	_, err = mustParse(t, "1").ModP(1)
	assert.Error(t, err)
}

func TestBigNumber_Queries(t *testing.T) {
	var zero BigNumber
	assert.True(t, zero.IsZero())
	assert.Equal(t, 0, zero.Sign())
	assert.Equal(t, "0", zero.String())

	x := mustParse(t, "-3/5")
	assert.True(t, x.IsNegative())
	assert.Equal(t, -1, x.Sign())
	assert.False(t, x.IsOne())
	assert.Equal(t, "3/5", NewFromInt64(0).Abs(x).String())
	assert.Equal(t, "3/5", NewFromInt64(0).Neg(x).String())
	assert.Equal(t, -1, x.Cmp(NewFromInt64(0)))
	assert.Equal(t, 0, x.Cmp(mustParse(t, "-6/10")))
	assert.Equal(t, 0, x.AsRat().Cmp(big.NewRat(-3, 5)))
}

func TestBigNumber_Set(t *testing.T) {
	x := mustParse(t, "11/13")
	y := NewFromInt64(0).Set(x)
	x.Add(x, x)
	assert.Equal(t, "11/13", y.String())
	assert.Equal(t, "22/13", x.String())
}
