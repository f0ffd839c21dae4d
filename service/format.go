package service

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundHalfUp rounds to the nearest whole currency unit, halves away from zero.
func RoundHalfUp(value float64) int64 {
	return decimal.NewFromFloat(value).Round(0).IntPart()
}

// FormatCurrency renders value as rupees with Indian digit grouping,
// e.g. 1173968.89 -> "₹11,73,969".
func FormatCurrency(value float64) string {
	n := RoundHalfUp(value)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + CurrencySymbol + groupLakh(strconv.FormatInt(n, 10))
}

// groupLakh groups the last three digits, then every two digits above them.
func groupLakh(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	return strings.Join(groups, ",") + "," + tail
}

func FormatRate(percent float64) string {
	return decimal.NewFromFloat(percent).String() + "%"
}

func FormatTerm(years int) string {
	if years == 1 {
		return "1 year"
	}
	return strconv.Itoa(years) + " years"
}
