// Package validate holds the client-side form checks applied on blur and input.
//
// The checks are hints only. A value accepted here must still be validated by
// whatever consumes the form.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// InvalidEmailMessage is shown next to an email input holding a malformed
// address.
const InvalidEmailMessage = "Please enter a valid email address"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether value looks like an address: a local part, "@", and a
// domain containing a dot, none of them holding whitespace or another "@".
func Email(value string) bool {
	return emailPattern.MatchString(value)
}

// EmailHint returns the feedback message for an email input, or "" when the
// input is empty or well formed. Empty inputs are left to the required
// attribute.
func EmailHint(value string) string {
	if value == "" || Email(value) {
		return ""
	}
	return InvalidEmailMessage
}

// Clamp bounds value by the optional min and max attributes of a number
// input. A nil bound, a NaN bound or a NaN value leaves value untouched.
func Clamp(value float64, min, max *float64) float64 {
	if math.IsNaN(value) {
		return value
	}
	if min != nil && !math.IsNaN(*min) && value < *min {
		value = *min
	}
	if max != nil && !math.IsNaN(*max) && value > *max {
		value = *max
	}
	return value
}

// ParseBound reads a min or max attribute. Empty or non-numeric text means no
// bound.
func ParseBound(attr string) *float64 {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return nil
	}
	v, err := strconv.ParseFloat(attr, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Bound is a convenience for building Clamp arguments from literals.
func Bound(v float64) *float64 {
	return &v
}
