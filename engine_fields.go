package goUX

import (
	"context"
	"strconv"
	"strings"

	"github.com/MrEthical07/goUX/strength"
	"github.com/MrEthical07/goUX/validate"
)

// Strength classifies password for the strength indicator. ok is false for
// an empty password, where the indicator is hidden.
func (e *Engine) Strength(password string) (res strength.Result, ok bool) {
	if password == "" {
		return strength.Result{}, false
	}

	res = strength.Classify(password)
	switch res.Tier {
	case strength.Weak:
		e.metricInc(MetricStrengthWeak)
	case strength.Medium:
		e.metricInc(MetricStrengthMedium)
	case strength.Strong:
		e.metricInc(MetricStrengthStrong)
	}
	return res, true
}

// ValidateEmail reports whether an email input may be left unmarked. Empty
// input is accepted.
func (e *Engine) ValidateEmail(value string) bool {
	if validate.EmailHint(value) == "" {
		return true
	}
	e.metricInc(MetricEmailInvalid)
	if e != nil {
		e.emit(context.Background(), Event{Type: EventEmailInvalid, Field: e.config.Fields.Email})
	}
	return false
}

// ClampNumber bounds a number input's value by its min and max attributes.
// ok is true when the input must be set to clamped. Non-numeric values and
// bounds leave the input alone.
func (e *Engine) ClampNumber(value, min, max string) (clamped string, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return value, false
	}
	out := validate.Clamp(v, validate.ParseBound(min), validate.ParseBound(max))
	if out == v {
		return value, false
	}
	return strconv.FormatFloat(out, 'f', -1, 64), true
}
