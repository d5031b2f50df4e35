package goUX

import (
	"context"

	"github.com/MrEthical07/goUX/guard"
)

// Submit applies the double-submit guard of formID. The first submit
// disables control and is Allowed; further submits within the cooldown are
// Suppressed and the caller must cancel them. control may be nil.
func (e *Engine) Submit(formID string, control guard.Control) guard.Decision {
	if e == nil {
		return guard.Suppressed
	}

	d := e.forms.Submit(formID, control)
	if d == guard.Allowed {
		e.metricInc(MetricSubmitAllowed)
		e.emit(context.Background(), Event{Type: EventSubmitAllowed, FormID: formID})
	} else {
		e.metricInc(MetricSubmitSuppressed)
		e.logger.Debug("duplicate submit suppressed", "form_id", formID)
		e.emit(context.Background(), Event{Type: EventSubmitSuppressed, FormID: formID})
	}
	return d
}

// ResetForm ends the cooldown of formID early, e.g. after a validation error
// came back. It reports whether the form was Submitting.
func (e *Engine) ResetForm(formID string) bool {
	if e == nil {
		return false
	}
	g, ok := e.forms.Lookup(formID)
	if !ok || !g.Reset() {
		return false
	}
	e.metricInc(MetricSubmitReset)
	e.emit(context.Background(), Event{Type: EventSubmitReset, FormID: formID})
	return true
}

// FormState returns the guard state of formID; unknown forms are Idle.
func (e *Engine) FormState(formID string) guard.State {
	if e == nil {
		return guard.Idle
	}
	g, ok := e.forms.Lookup(formID)
	if !ok {
		return guard.Idle
	}
	return g.State()
}
