package goUX

import (
	"github.com/MrEthical07/goUX/guard"
	"github.com/MrEthical07/goUX/strength"
)

// InputEvent is an input or blur on a named field. Target identifies the
// element that fired when several elements share the field; Presenter calls
// are addressed to it.
type InputEvent struct {
	Field  string
	Target string
	Value  string
}

// Element returns Target, or Field when the source reports no target.
func (e InputEvent) Element() string {
	if e.Target != "" {
		return e.Target
	}
	return e.Field
}

// NumberEvent is an input on a number field. Value, Min and Max are the raw
// attribute text; an empty bound means none.
type NumberEvent struct {
	Field  string
	Target string
	Value  string
	Min    string
	Max    string
}

// Element returns Target, or Field when the source reports no target.
func (e NumberEvent) Element() string {
	if e.Target != "" {
		return e.Target
	}
	return e.Field
}

// SubmitEvent is a form submission. Handlers cancel it with PreventDefault.
type SubmitEvent struct {
	FormID string
	// Control toggles the form's submit button; may be nil.
	Control guard.Control

	prevented bool
}

// PreventDefault cancels the submission.
func (e *SubmitEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *SubmitEvent) DefaultPrevented() bool { return e.prevented }

// TabEvent reports that a tab became visible.
type TabEvent struct {
	TabID string
}

// EventSource is the page the Engine binds to. Registration order is not
// significant; handlers may be called from any goroutine.
type EventSource interface {
	OnInput(field string, fn func(InputEvent))
	OnBlur(field string, fn func(InputEvent))
	OnNumberInput(field string, fn func(NumberEvent))
	OnSubmit(fn func(*SubmitEvent))
	OnTabShown(fn func(TabEvent))
}

// Presenter applies the Engine's decisions to the page. target is the
// Element of the event being answered.
type Presenter interface {
	ShowStrength(target string, res strength.Result)
	HideStrength(target string)
	MarkInvalid(target, message string)
	ClearInvalid(target string)
	SetValue(target, value string)
	ShowTab(tabID string)
}
