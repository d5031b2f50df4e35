package goUX

import (
	"context"
	"errors"

	"github.com/MrEthical07/goUX/guard"
	"github.com/MrEthical07/goUX/validate"
)

// Bind registers the Engine's handlers on src and restores the saved tab
// through p. ctx scopes tab state and is used by the tab handlers for the
// lifetime of the binding. With TabState.LiveSync, tabs activated in other
// windows are shown through p until ctx is done.
func (e *Engine) Bind(ctx context.Context, src EventSource, p Presenter) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if src == nil || p == nil {
		return errors.New("goux: Bind requires an event source and a presenter")
	}
	fields := e.config.Fields

	src.OnInput(fields.Search, func(ev InputEvent) {
		e.SearchInput(ev.Value)
	})

	src.OnInput(fields.Password, func(ev InputEvent) {
		if res, ok := e.Strength(ev.Value); ok {
			p.ShowStrength(ev.Element(), res)
			return
		}
		p.HideStrength(ev.Element())
	})

	src.OnBlur(fields.Email, func(ev InputEvent) {
		if e.ValidateEmail(ev.Value) {
			p.ClearInvalid(ev.Element())
			return
		}
		p.MarkInvalid(ev.Element(), validate.InvalidEmailMessage)
	})

	src.OnNumberInput(fields.Number, func(ev NumberEvent) {
		if clamped, ok := e.ClampNumber(ev.Value, ev.Min, ev.Max); ok {
			p.SetValue(ev.Element(), clamped)
		}
	})

	src.OnSubmit(func(ev *SubmitEvent) {
		if e.Submit(ev.FormID, ev.Control) == guard.Suppressed {
			ev.PreventDefault()
		}
	})

	src.OnTabShown(func(ev TabEvent) {
		// failures are logged and counted by ActivateTab
		_ = e.ActivateTab(ctx, ev.TabID)
	})

	if tabID, ok := e.RestoreTab(ctx); ok {
		p.ShowTab(tabID)
	}

	if e.config.TabState.LiveSync {
		go e.followTabs(ctx, p)
	}
	return nil
}

func (e *Engine) followTabs(ctx context.Context, p Presenter) {
	err := e.WatchTabs(ctx, p.ShowTab)
	if err == nil || errors.Is(err, ErrEngineClosed) {
		return
	}
	e.logger.WarnContext(ctx, "tab live sync stopped", "err", err)
}
