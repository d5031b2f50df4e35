//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/MrEthical07/goUX/render"
	"github.com/MrEthical07/goUX/strength"
)

// Presenter is a goUX.Presenter writing into the page's DOM.
type Presenter struct {
	doc js.Value
}

// NewPresenter returns a Presenter over window.document.
func NewPresenter() *Presenter {
	return &Presenter{doc: js.Global().Get("document")}
}

// ShowStrength replaces the strength line after the target element.
func (p *Presenter) ShowStrength(target string, res strength.Result) {
	input := p.element(target)
	if !input.Truthy() {
		return
	}
	removeSibling(input, "password-strength")
	input.Call("insertAdjacentHTML", "afterend", string(render.StrengthIndicator(res)))
}

// HideStrength removes the strength line after the target element.
func (p *Presenter) HideStrength(target string) {
	if input := p.element(target); input.Truthy() {
		removeSibling(input, "password-strength")
	}
}

// MarkInvalid flags the target element and shows message after it.
func (p *Presenter) MarkInvalid(target, message string) {
	input := p.element(target)
	if !input.Truthy() {
		return
	}
	input.Get("classList").Call("add", "is-invalid")
	removeSibling(input, "invalid-feedback")
	input.Call("insertAdjacentHTML", "afterend", string(render.InvalidFeedback(message)))
}

// ClearInvalid removes the invalid flag and message from the target element.
func (p *Presenter) ClearInvalid(target string) {
	input := p.element(target)
	if !input.Truthy() {
		return
	}
	input.Get("classList").Call("remove", "is-invalid")
	removeSibling(input, "invalid-feedback")
}

// ShowTab activates the tab whose trigger targets tabID. Unknown ids are
// ignored.
func (p *Presenter) ShowTab(tabID string) {
	selector := `[data-bs-target="` + cssEscape(tabID) + `"]`
	trigger := p.doc.Call("querySelector", selector)
	if !trigger.Truthy() {
		trigger = p.doc.Call("querySelector", `[href="`+cssEscape(tabID)+`"][data-bs-toggle="tab"]`)
	}
	if !trigger.Truthy() {
		return
	}

	bootstrap := js.Global().Get("bootstrap")
	if bootstrap.Truthy() && bootstrap.Get("Tab").Truthy() {
		bootstrap.Get("Tab").Call("getOrCreateInstance", trigger).Call("show")
		return
	}
	trigger.Call("click")
}

// SetValue replaces the value of the target element.
func (p *Presenter) SetValue(target, value string) {
	if input := p.element(target); input.Truthy() {
		input.Set("value", value)
	}
}

// element resolves a key reported by Document: an id, or a generated key.
func (p *Presenter) element(key string) js.Value {
	if node := p.doc.Call("getElementById", key); node.Truthy() {
		return node
	}
	return p.doc.Call("querySelector", `[`+keyAttr+`="`+cssEscape(key)+`"]`)
}

func removeSibling(node js.Value, class string) {
	next := node.Get("nextElementSibling")
	if next.Truthy() && next.Get("classList").Call("contains", class).Bool() {
		next.Call("remove")
	}
}

func cssEscape(value string) string {
	css := js.Global().Get("CSS")
	if css.Truthy() && css.Get("escape").Truthy() {
		return css.Call("escape", value).String()
	}
	return value
}
