//go:build js && wasm

package dom

import (
	"strconv"
	"sync"
	"syscall/js"

	goUX "github.com/MrEthical07/goUX"
	"github.com/MrEthical07/goUX/render"
)

const (
	// keyAttr holds the generated key of an input without an id.
	keyAttr = "data-goux-key"
	// formKeyAttr holds the generated key of a form without an id.
	formKeyAttr = "data-goux-form"

	savedLabelAttr = "data-goux-label"
)

// Document is a goUX.EventSource over the page's DOM.
//
// A field matches every element with that id, that name, or that input type,
// so "email" covers all email inputs on the page. The password field is
// narrowed to the element named or identified as password, leaving
// confirmation inputs without a strength line. SetSelector overrides the
// match for one field.
type Document struct {
	doc js.Value

	mu        sync.Mutex
	handlers  []listener
	selectors map[string]string
	nextKey   int
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// NewDocument returns a Document over window.document.
func NewDocument() *Document {
	return &Document{
		doc: js.Global().Get("document"),
		selectors: map[string]string{
			"password": `input[type="password"]#password, input[type="password"][name="password"]`,
		},
	}
}

// SetSelector makes field match the elements selected by the CSS selector.
// It applies to handlers registered afterwards.
func (d *Document) SetSelector(field, selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selectors[field] = selector
}

func (d *Document) selector(field string) string {
	d.mu.Lock()
	sel, ok := d.selectors[field]
	d.mu.Unlock()
	if ok {
		return sel
	}
	q := cssEscape(field)
	return "#" + q + `, [name="` + q + `"], input[type="` + q + `"]`
}

// OnInput listens for input events on every element of field.
func (d *Document) OnInput(field string, fn func(goUX.InputEvent)) {
	d.onField(field, "input", fn)
}

// OnBlur listens for blur events on every element of field.
func (d *Document) OnBlur(field string, fn func(goUX.InputEvent)) {
	d.onField(field, "blur", fn)
}

func (d *Document) onField(field, event string, fn func(goUX.InputEvent)) {
	nodes := d.doc.Call("querySelectorAll", d.selector(field))
	forEachNode(nodes, func(node js.Value) {
		target := d.key(node, keyAttr, "goux-field-")
		d.listen(node, event, func(this js.Value, _ []js.Value) any {
			fn(goUX.InputEvent{Field: field, Target: target, Value: this.Get("value").String()})
			return nil
		})
	})
}

// OnNumberInput listens for input events on every element of field and
// reports the value with the element's min and max attributes.
func (d *Document) OnNumberInput(field string, fn func(goUX.NumberEvent)) {
	nodes := d.doc.Call("querySelectorAll", d.selector(field))
	forEachNode(nodes, func(node js.Value) {
		target := d.key(node, keyAttr, "goux-field-")
		d.listen(node, "input", func(this js.Value, _ []js.Value) any {
			fn(goUX.NumberEvent{
				Field:  field,
				Target: target,
				Value:  this.Get("value").String(),
				Min:    attr(this, "min"),
				Max:    attr(this, "max"),
			})
			return nil
		})
	})
}

// OnSubmit listens for submission of every form on the page. A form without
// an id gets a generated data-goux-form key, used as its FormID.
func (d *Document) OnSubmit(fn func(*goUX.SubmitEvent)) {
	forms := d.doc.Call("querySelectorAll", "form")
	forEachNode(forms, func(form js.Value) {
		id := d.key(form, formKeyAttr, "goux-form-")
		d.listen(form, "submit", func(_ js.Value, args []js.Value) any {
			ev := &goUX.SubmitEvent{FormID: id, Control: submitButton{form: form}}
			fn(ev)
			if ev.DefaultPrevented() && len(args) > 0 {
				args[0].Call("preventDefault")
			}
			return nil
		})
	})
}

// OnTabShown listens for Bootstrap's shown.bs.tab on every tab trigger. The
// tab id is the trigger's data-bs-target, or its href.
func (d *Document) OnTabShown(fn func(goUX.TabEvent)) {
	triggers := d.doc.Call("querySelectorAll", `[data-bs-toggle="tab"]`)
	forEachNode(triggers, func(trigger js.Value) {
		d.listen(trigger, "shown.bs.tab", func(this js.Value, _ []js.Value) any {
			target := this.Call("getAttribute", "data-bs-target")
			if target.IsNull() {
				target = this.Call("getAttribute", "href")
			}
			if target.IsNull() {
				return nil
			}
			fn(goUX.TabEvent{TabID: target.String()})
			return nil
		})
	})
}

// Release removes every listener registered by d.
func (d *Document) Release() {
	d.mu.Lock()
	handlers := d.handlers
	d.handlers = nil
	d.mu.Unlock()

	for _, h := range handlers {
		h.target.Call("removeEventListener", h.event, h.fn)
		h.fn.Release()
	}
}

// key returns the element's id. Elements without one are tagged with a
// generated key in attrName, reused if already present.
func (d *Document) key(node js.Value, attrName, prefix string) string {
	if id := node.Get("id").String(); id != "" {
		return id
	}
	if existing := attr(node, attrName); existing != "" {
		return existing
	}

	d.mu.Lock()
	d.nextKey++
	key := prefix + strconv.Itoa(d.nextKey)
	d.mu.Unlock()

	node.Call("setAttribute", attrName, key)
	return key
}

func (d *Document) listen(node js.Value, event string, handler func(js.Value, []js.Value) any) {
	if !node.Truthy() {
		return
	}
	fn := js.FuncOf(handler)
	node.Call("addEventListener", event, fn)

	d.mu.Lock()
	d.handlers = append(d.handlers, listener{target: node, event: event, fn: fn})
	d.mu.Unlock()
}

// submitButton toggles a form's submit controls and the loading label of
// submit buttons.
type submitButton struct {
	form js.Value
}

func (b submitButton) SetSubmitEnabled(enabled bool) {
	controls := b.form.Call("querySelectorAll", `button[type="submit"], input[type="submit"]`)
	forEachNode(controls, func(control js.Value) {
		control.Set("disabled", !enabled)
		if control.Get("tagName").String() != "BUTTON" {
			return
		}
		if !enabled {
			control.Call("setAttribute", savedLabelAttr, control.Get("innerHTML"))
			control.Set("innerHTML", string(render.LoadingButton()))
			return
		}
		if label := control.Call("getAttribute", savedLabelAttr); !label.IsNull() {
			control.Set("innerHTML", label)
			control.Call("removeAttribute", savedLabelAttr)
		}
	})
}

func attr(node js.Value, name string) string {
	v := node.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func forEachNode(list js.Value, fn func(js.Value)) {
	if !list.Truthy() {
		return
	}
	length := list.Get("length").Int()
	for i := 0; i < length; i++ {
		fn(list.Index(i))
	}
}
