// Package fieldbind attaches closures to native text field events.
//
// A native TextField normally reports its editing events to a single
// delegate object. Binding lets callers handle individual events with
// closures instead: each delegate question gets an optional slot, and any
// event without a closure is forwarded to the delegate that was installed
// before the binding took over, so existing behavior is preserved.
package fieldbind

import (
	"sync"

	"github.com/go-drift/fieldbind/pkg/platform"
)

// Action is a fire-and-forget notification callback.
type Action func(f *platform.TextField)

// Response answers a yes/no policy question for a field.
type Response func(f *platform.TextField) bool

// ChangeCharactersValidator validates a pending edit before it is applied.
type ChangeCharactersValidator func(f *platform.TextField, r platform.TextRange, replacement string) bool

// TextChanged receives the field's full content after each change.
type TextChanged func(text string)

// Binding holds the closure slots for one text field and routes the field's
// delegate events. It installs itself as the field's delegate the first time
// a closure is assigned, keeping any previously installed delegate as the
// forwarding target for unset slots.
//
// All methods must be called on the UI thread, like every other interaction
// with a native field.
type Binding struct {
	field *platform.TextField

	// fallback is the delegate that was installed on the field before the
	// binding took over. Captured once; never replaced afterwards.
	fallback  platform.TextFieldDelegate
	installed bool

	// stopObserving is non-nil once the text-changed subscription exists.
	stopObserving func()

	shouldBeginEditing     Response
	didBeginEditing        Action
	shouldEndEditing       Response
	didEndEditing          Action
	shouldChangeCharacters ChangeCharactersValidator
	shouldClear            Response
	shouldReturn           Response
	textChanged            TextChanged
}

var (
	bindingsMu sync.Mutex
	bindings   = make(map[*platform.TextField]*Binding)
)

// Bind returns the binding for the given field, creating it on first use.
// A field owns exactly one binding; repeated calls return the same value.
func Bind(field *platform.TextField) *Binding {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()

	if b, ok := bindings[field]; ok {
		return b
	}
	b := &Binding{field: field}
	bindings[field] = b
	return b
}

// Unbind releases the binding for a field and stops observing its text
// changes. Call it when disposing the field. The delegate installation is
// left in place; clearing closures already reverts dispatch to the captured
// fallback delegate.
func Unbind(field *platform.TextField) {
	bindingsMu.Lock()
	b := bindings[field]
	delete(bindings, field)
	bindingsMu.Unlock()

	if b != nil && b.stopObserving != nil {
		b.stopObserving()
		b.stopObserving = nil
	}
}

// Field returns the text field this binding is attached to.
func (b *Binding) Field() *platform.TextField {
	return b.field
}

// Fallback returns the delegate captured when the binding installed itself,
// or nil if the field had none.
func (b *Binding) Fallback() platform.TextFieldDelegate {
	return b.fallback
}

// ensureInstalled installs the binding as the field's delegate exactly once.
// A pre-existing delegate is captured for forwarding first - unless it is
// the binding or the field itself, which would loop dispatch back into us.
func (b *Binding) ensureInstalled() {
	if b.installed {
		return
	}
	current := b.field.Delegate()
	if current != nil &&
		current != platform.TextFieldDelegate(b) &&
		current != platform.TextFieldDelegate(b.field) {
		b.fallback = current
	}
	b.field.SetDelegate(b)
	b.installed = true
}

// ensureObserving subscribes to the field's text-changed notifications
// exactly once.
func (b *Binding) ensureObserving() {
	if b.stopObserving != nil {
		return
	}
	b.stopObserving = b.field.AddTextChangedListener(func(text string) {
		if fn := b.textChanged; fn != nil {
			fn(text)
		}
	})
}

// SetShouldBeginEditing installs the should-begin-editing closure.
// Passing nil clears the slot and restores delegate forwarding.
func (b *Binding) SetShouldBeginEditing(fn Response) {
	b.shouldBeginEditing = fn
	if fn != nil {
		b.ensureInstalled()
	}
}

// ShouldBeginEditing returns the current should-begin-editing closure.
func (b *Binding) ShouldBeginEditing() Response {
	return b.shouldBeginEditing
}

// SetDidBeginEditing installs the did-begin-editing closure.
// Passing nil clears the slot and restores delegate forwarding.
func (b *Binding) SetDidBeginEditing(fn Action) {
	b.didBeginEditing = fn
	if fn != nil {
		b.ensureInstalled()
	}
}

// DidBeginEditing returns the current did-begin-editing closure.
func (b *Binding) DidBeginEditing() Action {
	return b.didBeginEditing
}

// SetShouldEndEditing installs the should-end-editing closure.
// Passing nil clears the slot and restores delegate forwarding.
func (b *Binding) SetShouldEndEditing(fn Response) {
	b.shouldEndEditing = fn
	if fn != nil {
		b.ensureInstalled()
	}
}

// ShouldEndEditing returns the current should-end-editing closure.
func (b *Binding) ShouldEndEditing() Response {
	return b.shouldEndEditing
}

// SetDidEndEditing installs the did-end-editing closure.
// Passing nil clears the slot and restores delegate forwarding.
func (b *Binding) SetDidEndEditing(fn Action) {
	b.didEndEditing = fn
	if fn != nil {
		b.ensureInstalled()
	}
}

// DidEndEditing returns the current did-end-editing closure.
func (b *Binding) DidEndEditing() Action {
	return b.didEndEditing
}

// SetShouldChangeCharacters installs the edit validation closure.
// Passing nil clears the slot and restores delegate forwarding.
func (b *Binding) SetShouldChangeCharacters(fn ChangeCharactersValidator) {
	b.shouldChangeCharacters = fn
	if fn != nil {
		b.ensureInstalled()
	}
}

// ShouldChangeCharacters returns the current edit validation closure.
func (b *Binding) ShouldChangeCharacters() ChangeCharactersValidator {
	return b.shouldChangeCharacters
}

// SetShouldClear installs the should-clear closure.
// Passing nil clears the slot and restores delegate forwarding.
func (b *Binding) SetShouldClear(fn Response) {
	b.shouldClear = fn
	if fn != nil {
		b.ensureInstalled()
	}
}

// ShouldClear returns the current should-clear closure.
func (b *Binding) ShouldClear() Response {
	return b.shouldClear
}

// SetShouldReturn installs the should-return closure.
// Passing nil clears the slot and restores delegate forwarding.
func (b *Binding) SetShouldReturn(fn Response) {
	b.shouldReturn = fn
	if fn != nil {
		b.ensureInstalled()
	}
}

// ShouldReturn returns the current should-return closure.
func (b *Binding) ShouldReturn() Response {
	return b.shouldReturn
}

// SetTextChanged installs the text-changed closure. The binding subscribes
// to the field's content-changed notifications on first assignment; the
// subscription persists when the slot is cleared.
func (b *Binding) SetTextChanged(fn TextChanged) {
	b.textChanged = fn
	if fn != nil {
		b.ensureObserving()
	}
}

// TextChangedHandler returns the current text-changed closure.
func (b *Binding) TextChangedHandler() TextChanged {
	return b.textChanged
}

// The methods below implement the delegate protocol. Each event resolves in
// order: the closure for its slot, then the fallback delegate if it
// implements that particular method, then the default.

// TextFieldShouldBeginEditing implements platform.BeginEditingPolicy.
func (b *Binding) TextFieldShouldBeginEditing(f *platform.TextField) bool {
	if fn := b.shouldBeginEditing; fn != nil {
		return fn(f)
	}
	if d, ok := b.fallback.(platform.BeginEditingPolicy); ok {
		return d.TextFieldShouldBeginEditing(f)
	}
	return true
}

// TextFieldDidBeginEditing implements platform.BeginEditingObserver.
func (b *Binding) TextFieldDidBeginEditing(f *platform.TextField) {
	if fn := b.didBeginEditing; fn != nil {
		fn(f)
		return
	}
	if d, ok := b.fallback.(platform.BeginEditingObserver); ok {
		d.TextFieldDidBeginEditing(f)
	}
}

// TextFieldShouldEndEditing implements platform.EndEditingPolicy.
func (b *Binding) TextFieldShouldEndEditing(f *platform.TextField) bool {
	if fn := b.shouldEndEditing; fn != nil {
		return fn(f)
	}
	if d, ok := b.fallback.(platform.EndEditingPolicy); ok {
		return d.TextFieldShouldEndEditing(f)
	}
	return true
}

// TextFieldDidEndEditing implements platform.EndEditingObserver.
func (b *Binding) TextFieldDidEndEditing(f *platform.TextField) {
	if fn := b.didEndEditing; fn != nil {
		fn(f)
		return
	}
	if d, ok := b.fallback.(platform.EndEditingObserver); ok {
		d.TextFieldDidEndEditing(f)
	}
}

// TextFieldShouldChangeCharacters implements platform.ChangeCharactersPolicy.
func (b *Binding) TextFieldShouldChangeCharacters(f *platform.TextField, r platform.TextRange, replacement string) bool {
	if fn := b.shouldChangeCharacters; fn != nil {
		return fn(f, r, replacement)
	}
	if d, ok := b.fallback.(platform.ChangeCharactersPolicy); ok {
		return d.TextFieldShouldChangeCharacters(f, r, replacement)
	}
	return true
}

// TextFieldShouldClear implements platform.ClearPolicy.
func (b *Binding) TextFieldShouldClear(f *platform.TextField) bool {
	if fn := b.shouldClear; fn != nil {
		return fn(f)
	}
	if d, ok := b.fallback.(platform.ClearPolicy); ok {
		return d.TextFieldShouldClear(f)
	}
	return true
}

// TextFieldShouldReturn implements platform.ReturnPolicy.
func (b *Binding) TextFieldShouldReturn(f *platform.TextField) bool {
	if fn := b.shouldReturn; fn != nil {
		return fn(f)
	}
	if d, ok := b.fallback.(platform.ReturnPolicy); ok {
		return d.TextFieldShouldReturn(f)
	}
	return true
}
