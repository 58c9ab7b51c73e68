package platform

import (
	"sync"
)

// TextField is a platform view wrapping a native single-line text input.
// It mirrors the native field's content on the Go side, owns the field's
// single delegate slot, and routes the native delegate questions
// (should begin/end editing, character validation, clear, return) to that
// delegate. Text-changed notifications travel on a separate event channel,
// see TextChanges.
type TextField struct {
	basePlatformView
	config         TextFieldConfig
	delegate       TextFieldDelegate
	text           string
	editing        bool
	listeners      map[int]func(string)
	nextListenerID int
	mu             sync.RWMutex
}

// NewTextField creates a new text field platform view.
func NewTextField(viewID int64, config TextFieldConfig, delegate TextFieldDelegate) *TextField {
	return &TextField{
		basePlatformView: basePlatformView{
			viewID:   viewID,
			viewType: "text_field",
		},
		config:    config,
		delegate:  delegate,
		listeners: make(map[int]func(string)),
	}
}

// Delegate returns the field's current delegate, or nil if none is set.
func (f *TextField) Delegate() TextFieldDelegate {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.delegate
}

// SetDelegate replaces the field's delegate slot.
func (f *TextField) SetDelegate(delegate TextFieldDelegate) {
	f.mu.Lock()
	f.delegate = delegate
	f.mu.Unlock()
}

// Create initializes the native view.
func (f *TextField) Create(params map[string]any) error {
	// View creation is handled by the registry
	return nil
}

// Dispose cleans up the native view.
func (f *TextField) Dispose() {
	// Cleanup handled by registry
}

// Text returns the field's current content.
func (f *TextField) Text() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.text
}

// SetText updates the text content from the Go side.
func (f *TextField) SetText(text string) {
	f.mu.Lock()
	f.text = text
	f.mu.Unlock()

	GetPlatformViewRegistry().InvokeViewMethod(f.viewID, "setText", map[string]any{
		"text": text,
	})
}

// Clear empties the field.
func (f *TextField) Clear() {
	f.mu.Lock()
	f.text = ""
	f.mu.Unlock()

	GetPlatformViewRegistry().InvokeViewMethod(f.viewID, "clear", nil)
}

// Focus requests keyboard focus for the field.
func (f *TextField) Focus() {
	GetPlatformViewRegistry().InvokeViewMethod(f.viewID, "focus", nil)
}

// Blur dismisses the keyboard.
func (f *TextField) Blur() {
	GetPlatformViewRegistry().InvokeViewMethod(f.viewID, "blur", nil)
}

// IsEditing returns whether the field is currently being edited.
func (f *TextField) IsEditing() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.editing
}

// Config returns the field's current configuration.
func (f *TextField) Config() TextFieldConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.config
}

// UpdateConfig updates the view configuration.
func (f *TextField) UpdateConfig(config TextFieldConfig) {
	f.mu.Lock()
	f.config = config
	f.mu.Unlock()

	GetPlatformViewRegistry().InvokeViewMethod(f.viewID, "updateConfig", config.Params())
}

// AddTextChangedListener registers a callback invoked with the field's full
// content after every native text change. It returns an unsubscribe function.
func (f *TextField) AddTextChangedListener(fn func(text string)) func() {
	f.mu.Lock()
	id := f.nextListenerID
	f.nextListenerID++
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// handleTextChanged processes a text change notification from native.
func (f *TextField) handleTextChanged(text string) {
	f.mu.Lock()
	f.text = text
	listeners := make([]func(string), 0, len(f.listeners))
	for _, fn := range f.listeners {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(text)
	}
}

// handleViewMethod routes delegate questions from native to this field.
func (f *TextField) handleViewMethod(method string, args map[string]any) (any, error) {
	switch method {
	case "shouldBeginEditing":
		return f.handleShouldBeginEditing(), nil
	case "didBeginEditing":
		f.handleDidBeginEditing()
		return nil, nil
	case "shouldEndEditing":
		return f.handleShouldEndEditing(), nil
	case "didEndEditing":
		f.handleDidEndEditing()
		return nil, nil
	case "shouldChangeCharacters":
		start, okStart := toInt(args["start"])
		end, okEnd := toInt(args["end"])
		if !okStart || !okEnd {
			return nil, ErrInvalidArguments
		}
		replacement, _ := args["replacement"].(string)
		return f.handleShouldChangeCharacters(TextRange{Start: start, End: end}, replacement), nil
	case "shouldClear":
		return f.handleShouldClear(), nil
	case "shouldReturn":
		return f.handleShouldReturn(), nil
	default:
		return nil, ErrMethodNotFound
	}
}

// handleShouldBeginEditing asks the delegate whether editing may begin.
func (f *TextField) handleShouldBeginEditing() bool {
	if d, ok := f.Delegate().(BeginEditingPolicy); ok {
		return d.TextFieldShouldBeginEditing(f)
	}
	return true
}

// handleDidBeginEditing processes the editing-began notification from native.
func (f *TextField) handleDidBeginEditing() {
	f.mu.Lock()
	f.editing = true
	f.mu.Unlock()

	if d, ok := f.Delegate().(BeginEditingObserver); ok {
		d.TextFieldDidBeginEditing(f)
	}
}

// handleShouldEndEditing asks the delegate whether editing may end.
func (f *TextField) handleShouldEndEditing() bool {
	if d, ok := f.Delegate().(EndEditingPolicy); ok {
		return d.TextFieldShouldEndEditing(f)
	}
	return true
}

// handleDidEndEditing processes the editing-ended notification from native.
func (f *TextField) handleDidEndEditing() {
	f.mu.Lock()
	f.editing = false
	f.mu.Unlock()

	if d, ok := f.Delegate().(EndEditingObserver); ok {
		d.TextFieldDidEndEditing(f)
	}
}

// handleShouldChangeCharacters asks the delegate to validate a pending edit.
func (f *TextField) handleShouldChangeCharacters(r TextRange, replacement string) bool {
	if d, ok := f.Delegate().(ChangeCharactersPolicy); ok {
		return d.TextFieldShouldChangeCharacters(f, r, replacement)
	}
	return true
}

// handleShouldClear asks the delegate whether the clear affordance may fire.
func (f *TextField) handleShouldClear() bool {
	if d, ok := f.Delegate().(ClearPolicy); ok {
		return d.TextFieldShouldClear(f)
	}
	return true
}

// handleShouldReturn asks the delegate how to respond to the return key.
func (f *TextField) handleShouldReturn() bool {
	if d, ok := f.Delegate().(ReturnPolicy); ok {
		return d.TextFieldShouldReturn(f)
	}
	return true
}

// Params converts the configuration to the parameter map understood by the
// native side.
func (c TextFieldConfig) Params() map[string]any {
	return map[string]any{
		"fontFamily":       c.FontFamily,
		"fontSize":         c.FontSize,
		"textColor":        c.TextColor,
		"placeholderColor": c.PlaceholderColor,
		"maxLength":        c.MaxLength,
		"secure":           c.Secure,
		"autocorrect":      c.Autocorrect,
		"clearButton":      c.ClearButton,
		"keyboardType":     int(c.KeyboardType),
		"returnKeyType":    int(c.ReturnKeyType),
		"placeholder":      c.Placeholder,
	}
}

// configFromParams extracts a TextFieldConfig from a parameter map.
func configFromParams(params map[string]any) TextFieldConfig {
	config := TextFieldConfig{}

	if v, ok := params["fontFamily"].(string); ok {
		config.FontFamily = v
	}
	if v, ok := toFloat64(params["fontSize"]); ok {
		config.FontSize = v
	}
	if v, ok := toUint32(params["textColor"]); ok {
		config.TextColor = v
	}
	if v, ok := toUint32(params["placeholderColor"]); ok {
		config.PlaceholderColor = v
	}
	if v, ok := toInt(params["maxLength"]); ok {
		config.MaxLength = v
	}
	if v, ok := params["secure"].(bool); ok {
		config.Secure = v
	}
	if v, ok := params["autocorrect"].(bool); ok {
		config.Autocorrect = v
	}
	if v, ok := params["clearButton"].(bool); ok {
		config.ClearButton = v
	}
	if v, ok := toInt(params["keyboardType"]); ok {
		config.KeyboardType = KeyboardType(v)
	}
	if v, ok := toInt(params["returnKeyType"]); ok {
		config.ReturnKeyType = ReturnKeyType(v)
	}
	if v, ok := params["placeholder"].(string); ok {
		config.Placeholder = v
	}

	return config
}

// textFieldFactory creates text field platform views.
type textFieldFactory struct{}

func (f *textFieldFactory) ViewType() string {
	return "text_field"
}

func (f *textFieldFactory) Create(viewID int64, params map[string]any) (PlatformView, error) {
	// The delegate is installed later by the caller
	return NewTextField(viewID, configFromParams(params), nil), nil
}

// RegisterTextFieldFactory registers the text field view factory.
func RegisterTextFieldFactory() {
	GetPlatformViewRegistry().RegisterFactory(&textFieldFactory{})
}

func init() {
	RegisterTextFieldFactory()
}
