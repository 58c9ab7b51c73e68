package platform

// TextFieldDelegate is the object a TextField consults for its editing
// events. Every method of the protocol is optional: a delegate declares
// interest in an event by implementing the corresponding narrow interface
// below, and the field probes for it with a type assertion. Events whose
// interface the delegate does not implement keep their default behavior.
type TextFieldDelegate any

// BeginEditingPolicy decides whether a field may enter editing.
type BeginEditingPolicy interface {
	TextFieldShouldBeginEditing(f *TextField) bool
}

// EndEditingPolicy decides whether a field may leave editing.
type EndEditingPolicy interface {
	TextFieldShouldEndEditing(f *TextField) bool
}

// BeginEditingObserver is notified after a field entered editing.
type BeginEditingObserver interface {
	TextFieldDidBeginEditing(f *TextField)
}

// EndEditingObserver is notified after a field left editing.
type EndEditingObserver interface {
	TextFieldDidEndEditing(f *TextField)
}

// ChangeCharactersPolicy validates an edit before it is applied.
// The range identifies the characters about to be replaced and replacement
// holds the incoming text (empty for a deletion).
type ChangeCharactersPolicy interface {
	TextFieldShouldChangeCharacters(f *TextField, r TextRange, replacement string) bool
}

// ClearPolicy decides whether the field's clear affordance may wipe its content.
type ClearPolicy interface {
	TextFieldShouldClear(f *TextField) bool
}

// ReturnPolicy decides how the field responds to the return key.
type ReturnPolicy interface {
	TextFieldShouldReturn(f *TextField) bool
}
