package platform

// TextRange represents a range of characters in a field's text.
type TextRange struct {
	Start int
	End   int
}

// IsEmpty returns true if the range has zero length.
func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if both start and end are non-negative.
func (r TextRange) IsValid() bool {
	return r.Start >= 0 && r.End >= 0
}

// IsNormalized returns true if start <= end.
func (r TextRange) IsNormalized() bool {
	return r.Start <= r.End
}

// Length returns the number of characters covered by the range.
func (r TextRange) Length() int {
	return r.End - r.Start
}

// TextRangeEmpty is an invalid/empty text range.
var TextRangeEmpty = TextRange{Start: -1, End: -1}

// KeyboardType specifies the type of keyboard the native field shows.
type KeyboardType int

const (
	KeyboardTypeText KeyboardType = iota
	KeyboardTypeNumber
	KeyboardTypePhone
	KeyboardTypeEmail
	KeyboardTypeURL
)

// ReturnKeyType specifies the label of the keyboard's return key.
type ReturnKeyType int

const (
	ReturnKeyDefault ReturnKeyType = iota
	ReturnKeyDone
	ReturnKeyGo
	ReturnKeyNext
	ReturnKeySearch
	ReturnKeySend
)

// TextFieldConfig defines styling and behavior passed to the native text field.
type TextFieldConfig struct {
	// Text styling (native view handles rendering)
	FontFamily       string
	FontSize         float64
	TextColor        uint32 // ARGB
	PlaceholderColor uint32 // ARGB

	// Behavior
	MaxLength     int
	Secure        bool
	Autocorrect   bool
	ClearButton   bool
	KeyboardType  KeyboardType
	ReturnKeyType ReturnKeyType

	// Placeholder text shown when the field is empty
	Placeholder string
}

// TextChange describes one text-changed notification from a native field.
// This travels on a dedicated event channel, separate from the delegate
// protocol.
type TextChange struct {
	// ViewID identifies the field that changed.
	ViewID int64
	// Text is the field's full content after the change.
	Text string
}
