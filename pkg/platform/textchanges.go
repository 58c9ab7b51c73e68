package platform

import "github.com/go-drift/fieldbind/pkg/errors"

var textChangedChannel = NewEventChannel("fieldbind/text_changed")

// textChangedStream is the typed view of the text-changed event channel.
var textChangedStream = NewStream("fieldbind/text_changed", textChangedChannel, parseTextChange)

// TextChanges returns the stream of text-changed notifications for all
// native text fields. This is the toolkit's content-changed notification
// channel; it is independent of the delegate protocol. Most callers want
// TextField.AddTextChangedListener instead, which scopes the stream to one
// field.
func TextChanges() *Stream[TextChange] {
	return textChangedStream
}

// parseTextChange converts raw event data to a TextChange.
// A missing text entry decodes as the empty string: some native fields
// report no content at all when cleared.
func parseTextChange(data any) (TextChange, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return TextChange{}, &errors.ParseError{Channel: "fieldbind/text_changed", DataType: "TextChange", Got: data}
	}
	viewID, ok := toInt64(m["viewId"])
	if !ok {
		return TextChange{}, &errors.ParseError{Channel: "fieldbind/text_changed", DataType: "TextChange", Got: data}
	}
	text, _ := m["text"].(string)
	return TextChange{ViewID: viewID, Text: text}, nil
}

// routeTextChanges forwards text-changed notifications to the field they
// belong to. Registered once at package init and replayed by ResetForTest.
func routeTextChanges() {
	textChangedStream.Listen(func(tc TextChange) {
		view := GetPlatformViewRegistry().GetView(tc.ViewID)
		if view == nil {
			return
		}
		if field, ok := view.(*TextField); ok {
			field.handleTextChanged(tc.Text)
		}
	})
}

func init() {
	registerBuiltinInit(routeTextChanges)
	routeTextChanges()
}
