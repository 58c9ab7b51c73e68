package errors

import (
	"strings"
	"testing"
	"time"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Op:   "test.operation",
		Kind: KindPlatform,
		Err:  &ParseError{Channel: "test", DataType: "TestData", Got: "invalid"},
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
}

func TestErrorWithChannel(t *testing.T) {
	err := &Error{
		Op:      "test.operation",
		Kind:    KindParsing,
		Channel: "fieldbind/test/channel",
		Err:     &ParseError{Channel: "fieldbind/test/channel", DataType: "TestData", Got: nil},
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
	// Should contain channel info
	want := "channel=fieldbind/test/channel"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPlatform, "platform"},
		{KindParsing, "parsing"},
		{KindInit, "init"},
		{KindBinding, "binding"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:        "platform.HandleEvent",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in platform.HandleEvent: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

type recordingHandler struct {
	errors []*Error
	panics []*PanicError
}

func (h *recordingHandler) HandleError(err *Error)      { h.errors = append(h.errors, err) }
func (h *recordingHandler) HandlePanic(err *PanicError) { h.panics = append(h.panics, err) }

func TestReportSetsTimestamp(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&Error{Op: "test.op", Kind: KindPlatform})

	if len(h.errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(h.errors))
	}
	if h.errors[0].Timestamp.IsZero() {
		t.Error("expected Report to set a timestamp")
	}
}

func TestReportNilIsIgnored(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(nil)
	ReportPanic(nil)

	if len(h.errors) != 0 || len(h.panics) != 0 {
		t.Errorf("nil reports should be ignored, got %d errors and %d panics", len(h.errors), len(h.panics))
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("boom")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("got %d panics, want 1", len(h.panics))
	}
	if h.panics[0].Op != "test.recover" {
		t.Errorf("Op = %q, want %q", h.panics[0].Op, "test.recover")
	}
	if h.panics[0].Value != "boom" {
		t.Errorf("Value = %v, want %q", h.panics[0].Value, "boom")
	}
	if h.panics[0].StackTrace == "" {
		t.Error("expected a captured stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	var got any
	func() {
		defer RecoverWithCallback("test.recover", func(r any) { got = r })
		panic("boom")
	}()

	if got != "boom" {
		t.Errorf("callback received %v, want %q", got, "boom")
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	SetHandler(&recordingHandler{})
	SetHandler(nil)

	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("DefaultHandler = %T, want *LogHandler", DefaultHandler)
	}
}
