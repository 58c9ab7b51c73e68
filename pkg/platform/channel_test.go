package platform

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	fielderrors "github.com/go-drift/fieldbind/pkg/errors"
)

// recordingHandler collects reported errors for assertions.
type recordingHandler struct {
	errors []*fielderrors.Error
	panics []*fielderrors.PanicError
}

func (h *recordingHandler) HandleError(err *fielderrors.Error)     { h.errors = append(h.errors, err) }
func (h *recordingHandler) HandlePanic(err *fielderrors.PanicError) { h.panics = append(h.panics, err) }

func setRecordingHandler(t *testing.T) *recordingHandler {
	h := &recordingHandler{}
	fielderrors.SetHandler(h)
	t.Cleanup(func() { fielderrors.SetHandler(nil) })
	return h
}

func TestMethodChannelRoundtrip(t *testing.T) {
	setupTestBridge(t)

	ch := NewMethodChannel("test/method_roundtrip")
	ch.SetHandler(func(method string, args any) (any, error) {
		if method != "echo" {
			return nil, ErrMethodNotFound
		}
		return args, nil
	})

	argsData, _ := json.Marshal(map[string]any{"value": "ping"})
	result, err := HandleMethodCall("test/method_roundtrip", "echo", argsData)
	if err != nil {
		t.Fatalf("HandleMethodCall: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(result, &got); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if got["value"] != "ping" {
		t.Errorf("result value = %v, want ping", got["value"])
	}
}

func TestMethodChannelNoHandler(t *testing.T) {
	setupTestBridge(t)

	NewMethodChannel("test/method_nohandler")
	_, err := HandleMethodCall("test/method_nohandler", "anything", nil)
	if err != ErrMethodNotFound {
		t.Errorf("error = %v, want ErrMethodNotFound", err)
	}
}

func TestMethodChannelInvokeWithoutBridge(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	ch := NewMethodChannel("test/method_nobridge")
	_, err := ch.Invoke("ping", nil)
	if err != ErrPlatformUnavailable {
		t.Errorf("error = %v, want ErrPlatformUnavailable", err)
	}
}

func TestEventChannelListenStartsStreamOnce(t *testing.T) {
	bridge := setupTestBridge(t)

	ch := NewEventChannel("test/listen_once")
	ch.Listen(EventHandler{OnEvent: func(any) {}})
	ch.Listen(EventHandler{OnEvent: func(any) {}})
	ch.Listen(EventHandler{OnEvent: func(any) {}})

	if got := bridge.startCount("test/listen_once"); got != 1 {
		t.Errorf("native stream started %d times, want 1", got)
	}
}

func TestEventChannelDispatchAndCancel(t *testing.T) {
	bridge := setupTestBridge(t)

	ch := NewEventChannel("test/dispatch_cancel")
	var received []any
	sub := ch.Listen(EventHandler{OnEvent: func(data any) {
		received = append(received, data)
	}})

	eventData, _ := json.Marshal(map[string]any{"n": 1})
	if err := HandleEvent("test/dispatch_cancel", eventData); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("received %d events, want 1", len(received))
	}

	sub.Cancel()
	if !sub.IsCanceled() {
		t.Error("subscription should report canceled")
	}
	if err := HandleEvent("test/dispatch_cancel", eventData); err != nil {
		t.Fatalf("HandleEvent after cancel: %v", err)
	}
	if len(received) != 1 {
		t.Errorf("canceled subscription still received events: %d", len(received))
	}

	// Last subscriber gone, the native stream should have been stopped.
	found := false
	bridge.mu.Lock()
	for _, name := range bridge.stops {
		if name == "test/dispatch_cancel" {
			found = true
		}
	}
	bridge.mu.Unlock()
	if !found {
		t.Error("expected native stream stop after last cancel")
	}
}

func TestEventChannelLateBridgeStartsDeferredStream(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	ch := NewEventChannel("test/late_bridge")
	ch.Listen(EventHandler{OnEvent: func(any) {}})

	bridge := &testBridge{}
	SetNativeBridge(bridge)

	if got := bridge.startCount("test/late_bridge"); got != 1 {
		t.Errorf("deferred stream started %d times, want 1", got)
	}
}

func TestHandleEventUnregisteredChannel(t *testing.T) {
	setupTestBridge(t)
	setRecordingHandler(t)

	err := HandleEvent("test/never_registered", []byte(`{}`))
	if !stderrors.Is(err, ErrChannelNotRegistered) {
		t.Errorf("error = %v, want ErrChannelNotRegistered", err)
	}
}

func TestStreamParsesTypedEvents(t *testing.T) {
	setupTestBridge(t)
	handler := setRecordingHandler(t)

	type point struct{ X, Y int }
	ch := NewEventChannel("test/typed_stream")
	stream := NewStream("test/typed_stream", ch, func(data any) (point, error) {
		m, ok := data.(map[string]any)
		if !ok {
			return point{}, &fielderrors.ParseError{Channel: "test/typed_stream", DataType: "point", Got: data}
		}
		x, _ := toInt(m["x"])
		y, _ := toInt(m["y"])
		return point{X: x, Y: y}, nil
	})

	var got []point
	stream.Listen(func(p point) { got = append(got, p) })

	eventData, _ := json.Marshal(map[string]any{"x": 3, "y": 4})
	HandleEvent("test/typed_stream", eventData)
	if len(got) != 1 || got[0] != (point{X: 3, Y: 4}) {
		t.Errorf("stream events = %v, want [{3 4}]", got)
	}

	// Malformed events are reported, not delivered.
	HandleEvent("test/typed_stream", []byte(`"not a map"`))
	if len(got) != 1 {
		t.Errorf("malformed event was delivered: %v", got)
	}
	if len(handler.errors) == 0 {
		t.Error("expected a reported parse error")
	} else if handler.errors[len(handler.errors)-1].Kind != fielderrors.KindParsing {
		t.Errorf("reported kind = %v, want KindParsing", handler.errors[len(handler.errors)-1].Kind)
	}
}

func TestHandleEventDoneCancelsSubscribers(t *testing.T) {
	setupTestBridge(t)

	ch := NewEventChannel("test/done")
	doneCalled := false
	sub := ch.Listen(EventHandler{
		OnEvent: func(any) {},
		OnDone:  func() { doneCalled = true },
	})

	if err := HandleEventDone("test/done"); err != nil {
		t.Fatalf("HandleEventDone: %v", err)
	}
	if !doneCalled {
		t.Error("OnDone was not called")
	}
	if !sub.IsCanceled() {
		t.Error("subscription should be canceled after done")
	}
}
