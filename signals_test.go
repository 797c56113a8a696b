package swiperefresh

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/capitan"
)

type triggered struct {
	source string
	offset int
}

func TestRefreshTriggeredSignal(t *testing.T) {
	h := newHarness(t, &stubContent{})
	id := h.l.ID()

	got := make(chan triggered, 4)
	capitan.Hook(RefreshTriggered, func(_ context.Context, e *capitan.Event) {
		if layoutID, _ := KeyLayoutID.From(e); layoutID != id {
			return
		}
		source, _ := KeySource.From(e)
		offset, _ := KeyOffset.From(e)
		got <- triggered{source: source, offset: offset}
	})

	h.pull(t, overscrollAt(100))
	at := h.l.CurrentOffset()
	if err := h.l.EndDrag(overscrollAt(100)); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-got:
		if ev.source != "gesture" {
			t.Errorf("source = %q, want gesture", ev.source)
		}
		if ev.offset != at {
			t.Errorf("offset = %d, want %d", ev.offset, at)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no RefreshTriggered signal")
	}
}

func TestGestureRejectedSignal(t *testing.T) {
	h := newHarness(t, &stubContent{})
	id := h.l.ID()

	reasons := make(chan string, 4)
	capitan.Hook(GestureRejected, func(_ context.Context, e *capitan.Event) {
		if layoutID, _ := KeyLayoutID.From(e); layoutID == id {
			reason, _ := KeyReason.From(e)
			reasons <- reason
		}
	})

	h.l.reject("test reason")

	select {
	case r := <-reasons:
		if r != "test reason" {
			t.Errorf("reason = %q", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no GestureRejected signal")
	}
}
