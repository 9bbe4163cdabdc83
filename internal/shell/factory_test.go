package shell

import (
	"errors"
	"testing"
)

const testURL = "file:///srv/shell/index.html"

func TestFactory_CreateWiresRendererToDispatch(t *testing.T) {
	backend := newFakeBackend()
	sink := &recordingSink{}
	style := Style{Width: 800, Height: 600, Layer: LayerBottom, Devtools: true}
	f := NewFactory(backend, testURL, style, sink, discardLogger())

	e, err := f.Create("Window 1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID != 1 || e.Title != "Window 1" || e.Created.IsZero() {
		t.Fatalf("entry = %+v", e)
	}
	if got := backend.options[0]; got.Title != "Window 1" || got.Style != style {
		t.Fatalf("window options = %+v", got)
	}

	r := backend.renderer(e.ID)
	if r.url != testURL {
		t.Fatalf("loaded %q, want %q", r.url, testURL)
	}

	r.send("change-title:Hi")
	r.send("bogus")
	r.send("close")
	backend.window(e.ID).requestClose()

	got := sink.Events()
	want := []Event{
		RequestTitleChange{ID: 1, Title: "Hi"},
		RequestCloseWindow{ID: 1},
		NativeCloseRequested{ID: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("events = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event[%d] = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestFactory_MessagesAttributedToOwnWindow(t *testing.T) {
	backend := newFakeBackend()
	sink := &recordingSink{}
	f := NewFactory(backend, testURL, Style{}, sink, discardLogger())

	a, err := f.Create("a")
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	b, err := f.Create("b")
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}

	backend.renderer(b.ID).send("close")
	backend.renderer(a.ID).send("close")

	got := sink.Events()
	if len(got) != 2 || got[0] != (RequestCloseWindow{ID: b.ID}) || got[1] != (RequestCloseWindow{ID: a.ID}) {
		t.Fatalf("events = %#v", got)
	}
}

func TestFactory_WindowFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = errors.New("no display")
	f := NewFactory(backend, testURL, Style{}, &recordingSink{}, discardLogger())

	_, err := f.Create("Window 1")
	if !IsKind(err, KindWindow) {
		t.Fatalf("error = %v, want KindWindow", err)
	}
	if !errors.Is(err, backend.createErr) {
		t.Fatalf("error %v does not wrap backend error", err)
	}
}

func TestFactory_RendererFailureClosesWindow(t *testing.T) {
	backend := newFakeBackend()
	backend.attachErr = errors.New("webkit unavailable")
	f := NewFactory(backend, testURL, Style{}, &recordingSink{}, discardLogger())

	_, err := f.Create("Window 1")
	if !IsKind(err, KindRenderer) {
		t.Fatalf("error = %v, want KindRenderer", err)
	}
	if !backend.window(1).Closed() {
		t.Fatal("half-built window was not closed")
	}
}

func TestFactory_LoadFailureClosesBoth(t *testing.T) {
	backend := newFakeBackend()
	backend.loadErr = errors.New("bad url")
	f := NewFactory(backend, testURL, Style{}, &recordingSink{}, discardLogger())

	_, err := f.Create("Window 1")
	if !IsKind(err, KindRenderer) {
		t.Fatalf("error = %v, want KindRenderer", err)
	}
	if !backend.window(1).Closed() || !backend.renderer(1).closed {
		t.Fatal("expected window and renderer to be closed")
	}
}
