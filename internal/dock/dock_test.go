package dock

import (
	"testing"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

func testDock() *Dock {
	return New([]Item{
		{ID: "about", Title: "About"},
		{ID: "work", Title: "Work"},
		{ID: "music", Title: "Music", Active: true, Bounces: 3},
	}, 56)
}

var bounds = geom.Bounds{Viewport: geom.Size{Width: 1280, Height: 800}, TopBar: 40, Dock: 64}

func TestNewResetsState(t *testing.T) {
	d := testDock()
	it, ok := d.Get("music")
	if !ok {
		t.Fatal("music missing")
	}
	if it.Active || it.Bounces != 0 {
		t.Errorf("seed state leaked into dock: %+v", it)
	}
}

func TestActiveAndBounce(t *testing.T) {
	d := testDock()
	d.SetActive("work", true)
	d.Bounce("work")
	d.Bounce("work")

	it, _ := d.Get("work")
	if !it.Active || it.Bounces != 2 {
		t.Errorf("work = %+v", it)
	}
	if d.SetActive("ghost", true) || d.Bounce("ghost") {
		t.Error("unknown id accepted")
	}
}

func TestSlotsCentred(t *testing.T) {
	d := testDock()
	slots := d.Slots(bounds)
	if len(slots) != 3 {
		t.Fatalf("got %d slots", len(slots))
	}
	want := geom.Rect{X: (1280 - 168) / 2, Y: 736, Width: 56, Height: 64}
	if slots[0].Rect != want {
		t.Errorf("first slot = %+v, want %+v", slots[0].Rect, want)
	}

	id, ok := d.At(geom.Point{X: want.X + 56 + 10, Y: 750}, bounds)
	if !ok || id != "work" {
		t.Errorf("At() = %q, %v; want work", id, ok)
	}
	if _, ok := d.At(geom.Point{X: 5, Y: 750}, bounds); ok {
		t.Error("hit a slot outside the row")
	}
}

func TestSlotsShrinkOnNarrowViewport(t *testing.T) {
	d := testDock()
	b := bounds
	b.Viewport.Width = 90
	for _, s := range d.Slots(b) {
		if s.Rect.Width != 30 {
			t.Errorf("slot %s width = %d, want 30", s.ID, s.Rect.Width)
		}
	}
}

func TestIndex(t *testing.T) {
	d := testDock()
	if id, ok := d.Index(2); !ok || id != "work" {
		t.Errorf("Index(2) = %q, %v", id, ok)
	}
	if _, ok := d.Index(0); ok {
		t.Error("Index(0) should fail")
	}
	if _, ok := d.Index(4); ok {
		t.Error("Index past the end should fail")
	}
}
