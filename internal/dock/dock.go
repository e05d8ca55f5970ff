// Package dock holds the dock items along the bottom of the desktop.
package dock

import "github.com/Gaurav-Gosain/deskfolio/internal/geom"

// Item is one dock entry. Active marks items with an open window; Bounces
// counts minimize animations so a renderer can notice new ones.
type Item struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Glyph   string `json:"glyph,omitempty" yaml:"glyph,omitempty"`
	Active  bool   `json:"active" yaml:"active"`
	Bounces int    `json:"bounces,omitempty" yaml:"bounces,omitempty"`
}

// Slot is the screen rectangle of a dock item.
type Slot struct {
	ID   string
	Rect geom.Rect
}

// Dock is the ordered list of dock items.
type Dock struct {
	items []*Item
	slot  int
}

// New creates a dock whose slots are slot units wide.
func New(items []Item, slot int) *Dock {
	d := &Dock{slot: max(1, slot)}
	for _, it := range items {
		it.Active, it.Bounces = false, 0
		d.items = append(d.items, &it)
	}
	return d
}

func (d *Dock) find(id string) *Item {
	for _, it := range d.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Has reports whether id is a dock item.
func (d *Dock) Has(id string) bool {
	return d.find(id) != nil
}

// Get returns a copy of item id.
func (d *Dock) Get(id string) (Item, bool) {
	it := d.find(id)
	if it == nil {
		return Item{}, false
	}
	return *it, true
}

// Index returns the id of the n-th item, counting from 1.
func (d *Dock) Index(n int) (string, bool) {
	if n < 1 || n > len(d.items) {
		return "", false
	}
	return d.items[n-1].ID, true
}

// IDs returns the item ids in dock order.
func (d *Dock) IDs() []string {
	ids := make([]string, len(d.items))
	for i, it := range d.items {
		ids[i] = it.ID
	}
	return ids
}

// SetActive marks whether item id has an open window.
func (d *Dock) SetActive(id string, active bool) bool {
	it := d.find(id)
	if it == nil {
		return false
	}
	it.Active = active
	return true
}

// Bounce records a minimize animation for item id.
func (d *Dock) Bounce(id string) bool {
	it := d.find(id)
	if it == nil {
		return false
	}
	it.Bounces++
	return true
}

// Slots lays the items out as a centred row inside the dock area. Slots
// shrink evenly when the row would not fit.
func (d *Dock) Slots(b geom.Bounds) []Slot {
	n := len(d.items)
	if n == 0 || b.Dock <= 0 {
		return nil
	}
	w := min(d.slot, b.Viewport.Width/n)
	if w <= 0 {
		return nil
	}
	x := (b.Viewport.Width - w*n) / 2
	y := b.Viewport.Height - b.Dock
	slots := make([]Slot, n)
	for i, it := range d.items {
		slots[i] = Slot{ID: it.ID, Rect: geom.Rect{X: x + i*w, Y: y, Width: w, Height: b.Dock}}
	}
	return slots
}

// Area returns the whole dock strip.
func (d *Dock) Area(b geom.Bounds) geom.Rect {
	return geom.Rect{X: 0, Y: b.Viewport.Height - b.Dock, Width: b.Viewport.Width, Height: b.Dock}
}

// At returns the item whose slot contains p.
func (d *Dock) At(p geom.Point, b geom.Bounds) (string, bool) {
	for _, s := range d.Slots(b) {
		if s.Rect.Contains(p) {
			return s.ID, true
		}
	}
	return "", false
}

// Snapshot returns copies of the items in dock order.
func (d *Dock) Snapshot() []Item {
	out := make([]Item, len(d.items))
	for i, it := range d.items {
		out[i] = *it
	}
	return out
}
