package window

// DefaultBaseZ is the initial stacking high-water mark.
const DefaultBaseZ = 1000

// ZOrder is the shared, strictly increasing stacking counter. Windows and
// sticky notes draw from the same counter so a newly focused item always ends
// up above everything else.
type ZOrder struct {
	high int
}

// NewZOrder returns a counter whose first Next() is base+1.
func NewZOrder(base int) *ZOrder {
	return &ZOrder{high: base}
}

// Next bumps the high-water mark and returns it.
func (z *ZOrder) Next() int {
	z.high++
	return z.high
}

// High returns the current high-water mark without bumping it.
func (z *ZOrder) High() int {
	return z.high
}
