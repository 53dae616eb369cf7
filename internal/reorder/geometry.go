package reorder

import "math"

// Geometry holds the uniform row dimensions used to convert pointer travel into slot travel.
// All rows share one height; variable-height rows are not supported.
type Geometry struct {
	RowHeight  float64
	RowSpacing float64
}

// DefaultGeometry matches a touch list of 88px cards separated by 8px.
var DefaultGeometry = Geometry{RowHeight: 88, RowSpacing: 8}

// SlotPitch is the distance one logical position spans.
func (g Geometry) SlotPitch() float64 {
	pitch := g.RowHeight + g.RowSpacing
	if pitch <= 0 || math.IsNaN(pitch) || math.IsInf(pitch, 0) {
		return 1
	}
	return pitch
}

// slotAt rounds a continuous position to the nearest slot in [0, n-1], with
// halves going toward +Inf. The position is bounded before the integer
// conversion so far out-of-range values still pin to the nearer end.
func slotAt(pos float64, n int) int {
	if n <= 0 {
		return 0
	}
	pos = math.Max(0, math.Min(float64(n-1), pos))
	return int(math.Floor(pos + 0.5))
}
