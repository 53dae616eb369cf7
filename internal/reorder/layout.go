package reorder

// Layout places rows on a character grid so pointer coordinates can be mapped
// back to slots. Rows start at Top and repeat every RowHeight+RowSpacing lines.
type Layout struct {
	Top         int
	Left        int
	Width       int
	RowHeight   int
	RowSpacing  int
	HandleWidth int
	DeleteWidth int
}

// Geometry converts the layout's line counts into reorder geometry.
func (lay Layout) Geometry() Geometry {
	return Geometry{RowHeight: float64(lay.RowHeight), RowSpacing: float64(lay.RowSpacing)}
}

// HitTest maps a pointer at column x, line y onto one of n rows.
func (lay Layout) HitTest(x, y, n int) (int, Region) {
	pitch := lay.RowHeight + lay.RowSpacing
	if pitch <= 0 || y < lay.Top || x < lay.Left {
		return -1, RegionNone
	}

	rel := y - lay.Top
	index := rel / pitch
	if index >= n || rel%pitch >= lay.RowHeight {
		return -1, RegionNone
	}

	col := x - lay.Left
	switch {
	case lay.Width > 0 && col >= lay.Width:
		return -1, RegionNone
	case col < lay.HandleWidth:
		return index, RegionHandle
	case lay.DeleteWidth > 0 && lay.Width > 0 && col >= lay.Width-lay.DeleteWidth:
		return index, RegionDelete
	default:
		return index, RegionBody
	}
}
