package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w > 0 {
		bresenham(dst, x, y, x+w-1, y, c)
	}
}

// VerticalLine draws a line between (x,y) and (x,y+h).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h > 0 {
		bresenham(dst, x, y, x, y+h-1, c)
	}
}

// Rectangle draws the outline of a rectangle; rect.Max is exclusive.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}
	var (
		w = rect.Dx()
		h = rect.Dy()
	)
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, w, c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, w, c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, h, c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, h, c)
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	w := rect.Dx()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, rect.Min.X, y, w, c)
	}
}

// Disc draws a filled circle.
func Disc(dst Image, center image.Point, radius int, c color.Color) {
	if radius < 0 {
		return
	}
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	HorizontalLine(dst, center.X-radius, center.Y, 2*radius+1, c)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		HorizontalLine(dst, center.X-x, center.Y+y, 2*x+1, c)
		HorizontalLine(dst, center.X-x, center.Y-y, 2*x+1, c)
		HorizontalLine(dst, center.X-y, center.Y+x, 2*y+1, c)
		HorizontalLine(dst, center.X-y, center.Y-x, 2*y+1, c)
	}
}

// Generalized with integer
func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	var dx, dy, e, slope int

	// Because drawing p1 -> p2 is equivalent to draw p2 -> p1,
	// I sort points in x-axis order to handle only half of possible cases.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx, dy = x2-x1, y2-y1
	// Because point is x-axis ordered, dx cannot be negative
	if dy < 0 {
		dy = -dy
	}

	switch {

	// Is line a point ?
	case x1 == x2 && y1 == y2:
		dst.Set(x1, y1, c)

	// Is line an horizontal ?
	case y1 == y2:
		for ; dx != 0; dx-- {
			dst.Set(x1, y1, c)
			x1++
		}
		dst.Set(x1, y1, c)

	// Is line a vertical ?
	case x1 == x2:
		if y1 > y2 {
			y1 = y2
		}
		for ; dy != 0; dy-- {
			dst.Set(x1, y1, c)
			y1++
		}
		dst.Set(x1, y1, c)

	// Is line a diagonal ?
	case dx == dy:
		step := 1
		if y1 > y2 {
			step = -1
		}
		for ; dx != 0; dx-- {
			dst.Set(x1, y1, c)
			x1++
			y1 += step
		}
		dst.Set(x1, y1, c)

	// wider than high ?
	case dx > dy:
		step := 1
		if y1 > y2 {
			step = -1
		}
		dy, e, slope = 2*dy, dx, 2*dx
		for ; dx != 0; dx-- {
			dst.Set(x1, y1, c)
			x1++
			e -= dy
			if e < 0 {
				y1 += step
				e += slope
			}
		}
		dst.Set(x2, y2, c)

	// higher than wide.
	default:
		step := 1
		if y1 > y2 {
			step = -1
		}
		dx, e, slope = 2*dx, dy, 2*dy
		for ; dy != 0; dy-- {
			dst.Set(x1, y1, c)
			y1 += step
			e -= dx
			if e < 0 {
				x1++
				e += slope
			}
		}
		dst.Set(x2, y2, c)
	}
}
