package mold

import (
	"iter"
	"math"
	"slices"
)

// DefaultArcStep is the x spacing (mm) between samples of a guide arc
const DefaultArcStep = 0.01

// NumDivisions returns the number of divisions of one quarter curve, not
// counting the center rib. Odd rib counts lose their last half division.
func NumDivisions(numRibs int) int {
	return numRibs / 2
}

// DeltaAngle returns the angular spacing of the ribs in degrees.
// Ribs are spaced evenly in the ellipse parameter, not in arc length.
func DeltaAngle(numRibs int) float64 {
	return 180 / float64(numRibs)
}

// HalfCircleArc traces y = sqrt(r² - x²) from x = -r to x = r.
//
// The negative branch comes first, ordered left to right, followed by the
// positive branch, so the sequence can be drawn as one continuous curve. The
// last point is always exactly (r, 0). A step <= 0 selects DefaultArcStep.
func HalfCircleArc(r, step float64) iter.Seq[Point] {
	if step <= 0 {
		step = DefaultArcStep
	}

	// Number of samples with 0 <= x < r
	n := 0
	if r > 0 && !math.IsInf(r, 1) {
		n = int(math.Ceil(r / step))
		for n > 0 && float64(n-1)*step >= r {
			n--
		}
		for float64(n)*step < r {
			n++
		}
	}

	y := func(x float64) float64 {
		return math.Sqrt(math.Max(0, r*r-x*x))
	}

	return func(yield func(Point) bool) {
		if r > 0 {
			if !yield(Point{X: -r, Y: 0}) {
				return
			}
			for i := n - 1; i >= 1; i-- {
				x := float64(i) * step
				if !yield(Point{X: -x, Y: y(x)}) {
					return
				}
			}
		}
		for i := 0; i < n; i++ {
			x := float64(i) * step
			if !yield(Point{X: x, Y: y(x)}) {
				return
			}
		}
		yield(Point{X: r, Y: 0})
	}
}

// RibPoints computes where the ribs meet the section outline.
//
// The quarter curve is the ellipse x = face·cos(θ), y = back·sin(θ) sampled
// at θ = i·180°/numRibs for every division. Two points follow it: the right
// corner of the flat center rib and its mirror, which joins the quarter curve
// to its reflection. The result has NumDivisions(numRibs)+2 points.
func RibPoints(face, back float64, numRibs int) []Point {
	numDivisions := NumDivisions(numRibs)
	delta := DeltaAngle(numRibs)

	points := make([]Point, 0, max(numDivisions, 0)+2)
	for i := 0; i < numDivisions; i++ {
		angle := radians(delta * float64(i))
		points = append(points, Point{
			X: face * math.Cos(angle),
			Y: back * math.Sin(angle),
		})
	}

	// Right corner of the central rib (it is flat)
	center := Point{X: back * math.Tan(radians(delta/2)), Y: back}
	points = append(points, center, mirror(center))

	return points
}

// MirrorTail returns the reflection of points about x = 0 in reverse order,
// without its first element. For RibPoints output the dropped element would
// repeat the center rib corner, so the tail starts where points ends.
func MirrorTail(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}
	tail := make([]Point, 0, len(points)-1)
	for i := len(points) - 2; i >= 0; i-- {
		tail = append(tail, mirror(points[i]))
	}
	return tail
}

// Polyline returns the full rib polyline: points followed by their mirror tail
func Polyline(points []Point) []Point {
	return slices.Concat(points, MirrorTail(points))
}

// GuideRadii returns the radii of the reference arcs: face profile, bowl
// depth profile and their midline.
func GuideRadii(face, back float64) [3]float64 {
	return [3]float64{face, back, (face + back) / 2}
}

// WidthRadius returns the radius of the arc bounding the template band
func WidthRadius(face, widthSection float64) float64 {
	return face - widthSection
}

func mirror(p Point) Point {
	return Point{X: -p.X, Y: p.Y}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
