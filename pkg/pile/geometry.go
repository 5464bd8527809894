package pile

import "math"

// Rect is an axis-aligned rectangle in container coordinates.
type Rect struct {
	X, Y, W, H float64
}

// OffsetBy returns the rectangle moved by dx, dy.
func (r Rect) OffsetBy(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// MidX returns the horizontal centre of the rectangle.
func (r Rect) MidX() float64 {
	return r.X + r.W/2
}

// MidY returns the vertical centre of the rectangle.
func (r Rect) MidY() float64 {
	return r.Y + r.H/2
}

// Inset returns the rectangle shrunk by dx on the left and right and dy
// on the top and bottom. Sizes never go below zero.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{
		X: r.X + dx,
		Y: r.Y + dy,
		W: max(r.W-2*dx, 0),
		H: max(r.H-2*dy, 0),
	}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Lerp interpolates between r and to. t is not clamped so spring
// overshoot carries through to the frame.
func (r Rect) Lerp(to Rect, t float64) Rect {
	return Rect{
		X: lerp(r.X, to.X, t),
		Y: lerp(r.Y, to.Y, t),
		W: lerp(r.W, to.W, t),
		H: lerp(r.H, to.H, t),
	}
}

// Transform3D is a 4x4 homogeneous transform using the row-vector
// convention: a point p maps to p*M. Index as [row][col], so the
// perspective term lives at [2][3].
//
// The zero value is the zero matrix, not the identity. Use Identity3D.
type Transform3D [4][4]float64

// Identity3D returns the identity transform.
func Identity3D() Transform3D {
	return Transform3D{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Perspective returns an identity transform with an eye placed at the
// given distance along z. A non-positive distance yields the identity.
func Perspective(distance float64) Transform3D {
	t := Identity3D()
	if distance > 0 {
		t[2][3] = -1 / distance
	}
	return t
}

// Translation3D returns a translation by tx, ty, tz.
func Translation3D(tx, ty, tz float64) Transform3D {
	t := Identity3D()
	t[3][0], t[3][1], t[3][2] = tx, ty, tz
	return t
}

// Scale3D returns a scale by sx, sy, sz.
func Scale3D(sx, sy, sz float64) Transform3D {
	t := Identity3D()
	t[0][0], t[1][1], t[2][2] = sx, sy, sz
	return t
}

// Rotation3D returns a rotation of angle radians about the axis (x, y, z).
// A zero-length axis yields the identity.
func Rotation3D(angle, x, y, z float64) Transform3D {
	n := math.Sqrt(x*x + y*y + z*z)
	if n == 0 {
		return Identity3D()
	}
	x, y, z = x/n, y/n, z/n
	c, s := math.Cos(angle), math.Sin(angle)
	k := 1 - c

	return Transform3D{
		{c + k*x*x, k*x*y + s*z, k*x*z - s*y, 0},
		{k*y*x - s*z, c + k*y*y, k*y*z + s*x, 0},
		{k*z*x + s*y, k*z*y - s*x, c + k*z*z, 0},
		{0, 0, 0, 1},
	}
}

// Concat returns t followed by other.
func (t Transform3D) Concat(other Transform3D) Transform3D {
	var out Transform3D
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += t[i][k] * other[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform3D) IsIdentity() bool {
	return t == Identity3D()
}

// IsZero reports whether t is the zero matrix.
func (t Transform3D) IsZero() bool {
	return t == Transform3D{}
}

// Lerp interpolates element-wise between t and to.
func (t Transform3D) Lerp(to Transform3D, f float64) Transform3D {
	var out Transform3D
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = lerp(t[i][j], to[i][j], f)
		}
	}
	return out
}

// Apply maps a point through the transform including the perspective
// divide. ok is false when the point lands behind the eye.
func (t Transform3D) Apply(x, y, z float64) (px, py, pz float64, ok bool) {
	px = x*t[0][0] + y*t[1][0] + z*t[2][0] + t[3][0]
	py = x*t[0][1] + y*t[1][1] + z*t[2][1] + t[3][1]
	pz = x*t[0][2] + y*t[1][2] + z*t[2][2] + t[3][2]
	w := x*t[0][3] + y*t[1][3] + z*t[2][3] + t[3][3]
	if w <= 1e-9 {
		return 0, 0, 0, false
	}
	return px / w, py / w, pz / w, true
}

// ProjectRect maps the corners of frame, taken about its centre, through
// t and returns their bounding rectangle. Hosts without 3D rendering use
// it to approximate a transformed layer.
func (t Transform3D) ProjectRect(frame Rect) Rect {
	if t.IsZero() || t.IsIdentity() {
		return frame
	}

	cx, cy := frame.MidX(), frame.MidY()
	hw, hh := frame.W/2, frame.H/2
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	visible := 0
	for _, c := range corners {
		x, y, _, ok := t.Apply(c[0], c[1], 0)
		if !ok {
			continue
		}
		visible++
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	if visible == 0 {
		return Rect{X: cx, Y: cy}
	}

	return Rect{X: cx + minX, Y: cy + minY, W: maxX - minX, H: maxY - minY}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
