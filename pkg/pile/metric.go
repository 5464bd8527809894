package pile

import "math"

// Metric describes how an element looks in one role of a transition:
// fully shown (active), about to enter (leading) or just left (trailing).
// Implementations must be pure. A metric is evaluated every time a
// transition starts, against the container bounds at that moment.
type Metric interface {
	Alpha() float64
	Transform() Transform3D
	Frame(el Element, bounds Rect) Rect
}

// Metrics groups the three metrics a Pile transitions between.
type Metrics struct {
	Active   Metric
	Leading  Metric
	Trailing Metric
}

// DefaultMetrics returns the vertical slide-and-fade metrics.
func DefaultMetrics() Metrics {
	return Metrics{
		Active:   DefaultActiveMetric(),
		Leading:  DefaultLeadingMetric(),
		Trailing: DefaultTrailingMetric(),
	}
}

// Visual is a metric resolved against concrete bounds.
type Visual struct {
	Alpha     float64
	Transform Transform3D
	Frame     Rect
}

// Resolve evaluates m for el inside bounds.
func Resolve(m Metric, el Element, bounds Rect) Visual {
	t := m.Transform()
	if t.IsZero() {
		t = Identity3D()
	}
	return Visual{
		Alpha:     m.Alpha(),
		Transform: t,
		Frame:     m.Frame(el, bounds),
	}
}

// Lerp interpolates between v and to.
func (v Visual) Lerp(to Visual, t float64) Visual {
	return Visual{
		Alpha:     lerp(v.Alpha, to.Alpha, t),
		Transform: v.Transform.Lerp(to.Transform, t),
		Frame:     v.Frame.Lerp(to.Frame, t),
	}
}

// OffsetMetric places the element over the container bounds shifted by
// DX widths and DY heights. A zero Transform3D is treated as identity.
type OffsetMetric struct {
	Opacity     float64
	Transform3D Transform3D
	DX, DY      float64
}

func (m OffsetMetric) Alpha() float64 { return m.Opacity }

func (m OffsetMetric) Transform() Transform3D {
	if m.Transform3D.IsZero() {
		return Identity3D()
	}
	return m.Transform3D
}

func (m OffsetMetric) Frame(_ Element, bounds Rect) Rect {
	return bounds.OffsetBy(m.DX*bounds.W, m.DY*bounds.H)
}

// DefaultActiveMetric is fully opaque and fills the container.
func DefaultActiveMetric() OffsetMetric {
	return OffsetMetric{Opacity: 1, Transform3D: Identity3D()}
}

// DefaultLeadingMetric is transparent, one container height above.
func DefaultLeadingMetric() OffsetMetric {
	return OffsetMetric{Opacity: 0, Transform3D: Identity3D(), DY: -1}
}

// DefaultTrailingMetric is transparent, one container height below.
func DefaultTrailingMetric() OffsetMetric {
	return OffsetMetric{Opacity: 0, Transform3D: Identity3D(), DY: 1}
}

// FrameFunc computes a frame from the element and the container bounds.
type FrameFunc func(el Element, bounds Rect) Rect

// FuncMetric is a Metric whose frame comes from a function, for hosts
// that size elements from their content.
type FuncMetric struct {
	Opacity     float64
	Transform3D Transform3D
	FrameFunc   FrameFunc
}

func (m FuncMetric) Alpha() float64 { return m.Opacity }

func (m FuncMetric) Transform() Transform3D {
	if m.Transform3D.IsZero() {
		return Identity3D()
	}
	return m.Transform3D
}

func (m FuncMetric) Frame(el Element, bounds Rect) Rect {
	if m.FrameFunc == nil {
		return bounds
	}
	return m.FrameFunc(el, bounds)
}

// FlipPerspective is the eye distance used by FlipMetrics.
const FlipPerspective = 1000

// FlipRotation returns a rotation about the y axis viewed through
// FlipPerspective.
func FlipRotation(angle float64) Transform3D {
	return Rotation3D(angle, 0, 1, 0).Concat(Perspective(FlipPerspective))
}

// FlipMetrics rotates elements in from the right and out to the left,
// shifted half a width each way.
func FlipMetrics() Metrics {
	return Metrics{
		Active:   FlipActiveMetric(),
		Leading:  FlipLeadingMetric(),
		Trailing: FlipTrailingMetric(),
	}
}

// FlipActiveMetric faces the viewer under the flip perspective.
func FlipActiveMetric() OffsetMetric {
	return OffsetMetric{Opacity: 1, Transform3D: FlipRotation(0)}
}

// FlipLeadingMetric is turned edge-on, half a width to the right.
func FlipLeadingMetric() OffsetMetric {
	return OffsetMetric{Opacity: 0, Transform3D: FlipRotation(math.Pi / 2), DX: 0.5}
}

// FlipTrailingMetric is turned edge-on the other way, half a width to the left.
func FlipTrailingMetric() OffsetMetric {
	return OffsetMetric{Opacity: 0, Transform3D: FlipRotation(-math.Pi / 2), DX: -0.5}
}
