package pile

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElement struct {
	name      string
	alpha     float64
	transform Transform3D
	frame     Rect
}

func (e *fakeElement) SetAlpha(alpha float64)     { e.alpha = alpha }
func (e *fakeElement) SetTransform(t Transform3D) { e.transform = t }
func (e *fakeElement) SetFrame(frame Rect)        { e.frame = frame }

func (e *fakeElement) visual() Visual {
	return Visual{Alpha: e.alpha, Transform: e.transform, Frame: e.frame}
}

type fakeContainer struct {
	bounds   Rect
	attached []Element
	detaches int
}

func (c *fakeContainer) Bounds() Rect { return c.bounds }

func (c *fakeContainer) Attach(el Element) {
	c.remove(el)
	c.attached = append(c.attached, el)
}

func (c *fakeContainer) Detach(el Element) {
	c.detaches++
	c.remove(el)
}

func (c *fakeContainer) remove(el Element) {
	c.attached = slices.DeleteFunc(c.attached, func(e Element) bool { return e == el })
}

func (c *fakeContainer) isAttached(el Element) bool {
	return slices.Contains(c.attached, el)
}

type animateCall struct {
	el   Element
	to   Visual
	done func(bool)
}

// manualExecutor applies immediate visuals and holds animations until the
// test completes them.
type manualExecutor struct {
	animations []animateCall
}

func (x *manualExecutor) ApplyImmediate(el Element, v Visual) {
	Apply(el, v)
}

func (x *manualExecutor) Animate(el Element, to Visual, _ AnimationConfig, done func(bool)) {
	x.animations = append(x.animations, animateCall{el: el, to: to, done: done})
}

// complete finishes the i-th outstanding animation.
func (x *manualExecutor) complete(i int) {
	call := x.animations[i]
	x.animations = slices.Delete(x.animations, i, i+1)
	Apply(call.el, call.to)
	if call.done != nil {
		call.done(true)
	}
}

// completeRemovals finishes every removal-bearing animation in order.
func (x *manualExecutor) completeRemovals() {
	for i := 0; i < len(x.animations); {
		if x.animations[i].done == nil {
			i++
			continue
		}
		x.complete(i)
	}
}

func newTestPile(t *testing.T) (*Pile, *fakeContainer, *manualExecutor) {
	t.Helper()
	container := &fakeContainer{bounds: Rect{W: 100, H: 30}}
	exec := &manualExecutor{}
	return New(container, exec, Options{}), container, exec
}

func elements(names ...string) []*fakeElement {
	out := make([]*fakeElement, len(names))
	for i, n := range names {
		out[i] = &fakeElement{name: n}
	}
	return out
}

func activeVisual(bounds Rect) Visual {
	return Visual{Alpha: 1, Transform: Identity3D(), Frame: bounds}
}

func TestSetViews(t *testing.T) {
	t.Parallel()

	t.Run("shows only the last view", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("first", "second")

		p.SetViews([]Element{els[0], els[1]})

		require.Equal(t, []Element{els[0], els[1]}, p.Views())
		require.False(t, container.isAttached(els[0]))
		require.True(t, container.isAttached(els[1]))
		require.Equal(t, activeVisual(container.bounds), els[1].visual())
		require.Empty(t, exec.animations)
	})

	t.Run("detaches the previous top", func(t *testing.T) {
		t.Parallel()
		p, container, _ := newTestPile(t)
		els := elements("a", "b", "c")

		p.SetViews([]Element{els[0], els[1]})
		p.SetViews([]Element{els[2]})

		require.False(t, container.isAttached(els[1]))
		require.True(t, container.isAttached(els[2]))
		require.Equal(t, 1, p.Len())
	})

	t.Run("empty clears the stack", func(t *testing.T) {
		t.Parallel()
		p, container, _ := newTestPile(t)
		els := elements("a")

		p.SetViews([]Element{els[0]})
		p.SetViews(nil)

		_, ok := p.CurrentView()
		require.False(t, ok)
		require.Empty(t, container.attached)
	})

	t.Run("leaves in-flight removals to drain", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("a", "b", "c")

		p.SetViews([]Element{els[0]})
		p.PushAnimated(els[1])
		p.SetViews([]Element{els[2]})

		require.Equal(t, []Element{els[0]}, p.PendingRemovals())

		exec.completeRemovals()
		require.Empty(t, p.PendingRemovals())
		require.False(t, container.isAttached(els[0]))
		require.True(t, container.isAttached(els[2]))
	})

	t.Run("does not alias the caller's slice", func(t *testing.T) {
		t.Parallel()
		p, _, _ := newTestPile(t)
		els := elements("a", "b")
		in := []Element{els[0]}

		p.SetViews(in)
		in[0] = els[1]

		top, _ := p.CurrentView()
		require.Same(t, els[0], top)
	})
}

func TestPush(t *testing.T) {
	t.Parallel()

	t.Run("appends and queues the previous top", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("first", "second")

		p.SetViews([]Element{els[0]})
		p.PushAnimated(els[1])

		require.Equal(t, []Element{els[0], els[1]}, p.Views())
		require.Equal(t, []Element{els[0]}, p.PendingRemovals())
		require.True(t, container.isAttached(els[1]))
		require.True(t, container.isAttached(els[0]), "outgoing view stays until its transition finishes")

		exec.completeRemovals()

		require.False(t, container.isAttached(els[0]))
		require.Empty(t, p.PendingRemovals())
	})

	t.Run("starts from the leading and trailing metrics", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("first", "second")
		bounds := container.bounds

		p.SetViews([]Element{els[0]})
		p.PushAnimated(els[1])

		require.Len(t, exec.animations, 2)
		outgoing, incoming := exec.animations[0], exec.animations[1]

		require.Same(t, els[0], outgoing.el)
		require.Equal(t, bounds.OffsetBy(0, bounds.H), outgoing.to.Frame)
		require.Zero(t, outgoing.to.Alpha)
		require.NotNil(t, outgoing.done)

		require.Same(t, els[1], incoming.el)
		require.Equal(t, activeVisual(bounds), incoming.to)
		require.Nil(t, incoming.done, "entering views never drain the removal queue")

		// The incoming view sits at the leading metric until it animates.
		require.Equal(t, bounds.OffsetBy(0, -bounds.H), els[1].frame)
		require.Zero(t, els[1].alpha)
	})

	t.Run("onto an empty pile queues nothing", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("only")

		p.PushAnimated(els[0])

		require.Equal(t, []Element{els[0]}, p.Views())
		require.Empty(t, p.PendingRemovals())
		require.True(t, container.isAttached(els[0]))
		require.Len(t, exec.animations, 1)
	})

	t.Run("twice with the same view keeps it attached", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("first", "second")

		p.SetViews([]Element{els[0]})
		p.PushAnimated(els[1])
		p.PushAnimated(els[1])

		require.Equal(t, []Element{els[0], els[1], els[1]}, p.Views())
		require.Equal(t, []Element{els[0], els[1]}, p.PendingRemovals())

		exec.completeRemovals()

		require.Empty(t, p.PendingRemovals())
		require.True(t, container.isAttached(els[1]))
		require.False(t, container.isAttached(els[0]))
		top, _ := p.CurrentView()
		require.Same(t, els[1], top)
	})

	t.Run("drains in displacement order when completions arrive out of order", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("a", "b", "c")

		p.SetViews([]Element{els[0]})
		p.PushAnimated(els[1]) // animations: a out, b in
		p.PushAnimated(els[2]) // animations: b out, c in

		// Finish b's exit before a's.
		exec.complete(2)
		require.Equal(t, []Element{els[1]}, p.PendingRemovals())
		require.False(t, container.isAttached(els[0]), "the head of the queue is drained, not the finished element")
		require.True(t, container.isAttached(els[1]))

		exec.complete(0)
		require.Empty(t, p.PendingRemovals())
		require.False(t, container.isAttached(els[1]))
		require.True(t, container.isAttached(els[2]))
	})

	t.Run("without animation detaches the previous top at once", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("first", "second")

		p.SetViews([]Element{els[0]})
		p.Push(els[1], false)

		require.Empty(t, exec.animations)
		require.Empty(t, p.PendingRemovals())
		require.False(t, container.isAttached(els[0]))
		require.True(t, container.isAttached(els[1]))
		require.Equal(t, activeVisual(container.bounds), els[1].visual())
	})
}

func TestPop(t *testing.T) {
	t.Parallel()

	t.Run("reveals the previous view", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("first", "second")

		p.SetViews([]Element{els[0], els[1]})
		p.PopAnimated()

		top, ok := p.CurrentView()
		require.True(t, ok)
		require.Same(t, els[0], top)
		require.Equal(t, []Element{els[1]}, p.PendingRemovals())
		require.True(t, container.isAttached(els[0]))

		exec.completeRemovals()

		require.False(t, container.isAttached(els[1]))
		require.Empty(t, p.PendingRemovals())
	})

	t.Run("reverses the push directions", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("first", "second")
		bounds := container.bounds

		p.SetViews([]Element{els[0], els[1]})
		p.PopAnimated()

		require.Len(t, exec.animations, 2)
		outgoing, incoming := exec.animations[0], exec.animations[1]

		require.Same(t, els[1], outgoing.el)
		require.Equal(t, bounds.OffsetBy(0, -bounds.H), outgoing.to.Frame, "popped views leave toward the leading metric")

		require.Same(t, els[0], incoming.el)
		require.Equal(t, bounds.OffsetBy(0, bounds.H), els[0].frame, "revealed views enter from the trailing metric")
		require.Equal(t, activeVisual(bounds), incoming.to)
	})

	t.Run("with one view does nothing", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("first")

		p.SetViews([]Element{els[0]})
		p.PopAnimated()

		require.Equal(t, 1, p.Len())
		top, _ := p.CurrentView()
		require.Same(t, els[0], top)
		require.Empty(t, p.PendingRemovals())
		require.Empty(t, exec.animations)
		require.True(t, container.isAttached(els[0]))
	})

	t.Run("on an empty pile does nothing", func(t *testing.T) {
		t.Parallel()
		p, _, exec := newTestPile(t)

		p.PopAnimated()

		require.Zero(t, p.Len())
		require.Empty(t, exec.animations)
	})

	t.Run("onto a duplicate of itself keeps it attached", func(t *testing.T) {
		t.Parallel()
		p, container, _ := newTestPile(t)
		els := elements("first", "second")

		p.SetViews([]Element{els[0], els[1], els[1]})
		p.Pop(false)

		require.Equal(t, []Element{els[0], els[1]}, p.Views())
		require.Empty(t, p.PendingRemovals())
		require.True(t, container.isAttached(els[1]))
	})

	t.Run("racing a push resolves to the pushed view", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("a", "b", "c")

		p.SetViews([]Element{els[0], els[1]})
		p.PopAnimated()
		p.PushAnimated(els[2])

		require.Equal(t, []Element{els[0], els[2]}, p.Views())
		require.Equal(t, []Element{els[1], els[0]}, p.PendingRemovals())

		exec.completeRemovals()

		require.False(t, container.isAttached(els[0]))
		require.False(t, container.isAttached(els[1]))
		require.True(t, container.isAttached(els[2]))
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("replaces the top without animation", func(t *testing.T) {
		t.Parallel()
		p, container, exec := newTestPile(t)
		els := elements("first", "second")

		p.SetViews([]Element{els[0]})
		p.Update(els[1])

		require.Equal(t, []Element{els[1]}, p.Views())
		require.False(t, container.isAttached(els[0]))
		require.True(t, container.isAttached(els[1]))
		require.Equal(t, activeVisual(container.bounds), els[1].visual())
		require.Empty(t, p.PendingRemovals())
		require.Empty(t, exec.animations)
	})

	t.Run("only touches the top", func(t *testing.T) {
		t.Parallel()
		p, _, _ := newTestPile(t)
		els := elements("a", "b", "c")

		p.SetViews([]Element{els[0], els[1]})
		p.Update(els[2])

		require.Equal(t, []Element{els[0], els[2]}, p.Views())
	})

	t.Run("on an empty pile does nothing", func(t *testing.T) {
		t.Parallel()
		p, container, _ := newTestPile(t)
		els := elements("a")

		p.Update(els[0])

		require.Zero(t, p.Len())
		require.Empty(t, container.attached)
	})
}

func TestNonAnimatedApplicationIsExact(t *testing.T) {
	t.Parallel()
	p, container, _ := newTestPile(t)
	els := elements("a", "b", "c")
	want := activeVisual(container.bounds)

	for i := 0; i < 3; i++ {
		p.SetViews([]Element{els[0], els[1]})
		require.Equal(t, want, els[1].visual())

		p.Update(els[2])
		require.Equal(t, want, els[2].visual())
	}
}

func TestMetricsFollowBounds(t *testing.T) {
	t.Parallel()
	p, container, exec := newTestPile(t)
	els := elements("a", "b")

	p.SetViews([]Element{els[0]})
	container.bounds = Rect{W: 400, H: 200}
	p.PushAnimated(els[1])

	require.Equal(t, Rect{W: 400, H: 200}, exec.animations[1].to.Frame)
	require.Equal(t, Rect{Y: 200, W: 400, H: 200}, exec.animations[0].to.Frame)
}

func TestZeroBoundsDegrade(t *testing.T) {
	t.Parallel()
	container := &fakeContainer{}
	p := New(container, Immediate{}, Options{})
	el := &fakeElement{}

	p.PushAnimated(el)
	p.Update(el)

	require.Equal(t, Rect{}, el.frame)
	require.Equal(t, 1.0, el.alpha)
}

func TestRelayout(t *testing.T) {
	t.Parallel()
	p, container, exec := newTestPile(t)
	els := elements("a", "b")

	p.SetViews([]Element{els[0]})
	p.PushAnimated(els[1])

	container.bounds = Rect{W: 320, H: 240}
	p.Relayout()

	require.Equal(t, activeVisual(container.bounds), els[1].visual())
	require.Len(t, exec.animations, 2, "relayout never animates")
	require.NotEqual(t, container.bounds, els[0].frame, "off-stage views are left alone")
}

func TestMissingCollaborators(t *testing.T) {
	t.Parallel()
	els := elements("a", "b")

	t.Run("nil container", func(t *testing.T) {
		t.Parallel()
		p := New(nil, Immediate{}, Options{})

		p.SetViews([]Element{els[0]})
		p.PushAnimated(els[1])
		p.PopAnimated()
		p.Update(els[1])
		p.Relayout()

		require.Zero(t, p.Len())
		require.Empty(t, p.PendingRemovals())
	})

	t.Run("nil executor", func(t *testing.T) {
		t.Parallel()
		container := &fakeContainer{}
		p := New(container, nil, Options{})

		p.PushAnimated(els[0])

		require.Zero(t, p.Len())
		require.Empty(t, container.attached)
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	anim := AnimationConfig{Duration: 1}
	container := &fakeContainer{bounds: Rect{W: 200, H: 100}}
	exec := &manualExecutor{}
	p := New(container, exec, Options{Animation: &anim}.WithMetrics(FlipMetrics()))
	els := elements("a", "b")

	p.SetViews([]Element{els[0]})
	p.PushAnimated(els[1])

	// Flip leading starts half a width to the right.
	assert.Equal(t, Rect{X: 100, W: 200, H: 100}, els[1].frame)
	assert.Equal(t, Rect{X: -100, W: 200, H: 100}, exec.animations[0].to.Frame)
	assert.Equal(t, FlipRotation(0), exec.animations[1].to.Transform)
	assert.Equal(t, anim, p.animation)
}

func TestDrainOnEmptyQueue(t *testing.T) {
	t.Parallel()
	p, container, _ := newTestPile(t)

	require.NotPanics(t, func() { p.drainRemoval(true) })
	require.Zero(t, container.detaches)
}
