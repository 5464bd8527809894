package pile

import (
	"log/slog"

	"github.com/BrandonKowalski/pile/pkg/pile/internal"
)

// Element is a visual handle the Pile moves between metrics.
// Implementations must be comparable, normally a pointer type, because
// the Pile tracks elements by identity.
type Element interface {
	SetAlpha(alpha float64)
	SetTransform(t Transform3D)
	SetFrame(frame Rect)
}

// Container owns the visual tree elements are attached to.
// Attaching an attached element brings it to the front. Detaching an
// element that is not attached does nothing.
type Container interface {
	Bounds() Rect
	Attach(el Element)
	Detach(el Element)
}

// Executor applies visuals to elements, either at once or over time.
// Animate must call done exactly once, on the goroutine that drives the
// Pile, when done is not nil.
type Executor interface {
	ApplyImmediate(el Element, v Visual)
	Animate(el Element, to Visual, cfg AnimationConfig, done func(finished bool))
}

// Apply sets all three properties of v on el.
func Apply(el Element, v Visual) {
	el.SetFrame(v.Frame)
	el.SetAlpha(v.Alpha)
	el.SetTransform(v.Transform)
}

// Options configures a Pile. Unset fields fall back to the defaults.
type Options struct {
	Active    Metric           // Metric of the shown element (default: DefaultActiveMetric)
	Leading   Metric           // Where pushed elements enter from (default: DefaultLeadingMetric)
	Trailing  Metric           // Where pushed-over elements leave to (default: DefaultTrailingMetric)
	Animation *AnimationConfig // Transition timing (default: DefaultAnimationConfig)
	Logger    *slog.Logger     // Operation logging (default: the internal logger)
}

// WithMetrics returns a copy of o using all three metrics of m.
func (o Options) WithMetrics(m Metrics) Options {
	o.Active, o.Leading, o.Trailing = m.Active, m.Leading, m.Trailing
	return o
}

// Pile is an ordered stack of elements with animated push and pop.
//
// The last element is active. Elements displaced from the top are queued
// for removal and detached one per finished outgoing transition, oldest
// first, unless they have become the top again by then.
//
// A Pile is not safe for concurrent use. All calls, and the executor's
// completions, must happen on one goroutine.
type Pile struct {
	container Container
	exec      Executor
	metrics   Metrics
	animation AnimationConfig
	logger    *slog.Logger

	stack    []Element
	removals []Element
}

// New creates a Pile over container driven by exec. If either is nil
// every operation on the Pile is a no-op.
func New(container Container, exec Executor, opts Options) *Pile {
	p := &Pile{
		container: container,
		exec:      exec,
		metrics:   DefaultMetrics(),
		animation: DefaultAnimationConfig(),
		logger:    opts.Logger,
	}

	if opts.Active != nil {
		p.metrics.Active = opts.Active
	}
	if opts.Leading != nil {
		p.metrics.Leading = opts.Leading
	}
	if opts.Trailing != nil {
		p.metrics.Trailing = opts.Trailing
	}
	if opts.Animation != nil {
		p.animation = *opts.Animation
	}
	if p.logger == nil {
		p.logger = internal.GetInternalLogger()
	}

	return p
}

// Push makes el the active element. The current top, if any, moves to
// the trailing metric and is detached once that transition finishes.
// el is attached immediately and moves from leading to active.
func (p *Pile) Push(el Element, animated bool) {
	if !p.ready() {
		return
	}

	old, hadTop := p.CurrentView()
	if hadTop {
		p.removals = append(p.removals, old)
	}

	p.container.Attach(el)
	p.stack = append(p.stack, el)

	p.logger.Debug("pile: push", "depth", len(p.stack), "pending", len(p.removals), "animated", animated)

	if hadTop {
		p.transition(old, p.metrics.Active, p.metrics.Trailing, animated, p.drainRemoval)
	}
	p.transition(el, p.metrics.Leading, p.metrics.Active, animated, nil)
}

// PushAnimated is Push with animation.
func (p *Pile) PushAnimated(el Element) {
	p.Push(el, true)
}

// Pop removes the active element, sending it to the leading metric, and
// brings the element below it back from the trailing metric. Pop does
// nothing when one element or fewer remain.
func (p *Pile) Pop(animated bool) {
	if !p.ready() || len(p.stack) <= 1 {
		return
	}

	last := len(p.stack) - 1
	old := p.stack[last]
	p.stack[last] = nil
	p.stack = p.stack[:last]
	p.removals = append(p.removals, old)

	p.logger.Debug("pile: pop", "depth", len(p.stack), "pending", len(p.removals), "animated", animated)

	p.transition(old, p.metrics.Active, p.metrics.Leading, animated, p.drainRemoval)

	if top, ok := p.CurrentView(); ok {
		p.container.Attach(top)
		p.transition(top, p.metrics.Trailing, p.metrics.Active, animated, nil)
	}
}

// PopAnimated is Pop with animation.
func (p *Pile) PopAnimated() {
	p.Pop(true)
}

// SetViews replaces the whole stack without animation. The previous top
// is detached at once and the new top is shown at the active metric.
// Transitions already in flight still finish and drain as usual.
func (p *Pile) SetViews(els []Element) {
	if !p.ready() {
		return
	}

	if top, ok := p.CurrentView(); ok {
		p.container.Detach(top)
	}

	p.stack = append(make([]Element, 0, len(els)), els...)

	p.logger.Debug("pile: set views", "depth", len(p.stack), "pending", len(p.removals))

	if top, ok := p.CurrentView(); ok {
		p.container.Attach(top)
		p.transition(top, p.metrics.Leading, p.metrics.Active, false, nil)
	}
}

// Update swaps the active element for el without animation. The old
// element is detached at once and never queued. Update does nothing on
// an empty Pile.
func (p *Pile) Update(el Element) {
	if !p.ready() || len(p.stack) == 0 {
		return
	}

	last := len(p.stack) - 1
	p.container.Detach(p.stack[last])
	p.stack[last] = el
	p.container.Attach(el)

	p.logger.Debug("pile: update", "depth", len(p.stack))

	p.transition(el, p.metrics.Leading, p.metrics.Active, false, nil)
}

// Relayout snaps the active element to the active metric against the
// current bounds. Hosts call it after the container is resized. Elements
// still transitioning off stage are left to finish where they were aimed.
func (p *Pile) Relayout() {
	if !p.ready() {
		return
	}
	if top, ok := p.CurrentView(); ok {
		p.transition(top, p.metrics.Active, p.metrics.Active, false, nil)
	}
}

// CurrentView returns the active element.
func (p *Pile) CurrentView() (Element, bool) {
	if len(p.stack) == 0 {
		return nil, false
	}
	return p.stack[len(p.stack)-1], true
}

// Len returns the number of elements on the stack.
func (p *Pile) Len() int {
	return len(p.stack)
}

// Views returns a copy of the stack, bottom first.
func (p *Pile) Views() []Element {
	return append([]Element(nil), p.stack...)
}

// PendingRemovals returns a copy of the removal queue, oldest first.
func (p *Pile) PendingRemovals() []Element {
	return append([]Element(nil), p.removals...)
}

func (p *Pile) ready() bool {
	return p.container != nil && p.exec != nil
}

// drainRemoval runs once per finished outgoing transition. The queue is
// consumed in the order elements were displaced, not the order their
// transitions finish.
func (p *Pile) drainRemoval(finished bool) {
	if len(p.removals) == 0 {
		return
	}

	el := p.removals[0]
	p.removals[0] = nil
	p.removals = p.removals[1:]

	if top, ok := p.CurrentView(); ok && top == el {
		p.logger.Debug("pile: keeping re-activated element", "pending", len(p.removals), "finished", finished)
		return
	}

	p.container.Detach(el)
	p.logger.Debug("pile: detached", "pending", len(p.removals), "finished", finished)
}

func (p *Pile) transition(el Element, from, to Metric, animated bool, done func(bool)) {
	bounds := p.container.Bounds()
	target := Resolve(to, el, bounds)

	if !animated {
		p.exec.ApplyImmediate(el, target)
		if done != nil {
			done(true)
		}
		return
	}

	p.exec.ApplyImmediate(el, Resolve(from, el, bounds))
	p.exec.Animate(el, target, p.animation, done)
}
