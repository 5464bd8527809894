package pile

// Immediate is an Executor without animation. Animate applies the target
// and reports completion before returning.
type Immediate struct{}

func (Immediate) ApplyImmediate(el Element, v Visual) {
	Apply(el, v)
}

func (Immediate) Animate(el Element, to Visual, _ AnimationConfig, done func(finished bool)) {
	Apply(el, to)
	if done != nil {
		done(true)
	}
}
