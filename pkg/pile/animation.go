package pile

import "time"

// AnimationConfig holds the timing and spring parameters of a transition.
type AnimationConfig struct {
	Duration              time.Duration // Time from start to settled
	Delay                 time.Duration // Time the start state is held before moving
	Damping               float64       // Spring damping ratio; 1 is critically damped
	InitialVelocity       float64       // Starting speed in transition lengths per second
	BeginFromCurrentState bool          // Start from an in-flight presentation instead of the from state
}

// DefaultAnimationConfig returns a 600ms, lightly bouncy spring.
func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		Duration:              600 * time.Millisecond,
		Delay:                 0,
		Damping:               0.6,
		InitialVelocity:       0,
		BeginFromCurrentState: true,
	}
}

// Total returns the delay plus the duration.
func (c AnimationConfig) Total() time.Duration {
	return c.Delay + c.Duration
}
