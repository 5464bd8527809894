package pile

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

// DefaultFPS is the frame rate an Animator steps at when none is given.
const DefaultFPS = 60

// settleEnvelope is the exponent of the spring's decay envelope at the
// end of the configured duration; e^-4 leaves under 2% of the motion.
const settleEnvelope = 4.0

// Animator is a frame-stepped Executor. Each transition moves a progress
// value from 0 to 1 along a damped spring and interpolates between the
// start and target visuals, so underdamped springs overshoot the target.
//
// The host calls Advance (or Step) from its render loop; completions run
// inside those calls. Animator is not safe for concurrent use.
type Animator struct {
	fps    int
	frame  time.Duration
	carry  time.Duration
	tweens []*tween

	driving map[Element]*tween
	staged  map[Element]Visual
	caught  map[Element]Visual
}

type tween struct {
	el       Element
	from, to Visual
	shown    Visual
	spring   harmonica.Spring
	pos, vel float64
	delay    time.Duration
	duration time.Duration
	elapsed  time.Duration
	done     func(bool)

	// superseded tweens no longer move their element but still complete
	// at their own deadline, reporting finished=false.
	superseded bool
}

// NewAnimator returns an Animator stepping at fps frames per second.
func NewAnimator(fps int) *Animator {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Animator{
		fps:     fps,
		frame:   time.Second / time.Duration(fps),
		driving: make(map[Element]*tween),
		staged:  make(map[Element]Visual),
		caught:  make(map[Element]Visual),
	}
}

// FPS returns the step rate.
func (a *Animator) FPS() int {
	return a.fps
}

// FrameDuration returns the time one Step covers.
func (a *Animator) FrameDuration() time.Duration {
	return a.frame
}

// ApplyImmediate sets v on el. Any transition driving el stops moving
// it; its presented state is remembered so an Animate call that follows
// in the same frame can begin from it.
func (a *Animator) ApplyImmediate(el Element, v Visual) {
	if t, ok := a.driving[el]; ok {
		t.superseded = true
		a.caught[el] = t.shown
		delete(a.driving, el)
	}
	a.staged[el] = v
	Apply(el, v)
}

// Animate starts a transition of el to the target visual. It starts from
// the visual last applied with ApplyImmediate in this frame, or from the
// state of an interrupted transition when cfg.BeginFromCurrentState is set.
func (a *Animator) Animate(el Element, to Visual, cfg AnimationConfig, done func(finished bool)) {
	from := to
	if v, ok := a.staged[el]; ok {
		from = v
	}

	if t, ok := a.driving[el]; ok {
		t.superseded = true
		a.caught[el] = t.shown
		delete(a.driving, el)
	}
	if cfg.BeginFromCurrentState {
		if v, ok := a.caught[el]; ok {
			from = v
		}
	}
	delete(a.caught, el)
	delete(a.staged, el)

	t := &tween{
		el:       el,
		from:     from,
		to:       to,
		shown:    from,
		vel:      cfg.InitialVelocity,
		delay:    max(cfg.Delay, 0),
		duration: max(cfg.Duration, 0),
		done:     done,
	}
	t.spring = harmonica.NewSpring(harmonica.FPS(a.fps), angularFrequency(cfg), dampingRatio(cfg))

	Apply(el, from)
	a.driving[el] = t
	a.tweens = append(a.tweens, t)
}

// Active returns the number of transitions not yet completed, including
// superseded ones.
func (a *Animator) Active() int {
	return len(a.tweens)
}

// Advance moves time forward by dt, stepping whole frames. Leftover time
// carries into the next call. A clock that went backwards steps nothing.
// It returns the number of frames stepped.
func (a *Animator) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	a.carry += dt
	steps := 0
	for a.carry >= a.frame {
		a.carry -= a.frame
		a.Step()
		steps++
	}
	return steps
}

// Step advances every transition by one frame and runs the completions
// of those that reached their deadline, oldest first.
func (a *Animator) Step() {
	clear(a.staged)
	clear(a.caught)

	var finished []*tween
	live := a.tweens[:0]
	for _, t := range a.tweens {
		if t.step(a.frame) {
			finished = append(finished, t)
			continue
		}
		live = append(live, t)
	}
	for i := len(live); i < len(a.tweens); i++ {
		a.tweens[i] = nil
	}
	a.tweens = live

	a.complete(finished)
}

// Flush completes every outstanding transition at its target, including
// transitions started by completions while flushing.
func (a *Animator) Flush() {
	for len(a.tweens) > 0 {
		pending := a.tweens
		a.tweens = nil
		for _, t := range pending {
			t.settle()
		}
		a.complete(pending)
	}
	a.carry = 0
}

func (a *Animator) complete(finished []*tween) {
	for _, t := range finished {
		if a.driving[t.el] == t {
			delete(a.driving, t.el)
		}
	}
	for _, t := range finished {
		if t.done != nil {
			t.done(!t.superseded)
		}
	}
}

// step advances the tween by dt and reports whether it has ended.
func (t *tween) step(dt time.Duration) bool {
	t.elapsed += dt
	if t.elapsed >= t.delay+t.duration {
		t.settle()
		return true
	}
	if t.elapsed <= t.delay {
		return false
	}

	t.pos, t.vel = t.spring.Update(t.pos, t.vel, 1)
	t.shown = t.from.Lerp(t.to, t.pos)
	if !t.superseded {
		Apply(t.el, t.shown)
	}
	return false
}

func (t *tween) settle() {
	t.pos, t.vel = 1, 0
	t.shown = t.to
	if !t.superseded {
		Apply(t.el, t.to)
	}
}

func dampingRatio(cfg AnimationConfig) float64 {
	return max(cfg.Damping, 0.05)
}

// angularFrequency picks the spring stiffness so its motion has settled
// by the end of cfg.Duration.
func angularFrequency(cfg AnimationConfig) float64 {
	secs := cfg.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return settleEnvelope / (min(dampingRatio(cfg), 1) * secs)
}
