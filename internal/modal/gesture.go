package modal

import (
	"math"
	"time"
)

// GestureConfig holds the swipe thresholds in cells
type GestureConfig struct {
	MinDistance int
	// MinVelocity is in cells per millisecond
	MinVelocity   float64
	MaxDuration   time.Duration
	CloseDistance int
}

// DefaultGestureConfig returns thresholds tuned for mouse drags
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		MinDistance:   6,
		MinVelocity:   0.02,
		MaxDuration:   600 * time.Millisecond,
		CloseDistance: 8,
	}
}

func (c GestureConfig) withDefaults() GestureConfig {
	def := DefaultGestureConfig()
	if c.MinDistance <= 0 {
		c.MinDistance = def.MinDistance
	}
	if c.MinVelocity <= 0 {
		c.MinVelocity = def.MinVelocity
	}
	if c.MaxDuration <= 0 {
		c.MaxDuration = def.MaxDuration
	}
	if c.CloseDistance <= 0 {
		c.CloseDistance = def.CloseDistance
	}
	return c
}

// Point is a terminal cell
type Point struct {
	X, Y int
}

// Gesture is one press, drag, release sequence
type Gesture struct {
	Start    Point
	End      Point
	Duration time.Duration
}

// GestureKind is the classification of a Gesture
type GestureKind int

const (
	GestureTap GestureKind = iota
	GesturePrevious
	GestureNext
	GestureClose
)

func (k GestureKind) String() string {
	switch k {
	case GesturePrevious:
		return "previous"
	case GestureNext:
		return "next"
	case GestureClose:
		return "close"
	default:
		return "tap"
	}
}

// Classify decides what a gesture means. A swipe must travel more than the minimum distance,
// the minimum average velocity and must finish within the maximum duration.
// Horizontal swipes navigate (right is previous, left is next); a downward
// swipe longer than CloseDistance closes. Anything else is a tap.
func Classify(g Gesture, cfg GestureConfig) GestureKind {
	cfg = cfg.withDefaults()

	dx := float64(g.End.X - g.Start.X)
	dy := float64(g.End.Y - g.Start.Y)
	distance := math.Hypot(dx, dy)

	ms := float64(g.Duration) / float64(time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	velocity := distance / ms

	if distance <= float64(cfg.MinDistance) || velocity < cfg.MinVelocity || g.Duration > cfg.MaxDuration {
		return GestureTap
	}

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return GesturePrevious
		}
		return GestureNext
	}
	if dy > float64(cfg.CloseDistance) {
		return GestureClose
	}
	return GestureTap
}

// HandleGesture classifies g and acts on it while open
func (n *Navigator) HandleGesture(g Gesture) GestureKind {
	if !n.isOpen {
		return GestureTap
	}
	kind := Classify(g, n.gestures)
	switch kind {
	case GesturePrevious:
		n.Navigate(-1)
	case GestureNext:
		n.Navigate(1)
	case GestureClose:
		n.Close()
	}
	return kind
}

// Tracker assembles a mouse press and release into a Gesture
type Tracker struct {
	active  bool
	start   Point
	started time.Time
}

// Press starts a gesture
func (t *Tracker) Press(p Point, at time.Time) {
	t.active = true
	t.start = p
	t.started = at
}

// Release ends the gesture. ok is false if no press was seen.
func (t *Tracker) Release(p Point, at time.Time) (g Gesture, ok bool) {
	if !t.active {
		return Gesture{}, false
	}
	t.active = false
	return Gesture{Start: t.start, End: p, Duration: at.Sub(t.started)}, true
}

// Active reports whether a press is in progress
func (t *Tracker) Active() bool {
	return t.active
}
