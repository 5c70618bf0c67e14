package canopy

import "math"

// ScrollSource produces the eased scroll state consumed once per tick.
type ScrollSource interface {
	// Render advances the source's smoothing by one step.
	Render()
	// ScrollToRender returns the current eased offset in CSS pixels.
	ScrollToRender() float64
	// SpeedTarget returns the current smoothed velocity magnitude.
	SpeedTarget() float64
}

// Scroller is implemented by scroll sources that accept input. The Scene
// forwards wheel and key events and the scrollable extent to it.
type Scroller interface {
	ScrollBy(dy float64)
	SetLimit(limit float64)
}

// SmoothScroll defaults.
const (
	DefaultScrollEase = 0.1
	speedClamp        = 200.0
	speedSmoothing    = 0.2
)

// SmoothScroll is the default ScrollSource. It chases a target offset with a
// fixed lerp factor per step and derives a normalized speed from the
// remaining distance.
type SmoothScroll struct {
	// Ease is the fraction of the remaining distance covered per step.
	Ease float64

	target  float64
	current float64
	limit   float64
	speed   float64
	speedT  float64
}

// NewSmoothScroll creates a smooth scroller with the default ease.
func NewSmoothScroll() *SmoothScroll {
	return &SmoothScroll{Ease: DefaultScrollEase}
}

// ScrollBy moves the target offset, clamped to [0, limit].
func (s *SmoothScroll) ScrollBy(dy float64) {
	s.target = s.clamp(s.target + dy)
}

// ScrollTo sets the target offset, clamped to [0, limit].
func (s *SmoothScroll) ScrollTo(y float64) {
	s.target = s.clamp(y)
}

// SetLimit sets the maximum scroll offset. Negative limits clamp to 0.
func (s *SmoothScroll) SetLimit(limit float64) {
	s.limit = math.Max(limit, 0)
	s.target = s.clamp(s.target)
}

// Limit returns the maximum scroll offset.
func (s *SmoothScroll) Limit() float64 { return s.limit }

// Target returns the offset the scroller is easing toward.
func (s *SmoothScroll) Target() float64 { return s.target }

func (s *SmoothScroll) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, s.limit))
}

// Render performs one smoothing step.
func (s *SmoothScroll) Render() {
	s.speed = math.Min(math.Abs(s.target-s.current), speedClamp) / speedClamp
	s.current += (s.target - s.current) * s.Ease
	s.speedT += (s.speed - s.speedT) * speedSmoothing
}

// ScrollToRender returns the eased offset.
func (s *SmoothScroll) ScrollToRender() float64 { return s.current }

// SpeedTarget returns the smoothed speed in [0, 1].
func (s *SmoothScroll) SpeedTarget() float64 { return s.speedT }
