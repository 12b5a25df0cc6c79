package suggest

import (
	"time"

	"github.com/google/uuid"
)

// Engine runs a fixed heuristic battery. It holds no mutable state, so one
// Engine may be shared by any number of goroutines.
type Engine struct {
	battery   []Heuristic
	threshold float64
	now       func() time.Time
	newID     func() string
}

// NewEngine builds an engine over battery, or over DefaultBattery when none is given.
func NewEngine(battery ...Heuristic) *Engine {
	if len(battery) == 0 {
		battery = DefaultBattery()
	}
	return &Engine{
		battery:   battery,
		threshold: ReviewThreshold,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// WithReviewThreshold returns a copy of e that flags suggestions below t for review.
func (e *Engine) WithReviewThreshold(t float64) *Engine {
	cp := *e
	cp.threshold = t
	return &cp
}

var defaultEngine = NewEngine()

// Aggregate runs the default battery against q.
func Aggregate(q Question) Suggestion {
	return defaultEngine.Aggregate(q)
}

// Aggregate returns the suggestion with strictly greatest confidence. Ties go
// to the heuristic evaluated first; if nothing scores above zero the result is NoMatch.
func (e *Engine) Aggregate(q Question) Suggestion {
	best := NoMatch
	for _, h := range e.battery {
		if s := h.Evaluate(q); s.Confidence > best.Confidence {
			best = s
		}
	}
	return best
}
