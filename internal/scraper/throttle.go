package scraper

import (
	"math/rand/v2"
	"time"

	"github.com/mkarpinski/stadiums/internal/logger"
)

// Throttle is a randomized post-operation delay band applied between detail
// fetches to respect the source site's rate limits.
type Throttle struct {
	Min time.Duration
	Max time.Duration
}

// DefaultThrottle matches the band the site has tolerated well so far.
var DefaultThrottle = Throttle{Min: 800 * time.Millisecond, Max: 1500 * time.Millisecond}

// Sleep blocks for a duration sampled uniformly from the band.
func (t Throttle) Sleep() {
	delay := t.Min
	if t.Max > t.Min {
		delay = t.Min + rand.N(t.Max-t.Min)
	}
	if delay <= 0 {
		return
	}
	logger.Debug("throttling", logger.Fields{"delay": delay.String()})
	time.Sleep(delay)
}
