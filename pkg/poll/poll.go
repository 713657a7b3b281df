package poll

import (
	"context"
	"time"
)

// DefaultInterval replaces non-positive intervals.
const DefaultInterval = 4 * time.Second

// CheckFunc reports whether polling can stop.
type CheckFunc func(ctx context.Context) (bool, error)

type Poller struct {
	Interval time.Duration
	MaxPolls int
}

func New(interval time.Duration, maxPolls int) *Poller {
	if maxPolls < 1 {
		maxPolls = 1
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{Interval: interval, MaxPolls: maxPolls}
}

// Until runs check immediately and then once per interval until it returns true,
// returns an error, the poll budget is spent, or ctx is done.
// It returns the number of checks made and whether check ever returned true.
func (p *Poller) Until(ctx context.Context, check CheckFunc) (int, bool, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		done, err := check(ctx)
		if err != nil {
			return attempt, false, err
		}
		if done {
			return attempt, true, nil
		}
		if attempt >= p.MaxPolls {
			return attempt, false, nil
		}

		select {
		case <-ctx.Done():
			return attempt, false, ctx.Err()
		case <-ticker.C:
		}
	}
}
