package reveal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Barrsum/portfolio/internal/logger"
)

// Tracker answers "is this section in view" for every mount, latching the first positive
// observation in its Store.
type Tracker struct {
	store    Store
	ttl      time.Duration
	log      *logger.Logger
	onReveal func(Section)
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker's logger.
func WithLogger(log *logger.Logger) Option {
	return func(t *Tracker) { t.log = log }
}

// WithRevealHook registers fn to run once per latch that fires.
func WithRevealHook(fn func(Section)) Option {
	return func(t *Tracker) { t.onReveal = fn }
}

// WithTTL sets how long idle mounts are kept before Prune forgets them.
func WithTTL(ttl time.Duration) Option {
	return func(t *Tracker) {
		if ttl > 0 {
			t.ttl = ttl
		}
	}
}

// NewTracker returns a tracker backed by store.
func NewTracker(store Store, opts ...Option) *Tracker {
	t := &Tracker{store: store, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Observe records that sectionName of mount is visible at ratio and reports whether the
// section is in view. A section is in view once any observation reached its threshold;
// later observations below the threshold do not undo that. Unknown sections and empty
// mount ids are never in view. Every observation keeps the mount alive.
func (t *Tracker) Observe(ctx context.Context, mount, sectionName string, ratio float64) (bool, error) {
	section, err := ParseSection(sectionName)
	if err != nil || mount == "" {
		return false, nil
	}

	latches, err := t.latches(ctx, mount)
	if err != nil {
		return false, err
	}
	latch := latches[section]

	if ratio >= section.Threshold() && latch.Reveal() {
		changed, err := t.store.MarkRevealed(ctx, mount, section)
		if err != nil {
			return false, fmt.Errorf("mark %s revealed: %w", section, err)
		}
		// A concurrent observation may have stored the latch first.
		if changed {
			t.log.WithFields(map[string]any{"mount": mount, "section": section.String()}).Debug("section revealed")
			if t.onReveal != nil {
				t.onReveal(section)
			}
		}
	}
	return latch.Revealed(), nil
}

// States returns a latch state for every section of mount and keeps the mount alive.
func (t *Tracker) States(ctx context.Context, mount string) (map[Section]State, error) {
	states := make(map[Section]State, len(Sections()))
	if mount == "" {
		for _, s := range Sections() {
			states[s] = NotRevealed
		}
		return states, nil
	}

	latches, err := t.latches(ctx, mount)
	if err != nil {
		return nil, err
	}
	for s, l := range latches {
		states[s] = l.State()
	}
	return states, nil
}

// latches touches mount and loads one latch per section from the store.
func (t *Tracker) latches(ctx context.Context, mount string) (map[Section]*Latch, error) {
	if err := t.store.Touch(ctx, mount); err != nil {
		return nil, fmt.Errorf("touch mount: %w", err)
	}
	revealed, err := t.store.Revealed(ctx, mount)
	if err != nil {
		return nil, fmt.Errorf("load latches for mount: %w", err)
	}

	latches := make(map[Section]*Latch, len(Sections()))
	for _, s := range Sections() {
		initial := NotRevealed
		if revealed[s] {
			initial = Revealed
		}
		latches[s] = NewLatch(initial)
	}
	return latches, nil
}

// Prune forgets mounts idle for longer than the tracker TTL.
func (t *Tracker) Prune(ctx context.Context) (int64, error) {
	return t.store.Prune(ctx, time.Now().Add(-t.ttl))
}

// RunPruner prunes every interval until ctx is done.
func (t *Tracker) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := t.Prune(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					t.log.Error(err, "error pruning reveal latches")
				}
				continue
			}
			if removed > 0 {
				t.log.WithFields(map[string]any{"rows": removed}).Info("pruned idle reveal latches")
			}
		}
	}
}
