package fader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/BeatGlow/fader/pixel"
)

// Scheduler errors.
var (
	ErrInvalidInterval = errors.New("fader: refresh interval must be positive")
)

// SchedulerConfig holds the refresh cadences.
type SchedulerConfig struct {
	// ContentInterval is the minimum time between content refreshes.
	ContentInterval time.Duration

	// FaderInterval is the minimum time between brightness updates.
	FaderInterval time.Duration

	// PollInterval is the delay between ticks in [Scheduler.Run].
	PollInterval time.Duration
}

// DefaultSchedulerConfig refreshes content every 10 seconds and brightness every 100ms.
var DefaultSchedulerConfig = SchedulerConfig{
	ContentInterval: 10 * time.Second,
	FaderInterval:   100 * time.Millisecond,
	PollInterval:    10 * time.Millisecond,
}

// Fired tells which refreshes ran during a tick.
type Fired uint8

// Refresh flags.
const (
	FiredContent Fired = 1 << iota
	FiredFader
)

// Has reports if all refreshes in flag fired.
func (f Fired) Has(flag Fired) bool {
	return f&flag == flag
}

func (f Fired) String() string {
	var names []string
	if f.Has(FiredContent) {
		names = append(names, "content")
	}
	if f.Has(FiredFader) {
		names = append(names, "fader")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// timer gates an action on a minimum interval. An unarmed timer is always due.
type timer struct {
	interval time.Duration
	last     time.Time
	armed    bool
}

func (t *timer) due(now time.Time) bool {
	return !t.armed || now.Sub(t.last) > t.interval
}

func (t *timer) fire(now time.Time) {
	t.last = now
	t.armed = true
}

type binding struct {
	fader  *Fader
	target Target
}

// Scheduler multiplexes the content and fader refreshes onto one cooperative loop.
//
// A Scheduler is not safe for concurrent use; all calls must come from the loop
// that calls [Scheduler.Tick]. Renderers running elsewhere can share a lock with
// the scheduler through [Scheduler.SetLocker].
type Scheduler struct {
	clock      Clock
	brightness BrightnessSource
	content    ContentSource
	bindings   []binding
	locker     sync.Locker
	poll       time.Duration
	contentT   timer
	faderT     timer
}

// NewScheduler creates a scheduler. A nil config uses [DefaultSchedulerConfig] and a
// nil clock uses [SystemClock]. Without a brightness source the faders keep their own
// brightness; without a content source only the fader refresh has an effect.
func NewScheduler(config *SchedulerConfig, clock Clock, brightness BrightnessSource, content ContentSource) (*Scheduler, error) {
	if config == nil {
		config = new(SchedulerConfig)
		*config = DefaultSchedulerConfig
	}
	if config.ContentInterval <= 0 {
		return nil, fmt.Errorf("%w: content interval %s", ErrInvalidInterval, config.ContentInterval)
	}
	if config.FaderInterval <= 0 {
		return nil, fmt.Errorf("%w: fader interval %s", ErrInvalidInterval, config.FaderInterval)
	}
	if clock == nil {
		clock = SystemClock{}
	}

	poll := config.PollInterval
	if poll <= 0 {
		poll = DefaultSchedulerConfig.PollInterval
	}

	return &Scheduler{
		clock:      clock,
		brightness: brightness,
		content:    content,
		poll:       poll,
		contentT:   timer{interval: config.ContentInterval},
		faderT:     timer{interval: config.FaderInterval},
	}, nil
}

// Bind registers a fader to refresh the target on every fader tick.
func (s *Scheduler) Bind(f *Fader, t Target) error {
	if n := t.Len(); n != f.Len() {
		return fmt.Errorf("%w: target has %d colors, fader has %d", ErrLengthMismatch, n, f.Len())
	}
	s.bindings = append(s.bindings, binding{fader: f, target: t})
	return nil
}

// SetLocker sets a lock that is held while faded palettes are written to their targets.
func (s *Scheduler) SetLocker(l sync.Locker) {
	s.locker = l
}

// Reset the refresh timers, so that both refreshes fire on the next tick.
func (s *Scheduler) Reset() {
	s.contentT.armed = false
	s.faderT.armed = false
}

// Tick runs the refreshes that are due. The content refresh runs before the fader
// refresh. If a refresh fails its timer is not advanced, so it is retried on the
// next tick.
func (s *Scheduler) Tick() (fired Fired, err error) {
	now := s.clock.Now()

	if s.contentT.due(now) {
		if s.content != nil {
			if err = s.content.Refresh(); err != nil {
				return fired, fmt.Errorf("fader: content refresh failed: %w", err)
			}
		}
		s.contentT.fire(now)
		fired |= FiredContent
	}

	if s.faderT.due(now) {
		if err = s.refreshFaders(); err != nil {
			return fired, err
		}
		s.faderT.fire(now)
		fired |= FiredFader
	}

	if debug && fired != 0 {
		log.Printf("fader: tick fired %s", fired)
	}
	return fired, nil
}

func (s *Scheduler) refreshFaders() error {
	if s.brightness != nil {
		brightness, err := s.brightness.Read()
		if err != nil {
			return fmt.Errorf("fader: brightness read failed: %w", err)
		}
		if err = checkBrightness(brightness); err != nil {
			return err
		}
		for _, b := range s.bindings {
			if err = b.fader.SetBrightness(brightness); err != nil {
				return err
			}
		}
	}

	// Compute and check everything up front, so a frame is either written
	// completely or not at all.
	palettes := make([]pixel.ColorSet, len(s.bindings))
	for i, b := range s.bindings {
		palettes[i] = b.fader.Palette()
		if n := b.target.Len(); n != len(palettes[i]) {
			return fmt.Errorf("%w: target has %d colors, palette has %d", ErrLengthMismatch, n, len(palettes[i]))
		}
	}

	if s.locker != nil {
		s.locker.Lock()
		defer s.locker.Unlock()
	}
	for i, b := range s.bindings {
		if err := WriteBack(b.target, palettes[i]); err != nil {
			return err
		}
	}
	return nil
}

// Run resets the timers and ticks every poll interval until the context is done or a
// refresh fails. The optional frame function is called after every tick that fired,
// for the host to redraw its display.
func (s *Scheduler) Run(ctx context.Context, frame func(Fired) error) error {
	s.Reset()

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		fired, err := s.Tick()
		if err != nil {
			return err
		}
		if frame != nil && fired != 0 {
			if err = frame(fired); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
