package enrich

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/adforge-dev/adforge-admin/internal/platform/logger"
	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

const generateTimeout = 30 * time.Second

// Dispatcher runs persona-prompt generation as detached background work. The
// non-blocking contract is structural: Dispatch hands the profile to a
// bounded queue and returns immediately, and every generation outcome, good
// or bad, ends at a log line. No error ever reaches the create
// path that triggered the enrichment.
type Dispatcher struct {
	gen    Generator
	log    *logger.Logger
	jobs   chan taxonomy.DemographicProfile
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts the worker. queueSize bounds how many pending
// enrichments may pile up before new ones are dropped.
func NewDispatcher(gen Generator, log *logger.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		gen:  gen,
		log:  log,
		jobs: make(chan taxonomy.DemographicProfile, queueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Dispatch enqueues a profile for enrichment. It never blocks and never
// fails; a full or closed queue drops the job with a warning.
func (d *Dispatcher) Dispatch(profile taxonomy.DemographicProfile) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.log.Warn("dispatcher closed, dropping persona prompt job",
			"profile_id", profile.ID, "profile_name", profile.Name)
		return
	}
	select {
	case d.jobs <- profile:
	default:
		d.log.Warn("enrichment queue full, dropping persona prompt job",
			"profile_id", profile.ID, "profile_name", profile.Name)
	}
}

// Close stops accepting work and waits for in-flight generations to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for profile := range d.jobs {
		d.process(profile)
	}
}

func (d *Dispatcher) process(profile taxonomy.DemographicProfile) {
	// Detached from the originating request: the create response has usually
	// already been sent by the time this runs, so the generation gets its own
	// deadline instead of the request's context.
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	artifact, err := d.gen.Generate(ctx, profile)
	if errors.Is(err, ErrNoGenerator) {
		d.log.Debug("persona prompt generation skipped, no generator configured",
			"profile_id", profile.ID)
		return
	}
	if err != nil {
		// The failure is deliberately discarded after logging; enrichment is
		// best-effort and the created record is already final.
		d.log.Warn("persona prompt generation failed",
			"profile_id", profile.ID, "profile_name", profile.Name, "error", err)
		return
	}
	d.log.Info("persona prompt generated",
		"profile_id", artifact.ProfileID, "prompt_chars", len(artifact.Prompt))
}
