package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RatingRecomputer is implemented by the store repository.
type RatingRecomputer interface {
	RecomputeAllRatings(ctx context.Context) (int64, error)
}

const ratingSyncTimeout = 2 * time.Minute

// RatingSync rewrites every store's rating and reviews_count from its
// reviews, repairing drift from rows edited outside the API.
type RatingSync struct {
	repo RatingRecomputer
}

func NewRatingSync(repo RatingRecomputer) *RatingSync {
	return &RatingSync{repo: repo}
}

func (j *RatingSync) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), ratingSyncTimeout)
	defer cancel()

	start := time.Now()
	n, err := j.repo.RecomputeAllRatings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("rating sync failed")
		return
	}

	log.Info().
		Int64("stores_fixed", n).
		Dur("took", time.Since(start)).
		Msg("rating sync done")
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Add registers job under spec. An empty spec disables it.
func (s *Scheduler) Add(name, spec string, job cron.Job) error {
	if spec == "" {
		log.Info().Str("job", name).Msg("job disabled")
		return nil
	}
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return err
	}
	log.Info().Str("job", name).Str("spec", spec).Msg("job scheduled")
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
