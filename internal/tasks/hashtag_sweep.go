// Package tasks runs background jobs on a cron schedule.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// OrphanSweeper deletes hashtags no article references and reports how many
// were removed.
type OrphanSweeper interface {
	DeleteOrphanedHashtags(ctx context.Context) (int64, error)
}

type SweepRecorder interface {
	RecordSweep(err error)
}

type HashtagSweep struct {
	sweeper  OrphanSweeper
	recorder SweepRecorder
	log      logrus.FieldLogger
	timeout  time.Duration
	cron     *cron.Cron
}

func NewHashtagSweep(sweeper OrphanSweeper, recorder SweepRecorder, log logrus.FieldLogger) *HashtagSweep {
	return &HashtagSweep{
		sweeper:  sweeper,
		recorder: recorder,
		log:      log.WithField("job", "hashtag_sweep"),
		timeout:  time.Minute,
		cron:     cron.New(),
	}
}

// Start schedules the sweep with a standard cron spec or descriptor such as
// "@every 1h". An empty schedule leaves the sweep disabled.
func (h *HashtagSweep) Start(schedule string) error {
	if schedule == "" {
		h.log.Info("hashtag sweep disabled")
		return nil
	}

	if _, err := h.cron.AddFunc(schedule, h.Run); err != nil {
		return fmt.Errorf("schedule hashtag sweep %q: %w", schedule, err)
	}

	h.cron.Start()
	h.log.WithField("schedule", schedule).Info("hashtag sweep scheduled")
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (h *HashtagSweep) Stop() {
	<-h.cron.Stop().Done()
}

// Run performs one sweep.
func (h *HashtagSweep) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	start := time.Now()
	deleted, err := h.sweeper.DeleteOrphanedHashtags(ctx)
	if h.recorder != nil {
		h.recorder.RecordSweep(err)
	}

	if err != nil {
		h.log.WithError(err).Error("hashtag sweep failed")
		return
	}

	h.log.WithFields(logrus.Fields{
		"deleted":  deleted,
		"duration": time.Since(start).String(),
	}).Info("hashtag sweep finished")
}
