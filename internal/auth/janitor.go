package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultJanitorSchedule purges refresh tokens every hour.
const DefaultJanitorSchedule = "@hourly"

// Janitor periodically removes expired and revoked refresh tokens.
type Janitor struct {
	store  *UserStore
	cron   *cron.Cron
	logger *zap.Logger
}

// NewJanitor schedules token cleanup with a cron spec such as "@hourly" or
// "0 */6 * * *".
func NewJanitor(store *UserStore, spec string, logger *zap.Logger) (*Janitor, error) {
	j := &Janitor{
		store:  store,
		cron:   cron.New(),
		logger: logger,
	}
	if _, err := j.cron.AddFunc(spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule token janitor %q: %w", spec, err)
	}
	return j, nil
}

// Start begins the schedule in the background.
func (j *Janitor) Start() {
	j.cron.Start()
	j.logger.Info("refresh token janitor started")
}

// Stop halts the schedule and waits for a running cleanup to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce performs a single cleanup pass.
func (j *Janitor) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := j.store.CleanExpiredTokens(ctx, time.Now())
	if err != nil {
		j.logger.Error("refresh token cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		j.logger.Info("refresh tokens purged", zap.Int64("count", n))
	}
}
