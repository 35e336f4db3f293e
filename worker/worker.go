package worker

import (
	"context"

	"github.com/robfig/cron/v3"
)

// Worker runs until ctx is canceled or a fatal error occurs.
type Worker interface {
	Run(ctx context.Context) error
}

type OnWork func() error

// BaseJob cron driven job
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

// Run run the job under its cron schedule until ctx is done.
func (job *BaseJob) Run(ctx context.Context) error {
	job.Cron.Start()
	defer job.Cron.Stop()

	<-ctx.Done()
	return ctx.Err()
}

func (job *BaseJob) run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true
	job.OnWork()
	job.IsRunning = false
}

// Bind registers the job body on the cron schedule.
func (job *BaseJob) Bind(spec string, onWork OnWork) {
	job.OnWork = onWork
	job.Cron.AddFunc(spec, job.run)
}
