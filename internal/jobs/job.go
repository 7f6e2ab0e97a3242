package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"manufacturing/internal/pkg/metrics"
)

// cronJob runs fn on a cron schedule. A tick that is still running when the
// next one fires causes the next one to be skipped.
type cronJob struct {
	name    string
	spec    string
	timeout time.Duration
	fn      func(ctx context.Context) error
	cron    *cron.Cron
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func newCronJob(
	name, spec string,
	timeout time.Duration,
	fn func(ctx context.Context) error,
	m *metrics.Metrics,
	logger *zap.Logger,
) *cronJob {
	logger = logger.With(zap.String("component", name))
	cl := cronLogger{logger.Sugar()}
	return &cronJob{
		name:    name,
		spec:    spec,
		timeout: timeout,
		fn:      fn,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		metrics: m,
		logger:  logger,
	}
}

func (j *cronJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.tick); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("job started", zap.String("schedule", j.spec))
	return nil
}

// Stop waits for a running tick to finish.
func (j *cronJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("job stopped")
}

func (j *cronJob) tick() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	err := j.fn(ctx)
	j.metrics.IncJobRun(j.name, err)
	if err != nil {
		j.logger.Error("job run failed", zap.Error(err))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
