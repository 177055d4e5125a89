package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/slinet/ehparse/internal/config"
)

func TestRunSpool(t *testing.T) {
	var calls atomic.Int32
	var deadline atomic.Bool
	job := RunnerFunc(func(ctx context.Context) error {
		calls.Add(1)
		_, ok := ctx.Deadline()
		deadline.Store(ok)
		return nil
	})

	s := New(config.SchedulerConfig{}, job, time.Minute, zaptest.NewLogger(t))
	s.runSpool()
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, deadline.Load())

	failing := RunnerFunc(func(context.Context) error { return errors.New("disk full") })
	s = New(config.SchedulerConfig{}, failing, 0, zaptest.NewLogger(t))
	s.runSpool()
}

func TestStart(t *testing.T) {
	noop := RunnerFunc(func(context.Context) error { return nil })

	s := New(config.SchedulerConfig{SpoolEnabled: true, SpoolCron: "not a cron"}, noop, 0, zaptest.NewLogger(t))
	require.Error(t, s.Start())

	s = New(config.SchedulerConfig{SpoolEnabled: true, SpoolCron: "*/5 * * * *"}, noop, 0, zaptest.NewLogger(t))
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()

	s = New(config.SchedulerConfig{SpoolCron: "*/5 * * * *"}, noop, 0, zaptest.NewLogger(t))
	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	s.Stop()
}
