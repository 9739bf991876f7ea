package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *stubService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllWhenOneFails(t *testing.T) {
	failing := &stubService{name: "failing", startErr: errors.New("bind failed")}
	blocking := &stubService{name: "blocking", block: true}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	require.EqualError(t, err, "bind failed")
	assert.True(t, failing.stopped.Load())
	assert.True(t, blocking.stopped.Load())
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	blocking := &stubService{name: "blocking", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewRunner(blocking).Run(ctx, time.Second, nil))
	assert.True(t, blocking.stopped.Load())
}

func TestRunnerRejectsEmpty(t *testing.T) {
	assert.Error(t, NewRunner().Run(context.Background(), time.Second, nil))
	assert.Error(t, RunWithOptions(nil, Options{}))
}

func TestNormalizeOptions(t *testing.T) {
	opts := normalizeOptions(Options{Mode: " API "})
	assert.Equal(t, ModeAPI, opts.Mode)
	assert.Equal(t, 10*time.Second, opts.ShutdownTimeout)
	assert.NotNil(t, opts.Logger)

	assert.Equal(t, ModeAll, normalizeOptions(Options{}).Mode)
	assert.False(t, IsValidMode("cron"))
}

func TestBuildRunnerRejectsNilConfig(t *testing.T) {
	_, err := BuildRunner(nil, ModeAll)
	assert.EqualError(t, err, "config is nil")
}
