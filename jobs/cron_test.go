package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"hotelpms/services/logger"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarker struct {
	calls atomic.Int32
	n     int
	err   error
}

func (m *fakeMarker) MarkArrivals(ctx context.Context) (int, error) {
	m.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("missing deadline")
	}
	return m.n, m.err
}

func TestInitCronJobs_RequiresMarker(t *testing.T) {
	SetArrivalsMarker(nil)
	err := InitCronJobs(cron.New(), "5 0 * * *", logger.NewNopLogger())
	assert.Error(t, err)
}

func TestInitCronJobs_InvalidSpec(t *testing.T) {
	SetArrivalsMarker(&fakeMarker{})
	t.Cleanup(func() { SetArrivalsMarker(nil) })

	err := InitCronJobs(cron.New(), "every morning", logger.NewNopLogger())
	assert.Error(t, err)
}

func TestInitCronJobs_RegistersArrivalsJob(t *testing.T) {
	marker := &fakeMarker{n: 2}
	SetArrivalsMarker(marker)
	t.Cleanup(func() { SetArrivalsMarker(nil) })

	c := cron.New()
	require.NoError(t, InitCronJobs(c, "5 0 * * *", logger.NewNopLogger()))
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, 1)
	entries[0].Job.Run()
	assert.Equal(t, int32(1), marker.calls.Load())
}

func TestRunArrivals_LogsFailure(t *testing.T) {
	marker := &fakeMarker{err: errors.New("db down")}
	runArrivals(marker, logger.NewNopLogger())
	assert.Equal(t, int32(1), marker.calls.Load())
}
