package remote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartJobsDisabled(t *testing.T) {
	h := newRemoteHarness(t)

	s, err := startJobs(h.r, 0)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestStartJobs(t *testing.T) {
	h := newRemoteHarness(t)

	s, err := startJobs(h.r, time.Hour)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Len(t, s.Jobs(), 1)
	assert.NoError(t, s.Shutdown())
}
