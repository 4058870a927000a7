package hardwareops

import (
	"context"
	"testing"
	"time"

	"github.com/ngerakines/hardwareops/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorSnapshot(t *testing.T) {
	manager := &stubManager{
		features:    client.FeatureDisplayModes | client.FeatureColorBalance,
		currentMode: &client.DisplayMode{ID: 2, Name: "cinema"},
		balance:     25,
	}
	m := &monitor{manager: manager}

	status := m.snapshot(time.Now())
	assert.Equal(t, "0x22000", status["features"])
	assert.Equal(t, "cinema", status["displaymode"])
	assert.Equal(t, "25", status["colorbalance"])
	assert.NotEmpty(t, status["time"])
}

func TestMonitorSnapshotWithoutDisplayMode(t *testing.T) {
	m := &monitor{manager: &stubManager{}}

	status := m.snapshot(time.Now())
	assert.Equal(t, "0x0", status["features"])
	assert.Equal(t, "0", status["colorbalance"])
	_, ok := status["displaymode"]
	assert.False(t, ok)
}

func TestMonitorPublishesSnapshots(t *testing.T) {
	manager := &stubManager{
		currentMode: &client.DisplayMode{ID: 0, Name: "standard"},
	}
	ferry := make(chan StatusMap)
	server := &monitor{
		statusDestination: ferry,
		manager:           manager,
		ticker:            time.NewTicker(10 * time.Millisecond),
		stop:              make(chan struct{}),
	}

	done := make(chan error, 1)
	go func() {
		done <- server.Run()
	}()

	select {
	case status := <-ferry:
		assert.Equal(t, "standard", status["displaymode"])
	case <-time.After(time.Second):
		t.Fatal("no snapshot published")
	}

	require.NoError(t, server.Shutdown(context.Background()))
	require.NoError(t, <-done)
}
