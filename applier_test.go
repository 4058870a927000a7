package hardwareops

import (
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfileManager(t *testing.T) *ProfileManager {
	t.Helper()
	m := NewProfileManager()
	m.Profiles["reading"] = ProfileConfigSet{Grayscale: "on"}
	m.Triggers["reading-session"] = TriggerConfigSet{Watch: "activity", Value: "reading", Profile: "reading"}
	require.NoError(t, m.Init())
	return m
}

func TestApplierValidate(t *testing.T) {
	viper.Set("validate.status", false)
	p := &applier{
		profileManager:  newTestProfileManager(t),
		hardwareManager: &stubManager{},
		stop:            make(chan struct{}),
	}

	matches := p.validate(StatusMap{
		"activity": "reading",
		"presence": "away",
		"location": "http://localhost:8080/",
		"time":     time.Now().String(),
	})
	require.Len(t, matches, 1)
	assert.Equal(t, "reading", matches[0].profile)
	assert.Equal(t, "activity", matches[0].key)
}

func TestApplierAppliesProfiles(t *testing.T) {
	viper.Set("validate.status", false)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	ferry := make(chan StatusMap)
	manager := &stubManager{}
	profileManager := newTestProfileManager(t)

	done := make(chan error, 1)
	go func() {
		done <- NewApplier(stop, &wg, ferry, profileManager, manager)
	}()

	ferry <- StatusMap{"activity": "reading"}

	assert.Eventually(t, func() bool {
		return len(manager.grayscaleValues()) == 1
	}, time.Second, 10*time.Millisecond)

	close(stop)
	wg.Wait()
	require.NoError(t, <-done)
}
