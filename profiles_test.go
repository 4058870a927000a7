package hardwareops

import (
	"testing"

	"github.com/ngerakines/hardwareops/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileManagerValidate(t *testing.T) {
	m := NewProfileManager()
	m.Profiles["reading"] = ProfileConfigSet{Grayscale: "on"}
	m.Profiles["movie"] = ProfileConfigSet{DisplayMode: "cinema"}
	m.Triggers["reading-session"] = TriggerConfigSet{Watch: "activity", Value: "reading", Profile: "reading"}
	m.Triggers["movie-night"] = TriggerConfigSet{Watch: "activity", Value: "movie", Profile: "movie"}

	require.NoError(t, m.Init())
	assert.Len(t, m.states, 2)
}

func TestProfileManagerValidateUnknownProfile(t *testing.T) {
	m := NewProfileManager()
	m.Triggers["broken"] = TriggerConfigSet{Watch: "activity", Value: "reading", Profile: "missing"}
	assert.Error(t, m.Init())
}

func TestProfileManagerValidateDuplicateTrigger(t *testing.T) {
	m := NewProfileManager()
	m.Profiles["a"] = ProfileConfigSet{}
	m.Profiles["b"] = ProfileConfigSet{}
	m.Triggers["one"] = TriggerConfigSet{Watch: "activity", Value: "reading", Profile: "a"}
	m.Triggers["two"] = TriggerConfigSet{Watch: "activity", Value: "reading", Profile: "b"}
	assert.Error(t, m.Init())
}

func TestProfileManagerValidateDuplicateDisplayMode(t *testing.T) {
	m := NewProfileManager()
	m.Profiles["movie"] = ProfileConfigSet{DisplayMode: "cinema"}
	m.Profiles["theater"] = ProfileConfigSet{DisplayMode: "cinema"}
	assert.Error(t, m.Init())
}

func TestProfileManagerValidateBadValues(t *testing.T) {
	m := NewProfileManager()
	m.Profiles["bad-color"] = ProfileConfigSet{Calibration: "red"}
	assert.Error(t, m.Init())

	m = NewProfileManager()
	m.Profiles["bad-balance"] = ProfileConfigSet{ColorBalance: "warm"}
	assert.Error(t, m.Init())

	m = NewProfileManager()
	m.Profiles["bad-grayscale"] = ProfileConfigSet{Grayscale: "maybe"}
	assert.Error(t, m.Init())

	m = NewProfileManager()
	m.OnStart = "missing"
	assert.Error(t, m.Init())
}

func TestProfileManagerMatch(t *testing.T) {
	m := NewProfileManager()
	m.Profiles["reading"] = ProfileConfigSet{Grayscale: "on"}
	m.Triggers["reading-session"] = TriggerConfigSet{Watch: "activity", Value: "reading", Profile: "reading"}
	require.NoError(t, m.Init())

	profile, ok := m.Match("activity", "reading")
	assert.True(t, ok)
	assert.Equal(t, "reading", profile)

	_, ok = m.Match("activity", "gaming")
	assert.False(t, ok)
	_, ok = m.Match("location", "reading")
	assert.False(t, ok)
}

func TestProfileManagerApply(t *testing.T) {
	manager := &stubManager{}
	m := NewProfileManager()
	m.Profiles["reading"] = ProfileConfigSet{Grayscale: "on"}
	require.NoError(t, m.Init())

	require.NoError(t, m.Apply("reading", manager))
	assert.Equal(t, []bool{true}, manager.appliedGrayscale)
	assert.False(t, m.states["reading"].appliedAt.IsZero())

	assert.Error(t, m.Apply("missing", manager))
}

func TestProfileManagerStartStop(t *testing.T) {
	manager := &stubManager{}
	m := NewProfileManager()
	m.Profiles["day"] = ProfileConfigSet{ColorBalance: "0"}
	m.Profiles["night"] = ProfileConfigSet{ColorBalance: "60"}
	m.OnStart = "day"
	m.OnStop = "night"
	require.NoError(t, m.Init())

	require.NoError(t, m.StartAll(manager))
	require.NoError(t, m.StopAll(manager))
	assert.Equal(t, []int{0, 60}, manager.balanceValues())
}

var _ client.HardwareManager = (*stubManager)(nil)
