package hardwareops

import (
	"context"
	"fmt"
	"strconv"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/ngerakines/hardwareops/client"
)

// ProfileConfigSet describes one named hardware profile. String fields are
// skipped when empty so a profile only touches what it names.
type ProfileConfigSet struct {
	DisplayMode   string  `mapstructure:"displaymode"`
	Calibration   string  `mapstructure:"calibration"`
	ColorBalance  string  `mapstructure:"colorbalance"`
	Grayscale     string  `mapstructure:"grayscale"`
	AdjustPicture bool    `mapstructure:"adjustpicture"`
	Hue           float32 `mapstructure:"hue"`
	Saturation    float32 `mapstructure:"saturation"`
	Intensity     float32 `mapstructure:"intensity"`
	Contrast      float32 `mapstructure:"contrast"`
}

// TriggerConfigSet maps one status key/value pair to a profile.
type TriggerConfigSet struct {
	Watch   string `mapstructure:"watch"`
	Value   string `mapstructure:"value"`
	Profile string `mapstructure:"profile"`
}

type profileState struct {
	profile   string
	appliedAt time.Time
	action    Action
}

type ProfileManager struct {
	Profiles map[string]ProfileConfigSet
	Triggers map[string]TriggerConfigSet
	OnStart  string
	OnStop   string

	states map[string]*profileState
}

func NewProfileManager() *ProfileManager {
	return &ProfileManager{
		Profiles: make(map[string]ProfileConfigSet),
		Triggers: make(map[string]TriggerConfigSet),
		states:   make(map[string]*profileState),
	}
}

func (m *ProfileManager) validate() error {
	watched := []string{}
	for name, trigger := range m.Triggers {
		if _, ok := m.Profiles[trigger.Profile]; !ok {
			return fmt.Errorf("Trigger %s references unknown profile %s.", name, trigger.Profile)
		}
		pair := trigger.Watch + "=" + trigger.Value
		if containsString(watched, pair) {
			return fmt.Errorf("Status %s is referenced in multiple triggers.", pair)
		}
		watched = append(watched, pair)
	}
	displayModes := []string{}
	for name, profile := range m.Profiles {
		if profile.DisplayMode != "" {
			if containsString(displayModes, profile.DisplayMode) {
				return fmt.Errorf("Display mode %s is referenced in multiple profiles.", profile.DisplayMode)
			}
			displayModes = append(displayModes, profile.DisplayMode)
		}
		if profile.Calibration != "" {
			if _, err := colorful.Hex(profile.Calibration); err != nil {
				return fmt.Errorf("Profile %s has a bad calibration color: %s", name, profile.Calibration)
			}
		}
		if profile.ColorBalance != "" {
			if _, err := strconv.Atoi(profile.ColorBalance); err != nil {
				return fmt.Errorf("Profile %s has a bad color balance: %s", name, profile.ColorBalance)
			}
		}
		switch profile.Grayscale {
		case "", "on", "off":
		default:
			return fmt.Errorf("Profile %s has a bad grayscale value: %s", name, profile.Grayscale)
		}
	}
	if m.OnStart != "" {
		if _, ok := m.Profiles[m.OnStart]; !ok {
			return fmt.Errorf("Unknown onstart profile %s.", m.OnStart)
		}
	}
	if m.OnStop != "" {
		if _, ok := m.Profiles[m.OnStop]; !ok {
			return fmt.Errorf("Unknown onstop profile %s.", m.OnStop)
		}
	}
	return nil
}

func (m *ProfileManager) Init() error {
	if err := m.validate(); err != nil {
		return err
	}
	for name := range m.Profiles {
		m.states[name] = &profileState{
			profile: name,
			action:  NewNoOpAction(),
		}
	}
	return nil
}

// Match resolves a status key/value pair to the profile a trigger binds it
// to.
func (m *ProfileManager) Match(key, value string) (string, bool) {
	for _, trigger := range m.Triggers {
		if trigger.Watch == key && trigger.Value == value {
			return trigger.Profile, true
		}
	}
	return "", false
}

// Apply replaces the profile's running action with a fresh apply action.
func (m *ProfileManager) Apply(name string, manager client.HardwareManager) error {
	profile, ok := m.Profiles[name]
	if !ok {
		return fmt.Errorf("Unknown profile %s.", name)
	}
	state := m.states[name]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := state.action.Stop(ctx); err != nil {
		return err
	}

	action, err := NewApplyProfileAction(manager, profile)
	if err != nil {
		return err
	}
	state.action = action
	state.appliedAt = time.Now()
	return state.action.Start()
}

func (m *ProfileManager) StartAll(manager client.HardwareManager) error {
	if m.OnStart == "" {
		return nil
	}
	return m.Apply(m.OnStart, manager)
}

func (m *ProfileManager) StopAll(manager client.HardwareManager) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, state := range m.states {
		if err := state.action.Stop(ctx); err != nil {
			return err
		}
	}
	if m.OnStop != "" {
		return m.Apply(m.OnStop, manager)
	}
	return nil
}
