package hardwareops

import (
	"context"
	"fmt"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/ngerakines/hardwareops/client"
	log "github.com/sirupsen/logrus"
)

type Action interface {
	Start() error
	Stop(ctx context.Context) error
}

type noOpAction struct {
}

type applyProfileAction struct {
	profile ProfileConfigSet

	manager client.HardwareManager
}

func NewNoOpAction() Action {
	return &noOpAction{}
}

func NewApplyProfileAction(manager client.HardwareManager, profile ProfileConfigSet) (Action, error) {
	if profile.Calibration != "" {
		color, err := colorful.Hex(profile.Calibration)
		if err != nil {
			return nil, err
		}
		if !color.IsValid() {
			return nil, fmt.Errorf("error: color %s is invalid", profile.Calibration)
		}
	}
	return &applyProfileAction{profile, manager}, nil
}

func (a *applyProfileAction) Start() error {
	if a.profile.DisplayMode != "" {
		if err := a.applyDisplayMode(); err != nil {
			return err
		}
	}
	if a.profile.Calibration != "" {
		if err := a.applyCalibration(); err != nil {
			return err
		}
	}
	if a.profile.ColorBalance != "" {
		value, err := strconv.Atoi(a.profile.ColorBalance)
		if err != nil {
			return err
		}
		if !a.manager.SetColorBalance(value) {
			log.WithField("value", value).Warn("Color balance was not accepted.")
		}
	}
	if a.profile.Grayscale != "" {
		if !a.manager.SetGrayscale(a.profile.Grayscale == "on") {
			log.WithField("grayscale", a.profile.Grayscale).Warn("Grayscale was not accepted.")
		}
	}
	if a.profile.AdjustPicture {
		hsic := client.HSIC{
			Hue:        a.profile.Hue,
			Saturation: a.profile.Saturation,
			Intensity:  a.profile.Intensity,
			Contrast:   a.profile.Contrast,
		}
		if !a.manager.SetPictureAdjustment(hsic) {
			log.WithField("hsic", hsic.String()).Warn("Picture adjustment was not accepted.")
		}
	}
	return nil
}

func (a *applyProfileAction) applyDisplayMode() error {
	for _, mode := range a.manager.GetDisplayModes() {
		if mode.Name == a.profile.DisplayMode {
			if !a.manager.SetDisplayMode(mode, false) {
				log.WithField("mode", mode.Name).Warn("Display mode was not accepted.")
			}
			return nil
		}
	}
	return fmt.Errorf("error: display mode %s not found", a.profile.DisplayMode)
}

func (a *applyProfileAction) applyCalibration() error {
	color, err := colorful.Hex(a.profile.Calibration)
	if err != nil {
		return err
	}
	r, g, b := color.Clamped().RGB255()

	min := a.manager.GetDisplayColorCalibrationMin()
	max := a.manager.GetDisplayColorCalibrationMax()
	rgb := scaleCalibration([]byte{r, g, b}, min, max)
	log.WithFields(log.Fields{
		"hex": color.Hex(),
		"r":   rgb[0],
		"g":   rgb[1],
		"b":   rgb[2],
	}).Debug("Setting display color calibration")
	if !a.manager.SetDisplayColorCalibration(rgb) {
		log.WithField("hex", color.Hex()).Warn("Color calibration was not accepted.")
	}
	return nil
}

// scaleCalibration maps 8-bit channel values onto the device's calibration
// interval. A degenerate interval passes the raw channel values through.
func scaleCalibration(channels []byte, min, max int) []int {
	out := make([]int, len(channels))
	for i, c := range channels {
		if max <= min {
			out[i] = int(c)
			continue
		}
		out[i] = min + int(c)*(max-min)/255
	}
	return out
}

func (a *applyProfileAction) Stop(ctx context.Context) error {
	log.WithField("action", "applyprofile").Info("Stopping")
	return nil
}

func (noOpAction) Start() error {
	return nil
}

func (noOpAction) Stop(ctx context.Context) error {
	log.WithField("action", "noOpAction").Info("Stopping")
	return nil
}

// ResetAll restores the default display mode and calibration, used when the
// daemon hands the hardware back.
func ResetAll(manager client.HardwareManager) error {
	if mode := manager.GetDefaultDisplayMode(); mode != nil {
		if !manager.SetDisplayMode(*mode, false) {
			log.WithField("mode", mode.Name).Warn("Default display mode was not accepted.")
		}
	}
	def := manager.GetDisplayColorCalibrationDefault()
	if def > 0 {
		if !manager.SetDisplayColorCalibration([]int{def, def, def}) {
			log.WithField("value", def).Warn("Default color calibration was not accepted.")
		}
	}
	return nil
}
