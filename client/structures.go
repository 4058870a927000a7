package client

import (
	"cmp"
	"fmt"
)

// DisplayMode is a vendor defined display preset. The id is only meaningful
// to the service that reported it.
type DisplayMode struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (m DisplayMode) String() string {
	return fmt.Sprintf("%s (%d)", m.Name, m.ID)
}

// HSIC is a hue/saturation/intensity/contrast picture adjustment. It is
// copied by value across the service boundary in both directions.
type HSIC struct {
	Hue        float32 `json:"hue"`
	Saturation float32 `json:"saturation"`
	Intensity  float32 `json:"intensity"`
	Contrast   float32 `json:"contrast"`
}

func (h HSIC) String() string {
	return fmt.Sprintf("HSIC={%v %v %v %v}", h.Hue, h.Saturation, h.Intensity, h.Contrast)
}

// Range is a closed interval [Min, Max].
type Range[T cmp.Ordered] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

// Slots of the vibrator intensity array.
const (
	VibratorIntensityIndex = 0
	VibratorDefaultIndex   = 1
	VibratorMinIndex       = 2
	VibratorMaxIndex       = 3
	VibratorWarningIndex   = 4
)

// Slots of the display color calibration array.
const (
	ColorCalibrationRedIndex     = 0
	ColorCalibrationGreenIndex   = 1
	ColorCalibrationBlueIndex    = 2
	ColorCalibrationDefaultIndex = 3
	ColorCalibrationMinIndex     = 4
	ColorCalibrationMaxIndex     = 5
)

// Slots of the display gamma calibration array.
const (
	GammaCalibrationRedIndex   = 0
	GammaCalibrationGreenIndex = 1
	GammaCalibrationBlueIndex  = 2
	GammaCalibrationMinIndex   = 3
	GammaCalibrationMaxIndex   = 4
)
