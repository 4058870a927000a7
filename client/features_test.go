package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureNameTable(t *testing.T) {
	expected := map[string]int{
		"FEATURE_ADAPTIVE_BACKLIGHT":        0x1,
		"FEATURE_COLOR_ENHANCEMENT":         0x2,
		"FEATURE_DISPLAY_COLOR_CALIBRATION": 0x4,
		"FEATURE_DISPLAY_GAMMA_CALIBRATION": 0x8,
		"FEATURE_HIGH_TOUCH_SENSITIVITY":    0x10,
		"FEATURE_KEY_DISABLE":               0x20,
		"FEATURE_LONG_TERM_ORBITS":          0x40,
		"FEATURE_SERIAL_NUMBER":             0x80,
		"FEATURE_SUNLIGHT_ENHANCEMENT":      0x100,
		"FEATURE_VIBRATOR":                  0x400,
		"FEATURE_TOUCH_HOVERING":            0x800,
		"FEATURE_AUTO_CONTRAST":             0x1000,
		"FEATURE_DISPLAY_MODES":             0x2000,
		"FEATURE_READING_ENHANCEMENT":       0x4000,
		"FEATURE_COLOR_BALANCE":             0x20000,
		"FEATURE_PICTURE_ADJUSTMENT":        0x40000,
		"FEATURE_TOUCHSCREEN_GESTURES":      0x80000,
	}
	assert.Equal(t, expected, featureByName)
}

func TestFeatureBitsAreIndependent(t *testing.T) {
	seen := 0
	for name, value := range featureByName {
		assert.Zero(t, seen&value, "feature %s overlaps another bit", name)
		seen |= value
	}
}

func TestBooleanFeatures(t *testing.T) {
	require.Len(t, booleanFeatures, 7)
	for _, feature := range booleanFeatures {
		assert.True(t, isBooleanFeature(feature))
	}
	assert.False(t, isBooleanFeature(FeatureDisplayModes))
	assert.False(t, isBooleanFeature(FeatureVibrator))
	assert.False(t, isBooleanFeature(FeaturePictureAdjustment))
	assert.False(t, isBooleanFeature(0))
}
