package client

// Feature bits reported by the hardware service. Values are fixed by the
// service interface and must not be renumbered.
const (
	// FeatureAdaptiveBacklight covers content-adaptive backlight control
	// (CABL/CABC style dimming).
	FeatureAdaptiveBacklight = 0x1

	// FeatureColorEnhancement is vendor color enhancement.
	FeatureColorEnhancement = 0x2

	// FeatureDisplayColorCalibration is RGB color calibration.
	FeatureDisplayColorCalibration = 0x4

	// FeatureDisplayGammaCalibration is display gamma calibration.
	FeatureDisplayGammaCalibration = 0x8

	// FeatureHighTouchSensitivity raises touch panel sensitivity.
	FeatureHighTouchSensitivity = 0x10

	// FeatureKeyDisable disables hardware navigation keys.
	FeatureKeyDisable = 0x20

	// FeatureLongTermOrbits is long term orbits (LTO) data.
	FeatureLongTermOrbits = 0x40

	// FeatureSerialNumber is a serial number source other than the firmware
	// reported one.
	FeatureSerialNumber = 0x80

	// FeatureSunlightEnhancement improves readability in bright light.
	FeatureSunlightEnhancement = 0x100

	// FeatureVibrator is variable vibrator intensity.
	FeatureVibrator = 0x400

	// FeatureTouchHovering is touchscreen hovering.
	FeatureTouchHovering = 0x800

	// FeatureAutoContrast is automatic contrast.
	FeatureAutoContrast = 0x1000

	// FeatureDisplayModes is vendor display mode presets.
	FeatureDisplayModes = 0x2000

	// FeatureReadingEnhancement is grayscale reading mode.
	FeatureReadingEnhancement = 0x4000

	// FeatureColorBalance is color temperature adjustment.
	FeatureColorBalance = 0x20000

	// FeaturePictureAdjustment is HSIC picture adjustment.
	FeaturePictureAdjustment = 0x40000

	// FeatureTouchscreenGestures is touchscreen gesture support.
	FeatureTouchscreenGestures = 0x80000
)

// booleanFeatures are the features with a plain enable/disable control. Get
// and Set only accept members of this set.
var booleanFeatures = []int{
	FeatureAdaptiveBacklight,
	FeatureColorEnhancement,
	FeatureHighTouchSensitivity,
	FeatureKeyDisable,
	FeatureSunlightEnhancement,
	FeatureTouchHovering,
	FeatureAutoContrast,
}

// featureByName resolves the wire-level feature names used in preference
// constraints. The table is fixed; unknown names are not an error, they just
// resolve to nothing.
var featureByName = map[string]int{
	"FEATURE_ADAPTIVE_BACKLIGHT":        FeatureAdaptiveBacklight,
	"FEATURE_COLOR_ENHANCEMENT":         FeatureColorEnhancement,
	"FEATURE_DISPLAY_COLOR_CALIBRATION": FeatureDisplayColorCalibration,
	"FEATURE_DISPLAY_GAMMA_CALIBRATION": FeatureDisplayGammaCalibration,
	"FEATURE_HIGH_TOUCH_SENSITIVITY":    FeatureHighTouchSensitivity,
	"FEATURE_KEY_DISABLE":               FeatureKeyDisable,
	"FEATURE_LONG_TERM_ORBITS":          FeatureLongTermOrbits,
	"FEATURE_SERIAL_NUMBER":             FeatureSerialNumber,
	"FEATURE_SUNLIGHT_ENHANCEMENT":      FeatureSunlightEnhancement,
	"FEATURE_VIBRATOR":                  FeatureVibrator,
	"FEATURE_TOUCH_HOVERING":            FeatureTouchHovering,
	"FEATURE_AUTO_CONTRAST":             FeatureAutoContrast,
	"FEATURE_DISPLAY_MODES":             FeatureDisplayModes,
	"FEATURE_READING_ENHANCEMENT":       FeatureReadingEnhancement,
	"FEATURE_COLOR_BALANCE":             FeatureColorBalance,
	"FEATURE_PICTURE_ADJUSTMENT":        FeaturePictureAdjustment,
	"FEATURE_TOUCHSCREEN_GESTURES":      FeatureTouchscreenGestures,
}

func isBooleanFeature(feature int) bool {
	for _, f := range booleanFeatures {
		if f == feature {
			return true
		}
	}
	return false
}
