package client

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNotBooleanFeature is returned by Get and Set for features without a
// simple enable/disable control. It signals a caller bug; every other failure
// mode is absorbed into the documented default values.
var ErrNotBooleanFeature = errors.New("feature does not have an on/off control")

// HardwareManager exposes the hardware service to application code. All
// accessors degrade to zero/false/nil results when the service is unreachable
// so callers never have to distinguish "unsupported" from "unavailable".
type HardwareManager interface {
	GetSupportedFeatures() int
	IsSupported(feature int) bool
	IsSupportedName(feature string) bool
	Get(feature int) (bool, error)
	Set(feature int, enable bool) (bool, error)

	GetDisplayColorCalibration() []int
	GetDisplayColorCalibrationDefault() int
	GetDisplayColorCalibrationMin() int
	GetDisplayColorCalibrationMax() int
	SetDisplayColorCalibration(rgb []int) bool

	GetNumGammaControls() int
	GetDisplayGammaCalibration(control int) []int
	GetDisplayGammaCalibrationMin() int
	GetDisplayGammaCalibrationMax() int
	SetDisplayGammaCalibration(control int, rgb []int) bool

	RequireAdaptiveBacklightForSunlightEnhancement() bool
	IsSunlightEnhancementSelfManaged() bool

	GetDisplayModes() []DisplayMode
	GetCurrentDisplayMode() *DisplayMode
	GetDefaultDisplayMode() *DisplayMode
	SetDisplayMode(mode DisplayMode, makeDefault bool) bool

	GetColorBalanceRange() Range[int]
	GetColorBalance() int
	SetColorBalance(value int) bool

	GetPictureAdjustment() *HSIC
	GetDefaultPictureAdjustment() *HSIC
	SetPictureAdjustment(hsic HSIC) bool
	GetPictureAdjustmentRanges() []Range[float32]

	SetGrayscale(enable bool) bool
}

type hardwareManager struct {
	registry ServiceRegistry

	mu      sync.Mutex
	service HardwareService
}

var (
	instanceMu sync.Mutex
	instance   *hardwareManager
)

// GetInstance returns the process-wide manager, creating it on first call.
// Resolution of the service handle is re-attempted on every call until it
// succeeds; a failed lookup is never cached.
func GetInstance(registry ServiceRegistry) HardwareManager {
	instanceMu.Lock()
	if instance == nil {
		instance = &hardwareManager{registry: registry}
	}
	m := instance
	instanceMu.Unlock()
	m.resolveService()
	return m
}

// New creates a standalone manager. Most callers want GetInstance; New exists
// for hosts that manage their own lifecycle.
func New(registry ServiceRegistry) HardwareManager {
	m := &hardwareManager{registry: registry}
	m.resolveService()
	return m
}

// resolveService returns the cached handle, performing the registry lookup if
// none is cached yet. Safe to call repeatedly and concurrently.
func (m *hardwareManager) resolveService() HardwareService {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.service != nil {
		return m.service
	}
	svc, err := m.registry.Lookup(ServiceName)
	if err != nil {
		log.WithError(err).Debug("hardware service lookup failed")
		return nil
	}
	m.service = svc
	return m.service
}

// checkService returns the cached handle or nil. It deliberately does not
// retry the lookup; accessors short-circuit to their defaults instead.
func (m *hardwareManager) checkService() HardwareService {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.service == nil {
		log.Warn("not connected to hardware service")
		return nil
	}
	return m.service
}

func (m *hardwareManager) GetSupportedFeatures() int {
	svc := m.checkService()
	if svc == nil {
		return 0
	}
	features, err := svc.GetSupportedFeatures()
	if err != nil {
		log.WithError(err).Debug("getSupportedFeatures failed")
		return 0
	}
	return features
}

// IsSupported reports whether the device supports the given feature.
func (m *hardwareManager) IsSupported(feature int) bool {
	return feature == (m.GetSupportedFeatures() & feature)
}

// IsSupportedName is the string-keyed form used by preference constraints.
// Names must carry the FEATURE_ prefix; unknown names resolve to false
// without touching the service.
func (m *hardwareManager) IsSupportedName(feature string) bool {
	if !strings.HasPrefix(feature, "FEATURE_") {
		return false
	}
	value, ok := featureByName[feature]
	if !ok {
		log.WithField("feature", feature).Debug("unknown hardware feature name")
		return false
	}
	return m.IsSupported(value)
}

// Get reports whether a boolean feature is currently enabled.
func (m *hardwareManager) Get(feature int) (bool, error) {
	if !isBooleanFeature(feature) {
		return false, errors.Wrapf(ErrNotBooleanFeature, "feature 0x%x", feature)
	}
	svc := m.checkService()
	if svc == nil {
		return false, nil
	}
	enabled, err := svc.Get(feature)
	if err != nil {
		log.WithError(err).WithField("feature", feature).Debug("get failed")
		return false, nil
	}
	return enabled, nil
}

// Set enables or disables a boolean feature.
func (m *hardwareManager) Set(feature int, enable bool) (bool, error) {
	if !isBooleanFeature(feature) {
		return false, errors.Wrapf(ErrNotBooleanFeature, "feature 0x%x", feature)
	}
	svc := m.checkService()
	if svc == nil {
		return false, nil
	}
	ok, err := svc.Set(feature, enable)
	if err != nil {
		log.WithError(err).WithField("feature", feature).Debug("set failed")
		return false, nil
	}
	return ok, nil
}

func arrayValue(arr []int, idx, defaultValue int) int {
	if len(arr) <= idx {
		return defaultValue
	}
	return arr[idx]
}

func (m *hardwareManager) displayColorCalibrationArray() []int {
	svc := m.checkService()
	if svc == nil {
		return nil
	}
	arr, err := svc.GetDisplayColorCalibration()
	if err != nil {
		log.WithError(err).Debug("getDisplayColorCalibration failed")
		return nil
	}
	return arr
}

// GetDisplayColorCalibration returns the current RGB calibration as exactly
// [R, G, B], or nil when the service reports fewer than 3 slots.
func (m *hardwareManager) GetDisplayColorCalibration() []int {
	arr := m.displayColorCalibrationArray()
	if len(arr) < 3 {
		return nil
	}
	rgb := make([]int, 3)
	copy(rgb, arr)
	return rgb
}

// GetDisplayColorCalibrationDefault returns the default value for all colors.
func (m *hardwareManager) GetDisplayColorCalibrationDefault() int {
	return arrayValue(m.displayColorCalibrationArray(), ColorCalibrationDefaultIndex, 0)
}

// GetDisplayColorCalibrationMin returns the minimum value for all colors.
func (m *hardwareManager) GetDisplayColorCalibrationMin() int {
	return arrayValue(m.displayColorCalibrationArray(), ColorCalibrationMinIndex, 0)
}

// GetDisplayColorCalibrationMax returns the maximum value for all colors.
func (m *hardwareManager) GetDisplayColorCalibrationMax() int {
	return arrayValue(m.displayColorCalibrationArray(), ColorCalibrationMaxIndex, 0)
}

// SetDisplayColorCalibration sets the display calibration to the given RGB
// triplet. Values are forwarded as-is; acceptance is up to the service.
func (m *hardwareManager) SetDisplayColorCalibration(rgb []int) bool {
	svc := m.checkService()
	if svc == nil {
		return false
	}
	ok, err := svc.SetDisplayColorCalibration(rgb)
	if err != nil {
		log.WithError(err).Debug("setDisplayColorCalibration failed")
		return false
	}
	return ok
}

func (m *hardwareManager) displayGammaCalibrationArray(control int) []int {
	svc := m.checkService()
	if svc == nil {
		return nil
	}
	arr, err := svc.GetDisplayGammaCalibration(control)
	if err != nil {
		log.WithError(err).WithField("control", control).Debug("getDisplayGammaCalibration failed")
		return nil
	}
	return arr
}

// GetNumGammaControls returns the number of RGB gamma controls the device
// exposes.
func (m *hardwareManager) GetNumGammaControls() int {
	svc := m.checkService()
	if svc == nil {
		return 0
	}
	n, err := svc.GetNumGammaControls()
	if err != nil {
		log.WithError(err).Debug("getNumGammaControls failed")
		return 0
	}
	return n
}

// GetDisplayGammaCalibration returns the RGB gamma calibration for the given
// control, or nil when fewer than 3 slots are reported.
func (m *hardwareManager) GetDisplayGammaCalibration(control int) []int {
	arr := m.displayGammaCalibrationArray(control)
	if len(arr) < 3 {
		return nil
	}
	rgb := make([]int, 3)
	copy(rgb, arr)
	return rgb
}

// GetDisplayGammaCalibrationMin returns the minimum gamma value, read from
// control 0.
func (m *hardwareManager) GetDisplayGammaCalibrationMin() int {
	return arrayValue(m.displayGammaCalibrationArray(0), GammaCalibrationMinIndex, 0)
}

// GetDisplayGammaCalibrationMax returns the maximum gamma value, read from
// control 0.
func (m *hardwareManager) GetDisplayGammaCalibrationMax() int {
	return arrayValue(m.displayGammaCalibrationArray(0), GammaCalibrationMaxIndex, 0)
}

// SetDisplayGammaCalibration sets the gamma calibration for one control.
func (m *hardwareManager) SetDisplayGammaCalibration(control int, rgb []int) bool {
	svc := m.checkService()
	if svc == nil {
		return false
	}
	ok, err := svc.SetDisplayGammaCalibration(control, rgb)
	if err != nil {
		log.WithError(err).WithField("control", control).Debug("setDisplayGammaCalibration failed")
		return false
	}
	return ok
}

// RequireAdaptiveBacklightForSunlightEnhancement reports whether adaptive
// backlight must be on for sunlight enhancement to work.
func (m *hardwareManager) RequireAdaptiveBacklightForSunlightEnhancement() bool {
	svc := m.checkService()
	if svc == nil {
		return false
	}
	required, err := svc.RequireAdaptiveBacklightForSunlightEnhancement()
	if err != nil {
		log.WithError(err).Debug("requireAdaptiveBacklightForSunlightEnhancement failed")
		return false
	}
	return required
}

// IsSunlightEnhancementSelfManaged reports whether the implementation does
// its own lux metering.
func (m *hardwareManager) IsSunlightEnhancementSelfManaged() bool {
	svc := m.checkService()
	if svc == nil {
		return false
	}
	selfManaged, err := svc.IsSunlightEnhancementSelfManaged()
	if err != nil {
		log.WithError(err).Debug("isSunlightEnhancementSelfManaged failed")
		return false
	}
	return selfManaged
}

// GetDisplayModes returns the available display modes.
func (m *hardwareManager) GetDisplayModes() []DisplayMode {
	svc := m.checkService()
	if svc == nil {
		return nil
	}
	modes, err := svc.GetDisplayModes()
	if err != nil {
		log.WithError(err).Debug("getDisplayModes failed")
		return nil
	}
	return modes
}

// GetCurrentDisplayMode returns the active display mode.
func (m *hardwareManager) GetCurrentDisplayMode() *DisplayMode {
	svc := m.checkService()
	if svc == nil {
		return nil
	}
	mode, err := svc.GetCurrentDisplayMode()
	if err != nil {
		log.WithError(err).Debug("getCurrentDisplayMode failed")
		return nil
	}
	return mode
}

// GetDefaultDisplayMode returns the display mode applied on boot.
func (m *hardwareManager) GetDefaultDisplayMode() *DisplayMode {
	svc := m.checkService()
	if svc == nil {
		return nil
	}
	mode, err := svc.GetDefaultDisplayMode()
	if err != nil {
		log.WithError(err).Debug("getDefaultDisplayMode failed")
		return nil
	}
	return mode
}

// SetDisplayMode switches to the given mode, optionally making it the boot
// default.
func (m *hardwareManager) SetDisplayMode(mode DisplayMode, makeDefault bool) bool {
	svc := m.checkService()
	if svc == nil {
		return false
	}
	ok, err := svc.SetDisplayMode(mode, makeDefault)
	if err != nil {
		log.WithError(err).WithField("mode", mode.Name).Debug("setDisplayMode failed")
		return false
	}
	return ok
}

// GetColorBalanceRange returns the valid interval for color temperature
// adjustments. Unreachable bounds read as 0.
func (m *hardwareManager) GetColorBalanceRange() Range[int] {
	min := 0
	max := 0
	if svc := m.checkService(); svc != nil {
		if v, err := svc.GetColorBalanceMin(); err == nil {
			min = v
			if v, err := svc.GetColorBalanceMax(); err == nil {
				max = v
			} else {
				log.WithError(err).Debug("getColorBalanceMax failed")
			}
		} else {
			log.WithError(err).Debug("getColorBalanceMin failed")
		}
	}
	return Range[int]{Min: min, Max: max}
}

// GetColorBalance returns the current color balance value.
func (m *hardwareManager) GetColorBalance() int {
	svc := m.checkService()
	if svc == nil {
		return 0
	}
	value, err := svc.GetColorBalance()
	if err != nil {
		log.WithError(err).Debug("getColorBalance failed")
		return 0
	}
	return value
}

// SetColorBalance sets the color balance. The value should fall within
// GetColorBalanceRange but is forwarded unchecked.
func (m *hardwareManager) SetColorBalance(value int) bool {
	svc := m.checkService()
	if svc == nil {
		return false
	}
	ok, err := svc.SetColorBalance(value)
	if err != nil {
		log.WithError(err).WithField("value", value).Debug("setColorBalance failed")
		return false
	}
	return ok
}

// GetPictureAdjustment returns the current picture adjustment.
func (m *hardwareManager) GetPictureAdjustment() *HSIC {
	svc := m.checkService()
	if svc == nil {
		return nil
	}
	hsic, err := svc.GetPictureAdjustment()
	if err != nil {
		log.WithError(err).Debug("getPictureAdjustment failed")
		return nil
	}
	return hsic
}

// GetDefaultPictureAdjustment returns the default picture adjustment for the
// current mode.
func (m *hardwareManager) GetDefaultPictureAdjustment() *HSIC {
	svc := m.checkService()
	if svc == nil {
		return nil
	}
	hsic, err := svc.GetDefaultPictureAdjustment()
	if err != nil {
		log.WithError(err).Debug("getDefaultPictureAdjustment failed")
		return nil
	}
	return hsic
}

// SetPictureAdjustment sets the hue/saturation/intensity/contrast.
func (m *hardwareManager) SetPictureAdjustment(hsic HSIC) bool {
	svc := m.checkService()
	if svc == nil {
		return false
	}
	ok, err := svc.SetPictureAdjustment(hsic)
	if err != nil {
		log.WithError(err).Debug("setPictureAdjustment failed")
		return false
	}
	return ok
}

// GetPictureAdjustmentRanges returns the valid intervals for hue, saturation,
// intensity, contrast and the optional fifth adjustment. The result is nil
// unless the service reports at least 8 bounds; a missing fifth pair reads as
// [0, 0].
func (m *hardwareManager) GetPictureAdjustmentRanges() []Range[float32] {
	svc := m.checkService()
	if svc == nil {
		return nil
	}
	bounds, err := svc.GetPictureAdjustmentRanges()
	if err != nil {
		log.WithError(err).Debug("getPictureAdjustmentRanges failed")
		return nil
	}
	if len(bounds) <= 7 {
		return nil
	}
	ranges := []Range[float32]{
		{Min: bounds[0], Max: bounds[1]},
		{Min: bounds[2], Max: bounds[3]},
		{Min: bounds[4], Max: bounds[5]},
		{Min: bounds[6], Max: bounds[7]},
	}
	if len(bounds) > 9 {
		ranges = append(ranges, Range[float32]{Min: bounds[8], Max: bounds[9]})
	} else {
		ranges = append(ranges, Range[float32]{})
	}
	return ranges
}

// SetGrayscale enables or disables grayscale reading mode.
func (m *hardwareManager) SetGrayscale(enable bool) bool {
	svc := m.checkService()
	if svc == nil {
		return false
	}
	ok, err := svc.SetGrayscale(enable)
	if err != nil {
		log.WithError(err).WithField("enable", enable).Debug("setGrayscale failed")
		return false
	}
	return ok
}
