package client

// ServiceName is the well-known name the hardware service registers under.
const ServiceName = "hwservice"

// HardwareService is the remote hardware abstraction surface. Implementations
// forward each call to an out-of-process service; every error returned here
// is a transport failure, never a hardware "no".
type HardwareService interface {
	GetSupportedFeatures() (int, error)
	Get(feature int) (bool, error)
	Set(feature int, enable bool) (bool, error)

	GetDisplayColorCalibration() ([]int, error)
	SetDisplayColorCalibration(rgb []int) (bool, error)

	GetNumGammaControls() (int, error)
	GetDisplayGammaCalibration(control int) ([]int, error)
	SetDisplayGammaCalibration(control int, rgb []int) (bool, error)

	RequireAdaptiveBacklightForSunlightEnhancement() (bool, error)
	IsSunlightEnhancementSelfManaged() (bool, error)

	GetDisplayModes() ([]DisplayMode, error)
	GetCurrentDisplayMode() (*DisplayMode, error)
	GetDefaultDisplayMode() (*DisplayMode, error)
	SetDisplayMode(mode DisplayMode, makeDefault bool) (bool, error)

	GetColorBalanceMin() (int, error)
	GetColorBalanceMax() (int, error)
	GetColorBalance() (int, error)
	SetColorBalance(value int) (bool, error)

	GetPictureAdjustment() (*HSIC, error)
	GetDefaultPictureAdjustment() (*HSIC, error)
	SetPictureAdjustment(hsic HSIC) (bool, error)
	GetPictureAdjustmentRanges() ([]float32, error)

	SetGrayscale(enable bool) (bool, error)
}

// ServiceRegistry resolves a well-known service name to a live service
// handle. A failed lookup returns an error and no handle; callers may retry.
type ServiceRegistry interface {
	Lookup(name string) (HardwareService, error)
}
