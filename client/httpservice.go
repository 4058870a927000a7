package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

var serviceBaseURL = "/api/v1"

// httpService forwards every operation as a JSON POST to a hardware service
// host. It is the default HardwareService transport.
type httpService struct {
	address    string
	httpClient *http.Client
}

// NewHTTPService creates a service handle talking to the given host address,
// e.g. "http://10.0.0.5:7066".
func NewHTTPService(address string) HardwareService {
	return &httpService{
		address: address,
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
	}
}

func (s *httpService) call(op string, payload, target interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		dat, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrapf(err, "could not encode request: %s", op)
		}
		body = bytes.NewReader(dat)
	} else {
		body = bytes.NewReader(nil)
	}
	url := s.address + serviceBaseURL + "/" + op
	request, err := http.NewRequest("POST", url, body)
	if err != nil {
		return errors.Wrapf(err, "could not create request: %s", url)
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := s.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return errors.Errorf("bad status code from hardware service: %d", response.StatusCode)
	}
	return json.NewDecoder(response.Body).Decode(target)
}

func (s *httpService) GetSupportedFeatures() (int, error) {
	dat := &struct {
		Features int `json:"features"`
	}{}
	if err := s.call("getSupportedFeatures", nil, dat); err != nil {
		return 0, err
	}
	return dat.Features, nil
}

func (s *httpService) Get(feature int) (bool, error) {
	req := &struct {
		Feature int `json:"feature"`
	}{feature}
	dat := &struct {
		Enabled bool `json:"enabled"`
	}{}
	if err := s.call("get", req, dat); err != nil {
		return false, err
	}
	return dat.Enabled, nil
}

func (s *httpService) Set(feature int, enable bool) (bool, error) {
	req := &struct {
		Feature int  `json:"feature"`
		Enable  bool `json:"enable"`
	}{feature, enable}
	dat := &struct {
		OK bool `json:"ok"`
	}{}
	if err := s.call("set", req, dat); err != nil {
		return false, err
	}
	return dat.OK, nil
}

func (s *httpService) GetDisplayColorCalibration() ([]int, error) {
	dat := &struct {
		Calibration []int `json:"calibration"`
	}{}
	if err := s.call("getDisplayColorCalibration", nil, dat); err != nil {
		return nil, err
	}
	return dat.Calibration, nil
}

func (s *httpService) SetDisplayColorCalibration(rgb []int) (bool, error) {
	req := &struct {
		RGB []int `json:"rgb"`
	}{rgb}
	dat := &struct {
		OK bool `json:"ok"`
	}{}
	if err := s.call("setDisplayColorCalibration", req, dat); err != nil {
		return false, err
	}
	return dat.OK, nil
}

func (s *httpService) GetNumGammaControls() (int, error) {
	dat := &struct {
		Count int `json:"count"`
	}{}
	if err := s.call("getNumGammaControls", nil, dat); err != nil {
		return 0, err
	}
	return dat.Count, nil
}

func (s *httpService) GetDisplayGammaCalibration(control int) ([]int, error) {
	req := &struct {
		Control int `json:"control"`
	}{control}
	dat := &struct {
		Calibration []int `json:"calibration"`
	}{}
	if err := s.call("getDisplayGammaCalibration", req, dat); err != nil {
		return nil, err
	}
	return dat.Calibration, nil
}

func (s *httpService) SetDisplayGammaCalibration(control int, rgb []int) (bool, error) {
	req := &struct {
		Control int   `json:"control"`
		RGB     []int `json:"rgb"`
	}{control, rgb}
	dat := &struct {
		OK bool `json:"ok"`
	}{}
	if err := s.call("setDisplayGammaCalibration", req, dat); err != nil {
		return false, err
	}
	return dat.OK, nil
}

func (s *httpService) RequireAdaptiveBacklightForSunlightEnhancement() (bool, error) {
	dat := &struct {
		Required bool `json:"required"`
	}{}
	if err := s.call("requireAdaptiveBacklightForSunlightEnhancement", nil, dat); err != nil {
		return false, err
	}
	return dat.Required, nil
}

func (s *httpService) IsSunlightEnhancementSelfManaged() (bool, error) {
	dat := &struct {
		SelfManaged bool `json:"selfManaged"`
	}{}
	if err := s.call("isSunlightEnhancementSelfManaged", nil, dat); err != nil {
		return false, err
	}
	return dat.SelfManaged, nil
}

func (s *httpService) GetDisplayModes() ([]DisplayMode, error) {
	dat := &struct {
		Modes []DisplayMode `json:"modes"`
	}{}
	if err := s.call("getDisplayModes", nil, dat); err != nil {
		return nil, err
	}
	return dat.Modes, nil
}

func (s *httpService) GetCurrentDisplayMode() (*DisplayMode, error) {
	dat := &struct {
		Mode *DisplayMode `json:"mode"`
	}{}
	if err := s.call("getCurrentDisplayMode", nil, dat); err != nil {
		return nil, err
	}
	return dat.Mode, nil
}

func (s *httpService) GetDefaultDisplayMode() (*DisplayMode, error) {
	dat := &struct {
		Mode *DisplayMode `json:"mode"`
	}{}
	if err := s.call("getDefaultDisplayMode", nil, dat); err != nil {
		return nil, err
	}
	return dat.Mode, nil
}

func (s *httpService) SetDisplayMode(mode DisplayMode, makeDefault bool) (bool, error) {
	req := &struct {
		Mode        DisplayMode `json:"mode"`
		MakeDefault bool        `json:"makeDefault"`
	}{mode, makeDefault}
	dat := &struct {
		OK bool `json:"ok"`
	}{}
	if err := s.call("setDisplayMode", req, dat); err != nil {
		return false, err
	}
	return dat.OK, nil
}

func (s *httpService) GetColorBalanceMin() (int, error) {
	return s.intValue("getColorBalanceMin")
}

func (s *httpService) GetColorBalanceMax() (int, error) {
	return s.intValue("getColorBalanceMax")
}

func (s *httpService) GetColorBalance() (int, error) {
	return s.intValue("getColorBalance")
}

func (s *httpService) intValue(op string) (int, error) {
	dat := &struct {
		Value int `json:"value"`
	}{}
	if err := s.call(op, nil, dat); err != nil {
		return 0, err
	}
	return dat.Value, nil
}

func (s *httpService) SetColorBalance(value int) (bool, error) {
	req := &struct {
		Value int `json:"value"`
	}{value}
	dat := &struct {
		OK bool `json:"ok"`
	}{}
	if err := s.call("setColorBalance", req, dat); err != nil {
		return false, err
	}
	return dat.OK, nil
}

func (s *httpService) GetPictureAdjustment() (*HSIC, error) {
	return s.hsicValue("getPictureAdjustment")
}

func (s *httpService) GetDefaultPictureAdjustment() (*HSIC, error) {
	return s.hsicValue("getDefaultPictureAdjustment")
}

func (s *httpService) hsicValue(op string) (*HSIC, error) {
	dat := &struct {
		HSIC *HSIC `json:"hsic"`
	}{}
	if err := s.call(op, nil, dat); err != nil {
		return nil, err
	}
	return dat.HSIC, nil
}

func (s *httpService) SetPictureAdjustment(hsic HSIC) (bool, error) {
	req := &struct {
		HSIC HSIC `json:"hsic"`
	}{hsic}
	dat := &struct {
		OK bool `json:"ok"`
	}{}
	if err := s.call("setPictureAdjustment", req, dat); err != nil {
		return false, err
	}
	return dat.OK, nil
}

func (s *httpService) GetPictureAdjustmentRanges() ([]float32, error) {
	dat := &struct {
		Ranges []float32 `json:"ranges"`
	}{}
	if err := s.call("getPictureAdjustmentRanges", nil, dat); err != nil {
		return nil, err
	}
	return dat.Ranges, nil
}

func (s *httpService) SetGrayscale(enable bool) (bool, error) {
	req := &struct {
		Enable bool `json:"enable"`
	}{enable}
	dat := &struct {
		OK bool `json:"ok"`
	}{}
	if err := s.call("setGrayscale", req, dat); err != nil {
		return false, err
	}
	return dat.OK, nil
}
