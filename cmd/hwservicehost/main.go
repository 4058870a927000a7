package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/kr/pretty"
	"github.com/ngerakines/hardwareops/client"
)

// fakeDevice is an in-memory stand-in for real display hardware, good enough
// to exercise the full wire surface during development.
type fakeDevice struct {
	mu sync.Mutex

	features    int
	enabled     map[int]bool
	calibration []int
	gamma       [][]int
	modes       []client.DisplayMode
	currentMode int
	defaultMode int
	balanceMin  int
	balanceMax  int
	balance     int
	hsic        client.HSIC
	hsicRanges  []float32
	grayscale   bool
	requireCABL bool
	selfManaged bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		features: client.FeatureAdaptiveBacklight |
			client.FeatureDisplayColorCalibration |
			client.FeatureDisplayGammaCalibration |
			client.FeatureDisplayModes |
			client.FeatureColorBalance |
			client.FeaturePictureAdjustment |
			client.FeatureReadingEnhancement |
			client.FeatureAutoContrast,
		enabled:     map[int]bool{},
		calibration: []int{255, 255, 255, 255, 0, 255},
		gamma: [][]int{
			{128, 128, 128, 0, 255},
			{128, 128, 128, 0, 255},
		},
		modes: []client.DisplayMode{
			{ID: 0, Name: "standard"},
			{ID: 1, Name: "vivid"},
			{ID: 2, Name: "cinema"},
		},
		balanceMin: -100,
		balanceMax: 100,
		hsic:       client.HSIC{Hue: 0, Saturation: 1, Intensity: 1, Contrast: 1},
		hsicRanges: []float32{-180, 180, 0, 2, 0, 2, 0, 2, 0, 1},
	}
}

type opHandler func(d *fakeDevice, body *json.Decoder) (interface{}, error)

var ops = map[string]opHandler{
	"getSupportedFeatures": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"features": d.features}, nil
	},
	"get": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		req := struct {
			Feature int `json:"feature"`
		}{}
		if err := body.Decode(&req); err != nil {
			return nil, err
		}
		return map[string]interface{}{"enabled": d.enabled[req.Feature]}, nil
	},
	"set": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		req := struct {
			Feature int  `json:"feature"`
			Enable  bool `json:"enable"`
		}{}
		if err := body.Decode(&req); err != nil {
			return nil, err
		}
		d.enabled[req.Feature] = req.Enable
		return map[string]interface{}{"ok": true}, nil
	},
	"getDisplayColorCalibration": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"calibration": d.calibration}, nil
	},
	"setDisplayColorCalibration": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		req := struct {
			RGB []int `json:"rgb"`
		}{}
		if err := body.Decode(&req); err != nil {
			return nil, err
		}
		if len(req.RGB) < 3 {
			return map[string]interface{}{"ok": false}, nil
		}
		copy(d.calibration, req.RGB[:3])
		return map[string]interface{}{"ok": true}, nil
	},
	"getNumGammaControls": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"count": len(d.gamma)}, nil
	},
	"getDisplayGammaCalibration": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		req := struct {
			Control int `json:"control"`
		}{}
		if err := body.Decode(&req); err != nil {
			return nil, err
		}
		if req.Control < 0 || req.Control >= len(d.gamma) {
			return map[string]interface{}{"calibration": []int{}}, nil
		}
		return map[string]interface{}{"calibration": d.gamma[req.Control]}, nil
	},
	"setDisplayGammaCalibration": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		req := struct {
			Control int   `json:"control"`
			RGB     []int `json:"rgb"`
		}{}
		if err := body.Decode(&req); err != nil {
			return nil, err
		}
		if req.Control < 0 || req.Control >= len(d.gamma) || len(req.RGB) < 3 {
			return map[string]interface{}{"ok": false}, nil
		}
		copy(d.gamma[req.Control], req.RGB[:3])
		return map[string]interface{}{"ok": true}, nil
	},
	"requireAdaptiveBacklightForSunlightEnhancement": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"required": d.requireCABL}, nil
	},
	"isSunlightEnhancementSelfManaged": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"selfManaged": d.selfManaged}, nil
	},
	"getDisplayModes": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"modes": d.modes}, nil
	},
	"getCurrentDisplayMode": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"mode": d.modes[d.currentMode]}, nil
	},
	"getDefaultDisplayMode": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"mode": d.modes[d.defaultMode]}, nil
	},
	"setDisplayMode": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		req := struct {
			Mode        client.DisplayMode `json:"mode"`
			MakeDefault bool               `json:"makeDefault"`
		}{}
		if err := body.Decode(&req); err != nil {
			return nil, err
		}
		for i, mode := range d.modes {
			if mode.ID == req.Mode.ID {
				d.currentMode = i
				if req.MakeDefault {
					d.defaultMode = i
				}
				return map[string]interface{}{"ok": true}, nil
			}
		}
		return map[string]interface{}{"ok": false}, nil
	},
	"getColorBalanceMin": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"value": d.balanceMin}, nil
	},
	"getColorBalanceMax": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"value": d.balanceMax}, nil
	},
	"getColorBalance": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"value": d.balance}, nil
	},
	"setColorBalance": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		req := struct {
			Value int `json:"value"`
		}{}
		if err := body.Decode(&req); err != nil {
			return nil, err
		}
		if req.Value < d.balanceMin || req.Value > d.balanceMax {
			return map[string]interface{}{"ok": false}, nil
		}
		d.balance = req.Value
		return map[string]interface{}{"ok": true}, nil
	},
	"getPictureAdjustment": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"hsic": d.hsic}, nil
	},
	"getDefaultPictureAdjustment": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"hsic": client.HSIC{Hue: 0, Saturation: 1, Intensity: 1, Contrast: 1}}, nil
	},
	"setPictureAdjustment": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		req := struct {
			HSIC client.HSIC `json:"hsic"`
		}{}
		if err := body.Decode(&req); err != nil {
			return nil, err
		}
		d.hsic = req.HSIC
		return map[string]interface{}{"ok": true}, nil
	},
	"getPictureAdjustmentRanges": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		return map[string]interface{}{"ranges": d.hsicRanges}, nil
	},
	"setGrayscale": func(d *fakeDevice, body *json.Decoder) (interface{}, error) {
		req := struct {
			Enable bool `json:"enable"`
		}{}
		if err := body.Decode(&req); err != nil {
			return nil, err
		}
		d.grayscale = req.Enable
		return map[string]interface{}{"ok": true}, nil
	},
}

func handler(device *fakeDevice) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op := r.URL.Path[len("/api/v1/"):]
		handle, ok := ops[op]
		if !ok {
			http.NotFound(w, r)
			return
		}
		device.mu.Lock()
		result, err := handle(device, json.NewDecoder(r.Body))
		device.mu.Unlock()
		if err != nil {
			pretty.Println(err)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(err.Error()))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			pretty.Println(err)
		}
	}
}

func main() {
	device := newFakeDevice()
	pretty.Println(device.modes)

	go func() {
		http.HandleFunc("/api/v1/", handler(device))
		if err := http.ListenAndServe(":7066", nil); err != nil {
			panic(err)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	var text string
	for text != "q" { // break the loop if text == "q"
		fmt.Print("q to quit: ")
		scanner.Scan()
		text = scanner.Text()
	}
}
