package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHost(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/getSupportedFeatures", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"features": FeatureDisplayModes | FeatureKeyDisable})
	})
	mux.HandleFunc("/api/v1/get", func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			Feature int `json:"feature"`
		}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(map[string]bool{"enabled": req.Feature == FeatureKeyDisable})
	})
	mux.HandleFunc("/api/v1/setDisplayMode", func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			Mode        DisplayMode `json:"mode"`
			MakeDefault bool        `json:"makeDefault"`
		}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(map[string]bool{"ok": req.Mode.ID == 1 && req.MakeDefault})
	})
	mux.HandleFunc("/api/v1/getCurrentDisplayMode", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]*DisplayMode{"mode": nil})
	})
	mux.HandleFunc("/api/v1/getPictureAdjustmentRanges", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]float32{"ranges": {0, 1, 0, 1, 0, 1, 0, 1}})
	})
	mux.HandleFunc("/api/v1/getColorBalanceMin", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "kaboom", http.StatusInternalServerError)
	})
	return httptest.NewServer(mux)
}

func TestHTTPServiceRoundTrip(t *testing.T) {
	host := newTestHost(t)
	defer host.Close()

	svc := NewHTTPService(host.URL)

	features, err := svc.GetSupportedFeatures()
	require.NoError(t, err)
	assert.Equal(t, FeatureDisplayModes|FeatureKeyDisable, features)

	enabled, err := svc.Get(FeatureKeyDisable)
	require.NoError(t, err)
	assert.True(t, enabled)

	ok, err := svc.SetDisplayMode(DisplayMode{ID: 1, Name: "vivid"}, true)
	require.NoError(t, err)
	assert.True(t, ok)

	mode, err := svc.GetCurrentDisplayMode()
	require.NoError(t, err)
	assert.Nil(t, mode)

	ranges, err := svc.GetPictureAdjustmentRanges()
	require.NoError(t, err)
	assert.Len(t, ranges, 8)
}

func TestHTTPServiceBadStatus(t *testing.T) {
	host := newTestHost(t)
	defer host.Close()

	svc := NewHTTPService(host.URL)

	_, err := svc.GetColorBalanceMin()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status code")

	// unknown operations 404 and surface as transport errors
	_, err = svc.GetColorBalance()
	require.Error(t, err)
}

func TestManagerOverHTTP(t *testing.T) {
	host := newTestHost(t)
	defer host.Close()

	manager := New(NewStaticRegistry(host.URL))
	assert.True(t, manager.IsSupported(FeatureDisplayModes))
	assert.False(t, manager.IsSupported(FeatureVibrator))

	// transport failure surfaces as the documented default
	assert.Equal(t, Range[int]{}, manager.GetColorBalanceRange())
}

func TestStaticRegistryRejectsUnknownName(t *testing.T) {
	registry := NewStaticRegistry("http://localhost:7066")
	_, err := registry.Lookup("otherservice")
	require.Error(t, err)

	svc, err := registry.Lookup(ServiceName)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
