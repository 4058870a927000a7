package hardwareops

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerFerriesStatus(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"activity": "reading"})
	}))
	defer host.Close()
	viper.Set("status.location", host.URL)
	viper.Set("status.interval", 1)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	ferry := make(chan StatusMap)

	done := make(chan error, 1)
	go func() {
		done <- NewPoller(stop, &wg, ferry)
	}()

	select {
	case status := <-ferry:
		assert.Equal(t, "reading", status["activity"])
		assert.Equal(t, host.URL, status["location"])
		assert.NotEmpty(t, status["time"])
	case <-time.After(3 * time.Second):
		t.Fatal("no status ferried")
	}

	close(stop)
	wg.Wait()
	require.NoError(t, <-done)
}

func TestPollerFerriesErrors(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "kaboom", http.StatusInternalServerError)
	}))
	defer host.Close()
	viper.Set("status.location", host.URL)
	viper.Set("status.interval", 1)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	ferry := make(chan StatusMap)

	done := make(chan error, 1)
	go func() {
		done <- NewPoller(stop, &wg, ferry)
	}()

	select {
	case status := <-ferry:
		assert.Contains(t, status["error"], "bad status code")
	case <-time.After(3 * time.Second):
		t.Fatal("no status ferried")
	}

	close(stop)
	wg.Wait()
	require.NoError(t, <-done)
}
