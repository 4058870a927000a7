package hardwareops

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ngerakines/hardwareops/client"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type monitor struct {
	statusDestination chan StatusMap
	manager           client.HardwareManager

	ticker *time.Ticker
	stop   chan struct{}
}

// NewMonitor periodically snapshots the hardware state into the status ferry
// so triggers can react to what the device itself reports. Blocks until the
// stop channel closes.
func NewMonitor(stop chan struct{}, wg *sync.WaitGroup, statusDestination chan StatusMap, manager client.HardwareManager) error {
	interval := viper.GetInt64("monitor.interval")
	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	server := &monitor{
		statusDestination,
		manager,
		ticker,
		make(chan struct{}),
	}

	go func() {
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("Gracefully stopping monitor.")
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Error gracefully stopping monitor.")
		} else {
			log.Info("Gracefully stopped monitor.")
		}
		wg.Done()
	}()

	return server.Run()
}

func (m *monitor) Shutdown(ctx context.Context) error {
	log.Info("monitor stopping")
	close(m.stop)
	return nil
}

func (m *monitor) Run() error {
	log.Info("monitor starting")
	defer m.ticker.Stop()
	for {
		select {
		case <-m.stop:
			return nil
		case t := <-m.ticker.C:
			log.WithField("time", t).Debug("Tick")
			select {
			case m.statusDestination <- m.snapshot(t):
			case <-m.stop:
				return nil
			}
		}
	}
}

func (m *monitor) snapshot(t time.Time) StatusMap {
	status := StatusMap{
		"time":         t.String(),
		"features":     fmt.Sprintf("0x%x", m.manager.GetSupportedFeatures()),
		"colorbalance": strconv.Itoa(m.manager.GetColorBalance()),
	}
	if mode := m.manager.GetCurrentDisplayMode(); mode != nil {
		status["displaymode"] = mode.Name
	}
	return status
}
