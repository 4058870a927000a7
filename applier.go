package hardwareops

import (
	"context"
	"sync"
	"time"

	"github.com/ngerakines/hardwareops/client"
	"github.com/spf13/viper"

	log "github.com/sirupsen/logrus"
)

type applier struct {
	statusDestination chan StatusMap
	profileManager    *ProfileManager
	hardwareManager   client.HardwareManager

	stop chan struct{}
}

type profileMatch struct {
	key     string
	value   string
	profile string
}

// NewApplier consumes status snapshots and applies the hardware profiles
// their triggers name. Blocks until the stop channel closes.
func NewApplier(stop chan struct{}, wg *sync.WaitGroup, statusDestination chan StatusMap, profileManager *ProfileManager, hardwareManager client.HardwareManager) error {
	server := &applier{
		statusDestination,
		profileManager,
		hardwareManager,
		make(chan struct{}),
	}

	go func() {
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("Gracefully stopping applier.")
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Error gracefully stopping applier.")
		} else {
			log.Info("Gracefully stopped applier.")
		}
		wg.Done()
	}()

	return server.Run()
}

func (p *applier) Shutdown(ctx context.Context) error {
	log.Info("applier stopping")
	close(p.stop)
	return nil
}

func (p *applier) Run() error {
	log.Info("applier starting")

	for {
		select {
		case <-p.stop:
			return nil
		case data := <-p.statusDestination:
			matches := p.validate(data)
			fields := log.Fields{}
			for _, match := range matches {
				fields[match.key] = match.value
			}
			log.WithFields(fields).Info("received data")
			for _, match := range matches {
				if err := p.profileManager.Apply(match.profile, p.hardwareManager); err != nil {
					log.WithError(err).WithFields(log.Fields{
						"profile": match.profile,
						"status":  match.key + "=" + match.value,
					}).Error("Could not apply profile.")
				}
			}
		}
	}
}

func (p *applier) validate(statusData StatusMap) []profileMatch {
	warnOnUnknownStatus := viper.GetBool("validate.status")

	matches := []profileMatch{}
	for key, value := range statusData {
		if key == "location" || key == "time" || key == "error" {
			continue
		}
		profile, ok := p.profileManager.Match(key, value)
		if !ok {
			if warnOnUnknownStatus {
				log.WithFields(log.Fields{
					"key":   key,
					"value": value,
				}).Warn("Unexpected status found.")
			}
			continue
		}
		matches = append(matches, profileMatch{key, value, profile})
	}

	return matches
}

func containsString(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}
