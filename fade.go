package hardwareops

import (
	"context"
	"sync"
	"time"

	"github.com/ngerakines/hardwareops/client"
	log "github.com/sirupsen/logrus"
	tomb "gopkg.in/tomb.v2"
)

type colorBalanceFadeAction struct {
	steps    []int
	position int

	manager client.HardwareManager

	t  tomb.Tomb
	mu sync.Mutex
}

// NewColorBalanceFadeAction walks the color balance from one value to another
// over the given number of seconds. The action completes on its own once the
// final value is set.
func NewColorBalanceFadeAction(manager client.HardwareManager, from, to, seconds int) (Action, error) {
	log.Info("New color balance fade action")
	fa := &colorBalanceFadeAction{
		steps:    fadeSteps(from, to, seconds*20),
		position: 0,
		manager:  manager,
	}
	return fa, nil
}

// fadeSteps interpolates n+1 values from from to to, endpoints included.
func fadeSteps(from, to, n int) []int {
	if n < 1 {
		return []int{to}
	}
	steps := make([]int, 0, n+1)
	for i := 0; i <= n; i++ {
		steps = append(steps, from+(to-from)*i/n)
	}
	return steps
}

func (a *colorBalanceFadeAction) loop() error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case t := <-ticker.C:
			if a.position >= len(a.steps) {
				return nil
			}
			value := a.steps[a.position]
			log.WithFields(log.Fields{
				"t":        t,
				"action":   "fade",
				"position": a.position,
				"value":    value,
			}).Debug("Tick")
			a.manager.SetColorBalance(value)
			a.position = a.position + 1
		case <-a.t.Dying():
			return nil
		}
	}
}

func (a *colorBalanceFadeAction) Start() error {
	a.t.Go(a.loop)
	return nil
}

func (a *colorBalanceFadeAction) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	log.WithField("action", "fade").Info("Stopping")
	a.t.Kill(nil)
	return a.t.Wait()
}
