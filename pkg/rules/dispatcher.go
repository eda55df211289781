package rules

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/triggr-io/triggr/pkg/log"
	"github.com/triggr-io/triggr/pkg/storage"
	"github.com/triggr-io/triggr/pkg/types"
)

// Dispatcher is the system's second long-lived task (spec §5): it
// drains the chain subscriber's bounded event channel and, for each
// event, spawns one short-lived goroutine per matching, active
// trigger. Two triggers on the same event, and two events on the same
// contract, are never serialised against each other.
type Dispatcher struct {
	triggers *storage.TriggerStore
	docs     *storage.DocumentStore
	logger   zerolog.Logger

	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewDispatcher wires a Dispatcher against the trigger and document
// stores it reads from and writes to.
func NewDispatcher(triggers *storage.TriggerStore, docs *storage.DocumentStore) *Dispatcher {
	return &Dispatcher{
		triggers: triggers,
		docs:     docs,
		logger:   log.WithComponent("dispatcher"),
		stopCh:   make(chan struct{}),
	}
}

// Run drains events until the channel closes or Stop is called,
// blocking until every in-flight trigger task has returned.
func (d *Dispatcher) Run(events <-chan types.ChainEvent) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				d.wg.Wait()
				return
			}
			d.dispatch(ev)
		case <-d.stopCh:
			d.wg.Wait()
			return
		}
	}
}

// Stop requests the dispatch loop to exit after any in-flight work
// completes. In-flight trigger tasks run to completion; there is no
// per-trigger timeout (spec §5).
func (d *Dispatcher) Stop() {
	close(d.stopCh)
}

func (d *Dispatcher) dispatch(ev types.ChainEvent) {
	triggers, err := d.triggers.ListTriggers(ev.ContractAddress)
	if err != nil {
		d.logger.Debug().Str("address", ev.ContractAddress).Msg("no triggers for contract")
		return
	}

	for _, trigger := range triggers {
		if !trigger.Active {
			continue
		}
		if !matchesAnyRule(trigger, ev.Event) {
			continue
		}

		d.wg.Add(1)
		go func(trigger types.Trigger) {
			defer d.wg.Done()
			ExecuteTrigger(trigger, ev.Event, ev.ContractAddress, d.docs, d.triggers)
		}(trigger)
	}
}

func matchesAnyRule(trigger types.Trigger, event *types.EventData) bool {
	for _, rule := range trigger.Rules {
		if strings.EqualFold(rule.EventName, event.EventName) {
			return true
		}
	}
	return false
}
