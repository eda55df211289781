package metrics

import (
	"encoding/json"
	"time"

	"github.com/triggr-io/triggr/pkg/storage"
	"github.com/triggr-io/triggr/pkg/types"
)

// Collector periodically samples storage-derived gauges that aren't
// naturally updated on their own mutation path (project/trigger
// counts), mirroring the teacher's ticker-driven Collector.
type Collector struct {
	store  *storage.Store
	stopCh chan struct{}
}

// NewCollector wires a Collector against store.
func NewCollector(store *storage.Store) *Collector {
	return &Collector{store: store, stopCh: make(chan struct{})}
}

// Start begins the 15-second sampling loop in its own goroutine.
func (c *Collector) Start() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop ends the sampling loop.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	c.collectProjectMetrics()
	c.collectTriggerMetrics()
}

func (c *Collector) collectProjectMetrics() {
	kvs, err := c.store.Projects.ScanPrefix(nil)
	if err != nil {
		return
	}
	ProjectsTotal.Set(float64(len(kvs)))
}

func (c *Collector) collectTriggerMetrics() {
	kvs, err := c.store.Triggers.ScanPrefix(nil)
	if err != nil {
		return
	}

	active, inactive := 0, 0
	for _, kv := range kvs {
		var list []types.Trigger
		if err := json.Unmarshal(kv.Value, &list); err != nil {
			continue
		}
		for _, trigger := range list {
			if trigger.Active {
				active++
			} else {
				inactive++
			}
		}
	}
	TriggersTotal.WithLabelValues("true").Set(float64(active))
	TriggersTotal.WithLabelValues("false").Set(float64(inactive))
}
