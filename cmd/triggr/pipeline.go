package main

import (
	"fmt"

	"github.com/triggr-io/triggr/pkg/config"
	"github.com/triggr-io/triggr/pkg/events"
	"github.com/triggr-io/triggr/pkg/metadata"
	"github.com/triggr-io/triggr/pkg/security"
	"github.com/triggr-io/triggr/pkg/storage"
)

// pipeline bundles every long-lived handle a CLI subcommand needs:
// the five KV trees, the pub/sub broker, the metadata cache (loaded
// from its on-disk index), and the API-key cipher. It mirrors the
// bundle the spec's §9 "shared pipeline state" note describes for the
// subscriber/dispatcher tasks, reused here for one-shot console
// commands.
type pipeline struct {
	cfg      *config.Config
	store    *storage.Store
	broker   *events.Broker
	cache    *metadata.Cache
	loader   *metadata.Loader
	keys     *security.KeyManager
	projects *storage.ProjectStore
	triggers *storage.TriggerStore
	docs     *storage.DocumentStore
}

func openPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	cache := metadata.NewCache()
	loader := metadata.NewLoader(store.Metadata, cache)
	if err := loader.LoadAll(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load contract metadata: %w", err)
	}

	var keys *security.KeyManager
	if len(cfg.EncryptionKey) > 0 {
		keys, err = security.NewKeyManager(cfg.EncryptionKey)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to init key manager: %w", err)
		}
	}

	broker := events.NewBroker()

	return &pipeline{
		cfg:      cfg,
		store:    store,
		broker:   broker,
		cache:    cache,
		loader:   loader,
		keys:     keys,
		projects: storage.NewProjectStore(store.Projects, store.Users, keys),
		triggers: storage.NewTriggerStore(store.Triggers),
		docs:     storage.NewDocumentStore(store.App, broker),
	}, nil
}

func (p *pipeline) Close() error {
	return p.store.Close()
}
