package storage

import (
	"github.com/triggr-io/triggr/pkg/config"
)

// Store bundles the five logical trees spec.md §3/§6 names: projects,
// users, app (documents), metadata, and triggers.
type Store struct {
	Projects *Tree
	Users    *Tree
	App      *Tree
	Metadata *Tree
	Triggers *Tree
}

// Open opens every tree at the paths given by cfg, creating them if
// absent.
func Open(cfg *config.Config) (*Store, error) {
	projects, err := OpenTree("projects", cfg.DBPathProjects+"/projects.db")
	if err != nil {
		return nil, err
	}
	users, err := OpenTree("users", cfg.DBPathUsers+"/users.db")
	if err != nil {
		return nil, err
	}
	app, err := OpenTree("app", cfg.DBPathApp+"/app.db")
	if err != nil {
		return nil, err
	}
	metadata, err := OpenTree("metadata", cfg.DBPathMetadata+"/metadata.db")
	if err != nil {
		return nil, err
	}
	triggers, err := OpenTree("triggers", cfg.TriggerPath+"/triggers.db")
	if err != nil {
		return nil, err
	}

	return &Store{
		Projects: projects,
		Users:    users,
		App:      app,
		Metadata: metadata,
		Triggers: triggers,
	}, nil
}

// Close releases every tree's underlying file handle.
func (s *Store) Close() error {
	var firstErr error
	for _, t := range []*Tree{s.Projects, s.Users, s.App, s.Metadata, s.Triggers} {
		if err := t.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
