package storage

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/triggr-io/triggr/pkg/apperr"
	"github.com/triggr-io/triggr/pkg/security"
	"github.com/triggr-io/triggr/pkg/types"
)

// ProjectStore implements the project half of spec §4.4: projects are
// keyed by a raw, generated API token; the encrypted form of that
// token is what's stored alongside the project record, and the owner
// tree links back owner -> [projects...] for listing.
type ProjectStore struct {
	projects *Tree
	users    *Tree
	keys     *security.KeyManager
}

// NewProjectStore wires the projects and users trees together with
// the key manager used to encrypt stored API keys.
func NewProjectStore(projects, users *Tree, keys *security.KeyManager) *ProjectStore {
	return &ProjectStore{projects: projects, users: users, keys: keys}
}

// Create generates a fresh raw API key, stores project under that raw
// key, and appends it to its owner's project list. It returns the
// stored project and the raw key — the only time the raw key is ever
// visible.
func (s *ProjectStore) Create(project types.Project) (*types.Project, string, error) {
	rawKey, err := security.GenerateToken(32)
	if err != nil {
		return nil, "", err
	}

	encrypted, err := s.keys.Encrypt(rawKey)
	if err != nil {
		return nil, "", err
	}

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	project.APIKeyEncrypted = encrypted

	raw, err := json.Marshal(project)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.BadRequest, "failed to encode project", err)
	}
	if err := s.projects.Insert([]byte(rawKey), raw); err != nil {
		return nil, "", err
	}

	if err := s.appendToOwner(project.Owner, project); err != nil {
		return nil, "", err
	}

	return &project, rawKey, nil
}

// Get performs a point lookup of the project stored under rawAPIKey.
func (s *ProjectStore) Get(rawAPIKey string) (*types.Project, error) {
	raw, err := s.projects.Get([]byte(rawAPIKey))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, apperr.NotFoundf("no project for the given API key")
	}

	var project types.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode stored project", err)
	}
	return &project, nil
}

// Delete removes the project stored under rawAPIKey, refusing with
// apperr.Unauthorized if it is not owned by owner.
func (s *ProjectStore) Delete(rawAPIKey, owner string) error {
	project, err := s.Get(rawAPIKey)
	if err != nil {
		return err
	}
	if project.Owner != owner {
		return apperr.New(apperr.Unauthorized, "project is not owned by the requesting user")
	}

	if _, err := s.projects.Remove([]byte(rawAPIKey)); err != nil {
		return err
	}

	return s.removeFromOwner(owner, project.ID)
}

// ListForUser returns every project belonging to owner.
func (s *ProjectStore) ListForUser(owner string) ([]types.Project, error) {
	return s.ownerProjects(owner)
}

func (s *ProjectStore) ownerProjects(owner string) ([]types.Project, error) {
	raw, err := s.users.Get([]byte(owner))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var projects []types.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode owner's project list", err)
	}
	return projects, nil
}

func (s *ProjectStore) appendToOwner(owner string, project types.Project) error {
	existing, err := s.ownerProjects(owner)
	if err != nil {
		return err
	}

	for _, p := range existing {
		if p.ID == project.ID {
			return nil
		}
	}
	existing = append(existing, project)

	raw, err := json.Marshal(existing)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to encode owner's project list", err)
	}
	if err := s.users.Insert([]byte(owner), raw); err != nil {
		return err
	}
	return s.users.Flush()
}

func (s *ProjectStore) removeFromOwner(owner, projectID string) error {
	existing, err := s.ownerProjects(owner)
	if err != nil {
		return err
	}

	out := existing[:0]
	for _, p := range existing {
		if p.ID != projectID {
			out = append(out, p)
		}
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to encode owner's project list", err)
	}
	if err := s.users.Insert([]byte(owner), raw); err != nil {
		return err
	}
	return s.users.Flush()
}
