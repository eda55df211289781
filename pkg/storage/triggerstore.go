package storage

import (
	"encoding/json"
	"strings"

	"github.com/triggr-io/triggr/pkg/apperr"
	"github.com/triggr-io/triggr/pkg/types"
)

// TriggerStore implements the trigger half of spec §4.4: triggers are
// grouped in a per-contract list keyed by the lowercased address.
type TriggerStore struct {
	tree *Tree
}

// NewTriggerStore wraps tree (normally Store.Triggers).
func NewTriggerStore(tree *Tree) *TriggerStore {
	return &TriggerStore{tree: tree}
}

func triggerKey(addr string) []byte {
	return []byte(strings.ToLower(addr))
}

// StoreTrigger upserts trigger into addr's list by id.
func (s *TriggerStore) StoreTrigger(addr string, trigger types.Trigger) error {
	list, err := s.listOrEmpty(addr)
	if err != nil {
		return err
	}

	replaced := false
	for i, t := range list {
		if t.ID == trigger.ID {
			list[i] = trigger
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, trigger)
	}

	return s.save(addr, list)
}

// GetTrigger returns the trigger with id in addr's list, or
// apperr.NotFound.
func (s *TriggerStore) GetTrigger(addr, id string) (*types.Trigger, error) {
	list, err := s.listOrEmpty(addr)
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, apperr.NotFoundf("trigger %q not found for contract %q", id, addr)
}

// DeleteTrigger removes the trigger with id from addr's list.
func (s *TriggerStore) DeleteTrigger(addr, id string) error {
	list, err := s.listOrEmpty(addr)
	if err != nil {
		return err
	}

	out := list[:0]
	found := false
	for _, t := range list {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return apperr.NotFoundf("trigger %q not found for contract %q", id, addr)
	}

	return s.save(addr, out)
}

// SetTriggerState flips a trigger's active flag in place.
func (s *TriggerStore) SetTriggerState(addr, id string, active bool) error {
	list, err := s.listOrEmpty(addr)
	if err != nil {
		return err
	}

	for i, t := range list {
		if t.ID == id {
			list[i].Active = active
			return s.save(addr, list)
		}
	}
	return apperr.NotFoundf("trigger %q not found for contract %q", id, addr)
}

// ListTriggers returns every trigger registered for addr, or
// apperr.NotFound if addr has no key in the tree at all.
func (s *TriggerStore) ListTriggers(addr string) ([]types.Trigger, error) {
	raw, err := s.tree.Get(triggerKey(addr))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, apperr.NotFoundf("no triggers registered for contract %q", addr)
	}

	var list []types.Trigger
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode trigger list", err)
	}
	return list, nil
}

func (s *TriggerStore) listOrEmpty(addr string) ([]types.Trigger, error) {
	list, err := s.ListTriggers(addr)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (s *TriggerStore) save(addr string, list []types.Trigger) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to encode trigger list", err)
	}
	if err := s.tree.Insert(triggerKey(addr), raw); err != nil {
		return err
	}
	return s.tree.Flush()
}
