package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/triggr-io/triggr/pkg/log"
	"github.com/triggr-io/triggr/pkg/storage"
	"github.com/triggr-io/triggr/pkg/types"
)

// ExecuteTrigger runs every rule in trigger against event: it collects
// the union of all matching rules' actions, executes each in order,
// and stamps trigger.last_run_at regardless of whether any action
// failed (spec §4.9 failure semantics — a storage failure in one
// action does not abort the trigger, and last_run_at always advances).
func ExecuteTrigger(trigger types.Trigger, event *types.EventData, address string, docs *storage.DocumentStore, triggers *storage.TriggerStore) {
	var actions []types.Action
	for _, rule := range trigger.Rules {
		actions = append(actions, Evaluate(rule, event)...)
	}

	for _, action := range actions {
		if err := ExecuteAction(action, event, trigger.ProjectID, docs); err != nil {
			log.WithTrigger(trigger.ID).Warn().Err(err).
				Str("action", string(action.Kind)).
				Msg("action execution failed")
		}
	}

	trigger.LastRunAt = time.Now().UTC()
	if err := triggers.StoreTrigger(address, trigger); err != nil {
		log.WithTrigger(trigger.ID).Error().Err(err).Msg("failed to stamp last_run_at")
	}
}

// ExecuteAction performs one action against the document store.
// Insert/Update substitute "events." placeholders first and are
// skipped silently if any reference could not be resolved. Notify is
// a reserved no-op sink.
func ExecuteAction(action types.Action, event *types.EventData, projectID string, docs *storage.DocumentStore) error {
	switch action.Kind {
	case types.ActionInsert:
		return executeMutation(action, event, projectID, docs, true)
	case types.ActionUpdate:
		return executeMutation(action, event, projectID, docs, false)
	case types.ActionDelete:
		return docs.Delete(projectID, action.Collection, action.ID)
	case types.ActionNotify:
		return nil
	default:
		return nil
	}
}

func executeMutation(action types.Action, event *types.EventData, projectID string, docs *storage.DocumentStore, insert bool) error {
	id, ok := resolveID(action.ID, event)
	if !ok {
		return nil
	}

	fields, unresolved := substitute(action.Fields, event)
	if unresolved {
		return nil
	}

	if insert {
		_, err := docs.Insert(projectID, action.Collection, types.Document{ID: id, Data: fields})
		return err
	}
	_, err := docs.Update(projectID, action.Collection, id, fields)
	return err
}

// resolveID resolves an "events.<EventName>.<field>" id placeholder
// (spec §8 S2: "insert @tx:${events.Transfer.source} ...") to the
// firing event's value. An id with no such reference passes through
// unchanged; one that references the event but can't be resolved
// skips the action, same as an unresolved field placeholder.
func resolveID(id string, event *types.EventData) (string, bool) {
	if !strings.Contains(id, "events.") {
		return id, true
	}
	resolved, ok := resolvePlaceholder(id, event)
	if !ok {
		return "", false
	}
	if s, ok := resolved.(string); ok {
		return s, true
	}
	return fmt.Sprint(resolved), true
}
