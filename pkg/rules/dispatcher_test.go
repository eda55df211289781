package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggr-io/triggr/pkg/types"
)

func TestDispatcherRunsMatchingActiveTriggers(t *testing.T) {
	docs, triggers := newTestStores(t)
	trigger := types.Trigger{
		ID:        "t1",
		ProjectID: "proj-1",
		Active:    true,
		Rules: []types.Rule{{
			EventName: "pinged",
			Actions:   []types.Action{{Kind: types.ActionInsert, Collection: "logs", ID: "hit", Fields: map[string]any{"seen": true}}},
		}},
	}
	require.NoError(t, triggers.StoreTrigger("0xabc", trigger))

	d := NewDispatcher(triggers, docs)
	ch := make(chan types.ChainEvent, 1)
	ch <- types.ChainEvent{ContractAddress: "0xabc", Event: &types.EventData{EventName: "pinged", Fields: map[string]any{}}}
	close(ch)

	d.Run(ch)

	doc, err := docs.Get("proj-1", "logs", "hit")
	require.NoError(t, err)
	assert.Equal(t, true, doc.Data["seen"])
}

func TestDispatcherSkipsInactiveTriggers(t *testing.T) {
	docs, triggers := newTestStores(t)
	trigger := types.Trigger{
		ID:        "t2",
		ProjectID: "proj-1",
		Active:    false,
		Rules: []types.Rule{{
			EventName: "pinged",
			Actions:   []types.Action{{Kind: types.ActionInsert, Collection: "logs", ID: "never", Fields: map[string]any{}}},
		}},
	}
	require.NoError(t, triggers.StoreTrigger("0xabc", trigger))

	d := NewDispatcher(triggers, docs)
	ch := make(chan types.ChainEvent, 1)
	ch <- types.ChainEvent{ContractAddress: "0xabc", Event: &types.EventData{EventName: "pinged", Fields: map[string]any{}}}
	close(ch)

	d.Run(ch)

	_, err := docs.Get("proj-1", "logs", "never")
	assert.Error(t, err)
}

func TestDispatcherSkipsNonMatchingEventNames(t *testing.T) {
	docs, triggers := newTestStores(t)
	trigger := types.Trigger{
		ID:        "t3",
		ProjectID: "proj-1",
		Active:    true,
		Rules: []types.Rule{{
			EventName: "loanGiven",
			Actions:   []types.Action{{Kind: types.ActionInsert, Collection: "logs", ID: "never", Fields: map[string]any{}}},
		}},
	}
	require.NoError(t, triggers.StoreTrigger("0xabc", trigger))

	d := NewDispatcher(triggers, docs)
	ch := make(chan types.ChainEvent, 1)
	ch <- types.ChainEvent{ContractAddress: "0xabc", Event: &types.EventData{EventName: "pinged", Fields: map[string]any{}}}
	close(ch)

	d.Run(ch)

	_, err := docs.Get("proj-1", "logs", "never")
	assert.Error(t, err)
}

func TestDispatcherNoTriggersForAddressIsNotAnError(t *testing.T) {
	docs, triggers := newTestStores(t)
	d := NewDispatcher(triggers, docs)
	ch := make(chan types.ChainEvent, 1)
	ch <- types.ChainEvent{ContractAddress: "0xunknown", Event: &types.EventData{EventName: "pinged"}}
	close(ch)

	assert.NotPanics(t, func() { d.Run(ch) })
}
