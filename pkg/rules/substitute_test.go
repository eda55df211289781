package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triggr-io/triggr/pkg/types"
)

func TestSubstituteResolvesMatchingPlaceholder(t *testing.T) {
	event := &types.EventData{EventName: "transferred", Fields: map[string]any{"amount": "Some(500)"}}
	fields := map[string]any{"balance": "events.transferred.amount"}

	out, unresolved := substitute(fields, event)
	assert.False(t, unresolved)
	assert.Equal(t, uint64(500), out["balance"])
}

func TestSubstituteLeavesNonPlaceholderStringsAlone(t *testing.T) {
	event := &types.EventData{EventName: "t", Fields: map[string]any{}}
	fields := map[string]any{"note": "plain text"}

	out, unresolved := substitute(fields, event)
	assert.False(t, unresolved)
	assert.Equal(t, "plain text", out["note"])
}

func TestSubstituteUnresolvedWhenEventNameDiffers(t *testing.T) {
	event := &types.EventData{EventName: "loanGiven", Fields: map[string]any{"amount": "100"}}
	fields := map[string]any{"balance": "events.transferred.amount"}

	_, unresolved := substitute(fields, event)
	assert.True(t, unresolved)
}

func TestSubstituteUnresolvedWhenFieldMissing(t *testing.T) {
	event := &types.EventData{EventName: "transferred", Fields: map[string]any{}}
	fields := map[string]any{"balance": "events.transferred.amount"}

	_, unresolved := substitute(fields, event)
	assert.True(t, unresolved)
}

func TestSubstituteRecursesIntoNestedObjectsAndArrays(t *testing.T) {
	event := &types.EventData{EventName: "t", Fields: map[string]any{"x": "7"}}
	fields := map[string]any{
		"nested": map[string]any{"v": "events.t.x"},
		"list":   []any{"events.t.x", "plain"},
	}

	out, unresolved := substitute(fields, event)
	assert.False(t, unresolved)
	assert.Equal(t, uint64(7), out["nested"].(map[string]any)["v"])
	list := out["list"].([]any)
	assert.Equal(t, uint64(7), list[0])
	assert.Equal(t, "plain", list[1])
}
