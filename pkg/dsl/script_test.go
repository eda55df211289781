package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggr-io/triggr/pkg/types"
)

const sampleScript = `
const events = [
    transferred { amount, recipient },
    loanGiven { amount }
]

fn main(event) {
    if (events.transferred.amount > 1000) {
        update @accounts:recipient with { balance: events.transferred.amount }
        notify "large transfer observed"
    } else {
        insert @logs:entry with { amount: events.transferred.amount }
    }
}
`

func TestParseEventDeclarations(t *testing.T) {
	events, err := parseEventDeclarations(sampleScript)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "transferred", events[0].Name)
	assert.Equal(t, []string{"amount", "recipient"}, events[0].Fields)
	assert.Equal(t, "loanGiven", events[1].Name)
}

func TestParseScriptProducesIfAndElseRules(t *testing.T) {
	result, err := Parse(sampleScript)
	require.NoError(t, err)
	require.Len(t, result.Rules, 2)

	ifRule := result.Rules[0]
	assert.Equal(t, "transferred", ifRule.EventName)
	require.NotNil(t, ifRule.Condition)
	assert.Equal(t, types.OpGreaterThan, ifRule.Condition.Op)
	assert.Equal(t, "events.transferred.amount", ifRule.Condition.Field)
	assert.InDelta(t, 1000.0, ifRule.Condition.Value, 0.0001)
	require.Len(t, ifRule.Actions, 2)
	assert.Equal(t, types.ActionUpdate, ifRule.Actions[0].Kind)
	assert.Equal(t, "accounts", ifRule.Actions[0].Collection)
	assert.Equal(t, types.ActionNotify, ifRule.Actions[1].Kind)
	assert.Equal(t, "large transfer observed", ifRule.Actions[1].Message)

	elseRule := result.Rules[1]
	assert.Equal(t, types.OpLessOrEqual, elseRule.Condition.Op)
	require.Len(t, elseRule.Actions, 1)
	assert.Equal(t, types.ActionInsert, elseRule.Actions[0].Kind)
	assert.Equal(t, "logs", elseRule.Actions[0].Collection)
}

func TestParseWithoutElseProducesSingleRule(t *testing.T) {
	script := `
const events = [ pinged { } ]
fn main(event) {
    if (events.pinged.count == 1) {
        notify "first ping"
    }
}
`
	result, err := Parse(script)
	require.NoError(t, err)
	require.Len(t, result.Rules, 1)
}

func TestParseMissingEventsSectionFails(t *testing.T) {
	_, err := Parse(`fn main(event) { if (x == 1) { notify "x" } }`)
	assert.Error(t, err)
}

func TestParseMissingRuleBlockFails(t *testing.T) {
	_, err := Parse(`const events = [ pinged { } ]`)
	assert.Error(t, err)
}

func TestParseDeleteAndBareID(t *testing.T) {
	script := `
const events = [ pinged { } ]
fn main(event) {
    if (events.pinged.count == 1) {
        delete @logs:old-entry
        insert orphan with { ok: true }
    }
}
`
	result, err := Parse(script)
	require.NoError(t, err)
	actions := result.Rules[0].Actions
	require.Len(t, actions, 2)
	assert.Equal(t, types.ActionDelete, actions[0].Kind)
	assert.Equal(t, "logs", actions[0].Collection)
	assert.Equal(t, "old-entry", actions[0].ID)

	assert.Equal(t, types.ActionInsert, actions[1].Kind)
	assert.Equal(t, types.PlaceholderCollection, actions[1].Collection)
	assert.Equal(t, "orphan", actions[1].ID)
	assert.Equal(t, true, actions[1].Fields["ok"])
}

func TestParseUnrecognisedActionLineIsSkippedNotFailed(t *testing.T) {
	script := `
const events = [ pinged { } ]
fn main(event) {
    if (events.pinged.count == 1) {
        this is not a valid action
        notify "still works"
    }
}
`
	result, err := Parse(script)
	require.NoError(t, err)
	require.Len(t, result.Rules[0].Actions, 1)
	assert.Equal(t, types.ActionNotify, result.Rules[0].Actions[0].Kind)
}
