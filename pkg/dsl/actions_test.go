package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggr-io/triggr/pkg/types"
)

func TestParseActionLinesHandlesEventRefID(t *testing.T) {
	actions := parseActionLines(`insert @tx:${events.Transfer.source} with { amt: "events.Transfer.amount" }`)
	require.Len(t, actions, 1)
	assert.Equal(t, types.ActionInsert, actions[0].Kind)
	assert.Equal(t, "tx", actions[0].Collection)
	assert.Equal(t, "events.Transfer.source", actions[0].ID)
	assert.Equal(t, "events.Transfer.amount", actions[0].Fields["amt"])
}

func TestParseActionLinesBareShorthandID(t *testing.T) {
	actions := parseActionLines(`update tx_123 with { status: "flagged" }`)
	require.Len(t, actions, 1)
	assert.Equal(t, types.PlaceholderCollection, actions[0].Collection)
	assert.Equal(t, "tx_123", actions[0].ID)
}

func TestParseActionLinesSkipsUnrecognisedLine(t *testing.T) {
	actions := parseActionLines("not a real action\ndelete @logs:1")
	require.Len(t, actions, 1)
	assert.Equal(t, types.ActionDelete, actions[0].Kind)
}
