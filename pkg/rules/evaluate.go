package rules

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/triggr-io/triggr/pkg/types"
)

// Evaluate reports the action list a rule yields for event, or nil if
// the rule does not fire: the rule's event name must match event's
// (case-insensitive) and its condition, if any, must hold.
func Evaluate(rule types.Rule, event *types.EventData) []types.Action {
	if !strings.EqualFold(rule.EventName, event.EventName) {
		return nil
	}
	if rule.Condition != nil && !evalCondition(rule.Condition, event) {
		return nil
	}
	return rule.Actions
}

// evalCondition walks the condition tree. A comparison against a
// missing or non-numeric field is false, never an error: the system
// never raises on missing event fields.
func evalCondition(c *types.Condition, event *types.EventData) bool {
	if c == nil {
		return true
	}

	switch c.Op {
	case types.OpAnd:
		return evalCondition(c.Left, event) && evalCondition(c.Right, event)
	case types.OpOr:
		return evalCondition(c.Left, event) || evalCondition(c.Right, event)
	case types.OpEquals, types.OpNotEquals:
		equal := structurallyEqual(fieldValue(c.Field, event), c.Value)
		if c.Op == types.OpEquals {
			return equal
		}
		return !equal
	default:
		return evalNumericComparison(c, event)
	}
}

func evalNumericComparison(c *types.Condition, event *types.EventData) bool {
	left, ok := asFloat(fieldValue(c.Field, event))
	if !ok {
		return false
	}
	right, ok := asFloat(c.Value)
	if !ok {
		return false
	}

	switch c.Op {
	case types.OpGreaterThan:
		return left > right
	case types.OpLessThan:
		return left < right
	case types.OpGreaterOrEqual:
		return left >= right
	case types.OpLessOrEqual:
		return left <= right
	default:
		return false
	}
}

// fieldValue resolves a condition's "events.<EventName>.<field>" path
// against the firing event. Any other shape, or an event-name mismatch,
// resolves to nil (absent).
func fieldValue(path string, event *types.EventData) any {
	parts := strings.SplitN(path, ".", 3)
	if len(parts) != 3 || parts[0] != "events" {
		return nil
	}
	if !strings.EqualFold(parts[1], event.EventName) {
		return nil
	}
	return event.Fields[parts[2]]
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// structurallyEqual compares two values after round-tripping them
// through JSON so differing numeric Go types (int64 vs float64 vs
// uint64) compare equal when they represent the same value.
func structurallyEqual(a, b any) bool {
	na, oka := normalizeJSON(a)
	nb, okb := normalizeJSON(b)
	if !oka || !okb {
		return reflect.DeepEqual(a, b)
	}
	return reflect.DeepEqual(na, nb)
}

func normalizeJSON(v any) (any, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}
