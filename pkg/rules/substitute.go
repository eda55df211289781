package rules

import (
	"strings"

	"github.com/triggr-io/triggr/pkg/types"
)

// substitute replaces "events.<EventName>.<field>" placeholders found
// anywhere in fields (recursing into nested maps and slices) with the
// firing event's post-processed value, when the event name matches
// (case-insensitive) and the field exists. Values that still contain an
// unresolved "events." reference after the walk leave unresolved=true,
// signalling the caller to skip the action entirely.
func substitute(fields map[string]any, event *types.EventData) (map[string]any, bool) {
	unresolved := false
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = substituteValue(v, event, &unresolved)
	}
	return out, unresolved
}

func substituteValue(v any, event *types.EventData, unresolved *bool) any {
	switch val := v.(type) {
	case string:
		if !strings.Contains(val, "events.") {
			return val
		}
		if resolved, ok := resolvePlaceholder(val, event); ok {
			return resolved
		}
		*unresolved = true
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = substituteValue(inner, event, unresolved)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = substituteValue(inner, event, unresolved)
		}
		return out
	default:
		return v
	}
}

// resolvePlaceholder resolves an exact "events.<EventName>.<field>"
// string to the event's post-processed field value.
func resolvePlaceholder(ref string, event *types.EventData) (any, bool) {
	parts := strings.SplitN(ref, ".", 3)
	if len(parts) != 3 || parts[0] != "events" {
		return nil, false
	}
	if !strings.EqualFold(parts[1], event.EventName) {
		return nil, false
	}

	raw, ok := event.Fields[parts[2]]
	if !ok {
		return nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return raw, true
	}
	return postprocess(str), true
}
