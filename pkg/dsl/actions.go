package dsl

import (
	"encoding/json"
	"strings"

	"github.com/triggr-io/triggr/pkg/log"
	"github.com/triggr-io/triggr/pkg/types"
)

// parseActionLines splits body into newline-separated statements and
// parses each as one of the four action forms. A line matching no
// known form is warned about and skipped — it never fails the parse.
func parseActionLines(body string) []types.Action {
	var actions []types.Action

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(stripLineComments(line))
		if line == "" {
			continue
		}

		action, ok := parseActionLine(line)
		if !ok {
			log.Warn("skipping unrecognised action line: " + line)
			continue
		}
		actions = append(actions, action)
	}
	return actions
}

func parseActionLine(line string) (types.Action, bool) {
	switch {
	case strings.HasPrefix(line, "update "):
		return parseMutationAction(line, "update ", types.ActionUpdate)
	case strings.HasPrefix(line, "insert "):
		return parseMutationAction(line, "insert ", types.ActionInsert)
	case strings.HasPrefix(line, "delete "):
		return parseDeleteAction(line)
	case strings.HasPrefix(line, "notify "):
		return parseNotifyAction(line)
	default:
		return types.Action{}, false
	}
}

// parseMutationAction parses "update @col:id with { k: v, ... }" and
// "insert @col:id with { k: v, ... }". "${...}" is normalised to
// "{...}" before the field block is located.
func parseMutationAction(line, prefix string, kind types.ActionKind) (types.Action, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, prefix))

	withIdx := strings.Index(rest, "with")
	if withIdx < 0 {
		return types.Action{}, false
	}

	target := strings.TrimSpace(rest[:withIdx])
	target = strings.NewReplacer("${", "", "}", "").Replace(target)
	collection, id, ok := parseTarget(target)
	if !ok {
		return types.Action{}, false
	}

	fieldsPart := strings.TrimSpace(rest[withIdx+len("with"):])
	fieldsPart = strings.ReplaceAll(fieldsPart, "${", "{")

	fields, ok := parseFieldBlock(fieldsPart)
	if !ok {
		return types.Action{}, false
	}

	return types.Action{Kind: kind, Collection: collection, ID: id, Fields: fields}, true
}

// parseDeleteAction parses "delete @col:id".
func parseDeleteAction(line string) (types.Action, bool) {
	target := strings.TrimSpace(strings.TrimPrefix(line, "delete "))
	collection, id, ok := parseTarget(target)
	if !ok {
		return types.Action{}, false
	}
	return types.Action{Kind: types.ActionDelete, Collection: collection, ID: id}, true
}

// parseNotifyAction parses `notify "message"`.
func parseNotifyAction(line string) (types.Action, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "notify "))
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return types.Action{}, false
	}
	return types.Action{Kind: types.ActionNotify, Message: rest[1 : len(rest)-1]}, true
}

// parseTarget parses "@col:id" or bare "@id" (collection defaults to
// the sentinel placeholder). The leading "@" is optional.
func parseTarget(target string) (collection, id string, ok bool) {
	target = strings.TrimPrefix(target, "@")
	if target == "" {
		return "", "", false
	}

	if idx := strings.Index(target, ":"); idx >= 0 {
		return target[:idx], target[idx+1:], true
	}
	return types.PlaceholderCollection, target, true
}

// parseFieldBlock parses a "{ k: v, ... }" block into a map, parsing
// each value as a JSON literal and falling back to a raw string.
func parseFieldBlock(block string) (map[string]any, bool) {
	block = strings.TrimSpace(block)
	if !strings.HasPrefix(block, "{") || !strings.HasSuffix(block, "}") {
		return nil, false
	}
	inner := block[1 : len(block)-1]

	fields := make(map[string]any)
	for _, pair := range splitTopLevel(inner, ',') {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		colonIdx := strings.Index(pair, ":")
		if colonIdx < 0 {
			return nil, false
		}

		key := strings.Trim(strings.TrimSpace(pair[:colonIdx]), `"`)
		rawValue := strings.TrimSpace(pair[colonIdx+1:])
		fields[key] = parseFieldValue(rawValue)
	}
	return fields, true
}

func parseFieldValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return strings.Trim(raw, `"`)
}
