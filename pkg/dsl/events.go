package dsl

import (
	"strings"

	"github.com/triggr-io/triggr/pkg/apperr"
)

// EventDeclaration is one entry of a script's "const events" block: a
// name and its ordered, bare field labels. Parse returns the
// declarations alongside the rules but does not check a rule's
// event_name against them; they are not persisted onto the Trigger.
type EventDeclaration struct {
	Name   string
	Fields []string
}

// parseEventDeclarations extracts the `const events = [ ... ]` block:
// locate the literal "const events", find its enclosing brackets, and
// split the contents on top-level commas (respecting brace nesting,
// so a field list's internal commas are not mistaken for separators
// between declarations). "//" line comments are stripped first.
func parseEventDeclarations(input string) ([]EventDeclaration, error) {
	idx := strings.Index(input, "const events")
	if idx < 0 {
		return nil, apperr.BadRequestf("no \"const events\" declaration found")
	}
	section := stripLineComments(input[idx:])

	open := strings.Index(section, "[")
	if open < 0 {
		return nil, apperr.BadRequestf("no opening bracket after \"const events\"")
	}
	closeIdx := strings.Index(section, "]")
	if closeIdx < 0 || closeIdx < open {
		return nil, apperr.BadRequestf("no closing bracket for \"const events\"")
	}

	content := section[open+1 : closeIdx]

	var out []EventDeclaration
	for _, segment := range splitTopLevel(content, ',') {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		decl, err := parseEventDeclaration(segment)
		if err != nil {
			return nil, err
		}
		out = append(out, decl)
	}
	return out, nil
}

func parseEventDeclaration(segment string) (EventDeclaration, error) {
	bracePos := strings.Index(segment, "{")
	if bracePos < 0 {
		return EventDeclaration{}, apperr.BadRequestf("event declaration %q missing '{'", segment)
	}
	braceEnd := strings.LastIndex(segment, "}")
	if braceEnd < 0 || braceEnd < bracePos {
		return EventDeclaration{}, apperr.BadRequestf("event declaration %q missing '}'", segment)
	}

	name := strings.TrimSpace(segment[:bracePos])
	fieldsContent := segment[bracePos+1 : braceEnd]

	var fields []string
	for _, f := range strings.Split(fieldsContent, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}

	return EventDeclaration{Name: name, Fields: fields}, nil
}

// stripLineComments removes everything from "//" to end-of-line.
func stripLineComments(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// splitTopLevel splits s on sep, ignoring any sep found inside
// {}, [], or () nesting.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}
