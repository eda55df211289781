package dsl

import (
	"strings"

	"github.com/triggr-io/triggr/pkg/apperr"
	"github.com/triggr-io/triggr/pkg/types"
)

// ParseResult is everything a script yields: its declared events
// (returned as parsed, not persisted) and the rules its single
// if/else pair compiles down to.
type ParseResult struct {
	Events []EventDeclaration
	Rules  []types.Rule
}

// Parse parses a full trigger script: the `const events = [...]`
// block followed by `fn main(event) { if (COND) { ACTION* } else {
// ACTION* }? }`. The present grammar allows exactly one if/else pair
// per script; the else branch, if present, is synthesised into a
// second rule whose condition is the De Morgan negation of the if's.
func Parse(source string) (*ParseResult, error) {
	events, err := parseEventDeclarations(source)
	if err != nil {
		return nil, err
	}

	body, err := extractFunctionBody(source)
	if err != nil {
		return nil, err
	}

	ifCond, ifBody, elseBody, err := extractIfElse(body)
	if err != nil {
		return nil, err
	}

	condition, err := parseCondition(ifCond)
	if err != nil {
		return nil, err
	}

	eventName := firstEventName(condition)
	rules := []types.Rule{{
		EventName: eventName,
		Condition: condition,
		Actions:   parseActionLines(ifBody),
	}}

	if elseBody != "" {
		rules = append(rules, types.Rule{
			EventName: eventName,
			Condition: negateCondition(condition),
			Actions:   parseActionLines(elseBody),
		})
	}

	return &ParseResult{Events: events, Rules: rules}, nil
}

func extractFunctionBody(source string) (string, error) {
	fnIdx := strings.Index(source, "fn main(")
	if fnIdx < 0 {
		return "", apperr.BadRequestf("no \"fn main(...)\" rule block found")
	}

	parenOpen := strings.Index(source[fnIdx:], "(")
	if parenOpen < 0 {
		return "", apperr.BadRequestf("malformed rule block: missing '('")
	}
	parenOpen += fnIdx

	parenClose := strings.Index(source[parenOpen:], ")")
	if parenClose < 0 {
		return "", apperr.BadRequestf("malformed rule block: missing ')'")
	}
	parenClose += parenOpen

	braceOpen := strings.Index(source[parenClose:], "{")
	if braceOpen < 0 {
		return "", apperr.BadRequestf("malformed rule block: missing '{'")
	}
	braceOpen += parenClose

	content, _, err := extractBalanced(source, braceOpen, '{', '}')
	if err != nil {
		return "", apperr.BadRequestf("malformed rule block: %v", err)
	}
	return content, nil
}

func extractIfElse(body string) (condition, ifBody, elseBody string, err error) {
	ifIdx := strings.Index(body, "if")
	if ifIdx < 0 {
		return "", "", "", apperr.BadRequestf("rule block has no \"if\" statement")
	}

	parenOpen := strings.Index(body[ifIdx:], "(")
	if parenOpen < 0 {
		return "", "", "", apperr.BadRequestf("malformed if statement: missing '('")
	}
	parenOpen += ifIdx

	condContent, condEnd, err := extractBalanced(body, parenOpen, '(', ')')
	if err != nil {
		return "", "", "", apperr.BadRequestf("malformed if condition: %v", err)
	}

	braceOpen := strings.Index(body[condEnd:], "{")
	if braceOpen < 0 {
		return "", "", "", apperr.BadRequestf("malformed if statement: missing '{'")
	}
	braceOpen += condEnd

	ifContent, ifEnd, err := extractBalanced(body, braceOpen, '{', '}')
	if err != nil {
		return "", "", "", apperr.BadRequestf("malformed if body: %v", err)
	}

	rest := strings.TrimSpace(body[ifEnd:])
	if !strings.HasPrefix(rest, "else") {
		return condContent, ifContent, "", nil
	}

	elseBraceOpen := strings.Index(rest, "{")
	if elseBraceOpen < 0 {
		return "", "", "", apperr.BadRequestf("malformed else statement: missing '{'")
	}
	elseContent, _, err := extractBalanced(rest, elseBraceOpen, '{', '}')
	if err != nil {
		return "", "", "", apperr.BadRequestf("malformed else body: %v", err)
	}

	return condContent, ifContent, elseContent, nil
}

// extractBalanced returns the text strictly between the open/close
// pair starting at s[openIdx] (which must equal open), and the index
// immediately after the matching close.
func extractBalanced(s string, openIdx int, open, closeCh byte) (string, int, error) {
	if openIdx >= len(s) || s[openIdx] != open {
		return "", 0, apperr.BadRequestf("expected %q at position %d", open, openIdx)
	}

	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return s[openIdx+1 : i], i + 1, nil
			}
		}
	}
	return "", 0, apperr.BadRequestf("unbalanced %q/%q starting at %d", open, closeCh, openIdx)
}

// firstEventName walks the condition tree and returns the EventName
// segment of the first leaf's "events.EventName.field" path.
func firstEventName(c *types.Condition) string {
	if c == nil {
		return ""
	}
	if c.IsLeaf() {
		parts := strings.SplitN(c.Field, ".", 3)
		if len(parts) >= 2 && parts[0] == "events" {
			return parts[1]
		}
		return ""
	}
	if name := firstEventName(c.Left); name != "" {
		return name
	}
	return firstEventName(c.Right)
}
