package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/triggr-io/triggr/pkg/apperr"
	"github.com/triggr-io/triggr/pkg/types"
)

// parseCondition parses a single condition expression: either an
// AND/OR combination split at the first (leftmost) occurring
// combinator, or a leaf comparator "events.Name.field OP literal".
// There is no operator precedence — nested combinations require
// explicit parentheses, which this grammar does not support, so
// authors write single-level chains instead.
func parseCondition(input string) (*types.Condition, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, apperr.BadRequestf("empty condition")
	}

	andIdx := strings.Index(input, "&&")
	orIdx := strings.Index(input, "||")

	switch {
	case andIdx >= 0 && (orIdx < 0 || andIdx < orIdx):
		left, err := parseCondition(input[:andIdx])
		if err != nil {
			return nil, err
		}
		right, err := parseCondition(input[andIdx+2:])
		if err != nil {
			return nil, err
		}
		return &types.Condition{Op: types.OpAnd, Left: left, Right: right}, nil

	case orIdx >= 0:
		left, err := parseCondition(input[:orIdx])
		if err != nil {
			return nil, err
		}
		right, err := parseCondition(input[orIdx+2:])
		if err != nil {
			return nil, err
		}
		return &types.Condition{Op: types.OpOr, Left: left, Right: right}, nil

	default:
		return parseComparator(input)
	}
}

// comparatorOrder lists multi-character operators before their
// single-character prefixes so ">=" is never mistaken for ">".
var comparatorOrder = []types.ConditionOp{
	types.OpGreaterOrEqual,
	types.OpLessOrEqual,
	types.OpGreaterThan,
	types.OpLessThan,
	types.OpEquals,
	types.OpNotEquals,
}

func parseComparator(input string) (*types.Condition, error) {
	input = strings.TrimSpace(input)

	for _, op := range comparatorOrder {
		idx := strings.Index(input, string(op))
		if idx < 0 {
			continue
		}

		field := strings.TrimSpace(input[:idx])
		literal := strings.TrimSpace(input[idx+len(op):])
		if field == "" {
			return nil, apperr.BadRequestf("missing field before %q in condition %q", op, input)
		}

		value, err := parseLiteral(literal, op)
		if err != nil {
			return nil, err
		}

		return &types.Condition{Op: op, Field: field, Value: value}, nil
	}

	return nil, apperr.BadRequestf("unable to parse condition %q: no recognised comparator", input)
}

// parseLiteral parses a comparator's right-hand side. Relational
// operators (>, <, >=, <=) always coerce to float64; equality
// operators (==, !=) parse a JSON number, double-quoted string,
// boolean, or null, and fall back to the raw string otherwise.
func parseLiteral(literal string, op types.ConditionOp) (any, error) {
	switch op {
	case types.OpGreaterThan, types.OpLessThan, types.OpGreaterOrEqual, types.OpLessOrEqual:
		cleaned := strings.ReplaceAll(literal, ",", "")
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil, apperr.BadRequestf("invalid numeric literal %q: %v", literal, err)
		}
		return v, nil

	default: // ==, !=
		switch {
		case literal == "true":
			return true, nil
		case literal == "false":
			return false, nil
		case literal == "null":
			return nil, nil
		case strings.HasPrefix(literal, `"`) && strings.HasSuffix(literal, `"`) && len(literal) >= 2:
			return strings.Trim(literal, `"`), nil
		default:
			if v, err := strconv.ParseFloat(literal, 64); err == nil {
				return v, nil
			}
			return literal, nil
		}
	}
}

func conditionString(c *types.Condition) string {
	if c == nil {
		return ""
	}
	if c.IsLeaf() {
		return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
	}
	return fmt.Sprintf("(%s) %s (%s)", conditionString(c.Left), c.Op, conditionString(c.Right))
}
