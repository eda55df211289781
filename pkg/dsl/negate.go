package dsl

import "github.com/triggr-io/triggr/pkg/types"

// negateCondition applies De Morgan's laws recursively, flipping
// leaf comparators to their complements and swapping AND/OR at each
// interior node. Used to synthesise an `else` branch's rule from the
// `if` branch's condition.
func negateCondition(c *types.Condition) *types.Condition {
	if c == nil {
		return nil
	}
	if c.IsLeaf() {
		return &types.Condition{Op: complement(c.Op), Field: c.Field, Value: c.Value}
	}

	var op types.ConditionOp
	switch c.Op {
	case types.OpAnd:
		op = types.OpOr
	case types.OpOr:
		op = types.OpAnd
	default:
		op = c.Op
	}
	return &types.Condition{Op: op, Left: negateCondition(c.Left), Right: negateCondition(c.Right)}
}

func complement(op types.ConditionOp) types.ConditionOp {
	switch op {
	case types.OpGreaterThan:
		return types.OpLessOrEqual
	case types.OpLessThan:
		return types.OpGreaterOrEqual
	case types.OpGreaterOrEqual:
		return types.OpLessThan
	case types.OpLessOrEqual:
		return types.OpGreaterThan
	case types.OpEquals:
		return types.OpNotEquals
	case types.OpNotEquals:
		return types.OpEquals
	default:
		return op
	}
}
