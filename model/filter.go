package model

import (
	"fmt"

	"github.com/sqlercore/sqler/errs"
)

// Operator is the comparison or membership test a FilterCondition applies.
type Operator string

const (
	OpEqual      Operator = "eq"
	OpNotEqual   Operator = "ne"
	OpGreater    Operator = "gt"
	OpLess       Operator = "lt"
	OpGreaterEq  Operator = "gte"
	OpLessEq     Operator = "lte"
	OpLike       Operator = "like"
	OpNotLike    Operator = "not_like"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not_in"
	OpBetween    Operator = "between"
	OpIsNull     Operator = "is_null"
	OpIsNotNull  Operator = "is_not_null"
)

// ValueConditionKind tags which variant of ValueCondition is populated.
type ValueConditionKind string

const (
	ValueNull   ValueConditionKind = "null"
	ValueBool   ValueConditionKind = "bool"
	ValueString ValueConditionKind = "string"
	ValueNumber ValueConditionKind = "number"
	ValueList   ValueConditionKind = "list"
	ValueRange  ValueConditionKind = "range"
)

// ValueCondition is the tagged union a FilterCondition's value takes.
// Exactly the field matching Kind is meaningful.
type ValueCondition struct {
	Kind   ValueConditionKind `json:"kind"`
	Bool   bool               `json:"bool,omitempty"`
	String string             `json:"string,omitempty"`
	Number float64            `json:"number,omitempty"`
	List   []string           `json:"list,omitempty"`
	RangeLo string            `json:"rangeLo,omitempty"`
	RangeHi string            `json:"rangeHi,omitempty"`
}

// ValueNullCondition builds a Null ValueCondition.
func ValueNullCondition() ValueCondition { return ValueCondition{Kind: ValueNull} }

// ValueBoolCondition builds a Bool ValueCondition.
func ValueBoolCondition(v bool) ValueCondition { return ValueCondition{Kind: ValueBool, Bool: v} }

// ValueStringCondition builds a String ValueCondition.
func ValueStringCondition(v string) ValueCondition {
	return ValueCondition{Kind: ValueString, String: v}
}

// ValueNumberCondition builds a Number ValueCondition.
func ValueNumberCondition(v float64) ValueCondition {
	return ValueCondition{Kind: ValueNumber, Number: v}
}

// ValueListCondition builds a List ValueCondition.
func ValueListCondition(v []string) ValueCondition { return ValueCondition{Kind: ValueList, List: v} }

// ValueRangeCondition builds a Range ValueCondition.
func ValueRangeCondition(lo, hi string) ValueCondition {
	return ValueCondition{Kind: ValueRange, RangeLo: lo, RangeHi: hi}
}

// FilterCondition is one WHERE-clause term. Validate enforces the operator/
// value pairing invariant from §3 before any backend is contacted.
type FilterCondition struct {
	Field    string         `json:"field"`
	Operator Operator       `json:"operator"`
	Value    ValueCondition `json:"value"`
}

// Validate checks that Value's kind is the one Operator requires:
// In/NotIn pair with List, Between pairs with Range, IsNull/IsNotNull
// ignore the value entirely, and every other operator pairs with a scalar
// (Null, Bool, String, or Number).
func (f FilterCondition) Validate() error {
	switch f.Operator {
	case OpIn, OpNotIn:
		if f.Value.Kind != ValueList {
			return invalidOperatorPairing(f.Operator, f.Value.Kind)
		}
	case OpBetween:
		if f.Value.Kind != ValueRange {
			return invalidOperatorPairing(f.Operator, f.Value.Kind)
		}
	case OpIsNull, OpIsNotNull:
		// value is ignored regardless of kind
	case OpEqual, OpNotEqual, OpGreater, OpLess, OpGreaterEq, OpLessEq, OpLike, OpNotLike:
		switch f.Value.Kind {
		case ValueBool, ValueString, ValueNumber, ValueNull:
		default:
			return invalidOperatorPairing(f.Operator, f.Value.Kind)
		}
	default:
		return errs.NewInvalidRequest(fmt.Sprintf("unknown operator %q", f.Operator))
	}

	return nil
}

func invalidOperatorPairing(op Operator, kind ValueConditionKind) error {
	return errs.NewInvalidRequest(fmt.Sprintf("operator %q does not accept a %q value", op, kind))
}
