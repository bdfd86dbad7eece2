package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

func TestFilterCondition_Validate_InRequiresList(t *testing.T) {
	f := model.FilterCondition{Field: "tag", Operator: model.OpIn, Value: model.ValueListCondition([]string{"a", "b"})}
	assert.NoError(t, f.Validate())

	f.Value = model.ValueStringCondition("a")
	err := f.Validate()
	assert.Error(t, err)
	var driverErr *errs.DriverError
	assert.ErrorAs(t, err, &driverErr)
	assert.Equal(t, errs.InvalidRequest, driverErr.Kind)
}

func TestFilterCondition_Validate_BetweenRequiresRange(t *testing.T) {
	f := model.FilterCondition{Field: "age", Operator: model.OpBetween, Value: model.ValueRangeCondition("1", "10")}
	assert.NoError(t, f.Validate())

	f.Value = model.ValueNumberCondition(5)
	assert.Error(t, f.Validate())
}

func TestFilterCondition_Validate_IsNullIgnoresValue(t *testing.T) {
	f := model.FilterCondition{Field: "deleted_at", Operator: model.OpIsNull}
	assert.NoError(t, f.Validate())

	f.Value = model.ValueListCondition([]string{"irrelevant"})
	assert.NoError(t, f.Validate())
}

func TestFilterCondition_Validate_ScalarOperatorsRejectListAndRange(t *testing.T) {
	for _, op := range []model.Operator{
		model.OpEqual, model.OpNotEqual, model.OpGreater, model.OpLess,
		model.OpGreaterEq, model.OpLessEq, model.OpLike, model.OpNotLike,
	} {
		f := model.FilterCondition{Field: "x", Operator: op, Value: model.ValueNumberCondition(1)}
		assert.NoError(t, f.Validate(), "operator %s should accept a scalar", op)

		f.Value = model.ValueListCondition([]string{"1"})
		assert.Error(t, f.Validate(), "operator %s should reject a list", op)
	}
}
