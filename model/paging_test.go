package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlercore/sqler/model"
)

func TestPaging_Validate(t *testing.T) {
	cases := []struct {
		name    string
		paging  model.Paging
		wantErr bool
	}{
		{"valid", model.Paging{Page: 1, Size: 50}, false},
		{"page zero", model.Paging{Page: 0, Size: 50}, true},
		{"size zero", model.Paging{Page: 1, Size: 0}, true},
		{"size above max", model.Paging{Page: 1, Size: 10_001}, true},
		{"size at max", model.Paging{Page: 1, Size: 10_000}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.paging.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaging_Offset(t *testing.T) {
	assert.Equal(t, 0, model.Paging{Page: 1, Size: 50}.Offset())
	assert.Equal(t, 50, model.Paging{Page: 2, Size: 50}.Offset())
	assert.Equal(t, 200, model.Paging{Page: 5, Size: 50}.Offset())
}
