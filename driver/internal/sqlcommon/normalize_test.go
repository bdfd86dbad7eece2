package sqlcommon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringifyCell(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int64", int64(42), "42"},
		{"float64 whole", float64(100), "100"},
		{"float64 fraction", float64(3.5), "3.5"},
		{"string", "hi", "hi"},
		{"utf8 bytes", []byte("hi"), "hi"},
		{"binary bytes", []byte{0xff, 0x00, 0x10}, "ff0010"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StringifyCell(tc.in))
		})
	}
}

func TestStringifyCell_Time(t *testing.T) {
	ts := time.Date(2026, 3, 5, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-05T12:30:00Z", StringifyCell(ts))
}
