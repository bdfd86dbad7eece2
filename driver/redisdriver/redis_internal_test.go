package redisdriver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyToJSON_Nil(t *testing.T) {
	assert.Nil(t, replyToJSON(nil))
}

func TestReplyToJSON_Int(t *testing.T) {
	assert.Equal(t, int64(42), replyToJSON(int64(42)))
}

func TestReplyToJSON_UTF8String(t *testing.T) {
	assert.Equal(t, "hello", replyToJSON("hello"))
}

func TestReplyToJSON_NonUTF8FallsBackToHex(t *testing.T) {
	raw := string([]byte{0xff, 0xfe})
	assert.Equal(t, "fffe", replyToJSON(raw))
}

func TestReplyToJSON_ArrayRecurses(t *testing.T) {
	result := replyToJSON([]any{int64(1), "two", nil})
	assert.Equal(t, []any{int64(1), "two", nil}, result)
}

func TestEstimateAffected(t *testing.T) {
	assert.Equal(t, uint64(1), estimateAffected("OK"))
	assert.Equal(t, uint64(5), estimateAffected(int64(5)))
	assert.Equal(t, uint64(0), estimateAffected(int64(-1)))
	assert.Equal(t, uint64(3), estimateAffected([]any{1, 2, 3}))
	assert.Equal(t, uint64(0), estimateAffected(nil))
}
