package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPairs(t *testing.T) {
	assert.Equal(t, "email=a@b.c", formatPairs([]any{"email", "a@b.c"}))
	assert.Equal(t, "email=a@b.c code=401", formatPairs([]any{"email", "a@b.c", "code", 401}))
	assert.Equal(t, "dangling", formatPairs([]any{"dangling"}))
	assert.Equal(t, "", formatPairs(nil))
}
