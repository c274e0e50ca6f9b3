package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPrefersPrefixedName(t *testing.T) {
	t.Setenv("OOH_LOG_FORMAT", "")
	t.Setenv("LOG_FORMAT", "")
	assert.Equal(t, "json", Get("LOG_FORMAT", "json"))

	t.Setenv("LOG_FORMAT", "console")
	assert.Equal(t, "console", Get("LOG_FORMAT", "json"))

	t.Setenv("OOH_LOG_FORMAT", " json ")
	assert.Equal(t, "json", Get("OOH_LOG_FORMAT", "console"))
}

func TestFirstSkipsBlankValues(t *testing.T) {
	t.Setenv("OOH_TEST_A", "   ")
	t.Setenv("OOH_TEST_B", "b")
	assert.Equal(t, "b", First("x", "OOH_TEST_A", "OOH_TEST_B"))
	assert.Equal(t, "x", First("x", "OOH_TEST_A"))
}
