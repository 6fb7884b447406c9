package agent

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/budget-agent/internal/category"
)

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt(time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC))

	assert.Contains(t, prompt, "Today's date is 2025-03-14.")
	assert.Contains(t, prompt, FunctionLogTransaction)
	assert.Contains(t, prompt, FunctionReadTransactions)
	for _, name := range category.Required() {
		assert.Contains(t, prompt, "- "+name+"\n")
	}
	assert.NotContains(t, prompt, "{{")
}

func TestBuildPrompt(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	prompt := BuildPrompt(now, "coffee 3.50")

	assert.True(t, strings.HasPrefix(prompt, SystemPrompt(now)))
	assert.True(t, strings.HasSuffix(prompt, "\nUser: coffee 3.50"))
}
