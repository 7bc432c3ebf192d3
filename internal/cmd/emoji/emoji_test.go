package emoji_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/fieldscope/internal/cmd/emoji"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

func TestForCompliance(t *testing.T) {
	assert.Equal(t, "✅", emoji.ForCompliance(lookup.Compliant))
	assert.Equal(t, "❌", emoji.ForCompliance(lookup.NonCompliant))
	assert.Equal(t, "❓", emoji.ForCompliance(lookup.Unknown))
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "Yes", emoji.YesNo(true))
	assert.Equal(t, "No", emoji.YesNo(false))
}
