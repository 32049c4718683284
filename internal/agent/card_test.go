package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAgentCard(t *testing.T) {
	data, err := LoadAgentCard("https://planner.example.com/")
	require.NoError(t, err)

	var card AgentCard
	require.NoError(t, json.Unmarshal(data, &card))
	assert.Equal(t, "https://planner.example.com/a2a/planner", card.URL)
	assert.Len(t, card.Skills, 3)
	assert.Equal(t, "generate-meal-plan", card.Skills[0].ID)
}

func TestLoadAgentCardDefaultURL(t *testing.T) {
	data, err := LoadAgentCard("")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"url": "http://localhost:8080/a2a/planner"`)
}
