// Package agent holds the A2A agent card served at /.well-known/agent.json.
package agent

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:embed agent.json
var embeddedCard []byte

type AgentCard struct {
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	URL                string         `json:"url"`
	Version            string         `json:"version"`
	Provider           map[string]any `json:"provider,omitempty"`
	Capabilities       map[string]any `json:"capabilities"`
	DefaultInputModes  []string       `json:"defaultInputModes"`
	DefaultOutputModes []string       `json:"defaultOutputModes"`
	Skills             []Skill        `json:"skills"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// LoadAgentCard returns the card JSON with its url pointing at baseURL's
// planner endpoint. An empty baseURL keeps the embedded url.
func LoadAgentCard(baseURL string) ([]byte, error) {
	var card AgentCard
	if err := json.Unmarshal(embeddedCard, &card); err != nil {
		return nil, fmt.Errorf("failed to parse agent card: %w", err)
	}
	if card.Name == "" || len(card.Skills) == 0 {
		return nil, errors.New("agent card is missing name or skills")
	}

	if baseURL != "" {
		card.URL = strings.TrimRight(baseURL, "/") + "/a2a/planner"
	}

	return json.MarshalIndent(card, "", "  ")
}
