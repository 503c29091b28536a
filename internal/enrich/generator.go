// Package enrich turns freshly created demographic profiles into persona
// prompts via an external generation collaborator, off the request path.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

// PersonaPrompt is the artifact produced for a demographic profile.
type PersonaPrompt struct {
	ProfileID string `json:"profile_id"`
	Prompt    string `json:"prompt"`
}

// ErrNoGenerator is returned when no generation endpoint is configured.
var ErrNoGenerator = errors.New("no prompt generator configured")

// Generator is the external prompt-generation collaborator. Any failure it
// returns is loggable-and-ignorable by contract.
type Generator interface {
	Generate(ctx context.Context, profile taxonomy.DemographicProfile) (PersonaPrompt, error)
}

// HTTPGenerator posts the profile to a JSON endpoint that answers with
// {"prompt": "..."}.
type HTTPGenerator struct {
	url    string
	client *http.Client
}

func NewHTTPGenerator(url string, client *http.Client) *HTTPGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGenerator{url: url, client: client}
}

func (g *HTTPGenerator) Generate(ctx context.Context, profile taxonomy.DemographicProfile) (PersonaPrompt, error) {
	if g.url == "" {
		return PersonaPrompt{}, ErrNoGenerator
	}

	body, err := json.Marshal(profile)
	if err != nil {
		return PersonaPrompt{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return PersonaPrompt{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return PersonaPrompt{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return PersonaPrompt{}, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var out struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return PersonaPrompt{}, fmt.Errorf("malformed generator response: %w", err)
	}
	return PersonaPrompt{ProfileID: profile.ID, Prompt: out.Prompt}, nil
}
