package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Generator is the language-model boundary: prompt text in, a structured
// scenario out, or a failure with a human-readable message. The host does
// not care what sits behind it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*SourceUnit, error)
}

// HTTPGenerator talks to a JSON endpoint that synthesizes scenario source
// from a prompt.
type HTTPGenerator struct {
	endpoint string
	model    string
	client   *http.Client
	log      *zap.Logger
}

func NewHTTPGenerator(endpoint, model string, timeout time.Duration, log *zap.Logger) *HTTPGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPGenerator{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

type generateResponse struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Explanation string `json:"explanation"`
	Links       []Link `json:"sources,omitempty"`
	Error       string `json:"error,omitempty"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (*SourceUnit, error) {
	if g.endpoint == "" {
		return nil, fmt.Errorf("no generator endpoint configured")
	}

	body, err := json.Marshal(generateRequest{Prompt: prompt, Model: g.model})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	g.log.Debug("requesting scenario", zap.String("prompt", prompt))
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generator unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %s", resp.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("malformed generator response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("generator: %s", out.Error)
	}
	if out.Source == "" {
		return nil, fmt.Errorf("generator produced no source text")
	}

	unit := New(out.Title, out.Source, out.Explanation)
	unit.Links = out.Links
	if unit.Title == "" {
		unit.Title = prompt
	}
	g.log.Info("scenario generated",
		zap.String("title", unit.Title),
		zap.Int("source_bytes", len(unit.Source)))
	return unit, nil
}
