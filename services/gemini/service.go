package geminisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/tumaini/malengo/core"
	"github.com/tumaini/malengo/core/moderation"
)

var errNoAPIKey = errors.New("gemini: no API key configured")

type (
	// generateContent request/response envelopes; see
	// https://ai.google.dev/api/generate-content
	contentPart struct {
		Text string `json:"text"`
	}
	content struct {
		Parts []contentPart `json:"parts"`
	}
	generateRequest struct {
		Contents []content `json:"contents"`
	}
	candidate struct {
		Content content `json:"content"`
	}
	generateResponse struct {
		Candidates []candidate `json:"candidates"`
	}

	service struct {
		key      string
		endpoint string
		client   *http.Client
	}
)

var _ moderation.TextCompletionProvider = (*service)(nil) // interface compliance check

// NewService returns a TextCompletionProvider backed by the Gemini
// generateContent API. An empty API key is a valid "moderation disabled"
// state: calls then fail without touching the network.
func NewService(conf *core.Config, client ...*http.Client) *service {
	c := http.DefaultClient
	if len(client) > 0 {
		c = client[0]
	}
	return &service{
		key:      conf.Gemini.APIKey,
		endpoint: conf.Gemini.Endpoint,
		client:   c,
	}
}

func (svc *service) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if svc.key == "" {
		return "", errNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []contentPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "marshalling request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", svc.key)

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling gemini")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("gemini: unexpected status %d", res.StatusCode)
	}

	var data generateResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}
	return data.Candidates[0].Content.Parts[0].Text, nil
}
