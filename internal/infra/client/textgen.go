// Package client contains HTTP clients for external services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("client")

// TextGenClient calls a Gemini-style generateContent API. The API key never
// leaves the server: it is appended as a query parameter on the outbound
// request only.
type TextGenClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	bulkhead   *resilience.Bulkhead
}

// NewTextGenClient creates a new TextGenClient.
func NewTextGenClient(httpClient *http.Client, baseURL, model, apiKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, bulkhead *resilience.Bulkhead) *TextGenClient {
	return &TextGenClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		model:      model,
		apiKey:     apiKey,
		cb:         cb,
		cfg:        cfg,
		bulkhead:   bulkhead,
	}
}

// generateContent wire format.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

// Generate sends the prompt and returns the first candidate's text.
func (c *TextGenClient) Generate(ctx context.Context, prompt string) (*domain.GeneratedText, error) {
	ctx, span := tracer.Start(ctx, "TextGenClient.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("textgen.model", c.model))

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.bulkhead.Release()

	var genResp generateResponse

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := json.Marshal(generateRequest{
				Contents: []content{{Parts: []part{{Text: prompt}}}},
			})
			if err != nil {
				return err
			}

			endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
				c.baseURL, c.model, url.QueryEscape(c.apiKey))
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
			if err != nil {
				return err
			}
			httpReq.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("textgen API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&genResp)
		})
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, &domain.ErrCircuitOpen{Service: "textgen"}
		}
		return nil, &domain.ErrExternalService{Service: "textgen", Err: err}
	}

	if len(genResp.Candidates) == 0 {
		return nil, &domain.ErrExternalService{
			Service: "textgen",
			Err:     fmt.Errorf("response contained no candidates"),
		}
	}

	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return &domain.GeneratedText{
		Text:             sb.String(),
		PromptTokens:     genResp.UsageMetadata.PromptTokenCount,
		CompletionTokens: genResp.UsageMetadata.CandidatesTokenCount,
	}, nil
}
