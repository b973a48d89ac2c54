// Package translate translates user-facing text through an n8n workflow.
package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julianstephens/mindfulpath/internal/integrations/httpapi"
)

var (
	ErrMissingText    = errors.New("translation response is missing translated text")
	ErrMissingTexts   = errors.New("translation response is missing translated texts array")
	ErrNotConfigured  = errors.New("translation workflow id is not configured")
	ErrLengthMismatch = errors.New("translation response length does not match request")
)

type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
	BatchTranslate(ctx context.Context, texts []string, targetLang string) ([]string, error)
}

type workflowRequest struct {
	Text           string   `json:"text,omitempty"`
	Texts          []string `json:"texts,omitempty"`
	TargetLanguage string   `json:"targetLanguage"`
}

type workflowResponse struct {
	Data struct {
		TranslatedText  *string  `json:"translatedText"`
		TranslatedTexts []string `json:"translatedTexts"`
	} `json:"data"`
}

// N8N posts to {base}/webhook/{workflowID} with the X-N8N-API-KEY header.
type N8N struct {
	client     *httpapi.Client
	workflowID string
}

func NewN8N(baseURL, apiKey, workflowID string, timeout time.Duration) *N8N {
	c := httpapi.New("n8n", baseURL, timeout)
	c.Header.Set("X-N8N-API-KEY", apiKey)
	return &N8N{client: c, workflowID: workflowID}
}

func (n *N8N) execute(ctx context.Context, req workflowRequest) (workflowResponse, error) {
	var resp workflowResponse
	if n.workflowID == "" {
		return resp, ErrNotConfigured
	}
	err := n.client.Do(ctx, http.MethodPost, "/webhook/"+n.workflowID, req, &resp)
	return resp, err
}

func (n *N8N) Translate(ctx context.Context, text, targetLang string) (string, error) {
	resp, err := n.execute(ctx, workflowRequest{Text: text, TargetLanguage: targetLang})
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	if resp.Data.TranslatedText == nil {
		return "", ErrMissingText
	}
	return *resp.Data.TranslatedText, nil
}

func (n *N8N) BatchTranslate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	resp, err := n.execute(ctx, workflowRequest{Texts: texts, TargetLanguage: targetLang})
	if err != nil {
		return nil, fmt.Errorf("batch translation failed: %w", err)
	}
	if resp.Data.TranslatedTexts == nil {
		return nil, ErrMissingTexts
	}
	if len(resp.Data.TranslatedTexts) != len(texts) {
		return nil, fmt.Errorf("%w: sent %d, got %d", ErrLengthMismatch, len(texts), len(resp.Data.TranslatedTexts))
	}
	return resp.Data.TranslatedTexts, nil
}

// Identity returns text unchanged; used when no workflow is configured.
type Identity struct{}

func (Identity) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}

func (Identity) BatchTranslate(_ context.Context, texts []string, _ string) ([]string, error) {
	return append([]string{}, texts...), nil
}
