package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/pkg/logger"
)

// IAIService drafts email bodies with Gemini. The orchestrator treats a
// nil generator as "use the built-in template", so callers should only
// wire this when an API key is configured.
type IAIService interface {
	Draft(ctx context.Context, subject, message, sender, recipient string) (string, error)
}

type aiService struct {
	apiKey   string
	endpoint string
	log      logger.ILogger
}

type geminiChatParts struct {
	Text string `json:"text"`
}

type geminiChatContent struct {
	Parts []*geminiChatParts `json:"parts"`
	Role  string             `json:"role"`
}

type geminiChatRequest struct {
	Contents []*geminiChatContent `json:"contents"`
}

type geminiChatResponse struct {
	Candidates []*struct {
		Content *geminiChatContent `json:"content"`
	} `json:"candidates"`
}

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent"

const draftPrompt = `Write a short, professional email body on behalf of %s addressed to %s.
Subject: %s
What the sender wants to say: %s
Rules: plain text only, no subject line, no markdown, no placeholders, sign off as %s.`

func NewAIService(apiKey string, log logger.ILogger) IAIService {
	if apiKey == "" {
		return nil
	}
	return &aiService{
		apiKey:   apiKey,
		endpoint: geminiEndpoint,
		log:      log,
	}
}

func (s *aiService) Draft(ctx context.Context, subject, message, sender, recipient string) (string, error) {
	prompt := fmt.Sprintf(draftPrompt, sender, recipient, subject, message, sender)

	payload := geminiChatRequest{
		Contents: []*geminiChatContent{
			{
				Parts: []*geminiChatParts{{Text: prompt}},
				Role:  "user",
			},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes geminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}
	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	draft := strings.TrimSpace(geminiRes.Candidates[0].Content.Parts[0].Text)
	if draft == "" {
		return "", fmt.Errorf("empty draft from model")
	}
	s.log.Debug("ai", "draft generated", map[string]interface{}{"recipient": recipient, "chars": len(draft)})
	return draft, nil
}
