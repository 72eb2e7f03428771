package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/petasbytes/companion/internal/session"
)

const backendGemini = "gemini"

// Finish reasons that mean the reply was withheld by a content filter.
var blockedFinish = map[genai.FinishReason]bool{
	"SAFETY":             true,
	"RECITATION":         true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
	"SPII":               true,
	"IMAGE_SAFETY":       true,
}

// NewGeminiClient returns a Gemini API client for apiKey.
func NewGeminiClient(ctx context.Context, apiKey string, o options) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if o.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return client, nil
}

type Gemini struct {
	client   *genai.Client
	settings Settings
}

func NewGemini(client *genai.Client, s Settings) *Gemini {
	return &Gemini{client: client, settings: s}
}

func (g *Gemini) Reply(ctx context.Context, history []session.Turn, user string) (string, error) {
	start := time.Now()
	reply, err := g.reply(ctx, history, user)
	emitReply(ctx, backendGemini, g.settings.Model, start, reply, err)
	return reply, err
}

func (g *Gemini) reply(ctx context.Context, history []session.Turn, user string) (string, error) {
	turns, err := prepareTurns(ctx, backendGemini, g.settings, history, user)
	if err != nil {
		return "", err
	}

	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		var role genai.Role
		switch t.Role {
		case session.RoleAssistant:
			role = genai.RoleModel
		default:
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		MaxOutputTokens:   int32(g.settings.MaxTokens),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.settings.Model, contents, cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", classify(apiErr.Code, apiErr.Status, apiErr.Message, err)
		}
		var apiErrPtr *genai.APIError
		if errors.As(err, &apiErrPtr) {
			return "", classify(apiErrPtr.Code, apiErrPtr.Status, apiErrPtr.Message, err)
		}
		return "", classifyTransport(err)
	}

	if res.PromptFeedback != nil && res.PromptFeedback.BlockReason != "" {
		return "", newError(ErrPolicy, 0, "prompt blocked: "+string(res.PromptFeedback.BlockReason), nil)
	}
	if len(res.Candidates) > 0 && blockedFinish[res.Candidates[0].FinishReason] {
		return "", newError(ErrPolicy, 0, "reply blocked: "+string(res.Candidates[0].FinishReason), nil)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", newError(ErrEmptyReply, 0, "", nil)
	}
	return text, nil
}
