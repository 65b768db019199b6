// internal/ai/describer.go
//
// Client for the generative model endpoint that writes eco-profile
// descriptions. Speaks the Gemini generateContent REST API directly;
// the endpoint, model, and key come from configuration so tests can
// point it at a local server.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"
)

// DescribeInput is the profile material the model writes from.
type DescribeInput struct {
	UserName      string   `json:"userName"`
	Country       string   `json:"country"`
	EcoPoints     int      `json:"ecoPoints"`
	Badges        []string `json:"badges"`
	Contributions string   `json:"contributions"`
}

// Validate rejects input the model cannot write a sensible
// description from.
func (in DescribeInput) Validate() error {
	if strings.TrimSpace(in.UserName) == "" {
		return errors.New("userName is required")
	}
	if in.EcoPoints < 0 {
		return errors.New("ecoPoints must not be negative")
	}
	if len(in.Badges) == 0 {
		return errors.New("at least one badge is required")
	}
	if len(strings.TrimSpace(in.Contributions)) < 10 {
		return errors.New("contributions summary is too short")
	}
	return nil
}

// DescribeOutput carries the generated description.
type DescribeOutput struct {
	Description string `json:"description"`
}

// Describer generates eco-profile descriptions.
type Describer interface {
	Describe(ctx context.Context, in DescribeInput) (DescribeOutput, error)
}

var promptTmpl = template.Must(template.New("describe").Parse(
	`You are an AI assistant specialized in creating engaging and personalized Eco-Profile descriptions for users of a sustainability app.

Given the following information about the user, generate a short and compelling description for their profile.
Include location-specific and timely information to make the description more engaging. Keep it to under 100 words.

User Name: {{.UserName}}
Country: {{.Country}}
EcoPoints: {{.EcoPoints}}
Badges: {{.BadgeList}}
Contributions: {{.Contributions}}

Example:
"Meet [User Name], a sustainability champion from [Country]! With [EcoPoints] EcoPoints and badges like [Badges], they're making a real difference. They have significantly contributed to [contributions]. Join them in creating a greener future!"
`))

// BuildPrompt renders the model prompt for the given input.
// Exported for tests and for logging at debug level.
func BuildPrompt(in DescribeInput) (string, error) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		DescribeInput
		BadgeList string
	}{in, strings.Join(in.Badges, ", ")})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

// Client calls a Gemini-style generateContent endpoint.
type Client struct {
	endpoint string
	model    string
	key      string
	http     *http.Client
	log      *zap.Logger
}

// NewClient builds a Describer. endpoint is the API base URL
// (without the /v1beta path), model the model name, key the API key.
func NewClient(endpoint, model, key string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if key == "" {
		return nil, errors.New("generative model api key is not configured")
	}
	if model == "" {
		return nil, errors.New("generative model name is not configured")
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		key:      key,
		http:     &http.Client{Timeout: timeout},
		log:      logger,
	}, nil
}

// Request/response shapes for the generateContent API. Only the
// fields we read or write are declared.

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
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Describe(ctx context.Context, in DescribeInput) (DescribeOutput, error) {
	if err := in.Validate(); err != nil {
		return DescribeOutput{}, err
	}
	prompt, err := BuildPrompt(in)
	if err != nil {
		return DescribeOutput{}, err
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return DescribeOutput{}, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return DescribeOutput{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.key)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return DescribeOutput{}, fmt.Errorf("call model endpoint: %w", err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return DescribeOutput{}, fmt.Errorf("decode model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return DescribeOutput{}, fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, msg)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return DescribeOutput{}, errors.New("model returned no candidates")
	}

	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return DescribeOutput{}, errors.New("model returned an empty description")
	}

	c.log.Debug("description generated",
		zap.String("model", c.model),
		zap.Int("chars", len(text)),
		zap.Duration("took", time.Since(start)))

	return DescribeOutput{Description: text}, nil
}
