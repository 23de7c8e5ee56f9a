package cloudcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
)

const (
	DefaultBaseURL   = "https://cloudcode-pa.googleapis.com/v1internal"
	DefaultUserAgent = "antigravity/1.11.9 linux/amd64"
	maxResponseBytes = 4 << 20
)

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	clock      ports.Clock
}

var (
	_ ports.QuotaFetcher    = (*Client)(nil)
	_ ports.ProjectResolver = (*Client)(nil)
)

func NewClient(baseURL string, httpClient *http.Client, clock ports.Clock) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  DefaultUserAgent,
		httpClient: httpClient,
		clock:      clock,
	}
}

type modelsPayload struct {
	Models map[string]modelPayload `json:"models"`
}

type modelPayload struct {
	DisplayName string     `json:"displayName"`
	QuotaInfo   *quotaInfo `json:"quotaInfo"`
}

type quotaInfo struct {
	RemainingFraction *float64 `json:"remainingFraction"`
	ResetTime         string   `json:"resetTime"`
}

type fetchModelsRequest struct {
	Project string `json:"project,omitempty"`
}

// FetchQuota calls fetchAvailableModels and converts each model's remaining
// fraction into a used percentage. Models without quota info are skipped.
func (c *Client) FetchQuota(ctx context.Context, accessToken, projectID string) (domain.Quota, error) {
	status, header, body, err := c.post(ctx, "fetchAvailableModels", accessToken, fetchModelsRequest{Project: projectID})
	if err != nil {
		return domain.Quota{}, err
	}

	switch {
	case status == http.StatusForbidden:
		return domain.Quota{IsForbidden: true, LastUpdated: c.clock.Now()}, nil
	case status == http.StatusTooManyRequests:
		return domain.Quota{}, &domain.RateLimitError{RetryAfter: retryDelay(body, header)}
	case status < 200 || status > 299:
		return domain.Quota{}, fmt.Errorf("status %d: %s", status, strings.TrimSpace(string(body)))
	}

	var payload modelsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Quota{}, fmt.Errorf("decode payload: %w", err)
	}

	quota := domain.Quota{LastUpdated: c.clock.Now(), Models: []domain.ModelQuota{}}
	for name, model := range payload.Models {
		if model.QuotaInfo == nil {
			continue
		}
		quota.Models = append(quota.Models, domain.ModelQuota{
			Name:       name,
			Percentage: usedPercentage(model.QuotaInfo.RemainingFraction),
			ResetTime:  parseResetTime(model.QuotaInfo.ResetTime),
		})
	}
	quota.SortModels()

	return quota, nil
}

type clientMetadata struct {
	IDEType    string `json:"ideType"`
	Platform   string `json:"platform"`
	PluginType string `json:"pluginType"`
}

type loadCodeAssistRequest struct {
	Metadata clientMetadata `json:"metadata"`
}

type loadCodeAssistResponse struct {
	Project json.RawMessage `json:"cloudaicompanionProject"`
}

// ResolveProject asks loadCodeAssist for the project assigned to the account.
// The API returns it either as a bare string or as an object with an id.
func (c *Client) ResolveProject(ctx context.Context, accessToken string) (string, error) {
	request := loadCodeAssistRequest{Metadata: clientMetadata{
		IDEType:    "IDE_UNSPECIFIED",
		Platform:   "PLATFORM_UNSPECIFIED",
		PluginType: "GEMINI",
	}}

	status, header, body, err := c.post(ctx, "loadCodeAssist", accessToken, request)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusTooManyRequests:
		return "", &domain.RateLimitError{RetryAfter: retryDelay(body, header)}
	case status < 200 || status > 299:
		return "", fmt.Errorf("load code assist: status %d: %s", status, strings.TrimSpace(string(body)))
	}

	var payload loadCodeAssistResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode load code assist: %w", err)
	}

	var id string
	if err := json.Unmarshal(payload.Project, &id); err == nil && strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id), nil
	}
	var nested struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload.Project, &nested); err == nil && strings.TrimSpace(nested.ID) != "" {
		return strings.TrimSpace(nested.ID), nil
	}

	return "", errors.New("load code assist: no project in response")
}

func (c *Client) post(ctx context.Context, method, accessToken string, payload any) (int, http.Header, []byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("encode %s request: %w", method, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+":"+method, bytes.NewReader(encoded))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+accessToken)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", c.userAgent)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response: %w", err)
	}

	return response.StatusCode, response.Header, body, nil
}

type errorEnvelope struct {
	Error struct {
		Details []errorDetail `json:"details"`
	} `json:"error"`
}

type errorDetail struct {
	Type       string `json:"@type"`
	RetryDelay string `json:"retryDelay"`
	Metadata   struct {
		QuotaResetDelay string `json:"quotaResetDelay"`
	} `json:"metadata"`
}

// retryDelay reads the wait hinted by a 429 response: RetryInfo.retryDelay
// first, then metadata.quotaResetDelay, then a Retry-After header in seconds.
// Zero means no hint.
func retryDelay(body []byte, header http.Header) time.Duration {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, detail := range envelope.Error.Details {
			if !strings.Contains(detail.Type, "RetryInfo") {
				continue
			}
			if d, ok := parseDelay(detail.RetryDelay); ok {
				return d
			}
		}
		for _, detail := range envelope.Error.Details {
			if d, ok := parseDelay(detail.Metadata.QuotaResetDelay); ok {
				return d
			}
		}
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(header.Get("Retry-After"))); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
}

// parseDelay accepts protobuf durations such as "1.203608125s",
// "331.167174ms" or "1h16m0.667923083s".
func parseDelay(raw string) (time.Duration, bool) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// usedPercentage treats a missing fraction as fully used; the API omits it
// once a model is exhausted.
func usedPercentage(remaining *float64) int {
	if remaining == nil {
		return 100
	}
	return domain.ClampPercentage(int(math.Round((1 - *remaining) * 100)))
}

func parseResetTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}
