package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/playmaker-live/playmaker/internal/config"
	"github.com/playmaker-live/playmaker/pkg/apperr"
)

// VoiceCallInitiator starts an outbound voice call to a phone number
type VoiceCallInitiator interface {
	StartCall(ctx context.Context, to string) (callID string, err error)
	Enabled() bool
}

const vapiCallURL = "https://api.vapi.ai/call"

// VapiCaller initiates calls through the Vapi phone API
type VapiCaller struct {
	cfg        config.Vapi
	httpClient *http.Client
	callURL    string
}

// NewVapiCaller creates a Vapi caller. With credentials absent the
// caller reports disabled and every call fails with ErrNotConfigured.
func NewVapiCaller(cfg config.Vapi) *VapiCaller {
	return &VapiCaller{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		callURL: vapiCallURL,
	}
}

// Enabled reports whether all required Vapi credentials are present
func (v *VapiCaller) Enabled() bool {
	return v.cfg.PrivateKey != "" && v.cfg.PhoneNumberID != "" && v.cfg.AssistantID != ""
}

// StartCall triggers an outbound call via the Vapi phone API
func (v *VapiCaller) StartCall(ctx context.Context, to string) (string, error) {
	if !v.Enabled() {
		return "", fmt.Errorf("voice calling: %w", apperr.ErrNotConfigured)
	}
	if strings.TrimSpace(to) == "" {
		return "", fmt.Errorf("phone number required: %w", apperr.ErrValidation)
	}

	payload := map[string]interface{}{
		"assistantId":   v.cfg.AssistantID,
		"phoneNumberId": v.cfg.PhoneNumberID,
		"customer": map[string]interface{}{
			"number": to,
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal call payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", v.callURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+v.cfg.PrivateKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("vapi request: %w", apperr.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("vapi returned status %d, body=%s: %w", resp.StatusCode, string(body), apperr.ErrUpstreamUnavailable)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding vapi response: %w", err)
	}

	return result.ID, nil
}
