package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/playmaker-live/playmaker/internal/config"
	"github.com/playmaker-live/playmaker/pkg/apperr"
)

type stubSender struct {
	name  string
	err   error
	calls int
}

func (s *stubSender) SendSMS(ctx context.Context, to, body string) error {
	s.calls++
	return s.err
}

func (s *stubSender) Name() string { return s.name }

func TestNewSMTPGateway_NilWhenUnconfigured(t *testing.T) {
	if g := NewSMTPGateway(config.SMTP{}); g != nil {
		t.Error("expected nil gateway without credentials")
	}
	if g := NewSMTPGateway(config.SMTP{Host: "smtp.example.com", Username: "u@example.com"}); g == nil {
		t.Error("expected gateway with credentials")
	}
}

func TestNewTwilioSender_NilWhenUnconfigured(t *testing.T) {
	if s := NewTwilioSender(config.Twilio{}); s != nil {
		t.Error("expected nil sender without credentials")
	}
	if s := NewTwilioSender(config.Twilio{AccountSID: "AC1", AuthToken: "tok", FromNumber: "+15550001111"}); s == nil {
		t.Error("expected sender with credentials")
	}
}

func TestSenderChain_SkipsTypedNilSenders(t *testing.T) {
	chain := NewSenderChain(
		NewSMTPGateway(config.SMTP{}),
		NewTwilioSender(config.Twilio{}),
	)

	if chain.Enabled() {
		t.Error("expected chain disabled when every sender is nil")
	}

	err := chain.SendSMS(context.Background(), "+15551234567", "hello")
	if !errors.Is(err, apperr.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSenderChain_FirstSuccessStops(t *testing.T) {
	first := &stubSender{name: "first"}
	second := &stubSender{name: "second"}
	chain := NewSenderChain(first, second)

	if err := chain.SendSMS(context.Background(), "+15551234567", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.calls != 1 || second.calls != 0 {
		t.Errorf("expected only first sender tried, got first=%d second=%d", first.calls, second.calls)
	}
}

func TestSenderChain_FallsThroughUpstreamFailure(t *testing.T) {
	first := &stubSender{name: "first", err: fmt.Errorf("gateway down: %w", apperr.ErrUpstreamUnavailable)}
	second := &stubSender{name: "second"}
	chain := NewSenderChain(first, second)

	if err := chain.SendSMS(context.Background(), "+15551234567", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.calls != 1 {
		t.Errorf("expected fallback to second sender, got %d calls", second.calls)
	}
}

func TestSenderChain_ValidationErrorStopsChain(t *testing.T) {
	first := &stubSender{name: "first", err: fmt.Errorf("bad number: %w", apperr.ErrValidation)}
	second := &stubSender{name: "second"}
	chain := NewSenderChain(first, second)

	err := chain.SendSMS(context.Background(), "garbage", "hello")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if second.calls != 0 {
		t.Errorf("validation failure must not be retried, got %d calls", second.calls)
	}
}

func TestSenderChain_AllFail(t *testing.T) {
	first := &stubSender{err: fmt.Errorf("down: %w", apperr.ErrUpstreamUnavailable)}
	second := &stubSender{err: fmt.Errorf("also down: %w", apperr.ErrUpstreamUnavailable)}
	chain := NewSenderChain(first, second)

	err := chain.SendSMS(context.Background(), "+15551234567", "hello")
	if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+1 (555) 123-4567", "5551234567"},
		{"5551234567", "5551234567"},
		{"15551234567", "5551234567"},
		{"+44 20 7946 0958", "442079460958"},
		{"", ""},
		{"no digits", ""},
	}

	for _, tt := range tests {
		if got := digitsOnly(tt.input); got != tt.want {
			t.Errorf("digitsOnly(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
