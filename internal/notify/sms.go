package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/playmaker-live/playmaker/internal/config"
	"github.com/playmaker-live/playmaker/pkg/apperr"
)

// MessageSender delivers a short text message to a phone number.
// The live-data core only sees this interface, never a vendor shape.
type MessageSender interface {
	SendSMS(ctx context.Context, to, body string) error
	Name() string
}

// SMTPGateway sends SMS through a carrier email-to-SMS gateway.
// Cheapest path, so it is tried before Twilio.
type SMTPGateway struct {
	cfg config.SMTP
}

// NewSMTPGateway creates an email-to-SMS sender, or nil when SMTP
// credentials are absent.
func NewSMTPGateway(cfg config.SMTP) *SMTPGateway {
	if cfg.Host == "" || cfg.Username == "" {
		return nil
	}
	return &SMTPGateway{cfg: cfg}
}

func (g *SMTPGateway) Name() string { return "smtp-gateway" }

// SendSMS emails the message to {digits}@{gateway-domain}
func (g *SMTPGateway) SendSMS(ctx context.Context, to, body string) error {
	digits := digitsOnly(to)
	if digits == "" {
		return fmt.Errorf("phone number required: %w", apperr.ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("message body required: %w", apperr.ErrValidation)
	}

	recipient := fmt.Sprintf("%s@%s", digits, g.cfg.GatewayDomain)
	msg := fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: \r\n\r\n%s\r\n", recipient, g.cfg.Username, body)

	addr := fmt.Sprintf("%s:%d", g.cfg.Host, g.cfg.Port)
	auth := smtp.PlainAuth("", g.cfg.Username, g.cfg.Password, g.cfg.Host)

	if err := smtp.SendMail(addr, auth, g.cfg.Username, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %v: %w", recipient, err, apperr.ErrUpstreamUnavailable)
	}

	return nil
}

// TwilioSender sends SMS through the Twilio Messages REST API
type TwilioSender struct {
	cfg        config.Twilio
	httpClient *http.Client
}

// NewTwilioSender creates a Twilio sender, or nil when credentials
// are absent.
func NewTwilioSender(cfg config.Twilio) *TwilioSender {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil
	}
	return &TwilioSender{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (t *TwilioSender) Name() string { return "twilio" }

// SendSMS posts to the Twilio Messages endpoint
func (t *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("phone number required: %w", apperr.ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("message body required: %w", apperr.ErrValidation)
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", t.cfg.AccountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.cfg.FromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(t.cfg.AccountSID, t.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %v: %w", err, apperr.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("twilio returned status %d: %w", resp.StatusCode, apperr.ErrUpstreamUnavailable)
	}

	return nil
}

// SenderChain tries senders in preference order and stops at the
// first success. An empty chain means SMS is not configured.
type SenderChain struct {
	senders []MessageSender
}

// NewSenderChain builds the chain, skipping nil senders
func NewSenderChain(senders ...MessageSender) *SenderChain {
	chain := &SenderChain{}
	for _, s := range senders {
		if s != nil && !isNilSender(s) {
			chain.senders = append(chain.senders, s)
		}
	}
	return chain
}

func (c *SenderChain) Name() string { return "chain" }

// Enabled reports whether any sender is configured
func (c *SenderChain) Enabled() bool {
	return len(c.senders) > 0
}

// SendSMS tries each configured sender in order
func (c *SenderChain) SendSMS(ctx context.Context, to, body string) error {
	if len(c.senders) == 0 {
		return fmt.Errorf("no SMS sender configured: %w", apperr.ErrNotConfigured)
	}

	var lastErr error
	for _, s := range c.senders {
		err := s.SendSMS(ctx, to, body)
		if err == nil {
			return nil
		}
		// Validation failures are the caller's fault; no point
		// retrying them against the next sender.
		if isValidationErr(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("all SMS senders failed: %w", lastErr)
}

// isNilSender guards against typed-nil interface values from the
// New* constructors.
func isNilSender(s MessageSender) bool {
	switch v := s.(type) {
	case *SMTPGateway:
		return v == nil
	case *TwilioSender:
		return v == nil
	case *SenderChain:
		return v == nil
	default:
		return false
	}
}

func isValidationErr(err error) bool {
	return errors.Is(err, apperr.ErrValidation)
}

// digitsOnly strips a phone number to its digits
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	// Drop a leading country code 1 for US gateway addressing
	out := b.String()
	if len(out) == 11 && out[0] == '1' {
		out = out[1:]
	}
	return out
}
