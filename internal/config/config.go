package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration. Third-party credentials
// are optional: an absent credential disables the feature, never crashes.
type Config struct {
	Server   Server
	Provider Provider
	Live     Live
	Postgres Postgres
	Redis    Redis
	Gemini   Gemini
	Vapi     Vapi
	Twilio   Twilio
	SMTP     SMTP

	Development bool `envconfig:"DEVELOPMENT" default:"false"`
}

// Server holds HTTP server configuration
type Server struct {
	Addr        string   `envconfig:"SERVER_ADDR" default:":8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// Provider holds upstream sports-data provider configuration
type Provider struct {
	BaseURL    string        `envconfig:"PROVIDER_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports"`
	WebBaseURL string        `envconfig:"PROVIDER_WEB_BASE_URL" default:"https://site.web.api.espn.com/apis/common/v3/sports"`
	Timeout    time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"15s"`
}

// Live configures the snapshot cache and the broadcast loop
type Live struct {
	PollInterval      time.Duration `envconfig:"LIVE_POLL_INTERVAL" default:"30s"`
	CacheTTL          time.Duration `envconfig:"LIVE_CACHE_TTL" default:"15s"`
	HeartbeatInterval time.Duration `envconfig:"LIVE_HEARTBEAT_INTERVAL" default:"10s"`
}

// Postgres holds the relational mirror connection string
type Postgres struct {
	DSN string `envconfig:"DATABASE_URL"`
}

// Redis holds the cache connection string
type Redis struct {
	URL string `envconfig:"REDIS_URL"`
}

// Gemini holds the AI chat credentials
type Gemini struct {
	APIKey string `envconfig:"GEMINI_API_KEY"`
	Model  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
}

// Vapi holds the voice-AI provider credentials
type Vapi struct {
	PrivateKey    string `envconfig:"VAPI_PRIVATE_KEY"`
	PhoneNumberID string `envconfig:"VAPI_PHONE_NUMBER_ID"`
	AssistantID   string `envconfig:"VAPI_ASSISTANT_ID"`
}

// Twilio holds the SMS provider credentials
type Twilio struct {
	AccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
	FromNumber string `envconfig:"TWILIO_FROM_NUMBER"`
}

// SMTP holds the email-to-SMS gateway credentials
type SMTP struct {
	Host          string `envconfig:"SMTP_HOST"`
	Port          int    `envconfig:"SMTP_PORT" default:"587"`
	Username      string `envconfig:"SMTP_USER"`
	Password      string `envconfig:"SMTP_PASS"`
	GatewayDomain string `envconfig:"SMS_GATEWAY_DOMAIN" default:"vtext.com"`
}

// New loads configuration from environment variables
func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
