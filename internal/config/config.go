package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the HTTP server, the audit
// provider, lead dispatch, report branding and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request.
		// The default leaves room for the full audit retry/backoff envelope.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"1m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// PageSpeed configures the external audit provider, including the retry
	// policy. The policy lives here so the bounds exist in exactly one place.
	PageSpeed struct {
		// Endpoint overrides the audit API URL; empty uses the provider default
		Endpoint string `env:"PAGESPEED_ENDPOINT" env-default:"" yaml:"endpoint"`
		// APIKey is the optional provider API key; absence degrades gracefully
		// to unkeyed requests with stricter upstream rate limits
		APIKey string `env:"PAGESPEED_API_KEY" env-default:"" yaml:"apiKey"`
		// Strategy selects the analysis strategy, "mobile" or "desktop"
		Strategy string `env:"PAGESPEED_STRATEGY" env-default:"mobile" yaml:"strategy"`
		// MaxRetries bounds retries after the initial attempt
		MaxRetries int `env:"PAGESPEED_MAX_RETRIES" env-default:"4" yaml:"maxRetries"`
		// BaseDelay is the first retry delay; each further retry doubles it
		BaseDelay time.Duration `env:"PAGESPEED_BASE_DELAY" env-default:"2500ms" yaml:"baseDelay"`
		// Timeout is the per-attempt HTTP client timeout
		Timeout time.Duration `env:"PAGESPEED_TIMEOUT" env-default:"45s" yaml:"timeout"`
	} `yaml:"pagespeed"`

	// Lead configures the outbound lead notification channels
	Lead struct {
		// RelayEndpoint is the form-relay URL leads are POSTed to
		RelayEndpoint string `env:"LEAD_RELAY_ENDPOINT" env-default:"" yaml:"relayEndpoint"`
		// Subject is the subject line attached to every relayed lead
		Subject string `env:"LEAD_SUBJECT" env-default:"New SEO audit request" yaml:"subject"`
		// WhatsAppPhone is the destination phone for the prepared deep link
		WhatsAppPhone string `env:"LEAD_WHATSAPP_PHONE" env-default:"" yaml:"whatsappPhone"`
		// Timeout bounds the relay POST
		Timeout time.Duration `env:"LEAD_TIMEOUT" env-default:"15s" yaml:"timeout"`
	} `yaml:"lead"`

	// Branding holds the agency details printed on exported PDF reports
	Branding struct {
		// Name is the agency name in the report header
		Name string `env:"BRANDING_NAME" env-default:"Nexolance Digital" yaml:"name"`
		// Phone appears in the report contact footer
		Phone string `env:"BRANDING_PHONE" env-default:"" yaml:"phone"`
		// Email appears in the report contact footer
		Email string `env:"BRANDING_EMAIL" env-default:"" yaml:"email"`
		// Website appears in the report contact footer
		Website string `env:"BRANDING_WEBSITE" env-default:"" yaml:"website"`
	} `yaml:"branding"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
