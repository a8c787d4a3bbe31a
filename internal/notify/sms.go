package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gatelogic/gatelogic-core/internal/infrastructure/config"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// SMSChannel delivers notifications through the Twilio Messages REST
// endpoint: a form-encoded POST with basic auth, no SDK required.
type SMSChannel struct {
	cfg        config.SMSConfig
	httpClient *http.Client
	baseURL    string
}

// NewSMSChannel creates an SMSChannel from configuration. httpClient may
// be nil to use http.DefaultClient; request lifetimes come from the ctx
// passed to Send.
func NewSMSChannel(cfg config.SMSConfig, httpClient *http.Client) *SMSChannel {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SMSChannel{
		cfg:        cfg,
		httpClient: httpClient,
		baseURL:    twilioAPIBase,
	}
}

func (c *SMSChannel) Name() string { return "sms" }

// Send posts one message. SMS has no subject line, so only the body is
// carried.
func (c *SMSChannel) Send(ctx context.Context, subject, body string) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.cfg.AccountSID)

	form := url.Values{}
	form.Set("From", c.cfg.From)
	form.Set("To", c.cfg.To)
	form.Set("Body", strings.TrimSuffix(body, "."))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building sms request: %w", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting sms: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024)) //nolint:errcheck
		return fmt.Errorf("sms api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
