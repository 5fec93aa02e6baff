package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/taskscribe-dev/taskscribe/pkg/config"
)

// ResendClient is a minimal client for the Resend email API
type ResendClient struct {
	apiKey  string
	baseURL string
	from    string
	client  *http.Client
}

// NewResendClient creates a Resend client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewResendClient(cfg *config.ResendConfig) *ResendClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("RESEND_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("RESEND_API_URL")
		if base == "" {
			base = "https://api.resend.com"
		}
	}

	from := "Taskscribe <onboarding@resend.dev>"
	if cfg != nil && cfg.From != "" {
		from = cfg.From
	}

	return &ResendClient{
		apiKey:  apiKey,
		baseURL: base,
		from:    from,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SendRequest is the shape for send-email requests
type SendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendResponse is a minimal response shape
type SendResponse struct {
	ID string `json:"id"`
}

// Send delivers a single HTML email. Transient failures (transport errors and
// 5xx responses) are retried with exponential backoff for a short window; 4xx
// responses fail immediately.
func (r *ResendClient) Send(ctx context.Context, to, subject, html string) error {
	reqBody := SendRequest{
		From:    r.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	sendFn := func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/emails", bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("resend returned status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("resend returned status %d", resp.StatusCode))
		}

		var sr SendResponse
		if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 10 * time.Second

	return backoff.Retry(sendFn, backoff.WithContext(bo, ctx))
}
