// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fivefourventures/vendor-survey/cliparse"
	"github.com/fivefourventures/vendor-survey/models"
)

// DefaultEndpoint is the Resend email API.
const DefaultEndpoint = "https://api.resend.com/emails"

// Client sends the best-effort submission email. Without an API key or
// recipients it is disabled and Notify does nothing.
type Client struct {
	endpoint     string
	apiKey       string
	from         string
	to           []string
	adminBaseURL string
	httpClient   *http.Client
}

func New(cfg cliparse.Config) *Client {
	c := &Client{
		endpoint:     DefaultEndpoint,
		apiKey:       cfg.ResendAPIKey,
		from:         cfg.NotifyFrom,
		to:           cfg.NotifyTo,
		adminBaseURL: cfg.AdminBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
	if !c.Enabled() {
		slog.Info("notifier disabled: no Resend API key or recipients configured")
	}
	return c
}

func (c *Client) Enabled() bool {
	return c.apiKey != "" && len(c.to) > 0
}

// Notify emails a summary of a new submission. Failure is logged and
// swallowed - a lost email must never block or fail a submission - and
// nothing is retried.
func (c *Client) Notify(ctx context.Context, resp models.SurveyResponse) {
	if !c.Enabled() {
		return
	}
	if err := c.Send(ctx, resp); err != nil {
		slog.Error("failed to send survey notification", "error", err, "response_id", resp.ID)
		return
	}
	slog.Info("survey notification sent", "response_id", resp.ID)
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send performs one email dispatch and reports the result.
func (c *Client) Send(ctx context.Context, resp models.SurveyResponse) error {
	name := resp.Name
	if name == "" {
		name = "Anonymous"
	}

	payload := emailPayload{
		From:    c.from,
		To:      c.to,
		Subject: "New Survey Response from " + name,
		Text:    buildBody(resp, c.adminBaseURL),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("email API returned %d: %s", res.StatusCode, string(detail))
	}
	return nil
}

// buildBody renders the plain-text summary: headline facts, per-category
// vendor lists, and the admin panel link.
func buildBody(resp models.SurveyResponse, adminBaseURL string) string {
	completedCategories := 0
	totalVendors := 0
	for _, answer := range resp.Responses {
		if len(answer.Vendors) > 0 {
			completedCategories++
		}
		totalVendors += len(answer.Vendors)
	}
	for _, vendors := range resp.AdditionalVendors {
		for _, v := range vendors {
			if v != "" {
				totalVendors++
			}
		}
	}

	name := resp.Name
	if name == "" {
		name = "Anonymous"
	}
	contact := resp.Contact
	if contact == "" {
		contact = "Not provided"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New Vendor Survey Response\n\n")
	fmt.Fprintf(&b, "Submitted: %s\n", resp.Timestamp.Format("Jan 2, 2006 3:04 PM MST"))
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Contact (%s): %s\n\n", resp.ContactMethod, contact)

	fmt.Fprintf(&b, "Summary:\n")
	fmt.Fprintf(&b, "- Completed %d categories\n", completedCategories)
	fmt.Fprintf(&b, "- Provided %d vendor recommendations\n", totalVendors)
	fmt.Fprintf(&b, "- Requested %d additional categories\n", len(resp.AdditionalCategories))

	if completedCategories > 0 {
		fmt.Fprintf(&b, "\nSelected Service Providers:\n%s\n\n", strings.Repeat("=", 50))
		for _, category := range models.VendorCategories {
			answer, ok := resp.Responses[category.ID]
			if !ok || len(answer.Vendors) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s:\n", category.Title)
			for _, vendor := range answer.Vendors {
				fmt.Fprintf(&b, "  - %s\n", vendor)
			}
			b.WriteString("\n")
		}
	}

	for _, name := range resp.AdditionalCategories {
		vendors := resp.AdditionalVendors[models.CategoryKey(name)]
		cleaned := []string{}
		for _, v := range vendors {
			if v != "" {
				cleaned = append(cleaned, v)
			}
		}
		if len(cleaned) > 0 {
			fmt.Fprintf(&b, "%s (requested):\n", name)
			for _, vendor := range cleaned {
				fmt.Fprintf(&b, "  - %s\n", vendor)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\nView full response in admin panel:\n%s\n", adminBaseURL)
	return b.String()
}
