package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

const defaultAPIURL = "https://api.mailjet.com/v3.1/send"

// Client sends transactional mail through Mailjet.
type Client struct {
	apiKey     string
	secretKey  string
	fromEmail  string
	appURL     string
	apiURL     string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithAPIURL(url string) Option {
	return func(cl *Client) {
		cl.apiURL = url
	}
}

// NewClient builds a Mailjet client. appURL is the public base URL used
// to assemble magic links.
func NewClient(apiKey, secretKey, fromEmail, appURL string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		secretKey:  secretKey,
		fromEmail:  fromEmail,
		appURL:     appURL,
		apiURL:     defaultAPIURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if API credentials are set.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.secretKey != ""
}

type mailjetRecipient struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type mailjetMessage struct {
	From     mailjetRecipient   `json:"From"`
	To       []mailjetRecipient `json:"To"`
	Subject  string             `json:"Subject"`
	HTMLPart string             `json:"HTMLPart"`
	TextPart string             `json:"TextPart,omitempty"`
}

type mailjetPayload struct {
	Messages []mailjetMessage `json:"Messages"`
}

// SendMagicLink mails a sign-in link for the token.
func (c *Client) SendMagicLink(ctx context.Context, toEmail, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", c.appURL, token)
	htmlBody := fmt.Sprintf(
		`<h1>MoneyGlow</h1>
		<p>Click the button below to sign in to your MoneyGlow account:</p>
		<p><a href="%s">Sign In to MoneyGlow</a></p>
		<p>This link expires in 15 minutes. If you didn't request this, you can safely ignore this email.</p>`,
		link,
	)
	textBody := fmt.Sprintf("Sign in to MoneyGlow:\n\n%s\n\nThis link expires in 15 minutes.", link)

	return c.send(ctx, toEmail, "Your MoneyGlow Login Link", htmlBody, textBody)
}

// SendWelcome mails a greeting after onboarding completes.
func (c *Client) SendWelcome(ctx context.Context, toEmail, name string) error {
	if name == "" {
		name = "there"
	}
	htmlBody := fmt.Sprintf(
		`<h1>Welcome to MoneyGlow, %s!</h1>
		<p>Your financial glow-up starts here. Log your income, set a budget, and keep your streak alive.</p>`,
		name,
	)
	textBody := fmt.Sprintf("Welcome to MoneyGlow, %s! Your financial glow-up starts here.", name)

	return c.send(ctx, toEmail, "Welcome to MoneyGlow", htmlBody, textBody)
}

func (c *Client) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing mailjet credentials")
	}

	payload := mailjetPayload{
		Messages: []mailjetMessage{{
			From:     mailjetRecipient{Email: c.fromEmail, Name: "MoneyGlow"},
			To:       []mailjetRecipient{{Email: toEmail}},
			Subject:  subject,
			HTMLPart: htmlBody,
			TextPart: textBody,
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	// Retry transient failures; 4xx responses fail immediately.
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.SetBasicAuth(c.apiKey, c.secretKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("send email: %w", err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("mailjet API error: status %d", resp.StatusCode))
		case resp.StatusCode >= 400:
			return fmt.Errorf("mailjet API error: status %d", resp.StatusCode)
		}
		return nil
	})
}
