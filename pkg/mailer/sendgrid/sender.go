package sendgrid

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/autopilotstudio/mailroom/pkg/mailer"
)

const providerName = "sendgrid"

// Sender implements mailer.Sender using the SendGrid v3 Mail Send API.
type Sender struct {
	config Config
	client *http.Client
	sent   atomic.Uint64
	failed atomic.Uint64
}

// Option configures a Sender.
type Option func(*Sender)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Sender) {
		if c != nil {
			s.client = c
		}
	}
}

// New creates a SendGrid sender. It fails with ErrMissingAPIKey when the
// mandatory API key is absent.
func New(cfg Config, opts ...Option) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sendgrid.com/v3"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	s := &Sender{
		config: cfg,
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Send implements mailer.Sender. HTTP 4xx/5xx responses and transport errors
// become failed Outcomes; only payload construction faults return an error.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Outcome, error) {
	body, err := json.Marshal(s.buildPayload(email))
	if err != nil {
		return nil, fmt.Errorf("sendgrid: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.config.BaseURL+"/mail/send", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sendgrid: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.failed.Add(1)
		return mailer.Failed(providerName, err.Error()), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusAccepted {
		s.sent.Add(1)
		return mailer.Sent(providerName, resp.Header.Get("X-Message-Id")), nil
	}

	s.failed.Add(1)
	remote, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return mailer.Failed(providerName,
		fmt.Sprintf("sendgrid responded %d: %s", resp.StatusCode, strings.TrimSpace(string(remote)))), nil
}

// VerifyAPIKey implements mailer.Verifier by requesting the key's scopes.
func (s *Sender) VerifyAPIKey(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.BaseURL+"/scopes", nil)
	if err != nil {
		return fmt.Errorf("sendgrid: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: verify api key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sendgrid: verify api key: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Stats implements mailer.StatsReporter.
func (s *Sender) Stats() mailer.Stats {
	return mailer.Stats{Sent: s.sent.Load(), Failed: s.failed.Load()}
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgAttachment struct {
	Content     string `json:"content"` // base64-encoded
	Type        string `json:"type,omitempty"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition,omitempty"`
	ContentID   string `json:"content_id,omitempty"`
}

type sgPersonalization struct {
	To         []sgAddress       `json:"to"`
	CC         []sgAddress       `json:"cc,omitempty"`
	BCC        []sgAddress       `json:"bcc,omitempty"`
	Subject    string            `json:"subject,omitempty"`
	CustomArgs map[string]string `json:"custom_args,omitempty"`
}

type sgSandbox struct {
	Enable bool `json:"enable"`
}

type sgMailSettings struct {
	SandboxMode sgSandbox `json:"sandbox_mode"`
}

type sgPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	ReplyTo          *sgAddress          `json:"reply_to,omitempty"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
	Attachments      []sgAttachment      `json:"attachments,omitempty"`
	Categories       []string            `json:"categories,omitempty"`
	SendAt           int64               `json:"send_at,omitempty"`
	Headers          map[string]string   `json:"headers,omitempty"`
	MailSettings     *sgMailSettings     `json:"mail_settings,omitempty"`
}

func (s *Sender) buildPayload(email *mailer.Email) sgPayload {
	p := sgPayload{
		Subject: email.Subject,
		From:    s.fromAddress(email),
	}

	pers := sgPersonalization{
		To:         addresses(email.To),
		CC:         addresses(email.CC),
		BCC:        addresses(email.BCC),
		CustomArgs: customArgs(email),
	}
	p.Personalizations = []sgPersonalization{pers}

	// SendGrid requires text/plain before text/html.
	if email.Text != "" {
		p.Content = append(p.Content, sgContent{Type: "text/plain", Value: email.Text})
	}
	p.Content = append(p.Content, sgContent{Type: "text/html", Value: email.HTML})

	for _, a := range email.Attachments {
		att := sgAttachment{
			Content:   base64.StdEncoding.EncodeToString(a.Content),
			Type:      a.ContentType,
			Filename:  a.Filename,
			ContentID: a.ContentID,
		}
		if a.ContentID != "" {
			att.Disposition = "inline"
		}
		p.Attachments = append(p.Attachments, att)
	}

	for name := range email.Tags {
		p.Categories = append(p.Categories, name)
	}

	if reply := s.replyTo(email); reply != nil {
		p.ReplyTo = reply
	}
	if email.ScheduledAt != nil {
		p.SendAt = email.ScheduledAt.Unix()
	}
	if len(email.Headers) > 0 {
		p.Headers = email.Headers
	}
	if s.config.Sandbox {
		p.MailSettings = &sgMailSettings{SandboxMode: sgSandbox{Enable: true}}
	}

	return p
}

func (s *Sender) fromAddress(email *mailer.Email) sgAddress {
	if email.From != "" {
		return parseAddress(email.From)
	}
	return sgAddress{Email: s.config.SenderEmail, Name: s.config.SenderName}
}

func (s *Sender) replyTo(email *mailer.Email) *sgAddress {
	addr := email.ReplyTo
	if addr == "" {
		addr = s.config.ReplyTo
	}
	if addr == "" {
		return nil
	}
	parsed := parseAddress(addr)
	return &parsed
}

func addresses(raw []string) []sgAddress {
	if len(raw) == 0 {
		return nil
	}
	out := make([]sgAddress, len(raw))
	for i, r := range raw {
		out[i] = parseAddress(r)
	}
	return out
}

// parseAddress splits "Name <email>" into its parts; bare addresses pass
// through unchanged.
func parseAddress(raw string) sgAddress {
	if open := strings.LastIndex(raw, "<"); open >= 0 && strings.HasSuffix(raw, ">") {
		return sgAddress{
			Name:  strings.TrimSpace(raw[:open]),
			Email: strings.TrimSpace(raw[open+1 : len(raw)-1]),
		}
	}
	return sgAddress{Email: strings.TrimSpace(raw)}
}

// customArgs flattens caller variables and metadata into SendGrid custom
// args, which must be string-valued.
func customArgs(email *mailer.Email) map[string]string {
	if len(email.Variables) == 0 && len(email.Metadata) == 0 {
		return nil
	}
	args := make(map[string]string, len(email.Variables)+len(email.Metadata))
	for k, v := range email.Variables {
		args[k] = fmt.Sprint(v)
	}
	for k, v := range email.Metadata {
		args[k] = fmt.Sprint(v)
	}
	return args
}
