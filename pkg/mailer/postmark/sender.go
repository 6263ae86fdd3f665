package postmark

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/autopilotstudio/mailroom/pkg/mailer"
)

const providerName = "postmark"

// ErrMissingServerToken indicates the adapter was constructed without a
// server token. This is fatal to the adapter's usability and is never raised
// per-send.
var ErrMissingServerToken = errors.New("postmark: server token is required")

// Sender implements mailer.Sender using the Postmark email API.
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

// New creates a Postmark sender. It fails with ErrMissingServerToken when the
// mandatory server token is absent.
func New(cfg Config, opts ...Option) (*Sender, error) {
	if cfg.ServerToken == "" {
		return nil, ErrMissingServerToken
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.postmarkapp.com"
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

type pmAttachment struct {
	Name        string `json:"Name"`
	Content     string `json:"Content"` // base64-encoded
	ContentType string `json:"ContentType"`
	ContentID   string `json:"ContentID,omitempty"`
}

type pmPayload struct {
	From          string            `json:"From"`
	To            string            `json:"To"`
	Cc            string            `json:"Cc,omitempty"`
	Bcc           string            `json:"Bcc,omitempty"`
	Subject       string            `json:"Subject"`
	HtmlBody      string            `json:"HtmlBody"`
	TextBody      string            `json:"TextBody,omitempty"`
	ReplyTo       string            `json:"ReplyTo,omitempty"`
	Tag           string            `json:"Tag,omitempty"`
	Metadata      map[string]string `json:"Metadata,omitempty"`
	Headers       []pmHeader        `json:"Headers,omitempty"`
	Attachments   []pmAttachment    `json:"Attachments,omitempty"`
	MessageStream string            `json:"MessageStream,omitempty"`
}

type pmHeader struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type pmResponse struct {
	MessageID string `json:"MessageID"`
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

// Send implements mailer.Sender. HTTP failures, non-2xx responses, and
// Postmark-level error codes become failed Outcomes; only payload
// construction faults return an error.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Outcome, error) {
	body, err := json.Marshal(s.buildPayload(email))
	if err != nil {
		return nil, fmt.Errorf("postmark: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.config.BaseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("postmark: build request: %w", err)
	}
	req.Header.Set("X-Postmark-Server-Token", s.config.ServerToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.failed.Add(1)
		return mailer.Failed(providerName, err.Error()), nil
	}
	defer resp.Body.Close()

	var parsed pmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		s.failed.Add(1)
		return mailer.Failed(providerName,
			fmt.Sprintf("postmark responded %d with unreadable body: %v", resp.StatusCode, err)), nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || parsed.ErrorCode != 0 {
		s.failed.Add(1)
		return mailer.Failed(providerName,
			fmt.Sprintf("postmark error %d: %s", parsed.ErrorCode, parsed.Message)), nil
	}

	s.sent.Add(1)
	return mailer.Sent(providerName, parsed.MessageID), nil
}

// Stats implements mailer.StatsReporter.
func (s *Sender) Stats() mailer.Stats {
	return mailer.Stats{Sent: s.sent.Load(), Failed: s.failed.Load()}
}

func (s *Sender) buildPayload(email *mailer.Email) pmPayload {
	p := pmPayload{
		From:          s.from(email),
		To:            strings.Join(email.To, ","),
		Cc:            strings.Join(email.CC, ","),
		Bcc:           strings.Join(email.BCC, ","),
		Subject:       email.Subject,
		HtmlBody:      email.HTML,
		TextBody:      email.Text,
		ReplyTo:       s.replyTo(email),
		Tag:           firstTag(email.Tags),
		Metadata:      metadata(email),
		MessageStream: s.config.MessageStream,
	}

	for name, value := range email.Headers {
		p.Headers = append(p.Headers, pmHeader{Name: name, Value: value})
	}

	for _, a := range email.Attachments {
		p.Attachments = append(p.Attachments, pmAttachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
			ContentID:   a.ContentID,
		})
	}

	return p
}

func (s *Sender) from(email *mailer.Email) string {
	if email.From != "" {
		return email.From
	}
	return mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
}

func (s *Sender) replyTo(email *mailer.Email) string {
	if email.ReplyTo != "" {
		return email.ReplyTo
	}
	return s.config.ReplyTo
}

// firstTag picks one tag name; Postmark supports a single Tag per
// message. The lexicographically smallest name wins so repeated sends of
// the same email produce the same wire payload.
func firstTag(tags mailer.Tags) string {
	first := ""
	for name := range tags {
		if first == "" || name < first {
			first = name
		}
	}
	return first
}

// metadata flattens caller variables and metadata into Postmark's
// string-valued Metadata map.
func metadata(email *mailer.Email) map[string]string {
	if len(email.Variables) == 0 && len(email.Metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(email.Variables)+len(email.Metadata))
	for k, v := range email.Variables {
		out[k] = fmt.Sprint(v)
	}
	for k, v := range email.Metadata {
		out[k] = fmt.Sprint(v)
	}
	return out
}
