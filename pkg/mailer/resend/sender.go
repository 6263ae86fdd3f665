// Package resend implements mailer.Sender using the official Resend SDK.
// API-level send failures become failed Outcomes, matching the other
// adapters.
package resend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/resend/resend-go/v3"

	"github.com/autopilotstudio/mailroom/pkg/mailer"
)

const providerName = "resend"

// ErrMissingAPIKey indicates the adapter was constructed without an API key.
var ErrMissingAPIKey = errors.New("resend: api key is required")

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
	sent   atomic.Uint64
	failed atomic.Uint64
}

// New creates a Resend sender. It fails with ErrMissingAPIKey when the
// mandatory API key is absent.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Outcome, error) {
	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}
	replyTo := email.ReplyTo
	if replyTo == "" {
		replyTo = s.config.ReplyTo
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: replyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}

	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}
	if email.ScheduledAt != nil {
		req.ScheduledAt = email.ScheduledAt.Format("2006-01-02T15:04:05Z07:00")
	}

	resp, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		s.failed.Add(1)
		return mailer.Failed(providerName, err.Error()), nil
	}

	s.sent.Add(1)
	return mailer.Sent(providerName, resp.Id), nil
}

// Stats implements mailer.StatsReporter.
func (s *Sender) Stats() mailer.Stats {
	return mailer.Stats{Sent: s.sent.Load(), Failed: s.failed.Load()}
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true" // presence-only tag
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
