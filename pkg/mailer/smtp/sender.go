package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/autopilotstudio/mailroom/pkg/mailer"
)

const providerName = "smtp"

// ErrMissingHost indicates the adapter was constructed without an SMTP host.
// This is fatal to the adapter's usability and is never raised per-send.
var ErrMissingHost = errors.New("smtp: host is required")

// Dialer abstracts net.Dialer to simplify testing.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Sender implements mailer.Sender over a plain SMTP backend with optional
// STARTTLS and PLAIN authentication.
type Sender struct {
	config    Config
	dialer    Dialer
	tlsConfig *tls.Config
	now       func() time.Time
	sent      atomic.Uint64
	failed    atomic.Uint64
}

// Option configures a Sender.
type Option func(*Sender)

// WithDialer swaps the network dialer used to establish SMTP connections.
func WithDialer(d Dialer) Option {
	return func(s *Sender) {
		if d != nil {
			s.dialer = d
		}
	}
}

// WithTLSConfig overrides the TLS configuration used when negotiating STARTTLS.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *Sender) {
		s.tlsConfig = cfg
	}
}

// WithClock replaces the clock used for the Date header.
func WithClock(now func() time.Time) Option {
	return func(s *Sender) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an SMTP sender. It fails with ErrMissingHost when the mandatory
// host is absent.
func New(cfg Config, opts ...Option) (*Sender, error) {
	if cfg.Host == "" {
		return nil, ErrMissingHost
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}

	s := &Sender{
		config: cfg,
		dialer: &net.Dialer{Timeout: 10 * time.Second},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Send implements mailer.Sender. Connection, negotiation, and delivery
// failures become failed Outcomes; only message construction faults return an
// error.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Outcome, error) {
	messageID := uuid.NewString()
	msg, err := buildMessage(s.from(email), email, messageID, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.deliver(ctx, email, msg); err != nil {
		s.failed.Add(1)
		return mailer.Failed(providerName, err.Error()), nil
	}

	s.sent.Add(1)
	return mailer.Sent(providerName, messageID), nil
}

// Stats implements mailer.StatsReporter.
func (s *Sender) Stats() mailer.Stats {
	return mailer.Stats{Sent: s.sent.Load(), Failed: s.failed.Load()}
}

func (s *Sender) deliver(ctx context.Context, email *mailer.Email, msg []byte) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	conn, err := s.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if s.config.StartTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			tlsCfg := s.tlsConfig
			if tlsCfg == nil {
				tlsCfg = &tls.Config{ServerName: s.config.Host, MinVersion: tls.VersionTLS12}
			}
			if err := client.StartTLS(tlsCfg); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if s.config.Username != "" {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := client.Mail(s.config.SenderEmail); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range recipients(email) {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	return client.Quit()
}

func (s *Sender) from(email *mailer.Email) string {
	if email.From != "" {
		return email.From
	}
	return mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
}

// recipients is the full envelope recipient set: to, cc, and bcc. BCC
// addresses appear only in the envelope, never in the headers. Envelope
// addresses are bare, with any display name stripped.
func recipients(email *mailer.Email) []string {
	out := make([]string, 0, len(email.To)+len(email.CC)+len(email.BCC))
	for _, group := range [][]string{email.To, email.CC, email.BCC} {
		for _, addr := range group {
			out = append(out, bareAddress(addr))
		}
	}
	return out
}

func bareAddress(raw string) string {
	if parsed, err := mail.ParseAddress(raw); err == nil {
		return parsed.Address
	}
	return raw
}
