package sendgrid

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/autopilotstudio/mailroom/pkg/mailer"
)

func testEmail() *mailer.Email {
	return &mailer.Email{
		To:      []string{"Alice <alice@example.com>", "bob@example.com"},
		CC:      []string{"cc@example.com"},
		Subject: "Invoice INV-7",
		HTML:    "<p>hello</p>",
		Text:    "hello",
		Variables: map[string]any{
			"invoice_id": 7,
		},
		Tags: mailer.SimpleTags("invoice"),
		Attachments: []mailer.Attachment{
			{Filename: "invoice.pdf", ContentType: "application/pdf", Content: []byte("pdf-bytes")},
		},
	}
}

func newTestSender(t *testing.T, upstream http.HandlerFunc) *Sender {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	s, err := New(Config{
		APIKey:      "sg-key",
		BaseURL:     srv.URL,
		SenderEmail: "ops@acme.test",
		SenderName:  "Acme Ops",
	})
	require.NoError(t, err)
	return s
}

func TestNew_MissingAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSend_Accepted(t *testing.T) {
	t.Parallel()

	var got sgPayload
	s := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/mail/send", r.URL.Path)
		require.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("X-Message-Id", "sg-msg-1")
		w.WriteHeader(http.StatusAccepted)
	})

	out, err := s.Send(context.Background(), testEmail())
	require.NoError(t, err)
	require.Equal(t, mailer.StatusSent, out.Status)
	require.Equal(t, "sg-msg-1", out.ProviderMessageID)

	require.Len(t, got.Personalizations, 1)
	pers := got.Personalizations[0]
	require.Equal(t, []sgAddress{
		{Email: "alice@example.com", Name: "Alice"},
		{Email: "bob@example.com"},
	}, pers.To)
	require.Equal(t, []sgAddress{{Email: "cc@example.com"}}, pers.CC)
	require.Equal(t, map[string]string{"invoice_id": "7"}, pers.CustomArgs)

	require.Equal(t, sgAddress{Email: "ops@acme.test", Name: "Acme Ops"}, got.From)
	require.Equal(t, "Invoice INV-7", got.Subject)

	// text/plain must precede text/html.
	require.Len(t, got.Content, 2)
	require.Equal(t, sgContent{Type: "text/plain", Value: "hello"}, got.Content[0])
	require.Equal(t, sgContent{Type: "text/html", Value: "<p>hello</p>"}, got.Content[1])

	require.Len(t, got.Attachments, 1)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("pdf-bytes")), got.Attachments[0].Content)
	require.Equal(t, []string{"invoice"}, got.Categories)

	require.Equal(t, mailer.Stats{Sent: 1}, s.Stats())
}

func TestSend_ScheduledAndSandbox(t *testing.T) {
	t.Parallel()

	var got sgPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	s, err := New(Config{APIKey: "k", BaseURL: srv.URL, Sandbox: true})
	require.NoError(t, err)

	at := time.Unix(1767225600, 0)
	email := testEmail()
	email.ScheduledAt = &at

	_, err = s.Send(context.Background(), email)
	require.NoError(t, err)
	require.Equal(t, int64(1767225600), got.SendAt)
	require.NotNil(t, got.MailSettings)
	require.True(t, got.MailSettings.SandboxMode.Enable)
}

func TestSend_RemoteError_FailedOutcome(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"bad request"}]}`, http.StatusBadRequest)
	})

	out, err := s.Send(context.Background(), testEmail())
	require.NoError(t, err, "remote failures must not surface as errors")
	require.Equal(t, mailer.StatusFailed, out.Status)
	require.Contains(t, out.Err, "400")
	require.Contains(t, out.Err, "bad request")
	require.Equal(t, mailer.Stats{Failed: 1}, s.Stats())
}

func TestSend_TransportError_FailedOutcome(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	s, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := s.Send(context.Background(), testEmail())
	require.NoError(t, err)
	require.Equal(t, mailer.StatusFailed, out.Status)
	require.NotEmpty(t, out.Err)
}

func TestVerifyAPIKey(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/scopes", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer sg-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, s.VerifyAPIKey(context.Background()))
}

func TestVerifyAPIKey_Unauthorized(t *testing.T) {
	t.Parallel()

	s := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	require.Error(t, s.VerifyAPIKey(context.Background()))
}
