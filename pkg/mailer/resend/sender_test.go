package resend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autopilotstudio/mailroom/pkg/mailer"
)

func TestNew_MissingAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestTagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"presence-only", struct{}{}, "true"},
		{"nil", nil, "true"},
		{"string", "billing", "billing"},
		{"bool", false, "false"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tagValue(tt.input))
		})
	}
}

func TestConvertTags(t *testing.T) {
	t.Parallel()

	got := convertTags(mailer.Tags{"welcome": struct{}{}})
	require.Len(t, got, 1)
	require.Equal(t, "welcome", got[0].Name)
	require.Equal(t, "true", got[0].Value)
}

func TestConvertAttachments(t *testing.T) {
	t.Parallel()

	got := convertAttachments([]mailer.Attachment{
		{Filename: "a.pdf", ContentType: "application/pdf", Content: []byte("x"), ContentID: "cid-1"},
	})
	require.Len(t, got, 1)
	require.Equal(t, "a.pdf", got[0].Filename)
	require.Equal(t, "cid-1", got[0].ContentId)
}
