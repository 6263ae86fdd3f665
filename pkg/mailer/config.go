package mailer

// Config holds shared sender identity configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Provider    string `env:"MAILER_PROVIDER" envDefault:"log"` // sendgrid|postmark|smtp|resend|log
	SenderEmail string `env:"MAILER_FROM_EMAIL"`
	SenderName  string `env:"MAILER_FROM_NAME"`
	ReplyTo     string `env:"MAILER_REPLY_TO"`
	Sandbox     bool   `env:"MAILER_SANDBOX" envDefault:"false"`
}

// From resolves the default from identity in RFC 5322 form.
func (c Config) From() string {
	return Recipient(c.SenderName, c.SenderEmail)
}
