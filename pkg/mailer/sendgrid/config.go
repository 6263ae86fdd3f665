package sendgrid

// Config holds SendGrid provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey      string `env:"SENDGRID_API_KEY"`
	BaseURL     string `env:"SENDGRID_BASE_URL" envDefault:"https://api.sendgrid.com/v3"`
	SenderEmail string `env:"SENDGRID_FROM_EMAIL"`
	SenderName  string `env:"SENDGRID_FROM_NAME"`
	ReplyTo     string `env:"SENDGRID_REPLY_TO"`
	Sandbox     bool   `env:"SENDGRID_SANDBOX" envDefault:"false"`
}
