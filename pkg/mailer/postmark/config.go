package postmark

// Config holds Postmark provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	ServerToken   string `env:"POSTMARK_SERVER_TOKEN"`
	BaseURL       string `env:"POSTMARK_BASE_URL" envDefault:"https://api.postmarkapp.com"`
	SenderEmail   string `env:"POSTMARK_FROM_EMAIL"`
	SenderName    string `env:"POSTMARK_FROM_NAME"`
	ReplyTo       string `env:"POSTMARK_REPLY_TO"`
	MessageStream string `env:"POSTMARK_MESSAGE_STREAM" envDefault:"outbound"`
}
