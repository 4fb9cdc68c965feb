// Package config loads the relay configuration from the process
// environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr          = ":3000"
	DefaultEmailProvider = "mailgun"
	DefaultMailSubject   = "LINEからのメッセージ"
	DefaultSMTPPort      = 587
)

type Config struct {
	Log     LogConfig
	Server  ServerConfig
	Line    LineConfig
	Email   EmailConfig
	Storage StorageConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	Addr string
}

// LineConfig holds the chat-platform credentials and the fixed push
// target for relayed form submissions.
type LineConfig struct {
	ChannelAccessToken string
	ChannelSecret      string
	GroupID            string
}

// EmailConfig selects the outbound provider and fixes the envelope used
// for every relayed chat message.
type EmailConfig struct {
	Provider string
	From     string
	To       []string
	Subject  string
	Mailgun  MailgunConfig
	SMTP     SMTPConfig
}

type MailgunConfig struct {
	Domain string
	APIKey string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type StorageConfig struct {
	Bucket string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present. Credentials are not
// validated here; collaborators fail on first use.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "text"),
		},
		Server: ServerConfig{
			Addr: listenAddr(os.Getenv("PORT")),
		},
		Line: LineConfig{
			ChannelAccessToken: os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"),
			ChannelSecret:      os.Getenv("LINE_CHANNEL_SECRET"),
			GroupID:            os.Getenv("LINE_GROUP_ID"),
		},
		Email: EmailConfig{
			Provider: getenv("EMAIL_PROVIDER", DefaultEmailProvider),
			From:     os.Getenv("MAIL_FROM"),
			To:       SplitAddresses(os.Getenv("MAIL_TO")),
			Subject:  getenv("MAIL_SUBJECT", DefaultMailSubject),
			Mailgun: MailgunConfig{
				Domain: os.Getenv("MAILGUN_DOMAIN"),
				APIKey: os.Getenv("MAILGUN_API_KEY"),
			},
			SMTP: SMTPConfig{
				Host:     os.Getenv("SMTP_HOST"),
				Port:     getenvInt("SMTP_PORT", DefaultSMTPPort),
				Username: os.Getenv("SMTP_USERNAME"),
				Password: os.Getenv("SMTP_PASSWORD"),
			},
		},
		Storage: StorageConfig{
			Bucket: os.Getenv("GCS_BUCKET"),
		},
	}
}

// SplitAddresses parses a comma-separated address list, trimming
// whitespace and dropping empty entries.
func SplitAddresses(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func listenAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return DefaultAddr
	}
	return ":" + port
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
