package config

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"strings"

	"github.com/marllondevsec/store-pos/internal/store"
)

// SMTP defaults applied when the config file leaves them unset.
const (
	DefaultSMTPServer = "smtp.gmail.com"
	DefaultSMTPPort   = 587
)

// EmailConfig is the persisted email delivery configuration.
//
// The password field is base64 of the raw secret: weak obfuscation
// against shoulder-surfing, not encryption. Deployments that need a
// real secret store should substitute another SecretProvider.
type EmailConfig struct {
	EmailFrom   string `json:"email_from"`
	EmailTo     string `json:"email_to"`
	SMTPServer  string `json:"smtp_server"`
	SMTPPort    int    `json:"smtp_port"`
	PasswordB64 string `json:"email_password_b64,omitempty"`
}

// SecretProvider supplies the sending credential, if one is available.
type SecretProvider interface {
	Credential() (string, bool)
}

// LoadEmailConfig reads the email configuration at path. A missing or
// unreadable file yields a config with only the SMTP defaults set; the
// caller decides whether to prompt for setup.
func LoadEmailConfig(path string) EmailConfig {
	cfg := EmailConfig{SMTPServer: DefaultSMTPServer, SMTPPort: DefaultSMTPPort}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return EmailConfig{SMTPServer: DefaultSMTPServer, SMTPPort: DefaultSMTPPort}
	}
	if cfg.SMTPServer == "" {
		cfg.SMTPServer = DefaultSMTPServer
	}
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = DefaultSMTPPort
	}
	return cfg
}

// Save writes the configuration atomically to path.
func (c EmailConfig) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return store.WriteFileAtomic(path, append(data, '\n'))
}

// Configured reports whether both sender and recipient addresses are set.
func (c EmailConfig) Configured() bool {
	return c.EmailFrom != "" && c.EmailTo != ""
}

// SetPassword stores the credential base64-encoded; an empty password
// removes any stored credential.
func (c *EmailConfig) SetPassword(pwd string) {
	if pwd == "" {
		c.PasswordB64 = ""
		return
	}
	c.PasswordB64 = base64.StdEncoding.EncodeToString([]byte(pwd))
}

// Credential implements SecretProvider by decoding the stored password.
func (c EmailConfig) Credential() (string, bool) {
	if c.PasswordB64 == "" {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(c.PasswordB64)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// ValidEmail reports whether addr looks like a deliverable address:
// non-empty local part, a dot somewhere in the domain, no spaces.
func ValidEmail(addr string) bool {
	if addr == "" || strings.Contains(addr, " ") {
		return false
	}
	at := strings.LastIndex(addr, "@")
	if at <= 0 {
		return false
	}
	domain := addr[at+1:]
	return strings.Contains(domain, ".")
}
