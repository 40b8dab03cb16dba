package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, DefaultStoreName, cfg.StoreName)
	assert.Equal(t, filepath.Join(dir, "logs"), cfg.LogDir)
	assert.Equal(t, filepath.Join(dir, "outbox"), cfg.OutboxDir)
	assert.Equal(t, filepath.Join(dir, "current_session.txt"), cfg.SessionFile)
	assert.Equal(t, filepath.Join(dir, "products.json"), cfg.ProductsFile)
	assert.Equal(t, filepath.Join(dir, "email_config.json"), cfg.EmailConfigFile)
}

func TestLoad_YAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	yml := "store_name: CantinaDoZe\nlog_dir: records\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pos.yaml"), []byte(yml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "CantinaDoZe", cfg.StoreName)
	assert.Equal(t, filepath.Join(dir, "records"), cfg.LogDir)
	assert.Equal(t, filepath.Join(dir, "outbox"), cfg.OutboxDir)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pos.yaml"), []byte(":\n\t:"), 0o644))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.EnsureDirs())
	for _, d := range []string{cfg.LogDir, cfg.OutboxDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestEmailConfig_LoadMissingGivesDefaults(t *testing.T) {
	cfg := LoadEmailConfig(filepath.Join(t.TempDir(), "email_config.json"))
	assert.Equal(t, DefaultSMTPServer, cfg.SMTPServer)
	assert.Equal(t, DefaultSMTPPort, cfg.SMTPPort)
	assert.False(t, cfg.Configured())
}

func TestEmailConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email_config.json")
	cfg := EmailConfig{
		EmailFrom:  "caixa@example.com",
		EmailTo:    "loja@example.com",
		SMTPServer: "mail.example.com",
		SMTPPort:   465,
	}
	cfg.SetPassword("app-password")
	require.NoError(t, cfg.Save(path))

	got := LoadEmailConfig(path)
	assert.Equal(t, cfg.EmailFrom, got.EmailFrom)
	assert.Equal(t, cfg.EmailTo, got.EmailTo)
	assert.Equal(t, 465, got.SMTPPort)
	assert.True(t, got.Configured())

	pwd, ok := got.Credential()
	require.True(t, ok)
	assert.Equal(t, "app-password", pwd)
}

func TestEmailConfig_ClearPassword(t *testing.T) {
	cfg := EmailConfig{}
	cfg.SetPassword("x")
	_, ok := cfg.Credential()
	require.True(t, ok)

	cfg.SetPassword("")
	_, ok = cfg.Credential()
	assert.False(t, ok)
}

func TestEmailConfig_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	cfg := LoadEmailConfig(path)
	assert.Equal(t, DefaultSMTPServer, cfg.SMTPServer)
	assert.False(t, cfg.Configured())
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "caixa.loja@sub.example.org"}
	invalid := []string{"", "@b.com", "a@b", "a b@c.com", "nope"}
	for _, v := range valid {
		assert.True(t, ValidEmail(v), v)
	}
	for _, v := range invalid {
		assert.False(t, ValidEmail(v), v)
	}
}
