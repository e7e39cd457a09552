package config

import "net/url"

const redacted = "[REDACTED]"

// Redacted returns a copy of cfg safe for logging: keys, tokens and
// passwords are masked, including the password of a URL-style DSN.
func (cfg StructuredConfig) Redacted() StructuredConfig {
	cfg.App.TokenSignKey = mask(cfg.App.TokenSignKey)
	cfg.Adapter.GitHubToken = mask(cfg.Adapter.GitHubToken)
	cfg.Poke.RedisPassword = mask(cfg.Poke.RedisPassword)
	cfg.Storage.DB.DSN = redactDSN(cfg.Storage.DB.DSN)
	return cfg
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
