package logging

import (
	"log/slog"

	"github.com/m-mizutani/masq"
)

// DefaultRedactOptions returns the masq options applied to every log
// record. The generator has no credentials of its own, but config may
// arrive via environment variables shared with other tooling, so the
// common secret-shaped fields are masked anyway.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("apiKey"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("credential"),
		masq.WithFieldName("credentials"),
		masq.WithFieldName("authorization"),

		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts sensitive data.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)

	return masq.New(allOpts...)
}
