package settings

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/jxskiss/errors"
	"github.com/jxskiss/gopkg/easy"
	"github.com/jxskiss/gopkg/exp/zlog"
)

// Flag is a boolean toggle read from the environment. Deployment
// pipelines set these as "1", "true" or "yes"; everything else,
// including an unset variable, means off.
type Flag bool

func (f *Flag) UnmarshalText(text []byte) error {
	*f = Flag(ParseBool(string(text)))
	return nil
}

// ParseBool reports whether s is one of the accepted truthy tokens,
// compared case-insensitively.
func ParseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Settings holds the environment toggles shared by the generators.
type Settings struct {
	EnableHTTPS         Flag   `env:"ENABLE_HTTPS_PLATFORM"`
	EnableDNSChallenges Flag   `env:"ENABLE_CF_DNS_CHALLENGES"`
	AddPlatformRoutes   Flag   `env:"ADD_PLATFORM_ROUTES"`
	TrustProxy          Flag   `env:"TRUST_PROXY"`
	ExternalIP          string `env:"EXTERNAL_IP"`
	HTTPPort            int    `env:"HTTP_PORT" envDefault:"80"`
	HTTPSPort           int    `env:"HTTPS_PORT" envDefault:"443"`
	BindHost            string `env:"BIND_HOST"`
	PlatformDomain      string `env:"PLATFORM_DOMAIN"`
}

func Load() (*Settings, error) {
	cfg := &Settings{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "failed read settings from environment")
	}
	zlog.Infof("deploy settings: %v", easy.Pretty(cfg))
	return cfg, nil
}
