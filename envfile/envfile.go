// Package envfile regenerates the platform env file from a template,
// injecting freshly generated secrets.
package envfile

import (
	"bufio"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/jxskiss/errors"
)

// Secrets are the generated credentials injected into the env file.
// The database password is shared between DATABASE_URL and
// POSTGRES_PASSWORD so the two stay consistent.
type Secrets struct {
	DBPassword string
	AdminToken string
	JWTSecret  string
}

// NewSecrets generates a fresh set of credentials.
func NewSecrets() (Secrets, error) {
	var s Secrets
	var err error
	if s.DBPassword, err = randomToken(); err != nil {
		return s, err
	}
	if s.AdminToken, err = randomToken(); err != nil {
		return s, err
	}
	if s.JWTSecret, err = randomToken(); err != nil {
		return s, err
	}
	return s, nil
}

// randomToken returns a URL-safe token with 32 bytes of entropy.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	_, err := rand.Read(buf)
	if err != nil {
		return "", errors.AddStack(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Generate copies the env template from r to w line by line,
// substituting the recognized keys. CORS_ORIGIN is only filled in when
// a platform domain is known; its scheme follows the HTTPS toggle.
func Generate(w io.Writer, r io.Reader, secrets Secrets, platformDomain string, enableHTTPS bool) error {
	scheme := "http"
	if enableHTTPS {
		scheme = "https"
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		key, _, found := strings.Cut(line, "=")
		if !found {
			fmt.Fprintln(w, strings.TrimSpace(line))
			continue
		}
		switch key {
		case "DATABASE_URL":
			fmt.Fprintf(w, "DATABASE_URL=postgres://nerine:%s@db/nerine\n", secrets.DBPassword)
		case "POSTGRES_PASSWORD":
			fmt.Fprintf(w, "POSTGRES_PASSWORD=%s\n", secrets.DBPassword)
		case "ADMIN_TOKEN":
			fmt.Fprintf(w, "ADMIN_TOKEN=%s\n", secrets.AdminToken)
		case "JWT_SECRET":
			fmt.Fprintf(w, "JWT_SECRET=%s\n", secrets.JWTSecret)
		case "CORS_ORIGIN":
			if platformDomain == "" {
				fmt.Fprintln(w, strings.TrimSpace(line))
				continue
			}
			fmt.Fprintf(w, "CORS_ORIGIN=%s://%s\n", scheme, platformDomain)
		default:
			fmt.Fprintln(w, strings.TrimSpace(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.AddStack(err)
	}
	return nil
}
