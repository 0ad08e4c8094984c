// Package caddyfile renders the simplified Caddyfile used by
// single-host deployments that do not need the remote admin API.
package caddyfile

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/jxskiss/errors"
)

type templateData struct {
	Matcher string
}

// Generate renders the Caddyfile for the platform domain. With HTTPS
// disabled the matcher is pinned to the http:// scheme so Caddy does
// not try to provision certificates.
func Generate(platformDomain string, enableHTTPS bool) ([]byte, error) {
	if strings.HasSuffix(platformDomain, ".localhost") && enableHTTPS {
		return nil, errors.Errorf("cannot use %s with ENABLE_HTTPS_PLATFORM set to true", platformDomain)
	}

	matcher := platformDomain
	if !enableHTTPS {
		matcher = "http://" + platformDomain
	}

	var buf bytes.Buffer
	err := caddyfileTmpl.Execute(&buf, &templateData{Matcher: matcher})
	if err != nil {
		return nil, errors.AddStack(err)
	}
	return buf.Bytes(), nil
}

var caddyfileTmpl = template.Must(template.New("").Parse(_cfTemplate))

var _cfTemplate = `{{ .Matcher }} {
	reverse_proxy /api/* api:3333
	reverse_proxy /* frontend:3334

	log {
		output file /var/log/caddy/access.log {
			roll_size 1gb
			roll_keep 20
			roll_keep_for 720h
		}
	}
}
`
