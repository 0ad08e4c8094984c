package caddy

import (
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/jxskiss/errors"
	"github.com/spf13/cast"

	"github.com/javaarchive/nerine-tweaks/settings"
)

const (
	localAdminListen  = "localhost:990"
	remoteAdminListen = "0.0.0.0:995"
	localAdminCA      = "local-admin"

	// Backend addresses behind the platform route.
	apiUpstream      = "127.0.0.1:3333"
	frontendUpstream = "127.0.0.1:3334"

	// Placeholder resolved per request by the dynamic_router handler.
	dynamicUpstream = "{http.vars.dynamic.upstream}"
)

// defaultIdentifiers are always valid admin identities: loopback plus
// the default docker bridge gateway.
var defaultIdentifiers = []string{"127.0.0.1", "172.17.0.1"}

var trustedRanges = []string{
	"192.168.0.0/16",
	"172.16.0.0/12",
	"10.0.0.0/8",
	"127.0.0.1/8",
	"fd00::/8",
	"::1",
}

// Params are the inputs of one assembly run.
type Params struct {
	PlatformDomain string
	ChallsDomain   string
	KeysDir        string
	Settings       *settings.Settings
}

// Assemble builds the configuration document for the given parameters.
// It reads <keys-dir>/caddy/cert.pem to seed the remote admin access
// control list; a missing certificate is an error.
func Assemble(params Params) (*Config, error) {
	st := params.Settings

	certFile := filepath.Join(params.KeysDir, "caddy", "cert.pem")
	adminPublicKey, err := readPEMContent(certFile)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed read admin certificate %s", certFile)
	}

	identifiers := make([]string, 0, len(defaultIdentifiers)+1)
	identifiers = append(identifiers, defaultIdentifiers...)
	if st.ExternalIP != "" && !containsString(identifiers, st.ExternalIP) {
		identifiers = append(identifiers, st.ExternalIP)
	}

	// Custom ports with HTTPS on are unsupported in certain conditions
	// where Caddy cannot figure out which port should be HTTP and which
	// should be HTTPS.
	httpAddr := net.JoinHostPort(st.BindHost, cast.ToString(st.HTTPPort))
	httpsAddr := net.JoinHostPort(st.BindHost, cast.ToString(st.HTTPSPort))
	listen := []string{httpAddr}
	if st.EnableHTTPS {
		listen = []string{httpsAddr, httpAddr}
	}

	srv := &Server{
		ID:             "default-server",
		AutomaticHTTPS: &AutomaticHTTPS{Disable: true},
		Listen:         listen,
		Routes: []Route{
			challengeRoute(params.ChallsDomain),
			platformRoute(params.PlatformDomain),
			{
				Match:    []Match{{Host: []string{"*." + params.ChallsDomain}}},
				Terminal: true,
			},
		},
	}

	if !st.AddPlatformRoutes {
		srv.Routes = removePlatformRoute(srv.Routes, params.PlatformDomain)
	}
	if st.TrustProxy {
		srv.TrustedProxies = &TrustedProxies{Ranges: trustedRanges}
	}

	cfg := &Config{
		Admin: &Admin{
			Listen: localAdminListen,
			Remote: &RemoteAdmin{
				Listen: remoteAdminListen,
				AccessControl: []AccessControl{
					{PublicKeys: []string{adminPublicKey}},
				},
			},
			Identity: &Identity{
				Identifiers: identifiers,
				Issuers: []Issuer{
					{Module: "internal", CA: localAdminCA, SignWithRoot: true},
				},
			},
		},
		Apps: Apps{
			HTTP: HTTPApp{
				Servers: map[string]*Server{"srv0": srv},
			},
			PKI: &PKIApp{
				CertificateAuthorities: map[string]*CA{
					localAdminCA: {
						Name:         localAdminCA,
						InstallTrust: false,
						Root: &CARoot{
							Certificate: "/var/lib/caddy/ca.pem",
							PrivateKey:  "/var/lib/caddy/ca-key.pem",
						},
					},
				},
			},
		},
	}

	if st.EnableDNSChallenges {
		cfg.Apps.TLS = dnsChallengeTLS(params.PlatformDomain, params.ChallsDomain)
	}
	return cfg, nil
}

// challengeRoute forwards *.<challs-domain> requests to whatever
// upstream the dynamic_router handler resolved for the request.
func challengeRoute(challsDomain string) Route {
	return Route{
		Match: []Match{{Host: []string{"*." + challsDomain}}},
		Handle: []Handler{
			{Handler: "dynamic_router"},
			{
				Handler:   "reverse_proxy",
				Upstreams: []Upstream{{Dial: dynamicUpstream}},
			},
		},
	}
}

// platformRoute dispatches the platform domain: /api/* to the API
// backend, everything else to the frontend.
func platformRoute(platformDomain string) Route {
	return Route{
		Match: []Match{{Host: []string{platformDomain}}},
		Handle: []Handler{
			{
				Handler: "subroute",
				Routes: []Route{
					{
						Match: []Match{{Path: []string{"/api/*"}}},
						Handle: []Handler{
							{
								Handler:   "reverse_proxy",
								Upstreams: []Upstream{{Dial: apiUpstream}},
							},
						},
					},
					{
						Match: []Match{{Path: []string{"/*"}}},
						Handle: []Handler{
							{
								Handler:   "reverse_proxy",
								Upstreams: []Upstream{{Dial: frontendUpstream}},
							},
						},
					},
				},
			},
		},
		Terminal: true,
	}
}

// removePlatformRoute drops the route whose host match targets the
// platform domain. Matching by predicate keeps the removal correct if
// the route list is ever reordered.
func removePlatformRoute(routes []Route, platformDomain string) []Route {
	kept := routes[:0]
	for _, r := range routes {
		if matchesHost(r, platformDomain) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func matchesHost(r Route, host string) bool {
	for _, m := range r.Match {
		if containsString(m.Host, host) {
			return true
		}
	}
	return false
}

func dnsChallengeTLS(platformDomain, challsDomain string) *TLSApp {
	return &TLSApp{
		Automation: &Automation{
			Policies: []Policy{
				{
					Subjects: []string{platformDomain, "*." + challsDomain},
					Issuers: []ACMEIssuer{
						{
							Module: "acme",
							Challenges: &Challenges{
								DNS: &DNSChallenge{
									Provider: DNSProvider{
										Name: "cloudflare",
										// Must be provided via environment.
										APIToken: "{env.CF_API_TOKEN}",
									},
									Resolvers: []string{"1.1.1.1"},
								},
							},
						},
					},
				},
			},
		},
	}
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// readPEMContent returns the payload of a PEM file with the header and
// footer marker lines stripped. Interior lines keep their terminators.
func readPEMContent(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.AddStack(err)
	}
	lines := splitAfterLines(string(data))
	if len(lines) <= 2 {
		return "", nil
	}
	return strings.Join(lines[1:len(lines)-1], ""), nil
}

// splitAfterLines splits s into lines that keep their trailing
// newlines, without a phantom empty line after a final newline.
func splitAfterLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
