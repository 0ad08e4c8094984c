// Package caddy assembles the Caddy JSON configuration that fronts a
// nerine deployment. The document is pushed to Caddy's remote admin
// API by the deployment pipeline; Caddy tolerates unknown keys, so the
// model below carries only the fields the platform uses.
package caddy

// Config is the top-level configuration document.
type Config struct {
	Admin *Admin `json:"admin,omitempty"`
	Apps  Apps   `json:"apps"`
}

type Admin struct {
	Listen   string       `json:"listen"`
	Remote   *RemoteAdmin `json:"remote,omitempty"`
	Identity *Identity    `json:"identity,omitempty"`
}

// RemoteAdmin is the TLS-secured admin endpoint exposed to the
// deployment host. Access is restricted to the listed public keys.
type RemoteAdmin struct {
	Listen        string          `json:"listen"`
	AccessControl []AccessControl `json:"access_control"`
}

type AccessControl struct {
	PublicKeys []string `json:"public_keys"`
}

type Identity struct {
	Identifiers []string `json:"identifiers"`
	Issuers     []Issuer `json:"issuers"`
}

type Issuer struct {
	Module       string `json:"module"`
	CA           string `json:"ca,omitempty"`
	SignWithRoot bool   `json:"sign_with_root,omitempty"`
}

type Apps struct {
	HTTP HTTPApp `json:"http"`
	TLS  *TLSApp `json:"tls,omitempty"`
	PKI  *PKIApp `json:"pki,omitempty"`
}

type HTTPApp struct {
	Servers map[string]*Server `json:"servers"`
}

type Server struct {
	ID             string          `json:"@id,omitempty"`
	AutomaticHTTPS *AutomaticHTTPS `json:"automatic_https,omitempty"`
	Listen         []string        `json:"listen"`
	Routes         []Route         `json:"routes"`
	TrustedProxies *TrustedProxies `json:"trusted_proxies,omitempty"`
}

type AutomaticHTTPS struct {
	Disable bool `json:"disable"`
}

type TrustedProxies struct {
	Ranges []string `json:"ranges"`
}

// Route pairs match predicates with a handler chain. Routes are
// evaluated first to last; a terminal route stops evaluation.
type Route struct {
	Match    []Match   `json:"match,omitempty"`
	Handle   []Handler `json:"handle,omitempty"`
	Terminal bool      `json:"terminal,omitempty"`
}

type Match struct {
	Host []string `json:"host,omitempty"`
	Path []string `json:"path,omitempty"`
}

type Handler struct {
	Handler   string     `json:"handler"`
	Upstreams []Upstream `json:"upstreams,omitempty"`
	Routes    []Route    `json:"routes,omitempty"`
}

type Upstream struct {
	Dial string `json:"dial"`
}

type TLSApp struct {
	Automation *Automation `json:"automation,omitempty"`
}

type Automation struct {
	Policies []Policy `json:"policies"`
}

type Policy struct {
	Subjects []string     `json:"subjects"`
	Issuers  []ACMEIssuer `json:"issuers"`
}

type ACMEIssuer struct {
	Module     string      `json:"module"`
	Challenges *Challenges `json:"challenges,omitempty"`
}

type Challenges struct {
	DNS *DNSChallenge `json:"dns,omitempty"`
}

type DNSChallenge struct {
	Provider  DNSProvider `json:"provider"`
	Resolvers []string    `json:"resolvers,omitempty"`
}

type DNSProvider struct {
	Name     string `json:"name"`
	APIToken string `json:"api_token,omitempty"`
}

type PKIApp struct {
	CertificateAuthorities map[string]*CA `json:"certificate_authorities"`
}

type CA struct {
	Name         string  `json:"name"`
	InstallTrust bool    `json:"install_trust"`
	Root         *CARoot `json:"root,omitempty"`
}

type CARoot struct {
	Certificate string `json:"certificate"`
	PrivateKey  string `json:"private_key"`
}
