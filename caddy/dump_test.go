package caddy

import (
	"strings"
	"testing"
)

func TestYAMLOutput(t *testing.T) {
	st := defaultSettings()
	st.AddPlatformRoutes = true

	cfg, err := Assemble(testParams(t, st))
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}
	out := string(data)
	// Keys must keep their JSON wire names through the YAML round-trip.
	for _, want := range []string{
		"listen: localhost:990",
		"'@id': default-server",
		"handler: subroute",
		"install_trust: false",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q", want)
		}
	}
}
