package caddy

import (
	"encoding/json"

	"github.com/jxskiss/errors"
	"gopkg.in/yaml.v2"
)

// JSON serializes the document the way the admin API expects it.
func (c *Config) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return nil, errors.AddStack(err)
	}
	return data, nil
}

// YAML serializes the document as YAML. The JSON form is round-tripped
// through a generic map so keys keep their wire names.
func (c *Config) YAML() ([]byte, error) {
	jsonData, err := json.Marshal(c)
	if err != nil {
		return nil, errors.AddStack(err)
	}
	var doc map[string]interface{}
	err = json.Unmarshal(jsonData, &doc)
	if err != nil {
		return nil, errors.AddStack(err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.AddStack(err)
	}
	return data, nil
}
