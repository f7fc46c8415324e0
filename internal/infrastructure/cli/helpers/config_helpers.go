package helpers

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/modelscout/internal/domain"
)

// ConfigAsMap round-trips cfg through YAML so keys match the file layout.
func ConfigAsMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LookupConfigKey resolves a dotted key path such as "backend.base_url".
func LookupConfigKey(cfg domain.Config, key string) (interface{}, error) {
	data, err := ConfigAsMap(cfg)
	if err != nil {
		return nil, err
	}
	value, ok := TraverseNestedMap(data, strings.Split(key, "."))
	if !ok {
		return nil, fmt.Errorf("key %q not found", key)
	}
	return value, nil
}

// TraverseNestedMap walks through nested maps following the key path
func TraverseNestedMap(data interface{}, keyPath []string) (interface{}, bool) {
	current := data
	for _, key := range keyPath {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
