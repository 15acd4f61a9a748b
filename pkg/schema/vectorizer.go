package schema

import "github.com/cuemby/vecta-go/pkg/verrors"

// VectorizerConfig is a collection's vectorizer selection, built by a
// module-specific factory and attached to models.Collection.VectorizerConfig
// via Build.
type VectorizerConfig struct {
	module string
	params map[string]any
}

// Build renders the config into the map form models.Collection carries.
func (c VectorizerConfig) Build() (map[string]any, error) {
	if c.module == "" {
		return nil, verrors.ErrNotImplemented
	}
	out := make(map[string]any, len(c.params)+1)
	for k, v := range c.params {
		out[k] = v
	}
	out["vectorizer"] = c.module
	return out, nil
}

// Auto selects a server-chosen vectorizer module rather than naming one
// explicitly. Not implemented: the server-side module-discovery protocol
// this would need isn't documented in any retrieved wire reference, so
// Build returns verrors.ErrNotImplemented rather than guessing at one.
func Auto() VectorizerConfig {
	return VectorizerConfig{}
}
