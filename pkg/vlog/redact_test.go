package vlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactHeaders(t *testing.T) {
	in := map[string][]string{
		"Authorization": {"Bearer secret-token-value"},
		"Cookie":        {"session=abc"},
		"Set-Cookie":    {"session=abc; Secure"},
		"Api-Key":       {"xyz"},
		"X-Api-Key":     {"xyz"},
		"Secret-Foo":    {"bar"},
		"Token-Refresh": {"bar"},
		"Content-Type":  {"application/json"},
	}

	out := RedactHeaders(in)

	assert.Equal(t, []string{"[redacted]"}, out["Authorization"])
	assert.Equal(t, []string{"[redacted]"}, out["Cookie"])
	assert.Equal(t, []string{"[redacted]"}, out["Set-Cookie"])
	assert.Equal(t, []string{"[redacted]"}, out["Api-Key"])
	assert.Equal(t, []string{"[redacted]"}, out["X-Api-Key"])
	assert.Equal(t, []string{"[redacted]"}, out["Secret-Foo"])
	assert.Equal(t, []string{"[redacted]"}, out["Token-Refresh"])
	assert.Equal(t, []string{"application/json"}, out["Content-Type"])
}

func TestRedactHeadersDoesNotMutateInput(t *testing.T) {
	in := map[string][]string{"Authorization": {"secret"}}
	_ = RedactHeaders(in)
	assert.Equal(t, []string{"secret"}, in["Authorization"])
}
