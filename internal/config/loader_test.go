package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("EDUCA_TEST_HOST", "redis.internal")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "set variable",
			input: "host: ${EDUCA_TEST_HOST}",
			want:  "host: redis.internal",
		},
		{
			name:  "set variable ignores default",
			input: "host: ${EDUCA_TEST_HOST:localhost}",
			want:  "host: redis.internal",
		},
		{
			name:  "unset variable uses default",
			input: "port: ${EDUCA_TEST_PORT:6379}",
			want:  "port: 6379",
		},
		{
			name:  "unset variable with empty default",
			input: "password: ${EDUCA_TEST_PASSWORD:}",
			want:  "password: ",
		},
		{
			name:  "unset variable without default stays as-is",
			input: "key: ${EDUCA_TEST_MISSING}",
			want:  "key: ${EDUCA_TEST_MISSING}",
		},
		{
			name:  "multiple placeholders",
			input: "${EDUCA_TEST_HOST}:${EDUCA_TEST_PORT:6379}",
			want:  "redis.internal:6379",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.input))
		})
	}
}
