package configuration

import (
	"os"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	os.Setenv("TP_TEST_HOST", "db.internal")
	defer os.Unsetenv("TP_TEST_HOST")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Set variable",
			input:    "host: ${TP_TEST_HOST:localhost}",
			expected: "host: db.internal",
		},
		{
			name:     "Unset variable with default",
			input:    "port: ${TP_TEST_UNSET_PORT:5432}",
			expected: "port: 5432",
		},
		{
			name:     "Unset variable without default",
			input:    "password: ${TP_TEST_UNSET_PASSWORD}",
			expected: "password: ",
		},
		{
			name:     "Default containing url",
			input:    "base: ${TP_TEST_UNSET_URL:http://localhost:11434}",
			expected: "base: http://localhost:11434",
		},
		{
			name:     "Multiple variables on one line",
			input:    "dsn: ${TP_TEST_HOST:x}:${TP_TEST_UNSET_PORT:5432}",
			expected: "dsn: db.internal:5432",
		},
		{
			name:     "No variables",
			input:    "plain: value",
			expected: "plain: value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnv(tt.input)
			if result != tt.expected {
				t.Errorf("expandEnv() = %q, expected %q", result, tt.expected)
			}
		})
	}
}
