package llmjson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{\"a\": 1}\n```\n  ",
			expected: `{"a": 1}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripFences(tt.input))
		})
	}
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare object",
			input:    `{"patient_name": "Sita"}`,
			expected: `{"patient_name": "Sita"}`,
		},
		{
			name:     "prose around the object",
			input:    `Here is the record you asked for: {"visit_type": "follow_up"} Let me know!`,
			expected: `{"visit_type": "follow_up"}`,
		},
		{
			name:     "nested objects",
			input:    `{"vitals": {"blood_pressure": {"systolic": 120, "diastolic": 80}}}`,
			expected: `{"vitals": {"blood_pressure": {"systolic": 120, "diastolic": 80}}}`,
		},
		{
			name:     "braces inside strings",
			input:    `{"observations": "patient said {unclear} words", "ok": true}`,
			expected: `{"observations": "patient said {unclear} words", "ok": true}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"note": "she said \"theek hoon\""}`,
			expected: `{"note": "she said \"theek hoon\""}`,
		},
		{
			name:     "fenced object",
			input:    "```json\n{\"isRedFlag\": true}\n```",
			expected: `{"isRedFlag": true}`,
		},
		{
			name:     "no object",
			input:    "sorry, I cannot help with that",
			expected: "",
		},
		{
			name:     "unbalanced object",
			input:    `{"truncated": "yes"`,
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractObject(tt.input))
		})
	}
}

func TestExtractObjectUnmarshals(t *testing.T) {
	raw := "The extracted record:\n```json\n{\"symptoms\": [\"fever\", \"chakkar\"], \"follow_up_required\": true}\n```\nAnything else?"

	carved := ExtractObject(raw)
	require.NotEmpty(t, carved)

	var out struct {
		Symptoms         []string `json:"symptoms"`
		FollowUpRequired bool     `json:"follow_up_required"`
	}
	require.NoError(t, json.Unmarshal([]byte(carved), &out))
	assert.Equal(t, []string{"fever", "chakkar"}, out.Symptoms)
	assert.True(t, out.FollowUpRequired)
}
