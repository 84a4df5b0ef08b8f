package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPromptNamesEverySignal(t *testing.T) {
	for _, name := range SignalFields {
		assert.Contains(t, SystemPrompt, "- "+name+": ", "prompt should describe %s", name)
	}
	assert.Contains(t, SystemPrompt, `"reasoning"`)
}

func TestSystemPromptAnchors(t *testing.T) {
	for _, anchor := range []string{
		"0 = no rush, 1 = act now or lives lost",
		"0 = no plan/improvising, 1 = detailed protocol in place",
		"0 = fully reversible, 1 = permanent/lethal",
		"0 = can wait forever, 1 = seconds matter",
	} {
		assert.Contains(t, SystemPrompt, anchor)
	}
}

func TestSystemPromptOutputDiscipline(t *testing.T) {
	assert.Contains(t, SystemPrompt, "only a single JSON object")
	assert.Contains(t, SystemPrompt, "default toward 0.50")
	assert.NotContains(t, SystemPrompt, "<no value>")
}

func TestSystemPromptExampleIsValidVector(t *testing.T) {
	_, example, found := strings.Cut(SystemPrompt, "Example output:\n")
	require.True(t, found)

	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(example)), &obj))
	for _, name := range SignalFields {
		assert.Contains(t, obj, name)
	}

	_, err := parseSignalVector(strings.TrimSpace(example), "reject")
	assert.NoError(t, err)
}

func TestSignalFieldsOrder(t *testing.T) {
	assert.Equal(t, []string{
		"urgency", "strategy", "risk", "support", "stability",
		"irreversibility", "stakes", "time_pressure",
	}, SignalFields)
}
