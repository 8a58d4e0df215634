package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Elon7069/asha-didi-backend/internal/triage"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		expected Language
	}{
		{"hindi short", "hi", LanguageHindi},
		{"hindi full", "Hindi", LanguageHindi},
		{"hindi iso639-2", "hin", LanguageHindi},
		{"english", "en", LanguageEnglish},
		{"empty defaults to english", "", LanguageEnglish},
		{"unknown defaults to english", "bn", LanguageEnglish},
		{"whitespace", "  hi  ", LanguageHindi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLanguage(tt.tag))
		})
	}
}

func TestCannedMessagesExistForBothLanguages(t *testing.T) {
	for _, lang := range []Language{LanguageHindi, LanguageEnglish} {
		assert.NotEmpty(t, EmergencyMessage(lang), "emergency message for %s", lang)
		assert.NotEmpty(t, FallbackMessage(lang), "fallback message for %s", lang)
	}
}

func TestEmergencyMessageMentionsHelpline(t *testing.T) {
	assert.Contains(t, EmergencyMessage(LanguageEnglish), "108")
	assert.Contains(t, EmergencyMessage(LanguageHindi), "108")
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, EmergencyMessage(LanguageEnglish), EmergencyMessage(Language("bn")))
	assert.Equal(t, FallbackMessage(LanguageEnglish), FallbackMessage(Language("bn")))
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt(triage.IntentPregnancy, LanguageHindi)

	assert.Contains(t, prompt, "Asha Didi")
	assert.Contains(t, prompt, "elder sister")
	assert.Contains(t, prompt, "200 words")
	assert.Contains(t, prompt, "108")
	assert.Contains(t, prompt, "Devanagari")
	assert.Contains(t, prompt, string(triage.IntentPregnancy))

	english := BuildSystemPrompt(triage.IntentPregnancy, LanguageEnglish)
	assert.Contains(t, english, "simple English")
	assert.NotContains(t, english, "Devanagari")
}
