package triage

import "strings"

// DetectEmergency reports whether the utterance contains any emergency
// trigger phrase. It is a pure function over the text: no network, no state,
// and it must stay cheap enough to gate every incoming chat turn.
//
// Substring containment is intentional (see lexicon.go); the empty string
// never matches.
func DetectEmergency(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	return containsAny(lower, emergencyLexicon)
}

func containsAny(lower string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
