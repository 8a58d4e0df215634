package triage

import "strings"

// Intent tags what the user is asking about.
type Intent string

const (
	IntentEmergency    Intent = "emergency"
	IntentMenstrual    Intent = "menstrual_query"
	IntentPregnancy    Intent = "pregnancy_query"
	IntentNutrition    Intent = "nutrition_query"
	IntentMentalHealth Intent = "mental_health_query"
	IntentScheme       Intent = "scheme_query"
	IntentIFA          Intent = "ifa_query"
	IntentGeneral      Intent = "general_query"
)

// DetectIntent classifies an utterance by testing each category lexicon in
// the fixed priority order and returning the first match. A message that
// mentions both periods and iron tablets is a menstrual query because the
// menstrual lexicon is tested first. Unmatched text falls through to
// IntentGeneral. Pure and total over all string inputs.
func DetectIntent(text string) Intent {
	lower := strings.ToLower(text)
	for _, intent := range intentPriority {
		if containsAny(lower, intentLexicons[intent]) {
			return intent
		}
	}
	return IntentGeneral
}
