package triage

// Category is the coarser label used for logging and analytics.
type Category string

const (
	CategoryEmergency    Category = "emergency"
	CategoryMenstrual    Category = "menstrual_health"
	CategoryPregnancy    Category = "pregnancy_care"
	CategoryNutrition    Category = "nutrition"
	CategoryMentalHealth Category = "mental_health"
	CategoryScheme       Category = "govt_schemes"
	CategorySupplements  Category = "supplements"
	CategoryGeneral      Category = "general"
)

// MapIntentToCategory maps an intent to its analytics category. Unknown
// intents map to CategoryGeneral.
func MapIntentToCategory(intent Intent) Category {
	switch intent {
	case IntentEmergency:
		return CategoryEmergency
	case IntentMenstrual:
		return CategoryMenstrual
	case IntentPregnancy:
		return CategoryPregnancy
	case IntentNutrition:
		return CategoryNutrition
	case IntentMentalHealth:
		return CategoryMentalHealth
	case IntentScheme:
		return CategoryScheme
	case IntentIFA:
		return CategorySupplements
	default:
		return CategoryGeneral
	}
}
