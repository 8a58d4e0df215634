package triage

// The lexicons below drive every rule-based decision in this package. Each
// set folds English, Devanagari and common Latin transliterations into one
// lowercase phrase list per category. Matching is plain substring containment
// on lowercased input: tokenized matching would miss phrases glued into
// longer Hindi/English code-mixed sentences, so some over-triggering is
// accepted in exchange for recall.
//
// The sets are package-level constants in effect: nothing outside this file
// mutates them, and there is deliberately no API to change them at runtime.

// emergencyLexicon gates every chat turn before any model call. It mixes
// general distress terms with obstetric danger signs.
var emergencyLexicon = []string{
	// English distress and danger terms
	"emergency",
	"help",
	"bleeding",
	"heavy blood",
	"severe pain",
	"unbearable pain",
	"unconscious",
	"fainted",
	"dizzy",
	"fever",
	"hospital",
	"doctor",
	"ambulance",
	"baby not moving",
	"baby stopped moving",
	"water broke",
	"waters broke",
	"convulsion",
	"seizure",
	"fits",
	"blurry vision",
	"can't breathe",
	"cannot breathe",
	// Latin-script Hindi
	"khoon",
	"khun",
	"behosh",
	"chakkar",
	"bukhar",
	"bachao",
	"dard bahut",
	"tez dard",
	"baccha nahi hil",
	"bacha nahi hil",
	"pani ki thaili",
	"daura",
	// Devanagari
	"खून",
	"बेहोश",
	"चक्कर",
	"बुखार",
	"मदद",
	"बचाओ",
	"अस्पताल",
	"डॉक्टर",
	"एम्बुलेंस",
	"तेज दर्द",
	"बहुत दर्द",
	"बच्चा नहीं हिल",
	"पानी की थैली",
	"दौरा",
	"धुंधला दिख",
}

// intentLexicons holds the trigger phrases for each non-emergency intent.
var intentLexicons = map[Intent][]string{
	IntentMenstrual: {
		"period", "menstrua", "cycle", "monthly bleeding", "pad", "sanitary",
		"cramp", "spotting", "irregular",
		"mahwari", "mahavari", "masik",
		"माहवारी", "मासिक", "पीरियड", "ऐंठन",
	},
	IntentPregnancy: {
		"pregnan", "trimester", "delivery", "due date", "baby", "fetus",
		"antenatal", "anc checkup", "kick",
		"garbh", "garbhavati", "prasav", "pet mein baccha",
		"गर्भ", "गर्भवती", "प्रसव", "बच्चा", "डिलीवरी",
	},
	IntentNutrition: {
		"food", "diet", "nutrition", "vitamin", "protein", "weak", "anemia",
		"anaemia", "what to eat", "milk", "green vegetables",
		"khana", "poshan", "kamjori", "doodh", "hari sabzi",
		"खाना", "पोषण", "कमजोरी", "दूध", "हरी सब्जी", "आहार",
	},
	IntentMentalHealth: {
		"sad", "stress", "tension", "depress", "anxiety", "worried", "crying",
		"alone", "sleep problem", "hopeless",
		"udaas", "chinta", "pareshan", "mann nahi",
		"उदास", "चिंता", "परेशान", "तनाव", "अकेला", "रोना",
	},
	IntentScheme: {
		"scheme", "yojana", "benefit", "government", "sarkari", "pmmvy",
		"jsy", "janani suraksha", "matru vandana", "anganwadi", "cash",
		"paisa milega",
		"योजना", "सरकारी", "लाभ", "आंगनवाड़ी", "जननी सुरक्षा", "मातृ वंदना",
	},
	IntentIFA: {
		"iron", "ifa", "folic", "tablet", "supplement", "red pill",
		"iron ki goli", "goli", "calcium",
		"आयरन", "गोली", "फोलिक", "कैल्शियम",
	},
}

// intentPriority fixes the order in which intent lexicons are tested. A
// message matching several categories resolves to the earliest one, so this
// order is behaviourally significant and must not be reordered.
var intentPriority = []Intent{
	IntentMenstrual,
	IntentPregnancy,
	IntentNutrition,
	IntentMentalHealth,
	IntentScheme,
	IntentIFA,
}

func init() {
	// An empty emergency lexicon would silently disable the safety gate.
	if len(emergencyLexicon) == 0 {
		panic("triage: emergency lexicon must not be empty")
	}
	for _, intent := range intentPriority {
		if len(intentLexicons[intent]) == 0 {
			panic("triage: missing lexicon for intent " + string(intent))
		}
	}
}
