package conversation

import (
	"fmt"
	"strings"

	"github.com/Elon7069/asha-didi-backend/internal/triage"
)

// Language selects which canned strings and response script to use.
type Language string

const (
	LanguageHindi   Language = "hi"
	LanguageEnglish Language = "en"
)

// NormalizeLanguage maps any user-supplied language tag onto a supported
// Language. Unknown tags default to English.
func NormalizeLanguage(tag string) Language {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "hi", "hin", "hindi":
		return LanguageHindi
	default:
		return LanguageEnglish
	}
}

// Both language variants are statically present so the emergency path can
// never fail on a missing string.
var emergencyMessages = map[Language]string{
	LanguageHindi: "⚠️ यह आपातकालीन स्थिति हो सकती है। कृपया तुरंत 108 पर कॉल करें या नज़दीकी अस्पताल जाएँ। " +
		"अपनी आशा दीदी को भी तुरंत बताएँ। अकेली न रहें, किसी को साथ रखें। आपकी और बच्चे की सुरक्षा सबसे ज़रूरी है।",
	LanguageEnglish: "⚠️ This could be an emergency. Please call 108 right now or go to the nearest hospital. " +
		"Also tell your ASHA worker immediately. Do not stay alone, keep someone with you. Your safety and your baby's safety come first.",
}

var fallbackMessages = map[Language]string{
	LanguageHindi: "माफ़ कीजिए, अभी मैं जवाब नहीं दे पा रही हूँ। थोड़ी देर बाद फिर से पूछें। " +
		"अगर बात ज़रूरी है तो अपनी आशा दीदी से मिलें या 104 हेल्पलाइन पर कॉल करें।",
	LanguageEnglish: "Sorry, I am not able to answer right now. Please try again in a little while. " +
		"If it is important, please meet your ASHA worker or call the 104 helpline.",
}

// EmergencyMessage returns the fixed emergency string for the language.
func EmergencyMessage(lang Language) string {
	if msg, ok := emergencyMessages[lang]; ok {
		return msg
	}
	return emergencyMessages[LanguageEnglish]
}

// FallbackMessage returns the fixed apology string for the language.
func FallbackMessage(lang Language) string {
	if msg, ok := fallbackMessages[lang]; ok {
		return msg
	}
	return fallbackMessages[LanguageEnglish]
}

var languageDirectives = map[Language]string{
	LanguageHindi:   "Respond ONLY in simple Hindi written in Devanagari script. Do not mix in English sentences.",
	LanguageEnglish: "Respond ONLY in simple English. Short everyday words, no medical jargon.",
}

// BuildSystemPrompt constructs the persona prompt for a non-emergency turn.
// The intent label lets the model stay on the topic the classifier found.
func BuildSystemPrompt(intent triage.Intent, lang Language) string {
	directive, ok := languageDirectives[lang]
	if !ok {
		directive = languageDirectives[LanguageEnglish]
	}

	return fmt.Sprintf(`You are Asha Didi, a warm and trusted elder sister for women in rural India. You help with menstrual health, pregnancy care, nutrition, mental wellbeing, government health schemes, and iron (IFA) supplements.

Rules you must always follow:
- Speak gently and respectfully, like an elder sister, never like a doctor.
- Never diagnose, never prescribe medicines, never contradict a doctor or ASHA worker.
- Keep every answer under 200 words.
- If the user describes anything that sounds like a medical emergency (heavy bleeding, fainting, fits, severe pain, the baby not moving), do not explain it. Tell her to call 108 immediately and to inform her ASHA worker.
- Encourage her to visit her ASHA worker or anganwadi centre for checkups.
- %s

The user's question is about: %s.`, directive, string(intent))
}
