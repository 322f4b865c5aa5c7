package chat

import (
	"math/rand/v2"
	"strings"

	"github.com/cropwise/cropwise/pkg/models"
)

// fallbackReplies are served when no model can answer. Keys are the
// languages a farmer can select.
var fallbackReplies = map[string][]string{
	"English": {
		"I'm here to help with your farming questions. Please share your location, soil type and season so I can suggest suitable crops.",
		"Thank you for your question. For better crop advice, tell me about your soil, water availability and budget.",
		"I can help you choose crops, plan irrigation and understand market trends. What would you like to know?",
	},
	"Hindi": {
		"मैं आपके खेती से जुड़े सवालों में मदद के लिए यहाँ हूँ। कृपया अपना स्थान, मिट्टी का प्रकार और मौसम बताएं।",
		"आपके प्रश्न के लिए धन्यवाद। बेहतर फसल सलाह के लिए अपनी मिट्टी, सिंचाई और बजट के बारे में बताएं।",
		"मैं फसल चुनने, सिंचाई की योजना और बाज़ार भाव समझने में आपकी मदद कर सकता हूँ।",
	},
	"Telugu": {
		"మీ వ్యవసాయ ప్రశ్నలకు సహాయం చేయడానికి నేను ఇక్కడ ఉన్నాను. దయచేసి మీ ప్రాంతం, నేల రకం మరియు సీజన్ తెలియజేయండి.",
		"మీ ప్రశ్నకు ధన్యవాదాలు. మంచి పంట సలహా కోసం మీ నేల, నీటి లభ్యత గురించి చెప్పండి.",
	},
	"Tamil": {
		"உங்கள் விவசாய கேள்விகளுக்கு உதவ நான் இங்கே இருக்கிறேன். உங்கள் இடம், மண் வகை மற்றும் பருவத்தைப் பகிரவும்.",
		"உங்கள் கேள்விக்கு நன்றி. சிறந்த பயிர் ஆலோசனைக்கு உங்கள் மண் மற்றும் நீர் வசதி பற்றி கூறுங்கள்.",
	},
	"Kannada": {
		"ನಿಮ್ಮ ಕೃಷಿ ಪ್ರಶ್ನೆಗಳಿಗೆ ಸಹಾಯ ಮಾಡಲು ನಾನು ಇಲ್ಲಿದ್ದೇನೆ. ದಯವಿಟ್ಟು ನಿಮ್ಮ ಸ್ಥಳ, ಮಣ್ಣಿನ ಪ್ರಕಾರ ಮತ್ತು ಋತುವನ್ನು ತಿಳಿಸಿ.",
		"ನಿಮ್ಮ ಪ್ರಶ್ನೆಗೆ ಧನ್ಯವಾದಗಳು. ಉತ್ತಮ ಬೆಳೆ ಸಲಹೆಗಾಗಿ ನಿಮ್ಮ ಮಣ್ಣು ಮತ್ತು ನೀರಾವರಿ ಬಗ್ಗೆ ತಿಳಿಸಿ.",
	},
	"Malayalam": {
		"നിങ്ങളുടെ കൃഷി സംബന്ധമായ ചോദ്യങ്ങൾക്ക് സഹായിക്കാൻ ഞാൻ ഇവിടെയുണ്ട്. നിങ്ങളുടെ സ്ഥലം, മണ്ണിന്റെ തരം, സീസൺ എന്നിവ പങ്കിടുക.",
		"നിങ്ങളുടെ ചോദ്യത്തിന് നന്ദി. മികച്ച വിള ഉപദേശത്തിനായി മണ്ണിനെയും ജലസേചനത്തെയും കുറിച്ച് പറയുക.",
	},
	"Bengali": {
		"আপনার কৃষি বিষয়ক প্রশ্নে সাহায্য করতে আমি এখানে আছি। অনুগ্রহ করে আপনার এলাকা, মাটির ধরন ও মৌসুম জানান।",
		"আপনার প্রশ্নের জন্য ধন্যবাদ। ভালো ফসলের পরামর্শের জন্য আপনার মাটি ও সেচ সম্পর্কে বলুন।",
	},
	"Marathi": {
		"तुमच्या शेतीविषयक प्रश्नांसाठी मी येथे आहे. कृपया तुमचे ठिकाण, मातीचा प्रकार आणि हंगाम सांगा.",
		"तुमच्या प्रश्नाबद्दल धन्यवाद. चांगल्या पीक सल्ल्यासाठी तुमची माती आणि पाण्याची सोय सांगा.",
	},
}

// SupportedLanguages lists the languages with canned replies.
func SupportedLanguages() []string {
	return []string{"English", "Hindi", "Telugu", "Tamil", "Kannada", "Malayalam", "Bengali", "Marathi"}
}

// FallbackReply picks a canned reply in language, or in English when the
// language is unknown. Language names are matched case-insensitively.
func FallbackReply(language string) string {
	replies := fallbackReplies[models.DefaultLanguage]
	for name, r := range fallbackReplies {
		if strings.EqualFold(name, strings.TrimSpace(language)) {
			replies = r
			break
		}
	}
	return replies[rand.IntN(len(replies))]
}

// IsFallbackReply reports whether reply is one of the canned replies for
// language.
func IsFallbackReply(language, reply string) bool {
	for name, replies := range fallbackReplies {
		if !strings.EqualFold(name, language) {
			continue
		}
		for _, r := range replies {
			if r == reply {
				return true
			}
		}
	}
	return false
}
