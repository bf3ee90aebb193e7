package specgen

import "strings"

// Qualitative level descriptors per language and CEFR level. Missing
// languages or levels fall back to the English table, then to a
// generic descriptor.
var levelDetails = map[string]map[string]string{
	"EN": {
		"A1": "Basic greetings, simple present tense, common nouns.",
		"A2": "Simple past tense, basic conjunctions, everyday situational vocabulary.",
		"B1": "Present perfect, relative clauses, common idioms, expressing opinions.",
		"B2": "Conditional sentences, passive voice, professional terminology, abstract topics.",
		"C1": "Subtle nuances, advanced phrasal verbs, sophisticated academic/professional language.",
	},
	"JP": {
		"A1": "です・ます調、基本的な名詞、日常の挨拶。",
		"A2": "過去形（〜た）、基本的な動詞の活用、日常会話。",
		"B1": "て形、可能形、基本的な敬語、日常的な意見表明。",
		"B2": "受身、使役、ビジネス表現、社会的なトピック。",
		"C1": "高度な語彙、慣用句、フォーマルな場面に応じた使い分け。",
	},
	"ZH": {
		"B1": "常用成语, 比较句, 表达个人观点.",
	},
	"ES": {
		"B1": "Pretérito perfecto, subjuntivo básico, modismos comunes.",
	},
}

const genericDetails = "Standard level appropriate"

// detailsFor resolves the descriptor for a language and level
func detailsFor(language, level string) string {
	language = strings.ToUpper(strings.TrimSpace(language))
	if table, ok := levelDetails[language]; ok {
		if details, ok := table[level]; ok {
			return details
		}
	}
	if details, ok := levelDetails["EN"][level]; ok {
		return details
	}
	return genericDetails
}
