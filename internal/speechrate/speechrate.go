// Package speechrate estimates how much content fits into a speaking
// duration for a given language.
package speechrate

import "strings"

// DefaultRate is used for any language without a tabulated rate (words/sec)
const DefaultRate = 2.5

// Production rates per language tag. Character-counted languages are
// measured in chars/sec, the rest in words/sec.
var rates = map[string]float64{
	"EN": 2.5,
	"ES": 2.5,
	"ZH": 3.5,
	"JP": 5.5,
}

// Languages whose content is counted in characters rather than words
var characterCounted = map[string]bool{
	"JP": true,
	"ZH": true,
}

// RateFor returns the estimated production rate for a language in
// units per second. Unknown languages fall back to DefaultRate.
func RateFor(language string) float64 {
	if rate, ok := rates[normalize(language)]; ok {
		return rate
	}
	return DefaultRate
}

// UnitFor returns the display label of the unit a language is counted
// in: "characters" for JP and ZH, "words" for everything else.
func UnitFor(language string) string {
	if characterCounted[normalize(language)] {
		return "characters"
	}
	return "words"
}

func normalize(language string) string {
	return strings.ToUpper(strings.TrimSpace(language))
}
