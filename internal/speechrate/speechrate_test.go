package speechrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateFor(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     float64
	}{
		{name: "english words per second", language: "EN", want: 2.5},
		{name: "spanish words per second", language: "ES", want: 2.5},
		{name: "chinese chars per second", language: "ZH", want: 3.5},
		{name: "japanese chars per second", language: "JP", want: 5.5},
		{name: "unknown language falls back to default", language: "FR", want: DefaultRate},
		{name: "empty language falls back to default", language: "", want: DefaultRate},
		{name: "lowercase tag matches", language: "jp", want: 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RateFor(tt.language))
		})
	}
}

func TestUnitFor(t *testing.T) {
	assert.Equal(t, "characters", UnitFor("JP"))
	assert.Equal(t, "characters", UnitFor("ZH"))
	assert.Equal(t, "words", UnitFor("EN"))
	assert.Equal(t, "words", UnitFor("ES"))
	assert.Equal(t, "words", UnitFor("KO"))
}
