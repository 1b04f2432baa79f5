package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Hôpital Necker", "hopital necker"},
		{"NECKER - ENFANTS MALADES", "necker enfants malades"},
		{"  Hôtel-Dieu   (AP-HP)  ", "hoteldieu aphp"},
		{"Pitié-Salpêtrière", "pitiesalpetriere"},
		{"Hôpital\tBichat\nClaude-Bernard", "hopital bichat claudebernard"},
		{"Saint-Louis n°1", "saintlouis n1"},
		{"!!!", ""},
		{"ÉÈÊË àâä ç", "eeee aaa c"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeName(tc.input))
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"HOPITAL NECKER ENFANTS MALADES",
		"Hôpital européen Georges-Pompidou",
		"  Centre   Hospitalier  Sainte-Anne ",
		"Ａｍｂｒｏｉｓｅ Paré",
		"naïve café 42",
		"",
	}

	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "input %q", in)
	}
}

func TestContainsEither(t *testing.T) {
	assert.True(t, ContainsEither("hopital necker enfants malades", "necker"))
	assert.True(t, ContainsEither("necker", "hopital necker enfants malades"))
	assert.False(t, ContainsEither("bichat", "necker"))
	assert.False(t, ContainsEither("", "necker"))
	assert.False(t, ContainsEither("necker", ""))
}
