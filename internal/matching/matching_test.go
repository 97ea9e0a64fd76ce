package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Café Núñez, Inc.":        "cafe nunez",
		"ACME Corporation":        "acme",
		"  Logística  Ibérica LTD": "logistica iberica",
		"Smith & Co.":             "smith",
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestSimilarity(t *testing.T) {
	t.Run("exact after normalization", func(t *testing.T) {
		assert.Equal(t, Exact, Similarity("Acme Inc", "ACME"))
	})
	t.Run("containment", func(t *testing.T) {
		assert.Equal(t, Contains, Similarity("Acme Logistics", "Acme"))
	})
	t.Run("shared token", func(t *testing.T) {
		assert.Equal(t, SharedToken, Similarity("Head of People", "People Partner"))
	})
	t.Run("no overlap", func(t *testing.T) {
		assert.Equal(t, NoMatch, Similarity("Finance", "Engineering"))
	})
	t.Run("empty side", func(t *testing.T) {
		assert.Equal(t, NoMatch, Similarity("", "Acme"))
		assert.Equal(t, NoMatch, Similarity("Inc.", "Acme"))
	})
	t.Run("diacritics", func(t *testing.T) {
		assert.Equal(t, Exact, Similarity("Jose Muñoz", "José Munoz"))
	})
}

func TestMentions(t *testing.T) {
	log := "Coffee with Laura last week, she mentioned Pedro Gómez is hiring at Acme."
	assert.True(t, Mentions(log, "Pedro Gomez"))
	assert.True(t, Mentions(log, "acme"))
	assert.False(t, Mentions(log, "Ped"))
	assert.False(t, Mentions(log, "ab"))
	assert.False(t, Mentions("", "Pedro"))
}

func TestHasToken(t *testing.T) {
	log := "Call with c1 owner, see ticket C12."
	assert.True(t, HasToken(log, "c1"))
	assert.True(t, HasToken(log, "c12"))
	assert.False(t, HasToken(log, "c"))
	assert.False(t, HasToken(log, "c123"))
	assert.False(t, HasToken(log, ""))
	assert.False(t, HasToken("", "c1"))
}

func TestRegistrableDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.shop.acme.co.uk/about": "acme.co.uk",
		"acme.com":                          "acme.com",
		"WWW.Acme.com":                      "acme.com",
		"http://mail.acme.com:8080":         "acme.com",
		"localhost":                         "",
		"":                                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, RegistrableDomain(in), "RegistrableDomain(%q)", in)
	}
}
