// Package matching normalizes names and company identifiers so that the
// router can compare noisy, hand-entered records.
package matching

import (
	"net/url"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Similarity levels returned by Similarity.
const (
	Exact       = 1.0
	Contains    = 0.8
	SharedToken = 0.6
	NoMatch     = 0.0
)

var corporateSuffixes = map[string]bool{
	"inc":         true,
	"llc":         true,
	"ltd":         true,
	"corp":        true,
	"corporation": true,
	"company":     true,
	"co":          true,
}

const memoSize = 4096

// Normalization is pure; the memo only saves repeated work across a run.
var memo, _ = lru.New[string, string](memoSize)

// Normalize case-folds s, strips diacritics and punctuation, and drops
// corporate suffixes. "Café Núñez, Inc." becomes "cafe nunez".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	if v, ok := memo.Get(s); ok {
		return v
	}
	out := normalize(s)
	memo.Add(s, out)
	return out
}

func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)
	tokens := strings.Fields(cleaned)
	kept := tokens[:0]
	for _, tok := range tokens {
		if !corporateSuffixes[tok] {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// Tokens returns the normalized tokens of s.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// Similarity compares two names after normalization: exact match 1.0,
// substring containment 0.8, any shared token 0.6, otherwise 0.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return NoMatch
	}
	if na == nb {
		return Exact
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return Contains
	}
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(na) {
		seen[tok] = true
	}
	for _, tok := range strings.Fields(nb) {
		if seen[tok] {
			return SharedToken
		}
	}
	return NoMatch
}

// Mentions reports whether text contains needle once both are normalized.
// Needles shorter than three characters never match.
func Mentions(text, needle string) bool {
	nn := Normalize(needle)
	if len(nn) < 3 {
		return false
	}
	return strings.Contains(" "+Normalize(text)+" ", " "+nn+" ")
}

// HasToken reports whether the normalized text contains token as a whole
// word. Unlike Mentions it has no minimum length, so it suits identifiers.
func HasToken(text, token string) bool {
	nt := Normalize(token)
	if nt == "" {
		return false
	}
	return strings.Contains(" "+Normalize(text)+" ", " "+nt+" ")
}

// RegistrableDomain reduces a website or host to its eTLD+1
// ("https://www.shop.acme.co.uk/about" -> "acme.co.uk"). It returns "" when
// nothing host-like can be extracted.
func RegistrableDomain(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host == "" || !strings.Contains(host, ".") {
		return ""
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}
