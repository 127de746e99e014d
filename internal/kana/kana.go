// Package kana normalizes Japanese member names so that roster entries,
// speech payloads and written-question submitters can be matched and sorted
// consistently.
package kana

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// honorific suffixes the Diet listings append to submitter names.
var suffixes = []string{"君外", "君", "議員"}

// NormalizeName folds a member name to a canonical matching key: NFKC
// normalization, all spaces removed, trailing honorifics stripped.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	text := norm.NFKC.String(name)
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, "　", "")
	for _, suffix := range suffixes {
		if cut, ok := strings.CutSuffix(text, suffix); ok {
			text = cut
			break
		}
	}
	return text
}

// SortKey produces a kana-ordering key for the member directory. Katakana
// readings fold to hiragana so that both script variants interleave; when
// no reading is available the display name itself is the key.
func SortKey(reading, name string) string {
	key := reading
	if key == "" {
		key = name
	}
	key = norm.NFKC.String(key)
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "　", "")
	return hiragana(key)
}

// hiragana maps katakana code points into the hiragana block.
func hiragana(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 'ァ' && r <= 'ヶ' {
			r -= 0x60
		}
		b.WriteRune(r)
	}
	return b.String()
}
