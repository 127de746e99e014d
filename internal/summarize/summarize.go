package summarize

import (
	"regexp"
	"strings"
)

// speakerMarker matches the "○<name>" prefix the Diet minutes put in front
// of each utterance, plus the full-width space that usually follows it.
var speakerMarker = regexp.MustCompile(`(?m)^○[^\s　]*　?`)

var whitespace = regexp.MustCompile(`[\s　]+`)

const (
	maxSummaryRunes = 100
	ellipsis        = "…"
)

// Clean strips speaker markers from the start of every line, collapses
// whitespace runs to single spaces, and trims the result.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	cleaned := speakerMarker.ReplaceAllString(text, "")
	cleaned = whitespace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Summary cleans the speech text and truncates it to 100 runes, appending
// an ellipsis when anything was cut. Empty input yields the empty string;
// callers render their own placeholder for it.
func Summary(text string) string {
	cleaned := Clean(text)
	runes := []rune(cleaned)
	if len(runes) <= maxSummaryRunes {
		return cleaned
	}
	return string(runes[:maxSummaryRunes]) + ellipsis
}

// LeadSentences is the alternative summarization policy: it keeps only the
// first n segments delimited by the Japanese period and re-joins them with
// their trailing 。. It is not interchangeable with Summary; each view picks
// the policy it needs.
func LeadSentences(text string, n int) string {
	cleaned := Clean(text)
	if cleaned == "" || n <= 0 {
		return ""
	}

	parts := strings.Split(cleaned, "。")
	kept := make([]string, 0, n)
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
		if len(kept) == n {
			break
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, "。") + "。"
}
