package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// KeyphraseMode sets the shortest oracle keyphrase that is accepted.
type KeyphraseMode int

const (
	KeyphraseModeWords  KeyphraseMode = iota // single words, at least 3 characters
	KeyphraseModePhrase                      // short phrases, at least 2 characters
)

// ParseKeyphraseMode reads "words" or "phrase". Anything else is words.
func ParseKeyphraseMode(s string) KeyphraseMode {
	if strings.EqualFold(strings.TrimSpace(s), "phrase") {
		return KeyphraseModePhrase
	}
	return KeyphraseModeWords
}

func (m KeyphraseMode) minLength() int {
	if m == KeyphraseModePhrase {
		return 2
	}
	return 3
}

const (
	minQueryWordLength   = 4
	sentenceSearchWindow = 100
	minSentenceEnd       = 6
	maxSentenceWords     = 5
	prefixFallbackLength = 30
	maxExplanationWords  = 12
	fallbackExplanation  = "Unable to generate explanation."
)

var sentenceStopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"been": true, "were": true, "their": true, "there": true,
}

// SelectKeyphrases turns an oracle answer into highlight targets that are
// all verbatim substrings of rawText. When the answer is unusable it falls
// back, in order, to query words found in the text, content words of the
// first sentence, and finally the leading characters of the text.
// A non-nil oracleErr or the no-match sentinel skips the oracle answer.
func SelectKeyphrases(answer string, oracleErr error, query, rawText string, mode KeyphraseMode) []string {
	if oracleErr == nil && !isNoMatch(answer) {
		if kws := validOracleKeyphrases(answer, rawText, mode.minLength()); len(kws) > 0 {
			return kws
		}
	}
	if kws := queryWordMatches(query, rawText); len(kws) > 0 {
		return kws
	}
	if kws := firstSentenceWords(rawText); len(kws) > 0 {
		return kws
	}
	if prefix := strings.TrimSpace(TruncateRunes(rawText, prefixFallbackLength)); prefix != "" {
		return []string{prefix}
	}
	return nil
}

func isNoMatch(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), driven.NoMatchSentinel)
}

func validOracleKeyphrases(answer, rawText string, minLen int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, kw := range strings.Split(answer, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[kw] || utf8.RuneCountInString(kw) < minLen {
			continue
		}
		if !strings.Contains(rawText, kw) {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

func queryWordMatches(query, rawText string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, word := range strings.Fields(query) {
		if utf8.RuneCountInString(word) < minQueryWordLength {
			continue
		}
		original, ok := findFold(rawText, word)
		if !ok || seen[original] {
			continue
		}
		seen[original] = true
		out = append(out, original)
	}
	return out
}

// findFold locates substr in s ignoring case and returns the text of s at
// the first match, in its original case.
func findFold(s, substr string) (string, bool) {
	n := utf8.RuneCountInString(substr)
	for i := range s {
		end, count := i, 0
		for end < len(s) && count < n {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
			count++
		}
		if count < n {
			return "", false
		}
		if strings.EqualFold(s[i:end], substr) {
			return s[i:end], true
		}
	}
	return "", false
}

func firstSentenceWords(rawText string) []string {
	window := rawText
	if len(window) > sentenceSearchWindow {
		window = window[:sentenceSearchWindow]
	}
	period := strings.IndexByte(window, '.')
	if period < minSentenceEnd {
		return nil
	}

	var out []string
	for _, w := range strings.Fields(rawText[:period+1]) {
		if utf8.RuneCountInString(w) < minQueryWordLength || sentenceStopwords[strings.ToLower(w)] {
			continue
		}
		w = strings.TrimFunc(w, unicode.IsPunct)
		if w == "" || !strings.Contains(rawText, w) {
			continue
		}
		out = append(out, w)
		if len(out) == maxSentenceWords {
			break
		}
	}
	return out
}

// CleanExplanation trims an oracle explanation to one short sentence, or
// returns the fallback text when nothing usable came back or the answer
// only restates the query.
func CleanExplanation(explanation, query string, err error) string {
	if err != nil {
		return fallbackExplanation
	}
	explanation = strings.TrimSpace(strings.Trim(strings.TrimSpace(explanation), `"`))
	if explanation == "" || restatesQuery(explanation, query) {
		return fallbackExplanation
	}
	if words := strings.Fields(explanation); len(words) > maxExplanationWords {
		explanation = strings.TrimRight(strings.Join(words[:maxExplanationWords], " "), ",;:") + "."
	}
	return explanation
}

// restatesQuery reports whether the explanation is the query itself, or
// carries a multi-word query word for word. Case and spacing are ignored.
func restatesQuery(explanation, query string) bool {
	q := normalizeSpace(query)
	if q == "" {
		return false
	}
	e := normalizeSpace(strings.TrimFunc(explanation, unicode.IsPunct))
	if e == q {
		return true
	}
	return len(strings.Fields(q)) > 1 && strings.Contains(e, q)
}

func normalizeSpace(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
