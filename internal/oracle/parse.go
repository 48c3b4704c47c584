package oracle

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const (
	// MinScore and MaxScore bound a phrase's initial score.
	MinScore = 0
	MaxScore = 10

	challengePrefix = "Create a phrase that"
)

// scoreRE captures the token after the first "Score:" marker. Markdown
// emphasis and whitespace between the marker and the value are skipped.
var scoreRE = regexp.MustCompile(`Score:[\s*_]*([^\s*_/]+)`)

// ParseScore extracts the integer score from free-form grader feedback.
//
// "Score: 7", "Score: 7/10" and "**Score:** 7" all yield 7. A missing
// marker, a non-integer value or one outside MinScore..MaxScore yields 0 and
// ok=false, and a warning is logged on the logger carried by ctx.
func ParseScore(ctx context.Context, feedback string) (score int, ok bool) {
	lg := log.Ctx(ctx)
	m := scoreRE.FindStringSubmatch(feedback)
	if m == nil {
		lg.Warn().Msg("oracle: no score marker in feedback")
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimRight(m[1], ".,;:!)"))
	if err != nil {
		lg.Warn().Str("value", m[1]).Msg("oracle: score is not an integer")
		return 0, false
	}
	if n < MinScore || n > MaxScore {
		lg.Warn().Int("value", n).Msg("oracle: score out of range")
		return 0, false
	}
	return n, true
}

// NormalizeChallenge trims model chatter around a generated challenge and
// guarantees the "Create a phrase that" prefix appears exactly once.
func NormalizeChallenge(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'`*")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	lower := strings.ToLower(challengePrefix)
	if i := strings.Index(strings.ToLower(s), lower); i >= 0 {
		// Drop any preamble such as "Sure! Here you go:".
		s = s[i+len(challengePrefix):]
		// Collapse a duplicated prefix.
		for strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), lower) {
			s = strings.TrimSpace(s)[len(challengePrefix):]
		}
	} else if rest, found := strings.CutPrefix(s, "Create a phrase "); found {
		// "Create a phrase in the style of ..." keeps its meaning with "is".
		s = "is " + rest
	} else {
		r, size := utf8.DecodeRuneInString(s)
		s = string(unicode.ToLower(r)) + s[size:]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return challengePrefix + " " + s
}
