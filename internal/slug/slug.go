// Package slug derives short, filesystem- and ref-safe hyphenated names
// from free-text feature descriptions.
package slug

import (
	"strings"
)

const (
	// Fallback is emitted when no token of a description survives filtering.
	Fallback = "feature"

	// CleanMaxLength caps caller-supplied short names.
	CleanMaxLength = 50

	// RefNameLimit caps the combined NNN-slug token. A branch ref is stored
	// as a filename under refs/heads/ with a transient .lock suffix, so the
	// usable budget is 255 - len("refs/heads/") - len(".lock").
	RefNameLimit = 239

	// DefaultMaxWords is the number of description tokens kept when the
	// caller does not say otherwise.
	DefaultMaxWords = 4
)

// stopWords are dropped from descriptions before slugging: articles,
// prepositions, pronouns, common auxiliaries, and workflow filler.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "with", "from", "into", "onto", "over", "under",
		"that", "this", "these", "those", "there", "where", "when", "which",
		"what", "who", "whom", "whose", "why", "how", "all", "any", "both",
		"each", "few", "more", "most", "other", "some", "such", "than",
		"too", "very", "can", "could", "may", "might", "must", "shall",
		"should", "will", "would", "have", "has", "had", "having", "does",
		"did", "doing", "are", "was", "were", "been", "being", "but", "not",
		"you", "your", "yours", "our", "ours", "their", "theirs", "his",
		"her", "hers", "its", "they", "them", "she", "him", "able", "about",
		"after", "before", "because", "between", "during", "through",
		"while", "also", "just", "then", "once", "here", "out", "off",
		"again", "further", "new", "need", "needs", "want", "wants",
		"please", "let", "lets", "make", "makes", "using", "use",
	} {
		stopWords[w] = struct{}{}
	}
}

// actionVerbs trigger the two-word shortcut when immediately followed by a
// domain noun after filtering.
var actionVerbs = map[string]struct{}{
	"add": {}, "create": {}, "implement": {}, "fix": {}, "update": {},
	"remove": {}, "delete": {}, "build": {}, "setup": {}, "configure": {},
}

// domainNouns are the objects recognized by the shortcut.
var domainNouns = []string{
	"user", "auth", "login", "dashboard", "api", "database",
	"component", "page", "system", "feature",
}

// Generate converts a natural-language description into a short hyphenated
// slug. When an action verb is directly followed by a domain noun the slug
// collapses to exactly "action-noun" (add-user-auth style names read better
// than four-word concatenations; the full description survives in the spec
// document). Otherwise the first maxWords surviving tokens are joined. An
// empty survivor set yields Fallback.
func Generate(description string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	tokens := filterTokens(tokenize(description))
	if len(tokens) == 0 {
		return Fallback
	}

	if len(tokens) >= 2 {
		if _, ok := actionVerbs[tokens[0]]; ok && isDomainNoun(tokens[1]) {
			return tokens[0] + "-" + tokens[1]
		}
	}

	if len(tokens) > maxWords {
		tokens = tokens[:maxWords]
	}
	return strings.Join(tokens, "-")
}

// Clean normalizes a caller-supplied short name: lowercase, non-alphanumeric
// runs collapsed to single hyphens, trimmed, capped at CleanMaxLength.
func Clean(text string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	s := strings.Trim(b.String(), "-")
	if len(s) > CleanMaxLength {
		s = strings.TrimRight(s[:CleanMaxLength], "-")
	}
	return s
}

// TruncateForRef enforces the ref-name budget on a combined NNN-slug token.
// Only the slug portion is shortened; the numeric prefix is never touched.
// A hyphen exposed at the cut point is trimmed.
func TruncateForRef(name string) string {
	if len(name) <= RefNameLimit {
		return name
	}
	return strings.TrimRight(name[:RefNameLimit], "-")
}

// tokenize lowercases, maps punctuation to spaces, and splits on whitespace.
func tokenize(description string) []string {
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return ' '
	}, description)
	return strings.Fields(mapped)
}

// filterTokens drops short tokens and stop words.
func filterTokens(tokens []string) []string {
	kept := tokens[:0:0]
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, ok := stopWords[tok]; ok {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// isDomainNoun reports whether tok matches or is substring-related to a
// known domain noun ("users" counts for "user", "auth" for "authentication").
func isDomainNoun(tok string) bool {
	for _, noun := range domainNouns {
		if tok == noun || strings.Contains(tok, noun) || strings.Contains(noun, tok) {
			return true
		}
	}
	return false
}
