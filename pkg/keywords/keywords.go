// Package keywords derives ranked keyword lists from extracted page text.
// Keywords supplement a site profile where no explicit services or features
// were found on the page.
package keywords

import (
	"sort"
	"strings"
)

// stopwords are common English words plus web-chrome noise ("click",
// "menu") that never describe a business.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "also": {}, "although": {}, "always": {}, "am": {}, "among": {},
	"an": {}, "and": {}, "another": {}, "any": {}, "are": {}, "around": {},
	"as": {}, "at": {},

	"back": {}, "be": {}, "became": {}, "because": {}, "become": {}, "been": {},
	"before": {}, "behind": {}, "being": {}, "below": {}, "beside": {},
	"between": {}, "both": {}, "but": {}, "by": {},

	"can": {}, "cannot": {}, "could": {},

	"did": {}, "do": {}, "does": {}, "doing": {}, "done": {}, "down": {},
	"during": {},

	"each": {}, "either": {}, "else": {}, "enough": {}, "etc": {}, "even": {},
	"ever": {}, "every": {}, "everyone": {}, "everything": {},

	"few": {}, "for": {}, "from": {}, "further": {},

	"get": {}, "got": {},

	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "her": {},
	"here": {}, "hers": {}, "herself": {}, "him": {}, "himself": {},
	"his": {}, "how": {}, "however": {},

	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"itself": {},

	"just": {},

	"last": {}, "least": {}, "less": {}, "let": {}, "like": {},

	"made": {}, "make": {}, "many": {}, "may": {}, "maybe": {}, "me": {},
	"more": {}, "most": {}, "much": {}, "must": {}, "my": {}, "myself": {},

	"neither": {}, "never": {}, "next": {}, "no": {}, "nobody": {},
	"none": {}, "nor": {}, "not": {}, "nothing": {}, "now": {},

	"of": {}, "off": {}, "often": {}, "on": {}, "once": {}, "one": {},
	"only": {}, "onto": {}, "or": {}, "other": {}, "others": {},
	"otherwise": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {},
	"over": {}, "own": {},

	"per": {}, "perhaps": {}, "please": {},

	"rather": {},

	"same": {}, "see": {}, "seem": {}, "several": {}, "she": {},
	"should": {}, "since": {}, "so": {}, "some": {}, "someone": {},
	"something": {}, "sometimes": {}, "still": {}, "such": {},

	"take": {}, "than": {}, "that": {}, "the": {}, "their": {},
	"theirs": {}, "them": {}, "themselves": {}, "then": {}, "there": {},
	"therefore": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "thus": {}, "to": {}, "together": {}, "too": {},
	"toward": {}, "towards": {},

	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {}, "use": {},

	"very": {}, "via": {},

	"was": {}, "we": {}, "well": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "whether": {}, "which": {}, "while": {}, "who": {},
	"whose": {}, "why": {}, "will": {}, "with": {}, "within": {},
	"without": {}, "would": {},

	"yet": {}, "you": {}, "your": {}, "yours": {}, "yourself": {},

	// Web chrome and navigation noise.
	"click": {}, "clicked": {}, "clicking": {},
	"button": {}, "link": {}, "links": {}, "menu": {}, "nav": {},
	"page": {}, "pages": {}, "website": {}, "site": {},
	"home": {}, "homepage": {}, "search": {},
	"loading": {}, "load": {}, "cookie": {}, "cookies": {},
	"privacy": {}, "terms": {}, "copyright": {}, "rights": {},
	"reserved": {}, "login": {}, "signup": {}, "subscribe": {},
	"email": {}, "contact": {}, "read": {}, "learn": {},
}

// IsStopword reports whether word is filtered from frequency analysis.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// Frequencies returns a stopword-filtered word frequency map for text.
// Tokens are lowercased and stripped of surrounding punctuation; tokens
// shorter than three characters are dropped.
func Frequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})
		if len(word) < 3 {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		freq[word]++
	}
	return freq
}

// Merge aggregates per-page frequency maps into one.
func Merge(pages []map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, freq := range pages {
		for word, count := range freq {
			merged[word] += count
		}
	}
	return merged
}

// Top returns the n most frequent words in freq, most frequent first.
// Ties break alphabetically so output is deterministic.
func Top(freq map[string]int, n int) []string {
	type wc struct {
		word  string
		count int
	}
	counts := make([]wc, 0, len(freq))
	for w, c := range freq {
		counts = append(counts, wc{w, c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].word < counts[j].word
	})

	if n > len(counts) {
		n = len(counts)
	}
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = counts[i].word
	}
	return out
}

// FromText is the single-page convenience: frequency analysis plus Top.
func FromText(text string, n int) []string {
	return Top(Frequencies(text), n)
}
