package domain

// DefaultStopWords are dropped from keyword candidates.
var DefaultStopWords = []string{
	"a", "an", "the", "is", "are", "in", "on", "to", "for", "with", "about", "of",
}

const (
	// DefaultKeywordMinLength is the shortest token, in characters, that can be a keyword.
	DefaultKeywordMinLength = 4
	// DefaultKeywordLimit caps how many keywords are returned.
	DefaultKeywordLimit = 2
)

// KeywordExtractor pulls a short keyword list out of free text.
type KeywordExtractor interface {
	Extract(text string) []string
}
