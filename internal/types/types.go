package types

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldKeyword returns the case-folded form used to match and key a keyword.
// It builds a fresh caser on every call and is safe for concurrent use.
func FoldKeyword(keyword string) string {
	return cases.Lower(language.Und).String(keyword)
}

// Chunk is a contiguous slice of the file list handed to exactly one worker.
type Chunk struct {
	Index int
	Files []string
}

// LocalResult is the match set built by a single worker, keyed by folded keyword.
type LocalResult struct {
	Worker  int
	Matches map[string][]string
}

// NewLocalResult creates an empty result owned by the given worker.
func NewLocalResult(worker int) *LocalResult {
	return &LocalResult{
		Worker:  worker,
		Matches: make(map[string][]string),
	}
}

// Add records path under keyword unless it is already present.
func (r *LocalResult) Add(keyword, path string) {
	if slices.Contains(r.Matches[keyword], path) {
		return
	}
	r.Matches[keyword] = append(r.Matches[keyword], path)
}

// GlobalResult maps folded keywords to the paths that contain them.
// Path order is incidental until the result is normalized.
type GlobalResult map[string][]string

// Result is the normalized output: every requested keyword in its original
// casing mapped to a sorted, duplicate-free list of paths.
type Result map[string][]string

// Equal reports whether two normalized results hold the same keys and lists.
func (r Result) Equal(other Result) bool {
	if len(r) != len(other) {
		return false
	}
	for kw, paths := range r {
		otherPaths, ok := other[kw]
		if !ok || !slices.Equal(paths, otherPaths) {
			return false
		}
	}
	return true
}
