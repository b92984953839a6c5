package grep

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"KeywordGrep/internal/mapreduce"
	"KeywordGrep/internal/types"
)

// ErrNoKeywords is returned when a search is requested without keywords.
var ErrNoKeywords = errors.New("no keywords provided")

// TextReader returns a file's text, or "" when it cannot be read.
type TextReader interface {
	ReadText(path string) string
}

// KeywordGrep scans files for a fixed keyword set. It implements mapreduce.Mapper.
type KeywordGrep struct {
	keywords []string
	reader   TextReader
}

// NewKeywordGrep creates a scanner for keywords. Matching is case-insensitive;
// keywords that fold to the same form are scanned once.
func NewKeywordGrep(keywords []string, reader TextReader) (*KeywordGrep, error) {
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}

	folded := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		key := types.FoldKeyword(kw)
		if seen[key] {
			continue
		}
		seen[key] = true
		folded = append(folded, key)
	}

	return &KeywordGrep{
		keywords: folded,
		reader:   reader,
	}, nil
}

// Map implements the Mapper interface for keyword search.
// It emits (keyword, path) for every keyword found as a substring of the
// file's case-folded content. Unreadable and empty files are skipped.
func (kg *KeywordGrep) Map(ctx context.Context, chunk types.Chunk, emit mapreduce.Emitter) error {
	// Casers keep state, so each worker gets its own.
	caser := cases.Lower(language.Und)

	for _, path := range chunk.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		text := kg.reader.ReadText(path)
		if text == "" {
			continue
		}

		content := caser.String(text)
		for _, kw := range kg.keywords {
			if strings.Contains(content, kw) {
				emit(kw, path)
			}
		}
	}

	return nil
}

// Scan runs Map on one chunk and collects the matches into a result owned by the caller.
func (kg *KeywordGrep) Scan(ctx context.Context, chunk types.Chunk) (*types.LocalResult, error) {
	local := types.NewLocalResult(chunk.Index)
	if err := kg.Map(ctx, chunk, local.Add); err != nil {
		return nil, err
	}
	return local, nil
}
