package mapreduce

import (
	"slices"
	"sync"

	"KeywordGrep/internal/types"
)

// Merge folds worker results into one global result. Every requested keyword
// gets an entry, and each path appears at most once per keyword regardless of
// how many workers reported it or in which order results arrive.
func Merge(locals []*types.LocalResult, keywords []string) types.GlobalResult {
	global := make(types.GlobalResult, len(keywords))
	seen := make(map[string]map[string]struct{}, len(keywords))

	for _, kw := range keywords {
		key := types.FoldKeyword(kw)
		if _, ok := global[key]; !ok {
			global[key] = []string{}
			seen[key] = make(map[string]struct{})
		}
	}

	for _, local := range locals {
		if local == nil {
			continue
		}
		for kw, paths := range local.Matches {
			if seen[kw] == nil {
				seen[kw] = make(map[string]struct{})
				global[kw] = []string{}
			}
			for _, p := range paths {
				if _, dup := seen[kw][p]; dup {
					continue
				}
				seen[kw][p] = struct{}{}
				global[kw] = append(global[kw], p)
			}
		}
	}

	return global
}

// Normalize produces the comparable form of a global result: one entry per
// distinct requested keyword in its original casing, looked up by folded
// keyword, with a sorted and duplicate-free path list.
func Normalize(global types.GlobalResult, keywords []string) types.Result {
	result := make(types.Result, len(keywords))

	for _, kw := range keywords {
		if _, done := result[kw]; done {
			continue
		}
		paths := slices.Clone(global[types.FoldKeyword(kw)])
		slices.Sort(paths)
		paths = slices.Compact(paths)
		if paths == nil {
			paths = []string{}
		}
		result[kw] = paths
	}

	return result
}

// SharedResult is a global result that many workers append to concurrently.
type SharedResult struct {
	mu     sync.Mutex
	global types.GlobalResult
}

// NewSharedResult creates a shared result with an empty entry per keyword.
func NewSharedResult(keywords []string) *SharedResult {
	return &SharedResult{global: Merge(nil, keywords)}
}

// Add appends path under keyword unless it is already present. The lock
// covers only the check and the append.
func (s *SharedResult) Add(keyword, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.global[keyword], path) {
		return
	}
	s.global[keyword] = append(s.global[keyword], path)
}

// Snapshot returns a copy of the accumulated result.
func (s *SharedResult) Snapshot() types.GlobalResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(types.GlobalResult, len(s.global))
	for kw, paths := range s.global {
		out[kw] = slices.Clone(paths)
	}
	return out
}
