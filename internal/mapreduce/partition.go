package mapreduce

import (
	"slices"

	"KeywordGrep/internal/types"
)

// Partition splits files into at most workers contiguous chunks of
// ceil(len(files)/workers) files each; the last chunk may be shorter.
// Empty trailing chunks are never produced and an empty file list yields nil.
func Partition(files []string, workers int) []types.Chunk {
	if len(files) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, len(files))
	size := (len(files) + workers - 1) / workers

	chunks := make([]types.Chunk, 0, workers)
	for i := 0; i < workers; i++ {
		start := i * size
		if start >= len(files) {
			break
		}
		end := min(start+size, len(files))
		chunks = append(chunks, types.Chunk{
			Index: i,
			Files: slices.Clip(files[start:end]),
		})
	}
	return chunks
}
