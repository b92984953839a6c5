package mapreduce

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fileList(n int) []string {
	files := make([]string, n)
	for i := range files {
		files[i] = fmt.Sprintf("data/f%03d.txt", i)
	}
	return files
}

func TestPartitionSizes(t *testing.T) {
	tests := []struct {
		name    string
		files   int
		workers int
		sizes   []int
	}{
		{"even split", 8, 4, []int{2, 2, 2, 2}},
		{"short last chunk", 10, 4, []int{3, 3, 3, 1}},
		{"workers capped at file count", 3, 8, []int{1, 1, 1}},
		{"single worker", 5, 1, []int{5}},
		{"zero workers treated as one", 4, 0, []int{4}},
		{"trailing empty chunks dropped", 5, 4, []int{2, 2, 1}},
		{"one file", 1, 4, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Partition(fileList(tt.files), tt.workers)

			sizes := make([]int, len(chunks))
			for i, c := range chunks {
				sizes[i] = len(c.Files)
				assert.Equal(t, i, c.Index)
			}
			assert.Equal(t, tt.sizes, sizes)
		})
	}
}

func TestPartitionEmpty(t *testing.T) {
	assert.Nil(t, Partition(nil, 4))
	assert.Nil(t, Partition([]string{}, 4))
}

func TestPartitionCoversFilesInOrder(t *testing.T) {
	for n := 1; n <= 23; n++ {
		files := fileList(n)
		for workers := 1; workers <= 9; workers++ {
			chunks := Partition(files, workers)

			var joined []string
			for _, c := range chunks {
				assert.NotEmpty(t, c.Files)
				joined = append(joined, c.Files...)
			}
			assert.Equal(t, files, joined, "files=%d workers=%d", n, workers)
			assert.LessOrEqual(t, len(chunks), workers)
		}
	}
}

func TestPartitionIsDeterministic(t *testing.T) {
	files := fileList(17)
	assert.Equal(t, Partition(files, 5), Partition(files, 5))
}

func TestPartitionChunksDoNotAlias(t *testing.T) {
	files := fileList(6)
	chunks := Partition(files, 3)

	chunks[0].Files = append(chunks[0].Files, "extra.txt")
	assert.Equal(t, "data/f002.txt", chunks[1].Files[0])
	assert.Equal(t, "data/f002.txt", files[2])
}
