package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldKeyword(t *testing.T) {
	assert.Equal(t, "python", FoldKeyword("PyThOn"))
	assert.Equal(t, "straße", FoldKeyword("STRAßE"))
	assert.Equal(t, "", FoldKeyword(""))
}

func TestLocalResultAddIsIdempotent(t *testing.T) {
	r := NewLocalResult(2)
	r.Add("python", "a.txt")
	r.Add("python", "a.txt")
	r.Add("python", "b.txt")

	assert.Equal(t, 2, r.Worker)
	assert.Equal(t, []string{"a.txt", "b.txt"}, r.Matches["python"])
}

func TestResultEqual(t *testing.T) {
	a := Result{"python": {"a.txt"}, "event": {}}

	assert.True(t, a.Equal(Result{"python": {"a.txt"}, "event": {}}))
	assert.True(t, a.Equal(Result{"python": {"a.txt"}, "event": nil}))
	assert.False(t, a.Equal(Result{"python": {"a.txt"}}))
	assert.False(t, a.Equal(Result{"python": {"b.txt"}, "event": {}}))
	assert.False(t, a.Equal(Result{"python": {"a.txt"}, "thread": {}}))
}

func TestParseStrategy(t *testing.T) {
	s, ok := ParseStrategy("shared")
	assert.True(t, ok)
	assert.Equal(t, StrategyShared, s)

	_, ok = ParseStrategy("threads")
	assert.False(t, ok)
}
