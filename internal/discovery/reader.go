package discovery

import (
	"fmt"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"KeywordGrep/internal/logger"
	"KeywordGrep/internal/metrics"
	"KeywordGrep/internal/types"
)

// Reader loads file contents as text. It is safe for concurrent use.
type Reader struct {
	fs      billy.Filesystem
	logger  *logger.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	failures []types.Diagnostic
}

// NewReader creates a reader over fs. lg and m may be nil.
func NewReader(fs billy.Filesystem, lg *logger.Logger, m *metrics.Metrics) *Reader {
	if lg == nil {
		lg = logger.Nop()
	}
	return &Reader{
		fs:      fs,
		logger:  lg,
		metrics: m,
	}
}

// Read returns the decoded content of path. A leading byte order mark is
// dropped and invalid UTF-8 sequences are replaced with U+FFFD.
func (r *Reader) Read(path string) (string, error) {
	data, err := util.ReadFile(r.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode file %s: %w", path, err)
	}
	return string(text), nil
}

// ReadText is Read with failures absorbed: an unreadable file is logged,
// recorded as a diagnostic and reported as empty content.
func (r *Reader) ReadText(path string) string {
	text, err := r.Read(path)
	if err != nil {
		r.logger.Warn("Treating unreadable file as empty: %v", err)
		r.metrics.RecordReadFailure()

		r.mu.Lock()
		r.failures = append(r.failures, types.Diagnostic{
			Kind:    types.FileReadFailure,
			Path:    path,
			Message: err.Error(),
		})
		r.mu.Unlock()
		return ""
	}
	return text
}

// Failures returns the read failures recorded so far.
func (r *Reader) Failures() []types.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.Diagnostic, len(r.failures))
	copy(out, r.failures)
	return out
}
