package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"KeywordGrep/internal/logger"
)

// DefaultExtensions is the set of file extensions treated as text when none are configured.
var DefaultExtensions = []string{".txt"}

// Lister finds text files under a root directory of a billy filesystem.
type Lister struct {
	fs         billy.Filesystem
	extensions []string
	logger     *logger.Logger
}

// NewLister creates a lister that accepts files with the given extensions.
func NewLister(fs billy.Filesystem, extensions []string, lg *logger.Logger) *Lister {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if lg == nil {
		lg = logger.Nop()
	}

	return &Lister{
		fs:         fs,
		extensions: exts,
		logger:     lg,
	}
}

// List walks root recursively and returns matching regular files as sorted,
// slash-separated paths. A missing root yields an empty list.
func (l *Lister) List(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := util.Walk(l.fs, root, func(p string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == root {
				return err
			}
			l.logger.Warn("Skipping unreadable path %s: %v", p, err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() || !l.accepts(p) {
			return nil
		}
		files = append(files, filepath.ToSlash(p))
		return nil
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Search root does not exist: %s", root)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
	}

	slices.Sort(files)
	return files, nil
}

func (l *Lister) accepts(p string) bool {
	return slices.Contains(l.extensions, strings.ToLower(filepath.Ext(p)))
}
