// Package glob provides stream adapters for file path matching and directory traversal.
// It enables file system operations as part of flow pipelines.
//
// Traversals run on every invocation and stop walking as soon as the
// consumer returns false.
package glob

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/lguimbarda/pushflow/flow/core"
)

// FileInfo contains information about a file or directory.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	Mode    fs.FileMode
	IsDir   bool
	ModTime time.Time
}

// Match creates a Stream that emits file paths matching a glob pattern.
// Patterns are matched using filepath.Glob. A malformed pattern is emitted
// as a single error.
func Match(pattern string) core.Stream[core.Result[string]] {
	return func(r core.Consumer[core.Result[string]]) bool {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return r(core.Err[string](err))
		}
		return emitAll(matches, r)
	}
}

// MatchFS is Match over an fs.FS, using fs.Glob.
func MatchFS(fsys fs.FS, pattern string) core.Stream[core.Result[string]] {
	return func(r core.Consumer[core.Result[string]]) bool {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return r(core.Err[string](err))
		}
		return emitAll(matches, r)
	}
}

func emitAll(paths []string, r core.Consumer[core.Result[string]]) bool {
	for _, path := range paths {
		if !r(core.Ok(path)) {
			return false
		}
	}
	return true
}

// Walk creates a Stream that emits all file and directory paths under a root
// directory, root included, in lexical order.
func Walk(root string) core.Stream[core.Result[string]] {
	return walk(root, func(fs.DirEntry) bool { return true })
}

// WalkFiles creates a Stream that emits only file paths (not directories).
func WalkFiles(root string) core.Stream[core.Result[string]] {
	return walk(root, func(d fs.DirEntry) bool { return !d.IsDir() })
}

// WalkDirs creates a Stream that emits only directory paths.
func WalkDirs(root string) core.Stream[core.Result[string]] {
	return walk(root, fs.DirEntry.IsDir)
}

// walk emits the paths under root accepted by keep. Errors for single
// entries are emitted and the walk goes on.
func walk(root string, keep func(fs.DirEntry) bool) core.Stream[core.Result[string]] {
	return func(r core.Consumer[core.Result[string]]) bool {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !r(core.Err[string](err)) {
					stopped = true
					return fs.SkipAll
				}
				return nil
			}
			if !keep(d) {
				return nil
			}
			if !r(core.Ok(path)) {
				stopped = true
				return fs.SkipAll
			}
			return nil
		})
		if stopped {
			return false
		}
		if err != nil {
			return r(core.Err[string](err))
		}
		return true
	}
}

// Filter creates a Transformer that filters paths matching a glob pattern.
// Only paths whose base name matches the pattern are passed through.
// Errors pass through unchanged.
func Filter(pattern string) core.Transformer[core.Result[string], core.Result[string]] {
	return core.TransformerFunc[core.Result[string], core.Result[string]](func(s core.Stream[core.Result[string]]) core.Stream[core.Result[string]] {
		return func(r core.Consumer[core.Result[string]]) bool {
			return s(func(res core.Result[string]) bool {
				if res.IsError() {
					return r(res)
				}
				matched, err := filepath.Match(pattern, filepath.Base(res.Value()))
				if err != nil {
					return r(core.Err[string](err))
				}
				if !matched {
					return true
				}
				return r(res)
			})
		}
	})
}

// ListDir creates a Stream that emits immediate children of a directory.
func ListDir(dir string) core.Stream[core.Result[string]] {
	return func(r core.Consumer[core.Result[string]]) bool {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return r(core.Err[string](err))
		}
		for _, entry := range entries {
			if !r(core.Ok(filepath.Join(dir, entry.Name()))) {
				return false
			}
		}
		return true
	}
}

// Stat creates a Transformer that retrieves file info for each path.
func Stat() core.Transformer[core.Result[string], core.Result[FileInfo]] {
	return core.TransformerFunc[core.Result[string], core.Result[FileInfo]](func(s core.Stream[core.Result[string]]) core.Stream[core.Result[FileInfo]] {
		return core.Select(s, func(res core.Result[string]) core.Result[FileInfo] {
			path, err := res.Unwrap()
			if err != nil {
				return core.Err[FileInfo](err)
			}
			info, err := os.Stat(path)
			if err != nil {
				return core.Err[FileInfo](err)
			}
			return core.Ok(FileInfo{
				Path:    path,
				Name:    info.Name(),
				Size:    info.Size(),
				Mode:    info.Mode(),
				IsDir:   info.IsDir(),
				ModTime: info.ModTime(),
			})
		})
	})
}
