// Package glob lists file system paths into pipelines.
package glob

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
)

// FileInfo contains information about a file or directory. Its fields can
// be read with Pipeline.Get.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	Mode    fs.FileMode
	IsDir   bool
	ModTime int64
}

// Match returns the file paths matching a glob pattern, in lexical order.
// Patterns are matched using filepath.Glob.
func Match(pattern string, opts ...chain.Option) chain.Pipeline {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return chain.Fail(fmt.Errorf("%w: %q: %v", core.ErrPattern, pattern, err), opts...)
	}
	return chain.From(matches, opts...)
}

// Walk returns every file and directory path under root, root included.
func Walk(root string, opts ...chain.Option) chain.Pipeline {
	return walk(root, func(fs.DirEntry) bool { return true }, opts)
}

// WalkFiles returns only the file paths under root.
func WalkFiles(root string, opts ...chain.Option) chain.Pipeline {
	return walk(root, func(d fs.DirEntry) bool { return !d.IsDir() }, opts)
}

// WalkDirs returns only the directory paths under root.
func WalkDirs(root string, opts ...chain.Option) chain.Pipeline {
	return walk(root, fs.DirEntry.IsDir, opts)
}

func walk(root string, keep func(fs.DirEntry) bool, opts []chain.Option) chain.Pipeline {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if keep(d) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return chain.Fail(fmt.Errorf("walk %s: %w", root, err), opts...)
	}
	return chain.From(paths, opts...)
}

// ListDir returns the immediate children of dir.
func ListDir(dir string, opts ...chain.Option) chain.Pipeline {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return chain.Fail(err, opts...)
	}
	paths := make([]string, len(entries))
	for i, entry := range entries {
		paths[i] = filepath.Join(dir, entry.Name())
	}
	return chain.From(paths, opts...)
}

// Filter returns a stage keeping the paths whose base name matches pattern.
func Filter(pattern string) chain.Stage {
	if _, err := filepath.Match(pattern, ""); err != nil {
		bad := fmt.Errorf("%w: %q: %v", core.ErrPattern, pattern, err)
		return func(p chain.Pipeline) chain.Pipeline {
			if p.Err() != nil {
				return p
			}
			return chain.Fail(bad)
		}
	}
	return func(p chain.Pipeline) chain.Pipeline {
		return p.Select(func(v any) bool {
			path, ok := v.(string)
			if !ok {
				return false
			}
			matched, _ := filepath.Match(pattern, filepath.Base(path))
			return matched
		})
	}
}

// Stat returns a stage replacing every path with its FileInfo.
func Stat() chain.Stage {
	return func(p chain.Pipeline) chain.Pipeline {
		return p.TryMap(func(v any) (any, error) {
			path, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s is not a path", core.ErrType, core.KindOf(v))
			}
			info, err := os.Stat(path)
			if err != nil {
				return nil, err
			}
			return FileInfo{
				Path:    path,
				Name:    info.Name(),
				Size:    info.Size(),
				Mode:    info.Mode(),
				IsDir:   info.IsDir(),
				ModTime: info.ModTime().Unix(),
			}, nil
		})
	}
}
