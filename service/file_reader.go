package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/treediff/domain"
	"github.com/ludo-technologies/treediff/internal/constants"
)

// FileReaderImpl implements the FileReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectFiles finds files under the given paths matching the patterns.
// Directories are walked recursively; patterns use doublestar globs and
// match against the path relative to the walked root.
func (f *FileReaderImpl) CollectFiles(paths []string, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		} else if shouldIncludeFile(filepath.Base(path), includePatterns, excludePatterns) {
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// CollectRelative walks root and returns the relative paths of matching
// files, sorted. Directory diffs key both sides by these paths.
func (f *FileReaderImpl) CollectRelative(root string, includePatterns, excludePatterns []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.NewFileNotFoundError(root, err)
	}
	if !info.IsDir() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a directory: %s", root), nil)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if shouldIncludeFile(rel, includePatterns, excludePatterns) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads the content of a file, enforcing the size cap
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	if info.Size() > constants.MaxDocumentSizeBytes {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("file too large: %s (%d bytes)", path, info.Size()), nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// FileExists checks if a regular file exists at path
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *FileReaderImpl) collectFromDirectory(dirPath string, includePatterns, excludePatterns []string) ([]string, error) {
	rels, err := f.CollectRelative(dirPath, includePatterns, excludePatterns)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(rels))
	for _, rel := range rels {
		files = append(files, filepath.Join(dirPath, filepath.FromSlash(rel)))
	}
	return files, nil
}

// shouldIncludeFile applies exclude patterns first, then includes.
// An empty include list includes everything.
func shouldIncludeFile(relPath string, includePatterns, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return false
		}
		if matched, _ := doublestar.Match(pattern, filepath.Base(relPath)); matched {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}

	for _, pattern := range includePatterns {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, filepath.Base(relPath)); matched {
			return true
		}
	}
	return false
}
