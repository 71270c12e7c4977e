package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	chartlog "github.com/jenian/chartgrd/internal/log"
	"github.com/sirupsen/logrus"
)

// Kind represents a template file format
type Kind string

const (
	KindYAML    Kind = "yaml"
	KindTpl     Kind = "tpl"
	KindText    Kind = "txt"
	KindUnknown Kind = "unknown"
)

// DefaultExtensions are the template formats used by the chart
var DefaultExtensions = []string{".yaml", ".tpl", ".txt"}

// FileInfo contains information about a template file to be scanned
type FileInfo struct {
	Path string
	Kind Kind
}

// Scanner handles template discovery and filtering
type Scanner struct {
	excludeDirs  map[string]bool // Directory names to exclude (e.g., ".git")
	excludePaths []string        // Path patterns to exclude (e.g., "tests", "extra/*")
	excludeGlobs []string
	includeGlobs []string
	extensions   map[string]bool
	scanRoot     string // Root path being scanned (for relative path matching)
	log          logrus.FieldLogger
}

// NewScanner creates a new scanner with default exclusions
func NewScanner() *Scanner {
	s := &Scanner{
		excludeDirs: map[string]bool{
			".git": true,
		},
		log: chartlog.Discard(),
	}
	s.SetExtensions(DefaultExtensions)
	return s
}

// SetLogger sets where warnings about unreadable paths go
func (s *Scanner) SetLogger(log logrus.FieldLogger) {
	s.log = log
}

// SetExtensions sets the file extensions treated as templates
func (s *Scanner) SetExtensions(exts []string) {
	s.extensions = make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extensions[ext] = true
	}
}

// SetExcludeGlobs sets glob patterns to exclude
func (s *Scanner) SetExcludeGlobs(globs []string) {
	s.excludeGlobs = globs
}

// SetIncludeGlobs sets glob patterns to include (overrides excludes)
func (s *Scanner) SetIncludeGlobs(globs []string) {
	s.includeGlobs = globs
}

// AddExcludeDirs adds additional directories to exclude from scanning
// Can be directory names (e.g., "tests") or paths (e.g., "extra/tests")
func (s *Scanner) AddExcludeDirs(dirs []string) {
	for _, dir := range dirs {
		if strings.Contains(dir, "/") || strings.Contains(dir, "\\") {
			s.excludePaths = append(s.excludePaths, dir)
		} else {
			s.excludeDirs[dir] = true
		}
	}
}

// detectKind determines the template format from file extension
func detectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindYAML
	case ".tpl":
		return KindTpl
	case ".txt":
		return KindText
	default:
		return KindUnknown
	}
}

// matchesGlob checks if a path matches any of the glob patterns
func matchesGlob(path string, globs []string) bool {
	for _, glob := range globs {
		matched, _ := filepath.Match(glob, filepath.Base(path))
		if matched {
			return true
		}
		// Also try matching against full path
		matched, _ = filepath.Match(glob, path)
		if matched {
			return true
		}
	}
	return false
}

// shouldInclude checks if a file should be included based on include/exclude globs
func (s *Scanner) shouldInclude(path string) bool {
	if len(s.includeGlobs) > 0 {
		return matchesGlob(path, s.includeGlobs)
	}
	if len(s.excludeGlobs) > 0 {
		return !matchesGlob(path, s.excludeGlobs)
	}
	return true
}

// isInExcludedPath checks if a path is within an excluded folder path
func (s *Scanner) isInExcludedPath(path string) bool {
	if s.scanRoot == "" || len(s.excludePaths) == 0 {
		return false
	}

	relPath, err := filepath.Rel(s.scanRoot, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, excludePath := range s.excludePaths {
		excludePath = strings.TrimSuffix(filepath.ToSlash(excludePath), "/*")
		if relPath == excludePath || strings.HasPrefix(relPath, excludePath+"/") {
			return true
		}
	}

	return false
}

// Scan recursively walks a directory and returns the template files in it,
// sorted by path
func (s *Scanner) Scan(rootPath string) ([]FileInfo, error) {
	var files []FileInfo

	s.scanRoot = rootPath

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return s.skipUnreadable(rootPath, path, info, err)
		}

		if info.IsDir() {
			if path != rootPath && (s.excludeDirs[info.Name()] || s.isInExcludedPath(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		if !s.shouldInclude(path) {
			return nil
		}

		files = append(files, FileInfo{
			Path: path,
			Kind: detectKind(path),
		})

		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, err
}

// skipUnreadable keeps a walk going past paths below the root that cannot be
// read. Errors on the root itself are returned.
func (s *Scanner) skipUnreadable(rootPath, path string, info os.FileInfo, err error) error {
	if path == rootPath {
		return err
	}
	s.log.WithField("path", path).Warnf("skipping unreadable path: %v", err)
	if info != nil && info.IsDir() {
		return filepath.SkipDir
	}
	return nil
}

// CountByKind returns the number of files found per template kind
func CountByKind(files []FileInfo) map[Kind]int {
	counts := make(map[Kind]int)
	for _, f := range files {
		counts[f.Kind]++
	}
	return counts
}
