package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"geiger/internal/core/errors"
	"geiger/internal/engine/parser"
	"geiger/internal/engine/syntax"
	"geiger/internal/engine/visitor"
	"geiger/internal/shared/observability"

	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var defaultEntryPoints = []string{"src/lib.rs", "src/main.rs"}

// PackageSource locates one package on disk.
type PackageSource struct {
	ID    string
	Root  string
	Entry string // relative to Root; empty selects src/lib.rs or src/main.rs
}

// PackageScan is the result of scanning one package. Paths are slash
// separated and relative to the package root.
type PackageScan struct {
	Metrics PackageMetrics
	Entry   string
	modules map[string][]ModDecl
}

type Options struct {
	IncludeTests visitor.IncludeTests
	Workers      int
	ExcludeDirs  []string
	ExcludeFiles []string
}

type Scanner struct {
	parser       *parser.Parser
	includeTests visitor.IncludeTests
	workers      int
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

func NewScanner(p *parser.Parser, opts Options) (*Scanner, error) {
	s := &Scanner{
		parser:       p,
		includeTests: opts.IncludeTests,
		workers:      opts.Workers,
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}

	for _, pattern := range opts.ExcludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid exclude dir pattern %q", pattern))
		}
		s.excludeDirs = append(s.excludeDirs, g)
	}
	for _, pattern := range opts.ExcludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid exclude file pattern %q", pattern))
		}
		s.excludeFiles = append(s.excludeFiles, g)
	}
	return s, nil
}

// ScanPackage parses and visits every Rust file under src.Root. Files that
// cannot be read or parsed are logged and left out of the result.
func (s *Scanner) ScanPackage(ctx context.Context, src PackageSource) (*PackageScan, error) {
	ctx, span := observability.Tracer().Start(ctx, "geiger.scan_package")
	defer span.End()
	span.SetAttributes(attribute.String("package.id", src.ID))

	start := time.Now()
	defer func() {
		observability.PackageScanDuration.Observe(time.Since(start).Seconds())
	}()

	info, err := os.Stat(src.Root)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "package root not accessible"), errors.CtxPackage, src.ID)
	}
	if !info.IsDir() {
		return nil, errors.AddContext(errors.New(errors.CodeValidationError, "package root is not a directory"), errors.CtxPackage, src.ID)
	}

	files, err := s.collectFiles(src.Root)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "walk package root"), errors.CtxPackage, src.ID)
	}
	entry := resolveEntry(src, files)

	result := &PackageScan{
		Metrics: make(PackageMetrics, len(files)),
		Entry:   entry,
		modules: make(map[string][]ModDecl, len(files)),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file, ok := s.parseFile(src.Root, rel)
			if !ok {
				return nil
			}
			metrics := visitor.ScanFile(file, s.includeTests)
			mods := collectModDecls(file.Items, nil, s.includeTests)

			mu.Lock()
			result.Metrics[rel] = FileEntry{Metrics: metrics, IsEntryPoint: rel == entry}
			result.modules[rel] = mods
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("scanned package", "package", src.ID, "files", len(files), "parsed", len(result.Metrics))
	return result, nil
}

func (s *Scanner) parseFile(root, rel string) (*syntax.File, bool) {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		observability.FilesScannedTotal.WithLabelValues(observability.ResultReadError).Inc()
		slog.Warn("failed to read source file", "path", rel, "error", err)
		return nil, false
	}
	file, err := s.parser.ParseFile(rel, content)
	if err != nil {
		observability.FilesScannedTotal.WithLabelValues(observability.ResultParseError).Inc()
		slog.Warn("failed to parse source file", "path", rel, "error", err)
		return nil, false
	}
	observability.FilesScannedTotal.WithLabelValues(observability.ResultOK).Inc()
	return file, true
}

func (s *Scanner) collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		base := filepath.Base(path)
		if d.IsDir() {
			if path != root && matchAny(s.excludeDirs, base) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.parser.IsSupportedPath(path) || matchAny(s.excludeFiles, base) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func resolveEntry(src PackageSource, files []string) string {
	if src.Entry != "" {
		return filepath.ToSlash(filepath.Clean(src.Entry))
	}
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}
	for _, candidate := range defaultEntryPoints {
		if present[candidate] {
			return candidate
		}
	}
	return ""
}
