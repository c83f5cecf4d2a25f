package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
	"keylens.dev/pkg/keylens/internal/adapter"
	m "keylens.dev/pkg/keylens/internal/model"
	"keylens.dev/pkg/keylens/internal/watcher"
)

// UI is the rendering surface the workflow drives. Implementations live in
// the controller package.
type UI interface {
	DisplayUsages(ctx context.Context, usages []m.KeyUsage) error
	DisplayPreview(ctx context.Context, keyName string, node m.PreviewNode) error
	DisplayWatchEvent(ctx context.Context, changed []string)
	Browse(ctx context.Context, usages []m.KeyUsage) error
}

// ScanArgs control which files a scan visits and where its index lands.
type ScanArgs struct {
	Paths    []m.Path
	Exclude  []string // glob patterns matched against slash paths and basenames
	Parallel int
	UseCache bool
	IndexDir m.Path
}

// PreviewArgs name the key to preview on top of the scan that locates it.
type PreviewArgs struct {
	ScanArgs
	Key string
}

// WatchArgs add the debounce interval for watch mode.
type WatchArgs struct {
	ScanArgs
	Debounce time.Duration
}

// Workflow is the use-case layer behind every command.
type Workflow interface {
	List(ctx context.Context, args ScanArgs) error
	Preview(ctx context.Context, args PreviewArgs) error
	View(ctx context.Context, args ScanArgs) error
	Watch(ctx context.Context, args WatchArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.DartFileAdapter
	adapter.KeyIndexStore
	adapter.PreviewDataSource
	UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	dartAdapter adapter.DartFileAdapter,
	indexStore adapter.KeyIndexStore,
	previews adapter.PreviewDataSource,
	ui UI,
) Workflow {
	return &workflow{
		SourceFSAdapter:   fsAdapter,
		DartFileAdapter:   dartAdapter,
		KeyIndexStore:     indexStore,
		PreviewDataSource: previews,
		UI:                ui,
	}
}

// List scans (or loads the cached index) and prints the usage listing.
func (w *workflow) List(ctx context.Context, args ScanArgs) error {
	records, err := w.scan(ctx, args)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	usages := w.usages(records)

	if err := w.DisplayUsages(ctx, usages); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// View scans and opens the interactive browser.
func (w *workflow) View(ctx context.Context, args ScanArgs) error {
	records, err := w.scan(ctx, args)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	usages := w.usages(records)

	if err := w.Browse(ctx, usages); err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	return nil
}

// Preview locates the named key in the index and renders its preview tree.
func (w *workflow) Preview(ctx context.Context, args PreviewArgs) error {
	records, err := w.scan(ctx, args.ScanArgs)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	found := false

	for _, record := range records {
		if record.Name == args.Key {
			found = true
			break
		}
	}

	if !found {
		return fmt.Errorf("key %q not found in scanned sources", args.Key)
	}

	node, err := w.PreviewFor(args.Key)
	if err != nil {
		return fmt.Errorf("preview %q: %w", args.Key, err)
	}

	if err := w.DisplayPreview(ctx, args.Key, node); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// Watch lists once, then re-scans and re-lists whenever Dart sources under
// the watched paths change. It blocks until ctx is cancelled.
func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	// Watch always rescans from disk; a cached index would hide edits.
	scanArgs := args.ScanArgs
	scanArgs.UseCache = false

	if err := w.List(ctx, scanArgs); err != nil {
		return err
	}

	onChange := func(changed []string) {
		w.DisplayWatchEvent(ctx, changed)

		if err := w.List(ctx, scanArgs); err != nil {
			slog.Error("re-scan after change failed", "error", err)
		}
	}

	fsWatcher, err := watcher.NewWatcher(args.Debounce, nil, args.Exclude, onChange)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() {
		_ = fsWatcher.Close()
	}()

	paths := make([]string, 0, len(scanArgs.Paths))
	for _, path := range resolvePaths(scanArgs.Paths) {
		paths = append(paths, string(path))
	}

	if err := fsWatcher.Watch(paths); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	<-ctx.Done()

	return ctx.Err()
}

// scan loads the cached index when allowed, otherwise walks the paths,
// extracts keys concurrently, and persists a fresh index.
func (w *workflow) scan(ctx context.Context, args ScanArgs) ([]m.KeyRecord, error) {
	if args.UseCache && args.IndexDir != "" {
		index, err := w.LoadIndex(args.IndexDir)
		if err == nil {
			slog.Debug("using cached index", "dir", args.IndexDir, "records", len(index.Records))
			return index.Records, nil
		}

		slog.Debug("cached index unavailable, rescanning", "error", err)
	}

	paths := resolvePaths(args.Paths)

	excludes, err := compileExcludes(args.Exclude)
	if err != nil {
		return nil, err
	}

	files, err := w.collectDartFiles(paths, excludes)
	if err != nil {
		return nil, err
	}

	records, err := w.extractAll(ctx, files, args.Parallel)
	if err != nil {
		return nil, err
	}

	sortRecords(records)

	if args.IndexDir != "" {
		index := m.Index{
			Version:     m.IndexVersion,
			GeneratedAt: time.Now().UTC(),
			Records:     records,
		}

		if root, rootErr := w.FindProjectRoot(paths[0]); rootErr == nil {
			index.ProjectRoot = root
		}

		if err := w.SaveIndex(args.IndexDir, index); err != nil {
			return nil, fmt.Errorf("save index: %w", err)
		}
	}

	slog.Info("scan complete", "files", len(files), "keys", len(records))

	return records, nil
}

func resolvePaths(paths []m.Path) []m.Path {
	if len(paths) == 0 {
		return []m.Path{"."}
	}

	return paths
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}

		globs = append(globs, g)
	}

	return globs, nil
}

func excluded(path string, globs []glob.Glob) bool {
	slash := filepath.ToSlash(path)
	base := filepath.Base(path)

	for _, g := range globs {
		if g.Match(slash) || g.Match(base) {
			return true
		}
	}

	return false
}

// skippedDirs are never descended into during a scan.
var skippedDirs = map[string]bool{
	".git":       true,
	".dart_tool": true,
	"build":      true,
	".idea":      true,
}

func (w *workflow) collectDartFiles(paths []m.Path, excludes []glob.Glob) ([]m.Path, error) {
	var files []m.Path

	seen := make(map[m.Path]struct{})

	add := func(path m.Path) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := w.FileInfo(root)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", root, err)
		}

		if !info.IsDir() {
			if w.IsDartSource(root) && !excluded(string(root), excludes) {
				add(root)
			}

			continue
		}

		err = w.Walk(root, true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if skippedDirs[info.Name()] {
					return filepath.SkipDir
				}

				return nil
			}

			candidate := m.Path(path)
			if w.IsDartSource(candidate) && !excluded(path, excludes) {
				add(candidate)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return files, nil
}

// extractAll reads and extracts keys from files concurrently, bounded by
// parallel workers. Results are collected under a mutex and ordered later.
func (w *workflow) extractAll(ctx context.Context, files []m.Path, parallel int) ([]m.KeyRecord, error) {
	var (
		records []m.KeyRecord
		mu      sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)

	if parallel < 1 {
		parallel = 1
	}

	group.SetLimit(parallel)

	for _, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			src, err := w.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}

			extracted := w.ExtractKeys(file, src)
			if len(extracted) == 0 {
				return nil
			}

			mu.Lock()
			records = append(records, extracted...)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

func sortRecords(records []m.KeyRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].FilePath != records[j].FilePath {
			return records[i].FilePath < records[j].FilePath
		}

		if records[i].Line != records[j].Line {
			return records[i].Line < records[j].Line
		}

		return records[i].Name < records[j].Name
	})
}

// usages projects records into view entities, marking files that have a
// companion test. Test detection failures downgrade to "untested".
func (w *workflow) usages(records []m.KeyRecord) []m.KeyUsage {
	tested := make(map[m.Path]bool)

	for _, record := range records {
		if _, ok := tested[record.FilePath]; ok {
			continue
		}

		testFile, err := w.DetectTestFile(m.Path(filepath.FromSlash(string(record.FilePath))))
		tested[record.FilePath] = err == nil && testFile != ""
	}

	return BuildUsages(records, tested)
}
