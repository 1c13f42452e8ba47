package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"pyparse/internal/diag"
	"pyparse/internal/directive"
	"pyparse/internal/source"
	"pyparse/internal/trace"
)

// ListSources returns root itself when it is a file, otherwise every *.py
// file below it, sorted.
func ListSources(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// forEachFile runs fn for every path with at most jobs goroutines.
// Индексы уникальны для каждой горутины, мьютекс для результатов не нужен.
func forEachFile(ctx context.Context, files []string, jobs int, fn func(ctx context.Context, i int, path string) error) error {
	if len(files) == 0 {
		return nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i, path)
		})
	}
	return g.Wait()
}

// loadFailure is the result for a file that could not be read.
func loadFailure(path string, maxDiagnostics int, err error) *ParseResult {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
	return &ParseResult{Path: path, Bag: bag}
}

// ParseDir parses every source under root in parallel. Each file gets its
// own FileSet, builder and diagnostic bag; results are ordered by path.
// Per-file failures are reported in the results, the error covers listing
// and cancellation only.
func ParseDir(ctx context.Context, root string, opts Options) ([]*ParseResult, error) {
	files, err := ListSources(root)
	if err != nil {
		return nil, err
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "parse_dir", trace.ParentSpan(ctx)).WithExtra("root", root)
	defer span.End("")
	ctx = trace.WithParent(ctx, span)

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	results := make([]*ParseResult, len(files))
	err = forEachFile(ctx, files, opts.Jobs, func(ctx context.Context, i int, path string) error {
		results[i] = parseOne(ctx, path, opts)
		return nil
	})
	return results, err
}

func parseOne(ctx context.Context, path string, opts Options) *ParseResult {
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	started := time.Now()
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return loadFailure(path, opts.MaxDiagnostics, err)
	}
	return ParseSource(ctx, fileSet, fileID, opts)
}

// DirectivesResult aggregates the directives of a source tree.
type DirectivesResult struct {
	Reports   []DirectiveReport // files that attached, by path
	Failures  []*ParseResult    // files that did not parse or attach
	Registry  *directive.Registry
	CacheHits int
}

// CollectDirectives attaches directives in every source under root and fills
// a registry. With Options.Cache set, reports of unchanged files are read
// from the disk cache instead of parsing them again.
func CollectDirectives(ctx context.Context, root string, opts Options) (*DirectivesResult, error) {
	files, err := ListSources(root)
	if err != nil {
		return nil, err
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "collect_directives", trace.ParentSpan(ctx)).WithExtra("root", root)
	defer span.End("")
	ctx = trace.WithParent(ctx, span)

	type outcome struct {
		report  *DirectiveReport
		failure *ParseResult
		cached  bool
	}
	outcomes := make([]outcome, len(files))
	err = forEachFile(ctx, files, opts.Jobs, func(ctx context.Context, i int, path string) error {
		fileSet := source.NewFileSet()
		fileID, err := fileSet.Load(path)
		if err != nil {
			outcomes[i].failure = loadFailure(path, opts.MaxDiagnostics, err)
			return nil
		}
		file := fileSet.Get(fileID)
		key := reportKey(file, opts.Filter)

		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err == nil && hit && payload.Prefix == opts.Filter.Prefix() {
			payload.Report.Path = file.Path
			outcomes[i] = outcome{report: &payload.Report, cached: true}
			emit(opts.Progress, Event{File: file.Path, Stage: StageAttach, Status: StatusDone})
			return nil
		}

		res := ParseSource(ctx, fileSet, fileID, opts)
		if res.Failed() {
			outcomes[i].failure = res
			return nil
		}
		report := newDirectiveReport(file.Path, res.Placements)
		outcomes[i].report = &report
		// ошибки записи кэша игнорируются
		_ = opts.Cache.Put(key, &DiskPayload{Prefix: opts.Filter.Prefix(), Report: report})
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &DirectivesResult{Registry: directive.NewRegistry()}
	for _, o := range outcomes {
		switch {
		case o.failure != nil:
			out.Failures = append(out.Failures, o.failure)
		case o.report != nil:
			out.Reports = append(out.Reports, *o.report)
			for _, occ := range o.report.Occurrences() {
				out.Registry.Add(occ)
			}
			if o.cached {
				out.CacheHits++
			}
		}
	}
	span.WithExtra("files", strconv.Itoa(len(files))).WithExtra("cache_hits", strconv.Itoa(out.CacheHits))
	return out, nil
}
