// Package orchestrator drives the full analysis pipeline (C8): fetch,
// filter, per-language analyze, aggregate, hierarchy, emit — and owns the
// workspace's lifecycle across every exit path.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	enry "github.com/go-enry/go-enry/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dsmgraph/dsm-analyzer/internal/aggregate"
	"github.com/dsmgraph/dsm-analyzer/internal/analyzer"
	_ "github.com/dsmgraph/dsm-analyzer/internal/analyzer/cpp"
	_ "github.com/dsmgraph/dsm-analyzer/internal/analyzer/csharp"
	"github.com/dsmgraph/dsm-analyzer/internal/analyzer/golang"
	_ "github.com/dsmgraph/dsm-analyzer/internal/analyzer/java"
	_ "github.com/dsmgraph/dsm-analyzer/internal/analyzer/javascript"
	_ "github.com/dsmgraph/dsm-analyzer/internal/analyzer/python"
	"github.com/dsmgraph/dsm-analyzer/internal/codestats"
	"github.com/dsmgraph/dsm-analyzer/internal/config"
	"github.com/dsmgraph/dsm-analyzer/internal/dsm"
	"github.com/dsmgraph/dsm-analyzer/internal/fetch"
	"github.com/dsmgraph/dsm-analyzer/internal/filter"
	"github.com/dsmgraph/dsm-analyzer/internal/hierarchy"
	"github.com/dsmgraph/dsm-analyzer/internal/license"
	"github.com/dsmgraph/dsm-analyzer/internal/metadata"
	"github.com/dsmgraph/dsm-analyzer/internal/progress"
	"github.com/dsmgraph/dsm-analyzer/internal/provider"
	"github.com/dsmgraph/dsm-analyzer/internal/spec"
)

// Orchestrator sequences the pipeline for one repository URL.
type Orchestrator struct {
	opts   *config.Options
	logger *slog.Logger
}

// New creates an Orchestrator configured with opts, logging through logger.
func New(opts *config.Options, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{opts: opts, logger: logger}
}

// Run fetches url, analyzes it, and streams progress/result frames on ch.
// Run always cleans up the workspace before returning, on every exit path
// including ctx cancellation. It never returns an error directly — failures
// are reported as a terminal error Frame on ch, matching the channel's
// at-least-once terminal-frame guarantee. The returned AuxMetadata rides
// alongside the payload delivered on ch; it is nil whenever Run did not
// reach completion.
func (o *Orchestrator) Run(ctx context.Context, url string, ch *progress.Channel) *dsm.AuxMetadata {
	started := time.Now()
	runMeta := metadata.NewRunMetadata(url, spec.Version)

	ch.Progress("fetching repository")
	result, err := fetch.Fetch(ctx, url, fetch.Options{
		Depth:          o.opts.CloneDepth,
		MaxRepoSizeMiB: o.opts.MaxRepoSizeMiB,
		OnProgress:     func(msg string) { ch.Progress(msg) },
	})
	if err != nil {
		o.logger.Error("fetch failed", "url", url, "error", err)
		ch.Error(err.Error())
		return nil
	}
	defer fetch.Cleanup(result)

	if ctx.Err() != nil {
		ch.Error(ctx.Err().Error())
		return nil
	}

	ch.Progress(fmt.Sprintf("listed %d tracked files", len(result.Files)))
	partitions := filter.Partition(result.Files, filter.Options{IncludeTests: o.opts.IncludeTests})

	fsProvider := provider.NewFSProvider(result.Root)
	workspaceCfg := golang.LoadWorkspaceConfig(fsProvider)
	analyzerOpts := analyzer.Options{
		IncludeTests:           o.opts.IncludeTests,
		IncludeTypeOnlyImports: o.opts.IncludeTypeOnlyImports,
		LargeRepoThreshold:     o.opts.LargeRepoThreshold,
		ExtraIncludeRoots:      workspaceCfg.ExtraIncludeRoots,
	}

	results, err := o.analyzeAll(ctx, fsProvider, partitions, analyzerOpts, ch)
	if err != nil {
		o.logger.Error("analysis failed", "url", url, "error", err)
		ch.Error(err.Error())
		return nil
	}

	ch.Progress("aggregating results")
	agg := aggregate.New(fsProvider)
	files := agg.Aggregate(results)

	ch.Progress("building hierarchy")
	var allFiles []string
	for _, files := range partitions {
		allFiles = append(allFiles, files...)
	}
	sort.Strings(allFiles)
	displayItems, fileList := hierarchy.Build(dedupe(allFiles))

	payload := dsm.NewDSMPayload(result.Branch)
	payload.Files = files
	payload.DisplayItems = displayItems
	payload.FileList = fileList

	aux := &dsm.AuxMetadata{}
	detector := license.NewLicenseDetector()
	detector.AddLicensesToAux(aux, result.Root)
	aux.Cycles = detectCycles(files)
	aux.CodeStats = o.collectCodeStats(fsProvider, fileList)

	runMeta.SetBranch(result.Branch)
	runMeta.SetFileCounts(len(fileList), len(partitions))
	runMeta.SetDuration(time.Since(started))
	aux.Run = runMeta

	if ctx.Err() != nil {
		ch.Error(ctx.Err().Error())
		return nil
	}

	ch.Progress("complete")
	ch.Complete(payload)
	return aux
}

// analyzeAll runs each language's two-pass protocol concurrently, honoring
// the index-before-resolve barrier within a language and the large-repo
// fast path across the whole partition.
func (o *Orchestrator) analyzeAll(ctx context.Context, prov *provider.FSProvider, partitions map[string][]string, opts analyzer.Options, ch *progress.Channel) ([]aggregate.LanguageResult, error) {
	g, gctx := errgroup.WithContext(ctx)
	results := make([]aggregate.LanguageResult, len(analyzer.Languages()))
	langs := analyzer.Languages()

	for i, lang := range langs {
		i, lang := i, lang
		files := partitions[lang]
		if len(files) == 0 {
			continue
		}
		g.Go(func() error {
			a, ok := analyzer.Lookup(lang)
			if !ok {
				return nil
			}
			ch.Progress(fmt.Sprintf("indexing %s (%d files)", lang, len(files)))
			index, err := a.Index(gctx, prov, files, opts)
			if err != nil {
				o.logger.Warn("index pass failed", "language", lang, "error", err)
				return nil
			}

			edges, err := o.resolveAll(gctx, prov, a, files, index, opts)
			if err != nil {
				return err
			}
			edges = analyzer.ApplyLargeRepoFastPath(edges, len(files), opts)

			ch.Progress(fmt.Sprintf("resolved %s (%d files)", lang, len(files)))
			results[i] = aggregate.LanguageResult{Language: lang, Files: files, Edges: edges}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]aggregate.LanguageResult, 0, len(results))
	for _, r := range results {
		if r.Language != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// resolveAll runs the resolution pass for every file in a language
// partition using a small bounded worker pool (CPU-bound parsing).
func (o *Orchestrator) resolveAll(ctx context.Context, prov *provider.FSProvider, a analyzer.Analyzer, files []string, index analyzer.Index, opts analyzer.Options) ([]analyzer.Edge, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerPoolSize())

	edgesPerFile := make([][]analyzer.Edge, len(files))
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			edges, err := a.Resolve(gctx, prov, f, index, opts)
			if err != nil {
				o.logger.Warn("resolve failed", "file", f, "error", err)
				return nil
			}
			edgesPerFile[i] = edges
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []analyzer.Edge
	for _, edges := range edgesPerFile {
		all = append(all, edges...)
	}
	return all, nil
}

// collectCodeStats runs a repository-wide SCC-based line/comment/blank and
// complexity breakdown, a supplementary summary independent of the
// per-file cyclomatic scores C4 computes for the matrix itself.
func (o *Orchestrator) collectCodeStats(prov *provider.FSProvider, files []string) interface{} {
	analyzer := codestats.NewAnalyzer(true)
	for _, f := range files {
		content, err := prov.ReadFile(f)
		if err != nil {
			continue
		}
		analyzer.ProcessFile(f, enry.GetLanguage(f, content), content)
	}
	return analyzer.GetStats()
}

func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
