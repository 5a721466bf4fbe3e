package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/FabioUrbina/rdkit/pkg/cache"
	"github.com/FabioUrbina/rdkit/pkg/errors"
	molio "github.com/FabioUrbina/rdkit/pkg/io"
	"github.com/FabioUrbina/rdkit/pkg/observability"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the two share cache entries.
//
// The Runner keeps no per-request state, so multiple goroutines can
// use the same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Measurer text.Measurer
	// TTL overrides the lifetime of cache entries when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Text is measured with the bundled Go Regular font.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Measurer: text.NewFaceMeasurer(nil),
	}
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// DocumentHash returns the content hash used in cache keys.
func DocumentHash(doc *molio.Document) (string, error) {
	var buf bytes.Buffer
	if err := molio.WriteJSON(doc, &buf); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "hash document")
	}
	return cache.Hash(buf.Bytes()), nil
}

// Execute draws doc in every requested format. Formats found in the cache
// are not drawn again; the rest are drawn once and stored.
func (r *Runner) Execute(ctx context.Context, doc *molio.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no document")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, err
	}
	result := &Result{
		DocHash:   docHash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Stats:     Stats{Molecules: doc.Len(), Atoms: atomCount(doc)},
	}

	hooks := observability.Cache()
	keys := make(map[string]string, len(opts.Formats))
	var missing []string
	for _, f := range opts.Formats {
		keys[f] = r.Keyer.RenderKey(docHash, opts.RenderKeyOpts(f))
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, keys[f])
			if err != nil {
				r.Logger.Warn("cache read failed", "format", f, "error", err)
			}
			if err == nil && hit {
				hooks.OnCacheHit(ctx, "render")
				result.Artifacts[f] = data
				continue
			}
			hooks.OnCacheMiss(ctx, "render")
		}
		missing = append(missing, f)
	}
	if len(missing) == 0 {
		result.CacheHit = true
		r.Logger.Debug("served from cache", "doc", docHash[:12], "formats", opts.Formats)
		return result, nil
	}

	drawOpts := opts
	drawOpts.Formats = missing
	start := time.Now()
	artifacts, meta, err := Render(ctx, doc, drawOpts, r.Measurer)
	if err != nil {
		return nil, err
	}
	result.Metadata = meta
	result.Stats.RenderTime = time.Since(start)

	for f, data := range artifacts {
		result.Artifacts[f] = data
		if err := r.Cache.Set(ctx, keys[f], data, r.ttl(cache.TTLRender)); err != nil {
			r.Logger.Warn("cache write failed", "format", f, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, "render", len(data))
	}

	r.Logger.Info("rendered "+opts.Mode,
		"molecules", result.Stats.Molecules,
		"atoms", result.Stats.Atoms,
		"formats", missing,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Graph exports a node-link drawing of one molecule, with caching.
func (r *Runner) Graph(ctx context.Context, doc *molio.Document, opts GraphOptions, refresh bool) ([]byte, bool, error) {
	if doc == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "no document")
	}
	if err := opts.setDefaults(); err != nil {
		return nil, false, err
	}
	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.GraphKey(docHash, opts.keyOpts())
	hooks := observability.Cache()
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, "graph")
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, "graph")
	}

	start := time.Now()
	data, err := RenderGraph(ctx, doc, opts)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLGraph)); err == nil {
		hooks.OnCacheSet(ctx, "graph", len(data))
	}
	r.Logger.Info("exported graph", "format", opts.Format, "index", opts.Index, "duration", time.Since(start))
	return data, false, nil
}

// Job is one document of a batch.
type Job struct {
	Doc  *molio.Document
	Opts Options
}

// RenderBatch executes jobs with at most concurrency running at once.
// Results are in job order. The first error cancels the jobs not yet
// finished and is returned.
func (r *Runner) RenderBatch(ctx context.Context, jobs []Job, concurrency int) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.Execute(ctx, job.Doc, job.Opts)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				return errors.Wrap(code, err, "job %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
