package data

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/warpglobe/core"
	"github.com/lixenwraith/warpglobe/geo"
	"github.com/lixenwraith/warpglobe/metrics"
	"github.com/lixenwraith/warpglobe/parameter"
)

// ErrEmptyPath is returned for requests without a file
var ErrEmptyPath = errors.New("empty path")

// Kind selects what a request produces
type Kind uint8

const (
	KindYear   Kind = iota // binned cells of one year file
	KindDomain             // color domain pooled over every path
	KindRegion             // region aggregate rows
)

func (k Kind) String() string {
	switch k {
	case KindYear:
		return "year"
	case KindDomain:
		return "domain"
	case KindRegion:
		return "region"
	}
	return "unknown"
}

// Tag identifies the narrative context that issued a request
type Tag struct {
	StepID     string
	Generation uint64
}

// Request is one asynchronous load
type Request struct {
	Tag   Tag
	Kind  Kind
	Paths []string
}

// Result is posted once per request; failures carry Err and an empty payload
type Result struct {
	Tag    Tag
	Kind   Kind
	Path   string
	Cells  []GridCell
	Domain Domain
	Rows   []RegionRow
	Err    error
}

// Loader parses data files off the frame goroutine and keeps parsed files for the session
// Failed reads are not cached, requesting the path again re-reads it
type Loader struct {
	fsys    fs.FS
	logger  *zap.Logger
	metrics *metrics.Metrics
	binSize float64

	mu      sync.Mutex
	samples map[string][]GeoSample
	regions map[string][]RegionRow

	results chan Result
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewLoader creates a loader reading from fsys
func NewLoader(fsys fs.FS, logger *zap.Logger, m *metrics.Metrics) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		fsys:    fsys,
		logger:  logger,
		metrics: m,
		binSize: parameter.BinSize,
		samples: make(map[string][]GeoSample),
		regions: make(map[string][]RegionRow),
		results: make(chan Result, parameter.ResultQueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Results delivers completions to the frame loop
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Request starts an asynchronous load, the result arrives on Results
func (l *Loader) Request(req Request) {
	if l.ctx.Err() != nil {
		return
	}
	l.wg.Add(1)
	core.Go(func() {
		defer l.wg.Done()
		res := l.Run(l.ctx, req)
		select {
		case l.results <- res:
		case <-l.ctx.Done():
		}
	})
}

// Close cancels pending requests and waits for workers to exit
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}

// Run executes a request synchronously
func (l *Loader) Run(ctx context.Context, req Request) Result {
	start := time.Now()
	res := Result{Tag: req.Tag, Kind: req.Kind}
	if len(req.Paths) > 0 {
		res.Path = req.Paths[0]
	}

	switch req.Kind {
	case KindYear:
		samples, err := l.loadSamples(ctx, res.Path)
		if err != nil {
			res.Err = err
			break
		}
		res.Cells = Bin(samples, l.binSize)

	case KindDomain:
		res.Domain, res.Err = l.pooledDomain(ctx, req.Paths)

	case KindRegion:
		res.Rows, res.Err = l.loadRegion(ctx, res.Path)

	default:
		res.Err = fmt.Errorf("unknown request kind %d", req.Kind)
	}

	outcome := "ok"
	if res.Err != nil {
		outcome = "error"
		l.logger.Warn("Data load failed, continuing with empty dataset",
			zap.String("kind", req.Kind.String()),
			zap.String("step", req.Tag.StepID),
			zap.Strings("paths", req.Paths),
			zap.Error(res.Err))
	}
	l.metrics.Fetches.WithLabelValues(req.Kind.String(), outcome).Inc()
	l.metrics.FetchDuration.WithLabelValues(req.Kind.String()).Observe(time.Since(start).Seconds())
	return res
}

// pooledDomain loads every path concurrently and computes one domain over all cells
// A failed path contributes nothing, the domain is still computed from the rest
func (l *Loader) pooledDomain(ctx context.Context, paths []string) (Domain, error) {
	sets := make([][]GridCell, len(paths))
	var mu sync.Mutex
	var failures []error

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			samples, err := l.loadSamples(gctx, p)
			if err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
				return nil
			}
			sets[i] = Bin(samples, l.binSize)
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) == len(paths) && len(paths) > 0 {
		return DefaultDomain, failures[0]
	}
	for _, err := range failures {
		l.logger.Warn("Domain input skipped", zap.Error(err))
	}
	return ComputeDomain(sets...), nil
}

func (l *Loader) read(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func (l *Loader) loadSamples(ctx context.Context, path string) ([]GeoSample, error) {
	l.mu.Lock()
	cached, ok := l.samples[path]
	l.mu.Unlock()
	if ok {
		l.metrics.PathCache.WithLabelValues("hit").Inc()
		return cached, nil
	}
	l.metrics.PathCache.WithLabelValues("miss").Inc()

	b, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}
	samples, err := ParseSamples(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	l.mu.Lock()
	l.samples[path] = samples
	l.mu.Unlock()
	return samples, nil
}

func (l *Loader) loadRegion(ctx context.Context, path string) ([]RegionRow, error) {
	l.mu.Lock()
	cached, ok := l.regions[path]
	l.mu.Unlock()
	if ok {
		l.metrics.PathCache.WithLabelValues("hit").Inc()
		return cached, nil
	}
	l.metrics.PathCache.WithLabelValues("miss").Inc()

	b, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}
	rows, err := ParseRegionRows(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	l.mu.Lock()
	l.regions[path] = rows
	l.mu.Unlock()
	return rows, nil
}

// LoadWorld decodes the country outlines synchronously
func (l *Loader) LoadWorld(path string) ([]geo.Feature, error) {
	b, err := l.read(context.Background(), path)
	if err != nil {
		return nil, err
	}
	features, err := geo.DecodeTopoJSON(bytes.NewReader(b), "countries")
	if err != nil {
		return nil, fmt.Errorf("world %s: %w", path, err)
	}
	return features, nil
}

// LoadRegion reads region rows synchronously through the path cache
func (l *Loader) LoadRegion(path string) ([]RegionRow, error) {
	return l.loadRegion(context.Background(), path)
}
