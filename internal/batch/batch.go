// Package batch resamples every curve file in a directory to a fixed number
// of points.
package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"honnef.co/go/curve3"
	"honnef.co/go/curve3/internal/preview"
	"honnef.co/go/curve3/markup"
)

// ErrUnexpectedCount is wrapped by the error recorded for a curve whose
// resampling didn't produce an acceptable number of points.
var ErrUnexpectedCount = errors.New("resampling did not return the expected number of points")

// ErrDuplicateOutput is wrapped by the error recorded for curves that would be
// written to the same output file. None of them is written.
var ErrDuplicateOutput = errors.New("output file clashes with another curve")

// Result describes the outcome for a single curve.
type Result struct {
	// Input is the file the curve was read from.
	Input string
	Curve string
	// Output is the written file, if any.
	Output string
	// Got is the number of points resampling produced, before trimming to the
	// requested count.
	Got int
	Err error
}

type Report struct {
	Results []Result
}

// Failed returns the results that have an error.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Succeeded returns the number of curves written.
func (r *Report) Succeeded() int {
	return len(r.Results) - len(r.Failed())
}

// ClosePoints returns points with the first point repeated at the end, unless
// it already is, so that the closing segment of a closed curve exists.
func ClosePoints(points []curve3.Point) []curve3.Point {
	if len(points) < 2 || points[0] == points[len(points)-1] {
		return points
	}
	return append(slices.Clip(points), points[0])
}

// ResampleCurve resamples a curve's control points to exactly n points.
// Closed curves get their closing segment materialized first. The number of
// points produced by resampling is checked against [curve3.ExpectedCounts];
// on success the result is trimmed to n points, otherwise an error wrapping
// [ErrUnexpectedCount] is returned. The number of points produced before
// trimming is returned in either case.
func ResampleCurve(points []curve3.Point, n int, topology curve3.Topology) ([]curve3.Point, int, error) {
	if topology == curve3.Closed {
		points = ClosePoints(points)
	}
	out, err := curve3.ResampleCount(nil, points, n, topology)
	if err != nil {
		return nil, 0, err
	}
	if want := curve3.ExpectedCounts(n, topology); !slices.Contains(want, len(out)) {
		return nil, len(out), errors.Wrapf(ErrUnexpectedCount, "got %d, want %s", len(out), countsString(want))
	}
	return out[:n], len(out), nil
}

// OutputName returns the file name a resampled curve is written to.
func OutputName(curve string, n int) string {
	return fmt.Sprintf("%s_resample_%d.fcsv", curve, n)
}

// Run processes every file in cfg.InputDir whose extension matches
// cfg.Extension, using up to cfg.Workers goroutines. Problems with individual
// files or curves are logged and recorded in the report, and processing
// carries on with the next curve. Curves whose output files would clash are
// reported with [ErrDuplicateOutput] and skipped. Run only fails if the job
// can't be set up or ctx is cancelled.
func Run(ctx context.Context, cfg Config, logger *log.Logger) (*Report, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	files, err := listFiles(cfg.InputDir, cfg.Extension)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, errors.WithStack(err)
	}
	if cfg.PreviewDir != "" {
		if err := os.MkdirAll(cfg.PreviewDir, 0o755); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	loaded := make([][]*markup.Markup, len(files))
	loadErrs := make([]error, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			loaded[i], loadErrs[i] = markup.Load(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	// curves[i] is the curve results[i] is about, or nil if its file couldn't
	// be loaded.
	var results []Result
	var curves []*markup.Markup
	for i, path := range files {
		if err := loadErrs[i]; err != nil {
			logger.Printf("error: %s", err)
			results = append(results, Result{Input: path, Curve: markup.Base(path), Err: err})
			curves = append(curves, nil)
			continue
		}
		for _, m := range loaded[i] {
			results = append(results, Result{Input: path, Curve: m.Name})
			curves = append(curves, m)
		}
	}
	for _, i := range markDuplicates(results, curves, cfg.Count) {
		logger.Printf("error: %s: %s", results[i].Curve, results[i].Err)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, m := range curves {
		if m == nil || results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := processCurve(cfg, results[i].Input, m)
			if res.Err != nil {
				logger.Printf("error: %s: %s", res.Curve, res.Err)
			} else {
				logger.Printf("resampled %s: %d points -> %s", res.Curve, cfg.Count, res.Output)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	report := &Report{Results: results}
	logger.Printf("processing completed: %d of %d curves resampled", report.Succeeded(), len(report.Results))
	return report, nil
}

func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// markDuplicates records an error wrapping ErrDuplicateOutput for every curve
// whose output file name, compared case-insensitively, is shared with another
// curve. It returns the indices of the affected results in order.
func markDuplicates(results []Result, curves []*markup.Markup, n int) []int {
	owners := make(map[string][]int)
	for i, m := range curves {
		if m == nil {
			continue
		}
		key := strings.ToLower(OutputName(m.Name, n))
		owners[key] = append(owners[key], i)
	}
	var marked []int
	for i, m := range curves {
		if m == nil {
			continue
		}
		others := owners[strings.ToLower(OutputName(m.Name, n))]
		if len(others) < 2 {
			continue
		}
		results[i].Err = errors.Wrapf(ErrDuplicateOutput, "%s is shared by %d curves", OutputName(m.Name, n), len(others))
		marked = append(marked, i)
	}
	return marked
}

func processCurve(cfg Config, path string, m *markup.Markup) Result {
	res := Result{Input: path, Curve: m.Name}
	out, got, err := ResampleCurve(m.Points, cfg.Count, cfg.Topology)
	res.Got = got
	if err != nil {
		res.Err = err
		return res
	}

	resampled := &markup.Markup{
		Name:             m.Name,
		CoordinateSystem: m.CoordinateSystem,
		Points:           out,
	}
	output := filepath.Join(cfg.OutputDir, OutputName(m.Name, cfg.Count))
	if err := markup.Save(output, resampled); err != nil {
		res.Err = err
		return res
	}
	res.Output = output

	if cfg.PreviewDir != "" {
		png := filepath.Join(cfg.PreviewDir, strings.TrimSuffix(OutputName(m.Name, cfg.Count), ".fcsv")+".png")
		if err := preview.Render(png, m.Points, out, preview.Options{}); err != nil {
			res.Err = errors.Wrap(err, "rendering preview")
		}
	}
	return res
}

func countsString(counts []int) string {
	s := make([]string, len(counts))
	for i, c := range counts {
		s[i] = fmt.Sprint(c)
	}
	return strings.Join(s, " or ")
}
