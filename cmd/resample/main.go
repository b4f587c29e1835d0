// Command resample resamples landmark curves so that their points are evenly
// spaced by arc length.
//
// Resample every .fcsv file in a directory to 50 points each:
//
//	resample run --in curves --out resampled -n 50
//
// Resample a single closed curve and print the result as FCSV:
//
//	resample file --topology closed -n 20 outline.fcsv
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/logrusorgru/aurora"
	"gopkg.in/alecthomas/kingpin.v2"

	"honnef.co/go/curve3"
	"honnef.co/go/curve3/internal/batch"
	"honnef.co/go/curve3/internal/preview"
	"honnef.co/go/curve3/markup"
)

type cli struct {
	app    *kingpin.Application
	stdout io.Writer
	stderr io.Writer

	noColor *bool

	run struct {
		cmd      *kingpin.CmdClause
		config   *string
		in       *string
		out      *string
		count    *int
		topology *string
		ext      *string
		workers  *int
		preview  *string
	}

	file struct {
		cmd      *kingpin.CmdClause
		path     *string
		count    *int
		topology *string
		out      *string
		preview  *string
		show     *bool
	}
}

func newCLI(stdout, stderr io.Writer) *cli {
	c := &cli{stdout: stdout, stderr: stderr}
	app := kingpin.New("resample", "Resample landmark curves at uniform arc-length intervals.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	c.app = app
	c.noColor = app.Flag("no-color", "Disable coloured output.").Bool()

	r := app.Command("run", "Resample every curve file in a directory.")
	c.run.cmd = r
	c.run.config = r.Flag("config", "YAML job file; explicit flags override it.").ExistingFile()
	c.run.in = r.Flag("in", "Directory containing the curves to resample.").String()
	c.run.out = r.Flag("out", "Directory to write resampled curves to.").String()
	c.run.count = r.Flag("count", "Number of points per resampled curve.").Short('n').Int()
	c.run.topology = r.Flag("topology", "Curve topology, open or closed.").Enum("open", "closed")
	c.run.ext = r.Flag("ext", "Extension of the curve files to read.").String()
	c.run.workers = r.Flag("workers", "Number of curves to process in parallel.").Int()
	c.run.preview = r.Flag("preview", "Directory to write PNG previews to.").String()

	f := app.Command("file", "Resample the curves in a single file.")
	c.file.cmd = f
	c.file.path = f.Arg("path", "Curve file (.fcsv, .pts or .geojson).").Required().ExistingFile()
	c.file.count = f.Flag("count", "Number of points per resampled curve.").Short('n').Default("50").Int()
	c.file.topology = f.Flag("topology", "Curve topology, open or closed.").Default("open").Enum("open", "closed")
	c.file.out = f.Flag("out", "Directory to write resampled curves to, instead of printing them.").String()
	c.file.preview = f.Flag("preview", "Directory to write PNG previews to.").String()
	c.file.show = f.Flag("show", "Display previews inline in the terminal.").Bool()
	return c
}

// main runs the command line and returns the exit status.
func (c *cli) main(ctx context.Context, args []string) int {
	cmd, err := c.app.Parse(args)
	if err != nil {
		fmt.Fprintf(c.stderr, "resample: %s\n", err)
		return 2
	}
	au := aurora.NewAurora(!*c.noColor)

	switch cmd {
	case c.run.cmd.FullCommand():
		return c.runBatch(ctx, au)
	case c.file.cmd.FullCommand():
		return c.runFile(au)
	}
	return 2
}

func (c *cli) batchConfig() (batch.Config, error) {
	cfg := batch.DefaultConfig()
	if *c.run.config != "" {
		if err := batch.LoadConfig(*c.run.config, &cfg); err != nil {
			return cfg, err
		}
	}
	if *c.run.in != "" {
		cfg.InputDir = *c.run.in
	}
	if *c.run.out != "" {
		cfg.OutputDir = *c.run.out
	}
	if *c.run.count != 0 {
		cfg.Count = *c.run.count
	}
	if *c.run.topology != "" {
		topo, err := curve3.ParseTopology(*c.run.topology)
		if err != nil {
			return cfg, err
		}
		cfg.Topology = topo
	}
	if *c.run.ext != "" {
		cfg.Extension = *c.run.ext
		if !strings.HasPrefix(cfg.Extension, ".") {
			cfg.Extension = "." + cfg.Extension
		}
	}
	if *c.run.workers != 0 {
		cfg.Workers = *c.run.workers
	}
	if *c.run.preview != "" {
		cfg.PreviewDir = *c.run.preview
	}
	return cfg, nil
}

func (c *cli) runBatch(ctx context.Context, au aurora.Aurora) int {
	cfg, err := c.batchConfig()
	if err != nil {
		fmt.Fprintf(c.stderr, "%s %s\n", au.Red("error:"), err)
		return 1
	}
	report, err := batch.Run(ctx, cfg, log.New(c.stderr, "resample: ", 0))
	if err != nil {
		fmt.Fprintf(c.stderr, "%s %s\n", au.Red("error:"), err)
		return 1
	}

	failed := report.Failed()
	for _, res := range failed {
		fmt.Fprintf(c.stdout, "%s %s: %s\n", au.Red("FAIL"), res.Curve, res.Err)
	}
	fmt.Fprintf(c.stdout, "%s %d of %d curves resampled to %d points\n",
		au.Bold(au.Green("done")), report.Succeeded(), len(report.Results), cfg.Count)
	if len(failed) > 0 {
		return 1
	}
	return 0
}

func (c *cli) runFile(au aurora.Aurora) int {
	topo, err := curve3.ParseTopology(*c.file.topology)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s %s\n", au.Red("error:"), err)
		return 2
	}
	n := *c.file.count
	ms, err := markup.Load(*c.file.path)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s %s\n", au.Red("error:"), err)
		return 1
	}

	for _, dir := range []string{*c.file.out, *c.file.preview} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(c.stderr, "%s %s\n", au.Red("error:"), err)
			return 1
		}
	}

	status := 0
	for _, m := range ms {
		out, got, err := batch.ResampleCurve(m.Points, n, topo)
		if err != nil {
			fmt.Fprintf(c.stderr, "%s %s: %s (%d points)\n", au.Red("FAIL"), m.Name, err, got)
			status = 1
			continue
		}
		resampled := &markup.Markup{Name: m.Name, CoordinateSystem: m.CoordinateSystem, Points: out}
		if err := c.emit(resampled, n); err != nil {
			fmt.Fprintf(c.stderr, "%s %s: %s\n", au.Red("FAIL"), m.Name, err)
			status = 1
			continue
		}
		if *c.file.preview != "" {
			png := filepath.Join(*c.file.preview, fmt.Sprintf("%s_resample_%d.png", m.Name, n))
			if err := preview.Render(png, m.Points, out, preview.Options{}); err != nil {
				fmt.Fprintf(c.stderr, "%s %s: %s\n", au.Red("FAIL"), m.Name, err)
				status = 1
				continue
			}
			if *c.file.show {
				preview.Show(png, c.stdout)
			}
		}
	}
	return status
}

func (c *cli) emit(m *markup.Markup, n int) error {
	if *c.file.out == "" {
		return markup.WriteFCSV(c.stdout, m)
	}
	path := filepath.Join(*c.file.out, batch.OutputName(m.Name, n))
	if err := markup.Save(path, m); err != nil {
		return err
	}
	fmt.Fprintln(c.stderr, path)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	status := newCLI(os.Stdout, os.Stderr).main(ctx, os.Args[1:])
	stop()
	os.Exit(status)
}
