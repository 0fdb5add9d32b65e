// Package report assembles the post-processing deck of a set of trials: setup
// and results tables, confidence and development plots and the rendered
// flow images, saved as PDF slides with a companion XLSX workbook.
package report

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/notargets/foampost/InputParameters"
	"github.com/notargets/foampost/binplot"
	"github.com/notargets/foampost/readfiles"
	"github.com/notargets/foampost/types"
)

const dateLayout = "2006-01-02"

// Builder holds everything needed to produce the report of Cases, all
// located under Root. The first case is the baseline of the comparison.
type Builder struct {
	Root    string
	Cases   []string
	Params  *InputParameters.ReportParameters
	Clock   clockwork.Clock
	Logger  *slog.Logger
	NoImage bool
}

// Output lists the files written by Build
type Output struct {
	Deck        string
	Workbook    string
	Development []string
	Slides      int
	Missing     []string
}

func NewBuilder(root string, cases []string, params *InputParameters.ReportParameters,
	clock clockwork.Clock, logger *slog.Logger) (b *Builder) {
	if params == nil {
		params = InputParameters.NewReportParameters()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		Root:   root,
		Cases:  cases,
		Params: params,
		Clock:  clock,
		Logger: logger,
	}
}

// JobDir is the directory above the trials, holding the report directory.
func (b *Builder) JobDir() string {
	return filepath.Dir(filepath.Clean(b.Root))
}

func (b *Builder) Job() string {
	if len(b.Params.Job) != 0 {
		return b.Params.Job
	}
	return filepath.Base(b.JobDir())
}

// BaseName is the report file name without extension, e.g.
// 001_002_report_2024-05-01
func (b *Builder) BaseName() string {
	return fmt.Sprintf("%s_report_%s", strings.Join(b.Cases, "_"),
		b.Clock.Now().Format(dateLayout))
}

func (b *Builder) Build() (out Output, err error) {
	var (
		cases  = make([]types.CaseMetadata, len(b.Cases))
		tables []Table
		trials []*binplot.Trial
	)
	if len(b.Cases) == 0 {
		return out, fmt.Errorf("no trials to report")
	}
	b.Logger.Info("getting data for trials", "trials", strings.Join(b.Cases, ", "))
	for i, name := range b.Cases {
		if cases[i], err = readfiles.ParseCase(b.Root, name); err != nil {
			return out, fmt.Errorf("trial %s: %w", name, err)
		}
	}
	for _, cm := range cases[1:] {
		if cm.SimulationType != cases[0].SimulationType {
			b.Logger.Warn("simulation types differ between trials",
				"trial", cm.Case, "simulationType", cm.SimulationType,
				"baseline", cases[0].Case, "baselineType", cases[0].SimulationType)
		}
	}
	deck := NewDeck(b.Job() + " - " + b.Params.Title)
	deck.TitleSlide(b.Job()+" - "+b.Params.Title, Subtitle(b.Cases))

	tables = []Table{SetupTable(cases), ResultsTable(b.readAverages())}
	for _, t := range tables {
		deck.TableSlide(t)
	}

	for _, plot := range b.Params.ConfidencePlots {
		for _, name := range b.Cases {
			path := readfiles.CasePath(b.Root, name, fmt.Sprintf("trial%s_%s.png", name, plot))
			b.imageSlide(deck, &out, fmt.Sprintf("%s - %s", plot, name), path)
		}
	}

	if trials, err = binplot.Load(b.Root, b.Cases, b.Logger); err != nil {
		b.Logger.Warn("unable to load bin forces, development slides left empty", "error", err)
		trials, err = nil, nil
		for _, coeff := range []types.Coefficient{types.Cd, types.Cl} {
			title, path := b.developmentPlot(coeff)
			deck.EmptySlide(title)
			out.Missing = append(out.Missing, path)
		}
	} else if err = b.development(deck, &out, trials); err != nil {
		return
	}

	for _, fam := range b.Params.ImageFamilies {
		for _, view := range fam.Views {
			for _, name := range b.Cases {
				path := readfiles.CasePath(b.Root, name, "postProcessing", "images",
					fmt.Sprintf("%s_%s_%s.png", name, fam.Tag, view))
				b.imageSlide(deck, &out, fmt.Sprintf("%s - %s - %s", fam.Title, name, view), path)
			}
		}
	}

	reportDir := filepath.Join(b.JobDir(), b.Params.ReportDir)
	if err = os.MkdirAll(reportDir, 0755); err != nil {
		return
	}
	out.Slides = deck.Slides()
	out.Deck = filepath.Join(reportDir, b.BaseName()+".pdf")
	b.Logger.Info("saving report", "path", out.Deck, "slides", out.Slides)
	if err = deck.Save(out.Deck); err != nil {
		return out, fmt.Errorf("unable to save %s: %w", out.Deck, err)
	}
	if b.Params.Workbook {
		out.Workbook = filepath.Join(reportDir, b.BaseName()+".xlsx")
		if err = WriteWorkbook(out.Workbook, tables, trials); err != nil {
			return out, fmt.Errorf("unable to save %s: %w", out.Workbook, err)
		}
	}
	return
}

// readAverages gathers the averaged coefficients of every trial, trials
// without an average file keep an empty column.
func (b *Builder) readAverages() (av *Averages) {
	av = NewAverages(b.Cases)
	for i, name := range b.Cases {
		path := readfiles.CasePath(b.Root, name, readfiles.AverageFileName(name))
		coeffs, err := readfiles.ReadAverageCoefficients(path)
		switch {
		case errors.Is(err, readfiles.ErrMissingFile):
			b.Logger.Info("cannot find average data, skipping", "trial", name, "path", path)
		case err != nil:
			b.Logger.Warn("unable to read average data, skipping", "trial", name, "error", err)
		default:
			b.Logger.Debug("importing average data", "trial", name, "path", path)
			av.Set(i, coeffs)
		}
	}
	return
}

// development renders the cd and cl development plots into the baseline case
// directory, then adds one slide for each.
func (b *Builder) development(deck *Deck, out *Output, trials []*binplot.Trial) (err error) {
	var (
		dir      = readfiles.CasePath(b.Root, b.Cases[0])
		overlays map[string]image.Image
	)
	if b.Params.GeometryImage && !b.NoImage {
		overlays = binplot.LoadOverlays(b.Root, trials, b.Logger)
	}
	for _, tr := range trials {
		var paths []string
		if paths, err = binplot.WriteCSV(dir, tr); err != nil {
			return
		}
		out.Development = append(out.Development, paths...)
	}
	for _, coeff := range []types.Coefficient{types.Cd, types.Cl} {
		title, path := b.developmentPlot(coeff)
		if err = binplot.Render(trials, coeff, overlays, path, b.Params.DevelopmentDPI); err != nil {
			return
		}
		out.Development = append(out.Development, path)
		b.imageSlide(deck, out, title, path)
	}
	return
}

// developmentPlot is the slide title and PNG path of the coeff development
// plot, kept in the baseline case directory.
func (b *Builder) developmentPlot(coeff types.Coefficient) (title, path string) {
	name := binplot.FileName(coeff, b.Cases)
	return strings.TrimSuffix(name, filepath.Ext(name)), readfiles.CasePath(b.Root, b.Cases[0], name)
}

func (b *Builder) imageSlide(deck *Deck, out *Output, title, path string) {
	found, err := deck.ImageSlide(title, path)
	switch {
	case err != nil:
		b.Logger.Warn("unable to use image, slide left empty", "path", path, "error", err)
	case !found:
		b.Logger.Info("cannot find image, slide left empty", "path", path)
	}
	if !found {
		out.Missing = append(out.Missing, path)
	}
}
