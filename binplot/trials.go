// Package binplot turns binForceCoeffs output into Cd and Cl development
// curves along the vehicle and renders comparisons across trials.
package binplot

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/foampost/readfiles"
	"github.com/notargets/foampost/types"
)

// Trial holds the development curves of one case, scaled to the full
// vehicle for half car models.
type Trial struct {
	Name     string
	Metadata types.CaseMetadata
	Time     string
	X        []float64
	Cd, Cl   []float64
}

func (tr *Trial) Values(coeff types.Coefficient) []float64 {
	if coeff == types.Cd {
		return tr.Cd
	}
	return tr.Cl
}

// Load reads the case metadata and bin forces of every named trial under
// root, in order. The first failing trial aborts the load.
func Load(root string, names []string, logger *slog.Logger) (trials []*Trial, err error) {
	trials = make([]*Trial, 0, len(names))
	for _, name := range names {
		var tr *Trial
		if tr, err = LoadTrial(root, name, logger); err != nil {
			return nil, fmt.Errorf("trial %s: %w", name, err)
		}
		trials = append(trials, tr)
	}
	return
}

func LoadTrial(root, name string, logger *slog.Logger) (tr *Trial, err error) {
	var (
		cm     types.CaseMetadata
		bf     *readfiles.BinForces
		cd, cl readfiles.Development
	)
	if cm, err = readfiles.ParseCase(root, name); err != nil {
		return
	}
	if bf, err = readfiles.ReadBinForces(root, name, cm.EndTime); err != nil {
		return
	}
	if bf.Time != cm.EndTime {
		logger.Warn("end time in controlDict has no bin force output, using latest available time",
			"trial", name, "endTime", cm.EndTime, "time", bf.Time)
	}
	if cd, err = bf.Development(types.Cd); err != nil {
		return
	}
	if cl, err = bf.Development(types.Cl); err != nil {
		return
	}
	scale := cm.Symmetry.Scale()
	floats.Scale(scale, cd.Values)
	floats.Scale(scale, cl.Values)
	tr = &Trial{
		Name:     name,
		Metadata: cm,
		Time:     bf.Time,
		X:        cd.X,
		Cd:       cd.Values,
		Cl:       cl.Values,
	}
	logger.Debug("loaded bin forces", "trial", name, "file", bf.Path, "bins", len(tr.X),
		"symmetry", cm.Symmetry.String())
	return
}

func CSVName(trial string, coeff types.Coefficient) string {
	return fmt.Sprintf("%s_%s_development.csv", trial, coeff)
}

// WriteCSV writes the cd and cl development of a trial into dir.
func WriteCSV(dir string, tr *Trial) (paths []string, err error) {
	for _, coeff := range []types.Coefficient{types.Cd, types.Cl} {
		path := filepath.Join(dir, CSVName(tr.Name, coeff))
		if err = writeDevelopment(path, coeff, tr.X, tr.Values(coeff)); err != nil {
			return
		}
		paths = append(paths, path)
	}
	return
}

func writeDevelopment(path string, coeff types.Coefficient, x, f []float64) (err error) {
	var file *os.File
	if file, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	w := csv.NewWriter(file)
	if err = w.Write([]string{"xCoords", coeff.String()}); err != nil {
		return
	}
	for i := range x {
		if err = w.Write([]string{
			strconv.FormatFloat(x[i], 'g', -1, 64),
			strconv.FormatFloat(f[i], 'g', -1, 64),
		}); err != nil {
			return
		}
	}
	w.Flush()
	return w.Error()
}

// Bounds are the extents of a set of trials.
type Bounds struct {
	XMin, XMax float64
	Min, Max   map[types.Coefficient]float64
}

func NewBounds(trials []*Trial) (b Bounds) {
	b = Bounds{
		Min: make(map[types.Coefficient]float64),
		Max: make(map[types.Coefficient]float64),
	}
	for i, tr := range trials {
		xmin, xmax := floats.Min(tr.X), floats.Max(tr.X)
		if i == 0 || xmin < b.XMin {
			b.XMin = xmin
		}
		if i == 0 || xmax > b.XMax {
			b.XMax = xmax
		}
		for _, coeff := range []types.Coefficient{types.Cd, types.Cl} {
			fmin, fmax := floats.Min(tr.Values(coeff)), floats.Max(tr.Values(coeff))
			if i == 0 || fmin < b.Min[coeff] {
				b.Min[coeff] = fmin
			}
			if i == 0 || fmax > b.Max[coeff] {
				b.Max[coeff] = fmax
			}
		}
	}
	return
}
