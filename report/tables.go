package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/foampost/types"
)

// Table is laid out with one row per quantity and one column per trial, the
// first column holding the row labels.
type Table struct {
	Title string
	Sheet string
	Rows  [][]string
}

var (
	SetupLabels = []string{"Trial", "Run Type", "Velocity (m/s)", "Turb. Model",
		"Wheel Rot.", "Yaw Angle (deg)", "Sym. Cond."}
	ResultLabels = []string{"Trial", "CdA", "ClA", "ClfA", "ClrA",
		"0.95 CI. - CdA", "0.95 CI. - ClA", "% Front"}
)

// Rows of the averaged coefficient matrix
const (
	RowCdA = iota
	RowClA
	RowClfA
	RowClrA
	RowCICdA
	RowCIClA
	NumAverages
)

func newTable(title, sheet string, labels []string, nTrials int) (t Table) {
	t = Table{Title: title, Sheet: sheet, Rows: make([][]string, len(labels))}
	for i, label := range labels {
		t.Rows[i] = make([]string, nTrials+1)
		t.Rows[i][0] = label
	}
	return
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func SetupTable(cases []types.CaseMetadata) (t Table) {
	t = newTable("Trial Setup and BC", "Setup", SetupLabels, len(cases))
	for i, cm := range cases {
		col := []string{
			cm.Case,
			cm.SimulationType,
			cm.InletMagnitude.String(),
			cm.TurbulenceModel,
			boolText(cm.MovingGround),
			cm.Yaw.String(),
			cm.Symmetry.String(),
		}
		for j, cell := range col {
			t.Rows[j][i+1] = cell
		}
	}
	return
}

// Averages holds the forward averaged coefficients of each trial as the
// columns of a NumAverages x len(Cases) matrix.
type Averages struct {
	Cases []string
	Data  *mat.Dense
	Found []bool
}

func NewAverages(cases []string) (av *Averages) {
	return &Averages{
		Cases: cases,
		Data:  mat.NewDense(NumAverages, len(cases), nil),
		Found: make([]bool, len(cases)),
	}
}

func (av *Averages) Set(i int, coeffs []float64) {
	av.Data.SetCol(i, coeffs)
	av.Found[i] = true
}

// Scaled returns average row of trial i, doubling the integral coefficients
// of half car trials.
func (av *Averages) Scaled(row, i int) float64 {
	v := av.Data.At(row, i)
	if row <= RowClrA {
		v *= types.NewSymmetry(av.Cases[i]).Scale()
	}
	return v
}

// ResultsTable compares every trial with the first. Integral coefficients of
// later trials carry their percentage change from the first trial.
func ResultsTable(av *Averages) (t Table) {
	t = newTable("Results", "Results", ResultLabels, len(av.Cases))
	for i, name := range av.Cases {
		t.Rows[0][i+1] = name
		if !av.Found[i] {
			for j := 1; j < len(ResultLabels); j++ {
				t.Rows[j][i+1] = "-"
			}
			continue
		}
		for row := 0; row < NumAverages; row++ {
			v := av.Scaled(row, i)
			cell := fmt.Sprintf("%0.4f", v)
			if i > 0 && row <= RowClrA && av.Found[0] {
				if base := av.Scaled(row, 0); base != 0 {
					cell = fmt.Sprintf("%0.4f (%0.2f %%)", v, 100*(v-base)/base)
				}
			}
			t.Rows[row+1][i+1] = cell
		}
		if cl := av.Data.At(RowClA, i); cl != 0 {
			t.Rows[len(ResultLabels)-1][i+1] = fmt.Sprintf("%0.2f", 100*av.Data.At(RowClfA, i)/cl)
		} else {
			t.Rows[len(ResultLabels)-1][i+1] = "-"
		}
	}
	return
}

// Subtitle lists the trials of a report
func Subtitle(cases []string) string {
	return strings.Join(cases, " | ")
}
