package report

import (
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/notargets/foampost/InputParameters"
	"github.com/notargets/foampost/readfiles"
	"github.com/notargets/foampost/readfiles/readfilestest"
)

func writeJob(t *testing.T) (root string) {
	t.Helper()
	root = filepath.Join(t.TempDir(), "J1234", "02_cases")
	cases := []readfilestest.Case{
		{Name: "001", InletMagnitude: 40, Yaw: 0, EndTime: "500", Rotating: true, SimulationType: "RAS",
			Model: "kOmegaSST", XCoords: []float64{-0.5, 0.5, 1.5}, Cd: []float64{0.1, 0.05, 0.15},
			Cl: []float64{-0.2, 0.1, -0.1}},
		{Name: "002_half", InletMagnitude: 40, Yaw: 5, EndTime: "500", SimulationType: "RAS",
			Model: "kOmegaSST", XCoords: []float64{-0.5, 0.5, 1.5}, Cd: []float64{0.06, 0.02, 0.08},
			Cl: []float64{-0.1, 0.05, -0.05}},
	}
	for _, tc := range cases {
		require.NoError(t, tc.Write(root))
	}
	avg := "# averaged from iteration 250\n" +
		"name,CdA,ClA,ClfA,ClrA,Cs,Cm,CICdA,CIClA\n" +
		"001,0.3,-0.1,-0.04,-0.06,0,0,0.002,0.003\n"
	require.NoError(t, os.WriteFile(readfiles.CasePath(root, "001", readfiles.AverageFileName("001")),
		[]byte(avg), 0o644))

	img := imaging.New(64, 32, color.NRGBA{B: 255, A: 255})
	require.NoError(t, imaging.Save(img, readfiles.CasePath(root, "001", "trial001_cdConfPlot.png")))
	imgDir := readfiles.CasePath(root, "001", "postProcessing", "images")
	require.NoError(t, os.MkdirAll(imgDir, 0o755))
	require.NoError(t, imaging.Save(img, filepath.Join(imgDir, "001_geom_left.png")))
	return
}

func testParams() (rp *InputParameters.ReportParameters) {
	rp = InputParameters.NewReportParameters()
	rp.Title = "Aero Report"
	rp.DevelopmentDPI = 72
	rp.ImageFamilies = []InputParameters.ImageFamily{
		{Title: "Geometry", Tag: "geom", Views: []string{"left", "rear"}},
	}
	return
}

func TestBuild(t *testing.T) {
	root := writeJob(t)
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := NewBuilder(root, []string{"001", "002_half"}, testParams(), clock, logger)

	assert.Equal(t, "J1234", b.Job())
	assert.Equal(t, "001_002_half_report_2024-05-01", b.BaseName())

	out, err := b.Build()
	require.NoError(t, err)

	reportDir := filepath.Join(filepath.Dir(root), "03_reports")
	assert.Equal(t, filepath.Join(reportDir, "001_002_half_report_2024-05-01.pdf"), out.Deck)
	assert.Equal(t, filepath.Join(reportDir, "001_002_half_report_2024-05-01.xlsx"), out.Workbook)
	assert.FileExists(t, out.Deck)
	assert.FileExists(t, out.Workbook)

	// title, 2 tables, 2x2 confidence, 2 development, 2x2 geometry
	assert.Equal(t, 13, out.Slides)
	assert.Len(t, out.Missing, 6)
	assert.NotContains(t, out.Missing, readfiles.CasePath(root, "001", "trial001_cdConfPlot.png"))

	dir := readfiles.CasePath(root, "001")
	for _, name := range []string{
		"001_cd_development.csv", "001_cl_development.csv",
		"002_half_cd_development.csv", "002_half_cl_development.csv",
		"cd-development_001_002_half.png", "cl-development_001_002_half.png",
	} {
		assert.Contains(t, out.Development, filepath.Join(dir, name))
		assert.FileExists(t, filepath.Join(dir, name))
	}

	f, err := excelize.OpenFile(out.Workbook)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	assert.Equal(t, []string{"CdA", "0.3000", "-"}, rows[1])
	rows, err = f.GetRows("Setup")
	require.NoError(t, err)
	assert.Equal(t, []string{"Wheel Rot.", "True", "False"}, rows[4])
	assert.Equal(t, []string{"Sym. Cond.", "Full Car", "Half Car"}, rows[6])
}

func TestBuildMissingTrial(t *testing.T) {
	root := writeJob(t)
	b := NewBuilder(root, []string{"001", "999"}, testParams(), clockwork.NewFakeClock(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := b.Build()
	assert.ErrorIs(t, err, readfiles.ErrMissingFile)
	assert.Contains(t, err.Error(), "trial 999")

	_, err = NewBuilder(root, nil, nil, nil, nil).Build()
	assert.Error(t, err)
}

func TestBuildWithoutBinForces(t *testing.T) {
	root := writeJob(t)
	require.NoError(t, os.RemoveAll(readfiles.CasePath(root, "002_half", readfiles.BinForceCoeffsDir)))
	b := NewBuilder(root, []string{"001", "002_half"}, testParams(),
		clockwork.NewFakeClockAt(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	out, err := b.Build()
	require.NoError(t, err)

	// The development slides keep their place, titled but empty
	assert.Equal(t, 13, out.Slides)
	assert.Empty(t, out.Development)
	dir := readfiles.CasePath(root, "001")
	assert.Contains(t, out.Missing, filepath.Join(dir, "cd-development_001_002_half.png"))
	assert.Contains(t, out.Missing, filepath.Join(dir, "cl-development_001_002_half.png"))
	assert.Len(t, out.Missing, 8)
	assert.NoFileExists(t, filepath.Join(dir, "cd-development_001_002_half.png"))
}
