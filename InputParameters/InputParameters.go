package InputParameters

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
)

// ImageFamily is a set of post-processing images rendered for each view,
// named <trial>_<Tag>_<view>.png under postProcessing/images.
type ImageFamily struct {
	Title string   `json:"Title"`
	Tag   string   `json:"Tag"`
	Views []string `json:"Views"`
}

// Parameters obtained from the YAML report file
type ReportParameters struct {
	Title           string        `json:"Title"`
	Job             string        `json:"Job"`
	ReportDir       string        `json:"ReportDir"`
	ConfidencePlots []string      `json:"ConfidencePlots"`
	ImageFamilies   []ImageFamily `json:"ImageFamilies"`
	DevelopmentDPI  float64       `json:"DevelopmentDPI"`
	GeometryImage   bool          `json:"GeometryImage"`
	Workbook        bool          `json:"Workbook"`
}

var (
	allViews     = []string{"front", "frontLeft", "left", "bottom", "rearLeft", "rear"}
	surfaceViews = []string{"frontLeft", "left", "bottom", "rearLeft", "rear"}
)

func NewReportParameters() (rp *ReportParameters) {
	rp = &ReportParameters{
		Title:           "JOB NAME",
		ReportDir:       "03_reports",
		ConfidencePlots: []string{"cdConfPlot", "clConfPlot"},
		ImageFamilies: []ImageFamily{
			{Title: "Geometry", Tag: "geom", Views: allViews},
			{Title: "Cp Plot", Tag: "cP", Views: allViews},
			{Title: "CpX Plot", Tag: "cPx", Views: allViews},
			{Title: "CpZ Plot", Tag: "cPz", Views: allViews},
			{Title: "UMeanNear Plot", Tag: "UMeanNear", Views: surfaceViews},
			{Title: "Ctp = 0 Iso Plot", Tag: "isoCtp", Views: surfaceViews},
		},
		DevelopmentDPI: 300,
		GeometryImage:  true,
		Workbook:       true,
	}
	return
}

// Parse overlays the YAML document onto the receiver, fields absent from the
// document keep their current values.
func (rp *ReportParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, rp); err != nil {
		return
	}
	return rp.Validate()
}

func (rp *ReportParameters) Validate() error {
	if rp.DevelopmentDPI <= 0 {
		return fmt.Errorf("DevelopmentDPI must be positive, have %g", rp.DevelopmentDPI)
	}
	if len(rp.ReportDir) == 0 {
		return fmt.Errorf("ReportDir must not be empty")
	}
	for _, fam := range rp.ImageFamilies {
		if len(fam.Tag) == 0 {
			return fmt.Errorf("image family %q has no Tag", fam.Title)
		}
	}
	return nil
}

func (rp *ReportParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", rp.Title)
	fmt.Fprintf(w, "\"%s\"\t\t= Job\n", rp.Job)
	fmt.Fprintf(w, "[%s]\t\t= ReportDir\n", rp.ReportDir)
	fmt.Fprintf(w, "%8.1f\t\t= DevelopmentDPI\n", rp.DevelopmentDPI)
	fmt.Fprintf(w, "[%v]\t\t\t= GeometryImage\n", rp.GeometryImage)
	fmt.Fprintf(w, "[%v]\t\t\t= Workbook\n", rp.Workbook)
	fmt.Fprintf(w, "[%s]\t= ConfidencePlots\n", strings.Join(rp.ConfidencePlots, ", "))
	tags := make([]string, len(rp.ImageFamilies))
	for i, fam := range rp.ImageFamilies {
		tags[i] = fam.Tag
	}
	sort.Strings(tags)
	for _, tag := range tags {
		for _, fam := range rp.ImageFamilies {
			if fam.Tag == tag {
				fmt.Fprintf(w, "ImageFamilies[%s] = %s %v\n", tag, fam.Title, fam.Views)
			}
		}
	}
}
