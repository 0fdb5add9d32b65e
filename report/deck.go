package report

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	"github.com/phpdave11/gofpdf"
)

// Slide geometry in mm, a 13.33 x 7.5 inch widescreen page
const (
	slideWidth   = 338.67
	slideHeight  = 190.5
	slideMargin  = 12.0
	titleHeight  = 18.0
	tableRowH    = 9.0
	tableFontPt  = 14.0
	titleFontPt  = 28.0
	headerFontPt = 40.0
)

// Deck is a slide deck rendered as one landscape PDF page per slide.
type Deck struct {
	pdf *gofpdf.Fpdf
}

func NewDeck(title string) (d *Deck) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: slideWidth, Ht: slideHeight},
	})
	pdf.SetTitle(title, false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(slideMargin, slideMargin, slideMargin)
	return &Deck{pdf: pdf}
}

func (d *Deck) Slides() int {
	return d.pdf.PageCount()
}

func (d *Deck) newSlide(title string) {
	d.pdf.AddPage()
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetFont("Helvetica", "B", titleFontPt)
	d.pdf.SetXY(slideMargin, slideMargin)
	d.pdf.CellFormat(slideWidth-2*slideMargin, titleHeight, title, "", 0, "L", false, 0, "")
}

func (d *Deck) TitleSlide(title, subtitle string) {
	d.pdf.AddPage()
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetFont("Helvetica", "B", headerFontPt)
	d.pdf.SetXY(slideMargin, slideHeight/2-titleHeight)
	d.pdf.CellFormat(slideWidth-2*slideMargin, titleHeight, title, "", 0, "C", false, 0, "")
	d.pdf.SetFont("Helvetica", "", titleFontPt/1.5)
	d.pdf.SetXY(slideMargin, slideHeight/2+2)
	d.pdf.MultiCell(slideWidth-2*slideMargin, titleHeight/2, subtitle, "", "C", false)
}

// EmptySlide is a slide holding its title only.
func (d *Deck) EmptySlide(title string) {
	d.newSlide(title)
}

// TableSlide draws t with a grey header row and light grey body rows.
func (d *Deck) TableSlide(t Table) {
	d.newSlide(t.Title)
	if len(t.Rows) == 0 {
		return
	}
	var (
		nCols = len(t.Rows[0])
		colW  = (slideWidth - 2*slideMargin) / float64(nCols)
		y     = slideMargin + titleHeight + 4
	)
	d.pdf.SetFont("Helvetica", "", tableFontPt)
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.SetLineWidth(0.5)
	for i, row := range t.Rows {
		if i == 0 {
			d.pdf.SetFillColor(192, 192, 192)
		} else {
			d.pdf.SetFillColor(225, 225, 225)
		}
		d.pdf.SetXY(slideMargin, y)
		for _, cell := range row {
			d.pdf.CellFormat(colW, tableRowH, cell, "1", 0, "C", true, 0, "")
		}
		y += tableRowH
	}
}

// ImageSlide places the image at path below the title, scaled to fit. A
// missing image leaves the slide with its title only and returns false. An
// unreadable image is reported but leaves the deck usable.
func (d *Deck) ImageSlide(title, path string) (found bool, err error) {
	var cfg image.Config
	d.newSlide(title)
	if cfg, err = imageConfig(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return
	}
	var (
		boxW  = slideWidth - 2*slideMargin
		boxH  = slideHeight - 2*slideMargin - titleHeight
		w, h  = float64(cfg.Width), float64(cfg.Height)
		scale = min(boxW/w, boxH/h)
	)
	w, h = w*scale, h*scale
	x := slideMargin + (boxW-w)/2
	y := slideMargin + titleHeight + (boxH-h)/2
	d.pdf.ImageOptions(path, x, y, w, h, false, gofpdf.ImageOptions{ReadDpi: false}, 0, "")
	if err = d.pdf.Error(); err != nil {
		d.pdf.ClearError()
		return false, fmt.Errorf("unable to place image %s: %w", path, err)
	}
	return true, nil
}

func imageConfig(path string) (cfg image.Config, err error) {
	var file *os.File
	if file, err = os.Open(path); err != nil {
		return
	}
	defer file.Close()
	if cfg, _, err = image.DecodeConfig(file); err != nil {
		return cfg, fmt.Errorf("unable to decode image %s: %w", path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return cfg, fmt.Errorf("image %s is empty", path)
	}
	return
}

func (d *Deck) Save(path string) error {
	return d.pdf.OutputFileAndClose(path)
}
