// Package geomimage extracts the vehicle silhouette from a rendered geometry
// image so it can be laid under coefficient development plots.
package geomimage

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	// Alpha applied to the extracted region, 70 of 255
	OverlayAlpha uint8 = 70
	blurSigma          = 0.8 // close to OpenCV's 3x3 Gaussian kernel
)

// ImagePath is the left side geometry render of a case.
func ImagePath(root, caseName string) string {
	return filepath.Join(root, caseName, "postProcessing", "images", "Geom_Surface",
		fmt.Sprintf("%s_Geom_Surface_Left.png", caseName))
}

// LoadROI opens a geometry image and returns its translucent region of
// interest.
func LoadROI(path string) (roi *image.NRGBA, err error) {
	var img image.Image
	if img, err = imaging.Open(path); err != nil {
		return nil, fmt.Errorf("unable to open geometry image %s: %w", path, err)
	}
	if roi = ExtractROI(img); roi == nil {
		return nil, fmt.Errorf("no geometry found in image %s", path)
	}
	return
}

// ExtractROI thresholds a blurred grayscale copy of img with Otsu's method,
// takes the bounding box of the dark foreground and crops the original to it
// with OverlayAlpha applied. Nil is returned when there is no foreground.
func ExtractROI(img image.Image) (roi *image.NRGBA) {
	var (
		gray   = imaging.Blur(imaging.Grayscale(img), blurSigma)
		b      = gray.Bounds()
		hist   [256]int
		minPt  = image.Pt(b.Max.X, b.Max.Y)
		maxPt  = image.Pt(b.Min.X-1, b.Min.Y-1)
		offset = img.Bounds().Min
	)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[gray.Pix[gray.PixOffset(x, y)]]++
		}
	}
	th := OtsuThreshold(hist)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.Pix[gray.PixOffset(x, y)] > th {
				continue
			}
			minPt.X, minPt.Y = min(minPt.X, x), min(minPt.Y, y)
			maxPt.X, maxPt.Y = max(maxPt.X, x), max(maxPt.Y, y)
		}
	}
	if maxPt.X < minPt.X {
		return nil
	}
	rect := image.Rectangle{Min: minPt, Max: maxPt.Add(image.Pt(1, 1))}.Add(offset)
	roi = imaging.Crop(img, rect)
	for i := 3; i < len(roi.Pix); i += 4 {
		roi.Pix[i] = OverlayAlpha
	}
	return
}

// OtsuThreshold returns the gray level that maximises the between class
// variance of the histogram. Levels above the threshold are background.
func OtsuThreshold(hist [256]int) (th uint8) {
	var (
		total, wB    int
		sum, sumB    float64
		bestVariance = -1.
	)
	for i, n := range hist {
		total += n
		sum += float64(i * n)
	}
	if total == 0 {
		return
	}
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		variance := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if variance > bestVariance {
			bestVariance, th = variance, uint8(t)
		}
	}
	return
}

// Aspect is the height over width ratio of an image.
func Aspect(img image.Image) float64 {
	b := img.Bounds()
	if b.Dx() == 0 {
		return 0
	}
	return float64(b.Dy()) / float64(b.Dx())
}
