package readfiles

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/notargets/foampost/types"
)

const (
	BinForceCoeffsDir = "postProcessing/binForceCoeffs"
	minBinFileLines   = 10
)

var (
	clExcludeRE = regexp.MustCompile(`internal|patch|_x|_y`)
	cdExcludeRE = regexp.MustCompile(`internal|patch|_z|_y`)
)

// BinForces is one time row of a binForceCoeffs output file.
type BinForces struct {
	Path    string
	Time    string
	XCoords []float64
	Header  []string
	Coeffs  []float64
}

// Development is a coefficient distribution along the bin axis.
type Development struct {
	X      []float64
	Values []float64
}

// ReadBinForces locates and parses the binForceCoeffs output of a case for
// endTime. When endTime has no output directory the latest available time is
// used instead and reported through Time.
func ReadBinForces(root, caseName, endTime string) (bf *BinForces, err error) {
	var (
		dir     = CasePath(root, caseName, BinForceCoeffsDir)
		timeDir string
		file    string
	)
	if timeDir, err = selectTimeDir(dir, endTime); err != nil {
		return
	}
	if file, err = selectBinFile(filepath.Join(dir, timeDir), timeDir); err != nil {
		return
	}
	return ParseBinForces(filepath.Join(dir, timeDir, file), timeDir)
}

func selectTimeDir(dir, endTime string) (timeDir string, err error) {
	var (
		entries []os.DirEntry
		best    = -1.
	)
	if entries, err = os.ReadDir(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &MissingFileError{Path: dir, Err: err}
		}
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() == endTime {
			return endTime, nil
		}
		t, perr := strconv.ParseFloat(e.Name(), 64)
		if perr != nil {
			continue
		}
		if timeDir == "" || t > best {
			timeDir, best = e.Name(), t
		}
	}
	if timeDir == "" {
		return "", &MissingFieldError{Path: dir, Field: "time directory"}
	}
	return
}

// selectBinFile picks a file with enough lines to hold bin data, preferring
// one named after the time directory.
func selectBinFile(dir, timeDir string) (file string, err error) {
	var entries []os.DirEntry
	if entries, err = os.ReadDir(dir); err != nil {
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		var data []byte
		if data, err = os.ReadFile(filepath.Join(dir, name)); err != nil {
			return "", err
		}
		if countLines(data) <= minBinFileLines {
			continue
		}
		file = name
		if strings.Contains(name, timeDir) {
			break
		}
	}
	if file == "" {
		return "", &MissingFieldError{Path: dir, Field: "bin coefficients"}
	}
	return
}

func countLines(data []byte) (n int) {
	n = bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return
}

// ParseBinForces reads the bin x co-ordinates, the column header and the data
// row for timeDir. Without an exact time row the last data row is used.
func ParseBinForces(path, timeDir string) (bf *BinForces, err error) {
	var (
		data    []byte
		target  float64
		lastRow []string
		found   bool
	)
	if data, err = readCaseFile(path); err != nil {
		return
	}
	if target, err = strconv.ParseFloat(timeDir, 64); err != nil {
		return nil, fmt.Errorf("time directory %s is not a time: %w", timeDir, err)
	}
	bf = &BinForces{Path: path, Time: timeDir}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.Contains(line, "x co-ords"):
			ind := strings.Index(line, ":")
			if ind < 0 {
				return nil, &MalformedLineError{Path: path, Field: "x co-ords", Line: line, LineNo: lineNo}
			}
			if bf.XCoords, err = parseFloats(strings.Fields(line[ind+1:])); err != nil {
				return nil, &MalformedLineError{Path: path, Field: "x co-ords", Line: line, LineNo: lineNo}
			}
		case strings.HasPrefix(line, "#"):
			fields := strings.Fields(strings.TrimPrefix(line, "#"))
			if len(fields) > 0 && fields[0] == "Time" {
				bf.Header = fields[1:]
			}
		default:
			if found {
				continue
			}
			fields := strings.Fields(line)
			lastRow = fields
			if t, perr := strconv.ParseFloat(fields[0], 64); perr == nil && t == target {
				found = true
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to scan %s: %w", path, err)
	}
	switch {
	case len(bf.XCoords) == 0:
		return nil, &MissingFieldError{Path: path, Field: "x co-ords"}
	case bf.Header == nil:
		return nil, &MissingFieldError{Path: path, Field: "Time header"}
	case lastRow == nil:
		return nil, &MissingFieldError{Path: path, Field: "time " + timeDir}
	}
	if !found {
		bf.Time = lastRow[0]
	}
	if bf.Coeffs, err = parseFloats(lastRow[1:]); err != nil {
		return nil, &MalformedLineError{Path: path, Field: "coefficients", Line: strings.Join(lastRow, " ")}
	}
	if len(bf.Coeffs) != len(bf.Header) {
		return nil, &MalformedLineError{Path: path, Field: "coefficients",
			Line: fmt.Sprintf("%d values for %d columns", len(bf.Coeffs), len(bf.Header))}
	}
	return
}

func parseFloats(fields []string) (f []float64, err error) {
	f = make([]float64, len(fields))
	for i, s := range fields {
		if f[i], err = strconv.ParseFloat(s, 64); err != nil {
			return nil, err
		}
	}
	return
}

// Development selects the columns that carry the binned drag (Cd) or lift
// (Cl) coefficient and pairs them with the bin co-ordinates.
func (bf *BinForces) Development(coeff types.Coefficient) (dev Development, err error) {
	exclude := clExcludeRE
	if coeff == types.Cd {
		exclude = cdExcludeRE
	}
	for i, name := range bf.Header {
		if exclude.MatchString(name) {
			continue
		}
		dev.Values = append(dev.Values, bf.Coeffs[i])
	}
	if len(dev.Values) != len(bf.XCoords) {
		return Development{}, &MalformedLineError{Path: bf.Path, Field: coeff.String(),
			Line: fmt.Sprintf("%d columns for %d bins", len(dev.Values), len(bf.XCoords))}
	}
	dev.X = append([]float64(nil), bf.XCoords...)
	return
}
