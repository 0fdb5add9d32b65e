package readfiles

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// AverageColumns are the CSV columns holding CdA, ClA, ClfA, ClrA and the
// 0.95 confidence intervals of CdA and ClA.
var AverageColumns = []int{1, 2, 3, 4, 7, 8}

func AverageFileName(caseName string) string {
	return fmt.Sprintf("trial%s_AVG_all_coeff.csv", caseName)
}

// ReadAverageCoefficients reads the forward averaged force coefficients from
// a trial<case>_AVG_all_coeff.csv file. The first non comment row is a header.
func ReadAverageCoefficients(path string) (coeffs []float64, err error) {
	var (
		data    []byte
		record  []string
		skipped bool
	)
	if data, err = readCaseFile(path); err != nil {
		return
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	for {
		if record, err = reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &MissingFieldError{Path: path, Field: "average coefficients"}
			}
			return nil, fmt.Errorf("unable to read %s: %w", path, err)
		}
		if !skipped {
			skipped = true
			continue
		}
		break
	}
	line, _ := reader.FieldPos(0)
	coeffs = make([]float64, len(AverageColumns))
	for i, col := range AverageColumns {
		if col >= len(record) {
			return nil, &MalformedLineError{Path: path, Field: fmt.Sprintf("column %d", col),
				Line: strings.Join(record, ","), LineNo: line}
		}
		if coeffs[i], err = strconv.ParseFloat(strings.TrimSpace(record[col]), 64); err != nil {
			return nil, &MalformedLineError{Path: path, Field: fmt.Sprintf("column %d", col),
				Line: strings.Join(record, ","), LineNo: line}
		}
	}
	return
}
