package readfiles

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

func readCaseFile(path string) (data []byte, err error) {
	if data, err = os.ReadFile(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return
}

// scanDict calls fn for every line of an OpenFOAM dictionary with comments
// removed. Line numbers start at 1.
func scanDict(path string, fn func(lineNo int, line string) error) (err error) {
	var (
		data    []byte
		inBlock bool
	)
	if data, err = readCaseFile(path); err != nil {
		return
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		var line string
		line, inBlock = stripComments(scanner.Text(), inBlock)
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err = fn(lineNo, line); err != nil {
			return
		}
	}
	if err = scanner.Err(); err != nil {
		return fmt.Errorf("unable to scan %s: %w", path, err)
	}
	return
}

// stripComments removes // and /* */ comments. inBlock carries an open block
// comment across lines.
func stripComments(line string, inBlock bool) (string, bool) {
	var sb strings.Builder
	for len(line) > 0 {
		if inBlock {
			end := strings.Index(line, "*/")
			if end < 0 {
				return sb.String(), true
			}
			line = line[end+2:]
			inBlock = false
			continue
		}
		lc := strings.Index(line, "//")
		bc := strings.Index(line, "/*")
		switch {
		case lc >= 0 && (bc < 0 || lc < bc):
			sb.WriteString(line[:lc])
			return sb.String(), false
		case bc >= 0:
			sb.WriteString(line[:bc])
			line = line[bc+2:]
			inBlock = true
		default:
			sb.WriteString(line)
			line = ""
		}
	}
	return sb.String(), inBlock
}
