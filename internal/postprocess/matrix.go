// Package postprocess combines raw experiment output files. Results are
// written as whitespace-separated float matrices, one row per line, the
// format numpy's savetxt/loadtxt and most plotting scripts agree on.
package postprocess

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadMatrix loads a text matrix. Blank lines and '#' comment lines are
// skipped; all remaining rows must have the same number of columns. A file
// with a single row yields a 1xN matrix.
func ReadMatrix(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("postprocess: open %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]float64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("postprocess: %s:%d: bad value %q: %w", path, lineno, field, err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("postprocess: %s:%d: row has %d columns, want %d",
				path, lineno, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("postprocess: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("postprocess: %s contains no data", path)
	}
	return rows, nil
}

// WriteMatrix stores a matrix in savetxt-compatible form: one row per line,
// values in scientific notation separated by single spaces.
func WriteMatrix(path string, m [][]float64) error {
	if len(m) == 0 {
		return fmt.Errorf("postprocess: refusing to write empty matrix to %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("postprocess: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, row := range m {
		for i, v := range row {
			if i > 0 {
				if err := w.WriteByte(' '); err != nil {
					f.Close()
					return fmt.Errorf("postprocess: write %s: %w", path, err)
				}
			}
			if _, err := w.WriteString(strconv.FormatFloat(v, 'e', 18, 64)); err != nil {
				f.Close()
				return fmt.Errorf("postprocess: write %s: %w", path, err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("postprocess: write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("postprocess: flush %s: %w", path, err)
	}
	return f.Close()
}

func addInto(dst, src [][]float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("postprocess: shape mismatch: %d vs %d rows", len(dst), len(src))
	}
	for i := range dst {
		if len(dst[i]) != len(src[i]) {
			return fmt.Errorf("postprocess: shape mismatch in row %d: %d vs %d columns",
				i, len(dst[i]), len(src[i]))
		}
		for j := range dst[i] {
			dst[i][j] += src[i][j]
		}
	}
	return nil
}

func scale(m [][]float64, factor float64) {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= factor
		}
	}
}
