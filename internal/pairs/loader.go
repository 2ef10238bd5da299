// Package pairs reads the list of monitored pools from a text file.
package pairs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"PoolSentinel/internal/model"
)

// ErrMalformedLine marks a line that is not a "chain,pool" pair.
var ErrMalformedLine = errors.New("malformed pair line")

// Load reads pairs from path. Malformed lines are skipped and reported in
// the returned error alongside the pairs that did parse.
func Load(path string) ([]model.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read pairs file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads one "chain,pool" pair per line. Blank lines and lines starting
// with '#' are ignored.
func Parse(r io.Reader) ([]model.Pair, error) {
	var (
		result []model.Pair
		errs   []error
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := parseLine(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		result = append(result, p)
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("scan pairs: %w", err))
	}
	return result, errors.Join(errs...)
}

func parseLine(line string) (model.Pair, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 2 {
		return model.Pair{}, fmt.Errorf("%w: want chain,pool, got %q", ErrMalformedLine, line)
	}
	chain := strings.ToLower(strings.TrimSpace(fields[0]))
	pool := strings.TrimSpace(fields[1])
	if chain == "" || pool == "" {
		return model.Pair{}, fmt.Errorf("%w: empty chain or pool in %q", ErrMalformedLine, line)
	}
	return model.Pair{Chain: chain, Pool: pool}, nil
}
