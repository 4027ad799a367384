// Package authors reads the author id input list.
package authors

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadIDs loads author ids from path, one per line, trimming surrounding
// whitespace and skipping blank lines. A missing, unreadable, or empty list
// is an error; it is the only fatal input condition of a run.
func ReadIDs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open authors file: %w", err)
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read authors file: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("authors file %s contains no ids", path)
	}
	return ids, nil
}
