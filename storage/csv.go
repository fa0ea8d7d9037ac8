package storage

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ReadRoots loads a UTF-8 CSV word list. The first record is the column
// headings; every following record is one row of word elements.
func ReadRoots(path string) (headings []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open the word list %v: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read the word list %v: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("the word list %v has no heading record", path)
	}
	return records[0], records[1:], nil
}
