// Package dataset reads row payloads from JSONL input files.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one input record: its position in the file and the raw payload.
type Row struct {
	Index   int
	Payload []byte
}

// ReadFile loads every row from a JSONL file. Blank lines are skipped;
// a line that is not valid JSON aborts the read with its line number.
func ReadFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()
	rows, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// Read loads rows from a JSONL stream.
func Read(r io.Reader) ([]Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var rows []Row
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !json.Valid([]byte(line)) {
			return nil, fmt.Errorf("line %d: invalid JSON", lineNo)
		}
		rows = append(rows, Row{Index: len(rows), Payload: []byte(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return rows, nil
}
