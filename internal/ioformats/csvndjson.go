
// Package ioformats reads and writes the pipeline's file formats: the
// sources CSV, JSONL pair indices, plain line files and indented JSON.
package ioformats

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kcarka/pairpedia/internal/models"
)

var sourceColumns = []string{"Category", "Subcategory", "Name", "Wikipedia_URL", "Grokipedia_URL"}

// ReadSourcesCSV reads the harvest seed file. The header must carry the
// five expected columns, in any order; cell whitespace is trimmed.
func ReadSourcesCSV(path string) ([]models.SeedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sources csv")
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.TrimSpace(h)] = i
	}
	for _, want := range sourceColumns {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("sources csv missing column %q", want)
		}
	}

	cell := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []models.SeedRow
	for _, row := range rows[1:] {
		seed := models.SeedRow{
			Category:      cell(row, "Category"),
			Subcategory:   cell(row, "Subcategory"),
			Name:          cell(row, "Name"),
			WikipediaURL:  cell(row, "Wikipedia_URL"),
			GrokipediaURL: cell(row, "Grokipedia_URL"),
		}
		if seed.WikipediaURL == "" && seed.GrokipediaURL == "" {
			continue
		}
		out = append(out, seed)
	}
	return out, nil
}

// ReadPairIndex reads a JSONL pair index, skipping blank lines.
func ReadPairIndex(path string) ([]models.PairRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []models.PairRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec models.PairRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parse index line: %w", err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WritePairIndex writes records as JSONL, one object per line.
func WritePairIndex(path string, records []models.PairRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// ReadLines reads non-empty, non-comment lines from a text file.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// WriteLines writes one string per line.
func WriteLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
