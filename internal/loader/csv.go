package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads candidates from row-grouped tabular input. Repeated rows
// with the same title fold into one event carrying multiple sources; event
// columns are taken from the first row seen for a title. Values stay as
// strings, the validator coerces them.
//
// Expected columns: title, unix_seconds, precision_level, latitude,
// longitude, category, plus optional description, importance_score,
// image_url, uncertainty_range, location_name and the source_* columns
// (source_url, source_title, source_type, source_citation,
// credibility_score).
func LoadCSV(r io.Reader) ([]any, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	byTitle := map[string]map[string]any{}
	var order []string

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}

		title := field(row, "title")
		if title == "" {
			continue
		}

		event, seen := byTitle[title]
		if !seen {
			event = map[string]any{
				"title":   title,
				"sources": []any{},
			}
			for _, name := range []string{
				"unix_seconds", "precision_level", "latitude", "longitude",
				"category", "description", "importance_score", "image_url",
				"uncertainty_range", "location_name",
			} {
				if v := field(row, name); v != "" {
					event[name] = v
				}
			}
			byTitle[title] = event
			order = append(order, title)
		}

		if field(row, "source_url") != "" || field(row, "source_title") != "" {
			source := map[string]any{}
			for csvName, key := range map[string]string{
				"source_url":        "url",
				"source_title":      "title",
				"source_type":       "source_type",
				"source_citation":   "citation",
				"credibility_score": "credibility_score",
			} {
				if v := field(row, csvName); v != "" {
					source[key] = v
				}
			}
			event["sources"] = append(event["sources"].([]any), source)
		}
	}

	events := make([]any, 0, len(order))
	for _, title := range order {
		events = append(events, byTitle[title])
	}
	return events, nil
}

// LoadCSVFile reads candidates from a CSV file on disk.
func LoadCSVFile(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}
