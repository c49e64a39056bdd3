// Package store persists extracted patient records: the JSON records file
// handed from extract to classify, and the workbook extraction cache.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"clinic-etl/internal/models"
)

// WriteRecords writes records to path as a JSON object keyed by patient id.
func WriteRecords(path string, records []models.PatientRecord) error {
	byID := make(map[string]models.PatientRecord, len(records))
	for _, rec := range records {
		byID[strconv.Itoa(rec.ID)] = rec
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(byID); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write records %s: %w", path, err)
	}
	return nil
}

// ReadRecords reads a records file back, ordered by patient id.
func ReadRecords(path string) ([]models.PatientRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records %s: %w", path, err)
	}

	var byID map[string]models.PatientRecord
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, fmt.Errorf("failed to parse records %s: %w", path, err)
	}

	records := make([]models.PatientRecord, 0, len(byID))
	for key, rec := range byID {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid patient id %q in %s", key, path)
		}
		rec.ID = id
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
