package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"rockbot/internal/models"
	"rockbot/internal/providers"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	colID      = "id"
	colName    = "name"
	colAliases = "aliases"
	colImages  = "images"

	listSeparator = "|"
)

var defaultedProperties = []string{models.PropHardness, models.PropLuster, models.PropStreak, models.PropCategory}

// feedRow is one record of the feed before validation.
type feedRow struct {
	fields  map[string]string
	aliases []string
	images  []string
}

// ParseCSV reads a spreadsheet export: a header row, then one rock per line with
// pipe-separated aliases and images. Any extra column becomes a property.
func ParseCSV(data []byte, logger providers.Logger) ([]models.RockEntry, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: invalid csv header: %v", ErrFeedUnavailable, err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	var entries []models.RockEntry
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: invalid csv record: %v", ErrFeedUnavailable, err)
		}

		row := feedRow{fields: make(map[string]string, len(header))}
		for i, col := range header {
			if i >= len(record) || col == "" {
				continue
			}
			switch col {
			case colAliases:
				row.aliases = splitList(record[i])
			case colImages:
				row.images = splitList(record[i])
			default:
				row.fields[col] = record[i]
			}
		}
		if entry, ok := buildEntry(row, len(entries)+1, logger); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// ParseJSON reads a top-level array of objects using the CSV column names.
// aliases and images may be arrays or pipe-separated strings.
func ParseJSON(data []byte, logger providers.Logger) ([]models.RockEntry, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json feed", ErrFeedUnavailable)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: json feed must be an array", ErrFeedUnavailable)
	}

	var entries []models.RockEntry
	root.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			logger.Warnf(providers.TypeFeed, "Skipping non-object feed item: %s", item.Raw)
			return true
		}
		row := feedRow{fields: make(map[string]string)}
		item.ForEach(func(key, value gjson.Result) bool {
			col := strings.ToLower(strings.TrimSpace(key.String()))
			switch col {
			case colAliases:
				row.aliases = jsonList(value)
			case colImages:
				row.images = jsonList(value)
			default:
				row.fields[col] = value.String()
			}
			return true
		})
		if entry, ok := buildEntry(row, len(entries)+1, logger); ok {
			entries = append(entries, entry)
		}
		return true
	})
	return entries, nil
}

// buildEntry validates a row. Rows without a name are blank and skipped
// silently; rows without images are dropped with a warning. A missing or
// malformed id falls back to the entry's position.
func buildEntry(row feedRow, seq int, logger providers.Logger) (models.RockEntry, bool) {
	name := strings.TrimSpace(row.fields[colName])
	if name == "" {
		return models.RockEntry{}, false
	}
	if len(row.images) == 0 {
		logger.Warnf(providers.TypeFeed, "Rock %q has no images; skipping", name)
		return models.RockEntry{}, false
	}

	id := seq
	if raw := strings.TrimSpace(row.fields[colID]); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			id = parsed
		}
	}

	props := make(map[string]string, len(row.fields))
	for col, val := range row.fields {
		if col == colID || col == colName {
			continue
		}
		if val = strings.TrimSpace(val); val != "" {
			props[col] = val
		}
	}
	for _, p := range defaultedProperties {
		if _, ok := props[p]; !ok {
			props[p] = models.UnknownProperty
		}
	}

	aliases := row.aliases
	if aliases == nil {
		aliases = []string{}
	}
	return models.RockEntry{
		ID:         id,
		Name:       name,
		Aliases:    aliases,
		Images:     row.images,
		Properties: props,
	}, true
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func jsonList(value gjson.Result) []string {
	if !value.IsArray() {
		return splitList(value.String())
	}
	var out []string
	value.ForEach(func(_, v gjson.Result) bool {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}
