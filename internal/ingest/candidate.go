package ingest

import (
	"encoding/json"
	"strconv"

	"github.com/chronoline/backend/internal/types"
)

// CandidateEvent is a validated, typed view of one loosely-structured
// candidate record. It is transient: produced for a single ingestion
// attempt and discarded afterwards.
type CandidateEvent struct {
	Title            string
	UnixSeconds      int64
	UnixNanos        int32
	Precision        types.PrecisionLevel
	Latitude         float64
	Longitude        float64
	Category         string
	Description      *string
	ImportanceScore  int
	ImageURL         *string
	LocationName     *string
	UncertaintyRange *string

	// Sources keeps the raw elements; each is re-validated individually at
	// insert time so one bad citation never sinks the event.
	Sources []any
}

// CandidateSource is a validated, typed view of one candidate citation.
type CandidateSource struct {
	URL              *string
	Title            *string
	SourceType       types.SourceKind
	Citation         *string
	CredibilityScore int
}

const defaultScore = 50

// coerceFloat accepts JSON numbers, Go numerics and numeric strings.
func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// coerceInt accepts JSON numbers, Go numerics (truncating floats) and
// integer strings.
func coerceInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		return int64(x), true
	case float32:
		return int64(x), true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		if f, err := x.Float64(); err == nil {
			return int64(f), true
		}
		return 0, false
	case string:
		i, err := strconv.ParseInt(x, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func coerceString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// optString pulls a non-empty string field out of a raw record.
func optString(rec map[string]any, key string) *string {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
