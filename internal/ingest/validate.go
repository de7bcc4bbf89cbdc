package ingest

import (
	"fmt"

	"github.com/chronoline/backend/internal/types"
)

// ValidateEvent checks one raw candidate record against the full admission
// contract, including every nested source. It is the producer-facing
// pre-submission check: the first invalid source rejects the whole event,
// naming its index. Returns ok plus a reject reason.
func ValidateEvent(raw any) (bool, string) {
	ev, err := parseEvent(raw)
	if err != nil {
		return false, Reason(err)
	}
	for i, src := range ev.Sources {
		if _, err := parseSource(src, fmt.Sprintf("sources[%d]", i)); err != nil {
			return false, Reason(err)
		}
	}
	return true, ""
}

// ValidateSource checks one raw candidate source; context names it in the
// reject reason.
func ValidateSource(raw any, context string) (bool, string) {
	if context == "" {
		context = "source"
	}
	if _, err := parseSource(raw, context); err != nil {
		return false, Reason(err)
	}
	return true, ""
}

// parseEvent runs the ordered event-level checks and produces the typed
// candidate. Source elements are carried raw: their individual validation
// happens at insert time, where a failure is soft and best-effort, or up
// front via ValidateEvent for producers that want the strict check.
func parseEvent(raw any) (*CandidateEvent, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil, StructuralError("event must be a record")
	}

	// Required-field presence, in contract order.
	titleRaw, ok := rec["title"]
	if !ok || titleRaw == nil {
		return nil, StructuralError("missing required field: title")
	}
	title, ok := coerceString(titleRaw)
	if !ok || title == "" {
		return nil, StructuralError("missing required field: title")
	}
	if _, ok := rec["unix_seconds"]; !ok {
		return nil, StructuralError("missing required field: unix_seconds")
	}
	if _, ok := rec["precision_level"]; !ok {
		return nil, StructuralError("missing required field: precision_level")
	}
	if v, ok := rec["latitude"]; !ok || v == nil {
		return nil, StructuralError("missing required field: latitude (all events must have geo point)")
	}
	if v, ok := rec["longitude"]; !ok || v == nil {
		return nil, StructuralError("missing required field: longitude (all events must have geo point)")
	}
	catRaw, ok := rec["category"]
	if !ok || catRaw == nil {
		return nil, StructuralError("missing required field: category (must be a leaf category)")
	}
	category, ok := coerceString(catRaw)
	if !ok {
		return nil, StructuralError("category must be a string")
	}

	// Coordinate coercion, then range. Non-numeric and out-of-range are
	// distinct reject reasons.
	lat, ok := coerceFloat(rec["latitude"])
	if !ok {
		return nil, StructuralError("latitude must be numeric")
	}
	if lat < -90 || lat > 90 {
		return nil, StructuralError("latitude must be between -90 and 90")
	}
	lon, ok := coerceFloat(rec["longitude"])
	if !ok {
		return nil, StructuralError("longitude must be numeric")
	}
	if lon < -180 || lon > 180 {
		return nil, StructuralError("longitude must be between -180 and 180")
	}

	precStr, _ := coerceString(rec["precision_level"])
	precision := types.PrecisionLevel(precStr)
	if !precision.Valid() {
		return nil, StructuralError(fmt.Sprintf("invalid precision_level: %v", rec["precision_level"]))
	}

	// No range limit on the timestamp: deep past and far future are data.
	unixSeconds, ok := coerceInt(rec["unix_seconds"])
	if !ok {
		return nil, StructuralError("unix_seconds must be numeric")
	}

	var unixNanos int32
	if v, present := rec["unix_nanos"]; present && v != nil {
		n, ok := coerceInt(v)
		if !ok {
			return nil, StructuralError("unix_nanos must be numeric")
		}
		unixNanos = int32(n)
	}

	importance := defaultScore
	if v, present := rec["importance_score"]; present && v != nil {
		score, ok := coerceInt(v)
		if !ok {
			return nil, StructuralError("importance_score must be numeric")
		}
		if score < 0 || score > 100 {
			return nil, StructuralError("importance_score must be between 0 and 100")
		}
		importance = int(score)
	}

	var sources []any
	if v, present := rec["sources"]; present && v != nil {
		list, ok := v.([]any)
		if !ok {
			return nil, StructuralError("sources must be a list")
		}
		sources = list
	}

	return &CandidateEvent{
		Title:            title,
		UnixSeconds:      unixSeconds,
		UnixNanos:        unixNanos,
		Precision:        precision,
		Latitude:         lat,
		Longitude:        lon,
		Category:         category,
		Description:      optString(rec, "description"),
		ImportanceScore:  importance,
		ImageURL:         optString(rec, "image_url"),
		LocationName:     optString(rec, "location_name"),
		UncertaintyRange: optString(rec, "uncertainty_range"),
		Sources:          sources,
	}, nil
}

// parseSource runs the source-level checks and produces the typed candidate
// source, applying the default kind and credibility.
func parseSource(raw any, context string) (*CandidateSource, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil, StructuralError(context + " must be a record")
	}

	url := optString(rec, "url")
	title := optString(rec, "title")
	if url == nil && title == nil {
		return nil, StructuralError(context + ": must have 'url' or 'title'")
	}

	kind := types.SourceOther
	if v, present := rec["source_type"]; present && v != nil {
		s, _ := coerceString(v)
		kind = types.SourceKind(s)
		if !kind.Valid() {
			return nil, StructuralError(fmt.Sprintf("%s: invalid source_type: %v", context, v))
		}
	}

	credibility := defaultScore
	if v, present := rec["credibility_score"]; present && v != nil {
		score, ok := coerceInt(v)
		if !ok {
			return nil, StructuralError(context + ": credibility_score must be numeric")
		}
		if score < 0 || score > 100 {
			return nil, StructuralError(context + ": credibility_score must be 0-100")
		}
		credibility = int(score)
	}

	return &CandidateSource{
		URL:              url,
		Title:            title,
		SourceType:       kind,
		Citation:         optString(rec, "citation"),
		CredibilityScore: credibility,
	}, nil
}
