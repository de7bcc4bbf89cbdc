package ingest

import (
	"fmt"
	"strings"
)

// Stats is the run-scoped counters record: the only externally observable
// result of a batch run. One instance per run, never shared between runs.
type Stats struct {
	EventsCreated  int      `json:"events_created"`
	SourcesCreated int      `json:"sources_created"`
	EventsSkipped  int      `json:"events_skipped"`
	ImageFallbacks int      `json:"image_fallbacks"`
	Errors         []string `json:"errors"`
}

func NewStats() *Stats {
	return &Stats{Errors: []string{}}
}

func (s *Stats) addError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// Summary renders the stats for human consumption. The full error list is
// retained on the struct; the summary shows at most maxErrors entries plus
// a remainder count.
func (s *Stats) Summary(maxErrors int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "events created: %d, sources created: %d, events skipped: %d, image fallbacks: %d, errors: %d",
		s.EventsCreated, s.SourcesCreated, s.EventsSkipped, s.ImageFallbacks, len(s.Errors))
	if len(s.Errors) == 0 || maxErrors <= 0 {
		return b.String()
	}
	shown := s.Errors
	if len(shown) > maxErrors {
		shown = shown[:maxErrors]
	}
	for _, e := range shown {
		fmt.Fprintf(&b, "\n  - %s", e)
	}
	if rest := len(s.Errors) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n  ... and %d more", rest)
	}
	return b.String()
}
