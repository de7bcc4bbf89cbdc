package ingest

import (
	"errors"
	"strings"
)

var (
	// ErrStructural indicates a malformed candidate: missing field, wrong
	// type, out-of-range value, unknown enum member. Nothing was written.
	ErrStructural = errors.New("ingest structural reject")
	// ErrReferential indicates the asserted category is not in the registry.
	// Nothing was written; logged distinctly because it means producer and
	// registry have drifted, not that the input is malformed.
	ErrReferential = errors.New("ingest referential reject")
	// ErrPersistence indicates the per-event unit of work failed and was
	// rolled back in full.
	ErrPersistence = errors.New("ingest persistence reject")
)

// StructuralError tags a reject reason as a structural failure.
func StructuralError(reason string) error {
	return errors.Join(ErrStructural, errors.New(strings.TrimSpace(reason)))
}

// ReferentialError tags a reject reason as a registry drift failure.
func ReferentialError(reason string) error {
	return errors.Join(ErrReferential, errors.New(strings.TrimSpace(reason)))
}

// PersistenceError wraps the store error behind a persistence reject.
func PersistenceError(err error) error {
	return errors.Join(ErrPersistence, err)
}

// Reason extracts the human-readable part of a reject error, without the
// taxonomy tag prefix.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, tag := range []string{ErrStructural.Error(), ErrReferential.Error(), ErrPersistence.Error()} {
		msg = strings.TrimPrefix(msg, tag+"\n")
	}
	return msg
}
