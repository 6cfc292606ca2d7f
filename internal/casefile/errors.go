package casefile

import "errors"

var (
	// ErrParse marks a file whose bytes are not a JSON case object.
	ErrParse = errors.New("malformed case file")
	// ErrMissingField marks a parseable file without a required field.
	ErrMissingField = errors.New("missing required field")
	// ErrNoDate marks a case with no date_issued, dated filename, or case_date.
	ErrNoDate = errors.New("no resolvable issue date")
)
