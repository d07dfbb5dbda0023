package domain

import "errors"

// Domain errors represent release validation failures.
// Every one of them is fatal: validation aborts at the first violation,
// nothing is aggregated and nothing is retried. Release packaging must
// never proceed on inconsistent input.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Manifest parsing errors.

	// ErrUnknownFlag indicates a flag name outside the fixed vocabulary (v, doc, toc).
	ErrUnknownFlag = errors.New("unknown flag")

	// ErrFileNotFound indicates an input path that is not an existing regular file.
	ErrFileNotFound = errors.New("input file not found")

	// ErrDuplicateFile indicates a path listed more than once in the manifest.
	// Duplicate listing is an error, not a merge.
	ErrDuplicateFile = errors.New("duplicate input file")

	// Consistency check errors.

	// ErrInvalidDocExtension indicates a doc-flagged file whose extension
	// is neither org nor md.
	ErrInvalidDocExtension = errors.New("doc file must have org or md extension")

	// ErrDuplicateDocStem indicates two doc-flagged files sharing a stem.
	// Both would render to the same derived output paths.
	ErrDuplicateDocStem = errors.New("doc files share a stem")

	// ErrDocOutputCollision indicates an input file that a doc rendering
	// output would overwrite.
	ErrDocOutputCollision = errors.New("doc output would overwrite input file")

	// ErrTocRequiresDoc indicates a toc-flagged file without the doc flag.
	ErrTocRequiresDoc = errors.New("toc flag requires doc flag")

	// ErrVersionPatternMissing indicates a v-flagged file with no
	// version-assignment line.
	ErrVersionPatternMissing = errors.New("no version assignment found")

	// ErrInvalidBumpValue indicates a bump instruction containing whitespace.
	ErrInvalidBumpValue = errors.New("invalid bump value")

	// Publishing errors.

	// ErrPublisherUnavailable indicates the release publisher is not configured.
	ErrPublisherUnavailable = errors.New("publisher unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
