package domain

// MarkupFormat identifies a changelog/documentation markup format.
// A single document is always one format; the two are never mixed.
type MarkupFormat string

const (
	// FormatOrg is Emacs org-mode, heading marker "*".
	FormatOrg MarkupFormat = "org"
	// FormatMarkdown is GitHub-flavoured markdown, heading marker "#".
	FormatMarkdown MarkupFormat = "markdown"
)

// Marker returns the format's top-level heading prefix including the
// trailing space ("* " or "# ").
func (f MarkupFormat) Marker() string {
	if f == FormatOrg {
		return "* "
	}
	return "# "
}

// Heading is one top-level heading occurrence in a changelog document.
type Heading struct {
	// Line is the zero-based line number of the heading.
	Line int

	// Text is the raw heading line including the marker.
	Text string
}

// NotesRange is the inclusive line range of a changelog section body.
// End is either the line before the next heading, or the last line of
// the document when no next heading exists.
type NotesRange struct {
	Start int
	End   int
}

// Empty reports whether the range selects no lines.
func (r NotesRange) Empty() bool {
	return r.End < r.Start
}
