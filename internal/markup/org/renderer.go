// Package org renders Emacs org-mode documents. Org is converted to
// GitHub-flavoured markdown first; plaintext and HTML outputs derive
// from that conversion.
package org

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/markup"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// Renderer handles org-mode documents.
type Renderer struct{}

// New creates a new org renderer.
func New() *Renderer {
	return &Renderer{}
}

// Format returns the markup format this renderer handles.
func (r *Renderer) Format() domain.MarkupFormat {
	return domain.FormatOrg
}

var (
	heading    = regexp.MustCompile(`^(\*+) (.*)$`)
	beginSrc   = regexp.MustCompile(`(?i)^#\+begin_(src|example)\s*(\S*)`)
	endSrc     = regexp.MustCompile(`(?i)^#\+end_(src|example)`)
	directive  = regexp.MustCompile(`^#\+\S+`)
	descLink   = regexp.MustCompile(`\[\[([^\]\[]+)\]\[([^\]\[]+)\]\]`)
	bareLink   = regexp.MustCompile(`\[\[([^\]\[]+)\]\]`)
	verbatim   = regexp.MustCompile(`[=~]([^=~\n]+)[=~]`)
	boldSpan   = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicSpan = regexp.MustCompile(`(^|[\s(])/([^/\n]+)/`)
)

// ToGFM converts org markup to GitHub-flavoured markdown.
func (r *Renderer) ToGFM(_ context.Context, text string) (string, error) {
	var out []string
	inBlock := false

	for _, line := range strings.Split(text, "\n") {
		if m := beginSrc.FindStringSubmatch(line); m != nil && !inBlock {
			inBlock = true
			out = append(out, "```"+m[2])
			continue
		}
		if endSrc.MatchString(line) && inBlock {
			inBlock = false
			out = append(out, "```")
			continue
		}
		if inBlock {
			out = append(out, line)
			continue
		}
		if directive.MatchString(line) {
			continue // keyword lines (#+TITLE: etc) have no GFM counterpart
		}

		if m := heading.FindStringSubmatch(line); m != nil {
			out = append(out, strings.Repeat("#", len(m[1]))+" "+inlineToGFM(m[2]))
			continue
		}

		out = append(out, inlineToGFM(line))
	}

	return strings.Join(out, "\n"), nil
}

// ToPlain converts org markup to plain text.
func (r *Renderer) ToPlain(ctx context.Context, text string) (string, error) {
	gfm, err := r.ToGFM(ctx, text)
	if err != nil {
		return "", err
	}
	return markup.StripGFM(gfm), nil
}

// ToHTML converts org markup to a standalone HTML document.
func (r *Renderer) ToHTML(ctx context.Context, text string, withTOC bool) (string, error) {
	gfm, err := r.ToGFM(ctx, text)
	if err != nil {
		return "", err
	}
	return markup.RenderHTMLDocument(gfm, withTOC), nil
}

// inlineToGFM converts inline org spans on one line.
func inlineToGFM(line string) string {
	line = descLink.ReplaceAllString(line, "[$2]($1)")
	line = bareLink.ReplaceAllString(line, "$1")
	line = verbatim.ReplaceAllString(line, "`$1`")
	line = boldSpan.ReplaceAllString(line, "**$1**")
	line = italicSpan.ReplaceAllString(line, "$1*$2*")
	return line
}
