package markup

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// tocHeading is one heading collected while rendering, used for the
// table of contents.
type tocHeading struct {
	level int
	text  string
	slug  string
}

var (
	headingLine = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	listItem    = regexp.MustCompile(`^\s*[-*+]\s+(.*)$`)
	boldSpan    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicSpan  = regexp.MustCompile(`\*([^*]+)\*`)
	codeSpan    = regexp.MustCompile("`([^`]+)`")
	linkSpan    = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	nonSlug     = regexp.MustCompile(`[^a-z0-9]+`)
)

// RenderHTMLDocument converts a GFM body into a standalone HTML document.
// When withTOC is set, a table of contents built from the headings is
// inserted before the body.
func RenderHTMLDocument(gfm string, withTOC bool) string {
	body, heads := renderBody(gfm)

	title := ""
	if len(heads) > 0 {
		title = heads[0].text
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(title))
	sb.WriteString("</head>\n<body>\n")
	if withTOC {
		sb.WriteString(renderTOC(heads))
	}
	sb.WriteString(body)
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// renderBody converts GFM to HTML line by line, collecting headings.
func renderBody(gfm string) (string, []tocHeading) {
	var (
		sb        strings.Builder
		heads     []tocHeading
		inFence   bool
		inList    bool
		paragraph []string
	)

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		fmt.Fprintf(&sb, "<p>%s</p>\n", inline(strings.Join(paragraph, " ")))
		paragraph = nil
	}
	closeList := func() {
		if inList {
			sb.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(gfm, "\n") {
		if strings.HasPrefix(line, "```") {
			flushParagraph()
			closeList()
			if inFence {
				sb.WriteString("</code></pre>\n")
			} else {
				sb.WriteString("<pre><code>")
			}
			inFence = !inFence
			continue
		}
		if inFence {
			sb.WriteString(html.EscapeString(line))
			sb.WriteString("\n")
			continue
		}

		if m := headingLine.FindStringSubmatch(line); m != nil {
			flushParagraph()
			closeList()
			level := len(m[1])
			text := strings.TrimSpace(m[2])
			slug := slugify(text)
			heads = append(heads, tocHeading{level: level, text: text, slug: slug})
			fmt.Fprintf(&sb, "<h%d id=\"%s\">%s</h%d>\n", level, slug, inline(text), level)
			continue
		}

		if m := listItem.FindStringSubmatch(line); m != nil {
			flushParagraph()
			if !inList {
				sb.WriteString("<ul>\n")
				inList = true
			}
			fmt.Fprintf(&sb, "<li>%s</li>\n", inline(m[1]))
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushParagraph()
			closeList()
			continue
		}

		closeList()
		paragraph = append(paragraph, strings.TrimSpace(line))
	}

	flushParagraph()
	closeList()
	if inFence {
		sb.WriteString("</code></pre>\n")
	}

	return sb.String(), heads
}

// inline converts inline GFM spans to HTML on an escaped line.
func inline(text string) string {
	text = html.EscapeString(text)
	text = linkSpan.ReplaceAllString(text, `<a href="$2">$1</a>`)
	text = codeSpan.ReplaceAllString(text, "<code>$1</code>")
	text = boldSpan.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicSpan.ReplaceAllString(text, "<em>$1</em>")
	return text
}

// renderTOC builds the table-of-contents nav from collected headings.
func renderTOC(heads []tocHeading) string {
	if len(heads) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<nav class=\"toc\">\n<ul>\n")
	for _, h := range heads {
		fmt.Fprintf(&sb, "<li><a href=\"#%s\">%s</a></li>\n", h.slug, html.EscapeString(h.text))
	}
	sb.WriteString("</ul>\n</nav>\n")
	return sb.String()
}

// slugify derives a heading anchor: lowercase, runs of non-alphanumerics
// collapsed to single hyphens.
func slugify(text string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}
