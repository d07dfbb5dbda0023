package markup

import (
	"regexp"
	"strings"
)

var (
	codeBlock    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode   = regexp.MustCompile("`[^`]+`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquote   = regexp.MustCompile(`(?m)^>\s*`)
	rule         = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// StripGFM removes GitHub-flavoured markdown formatting, leaving plain
// text. List markers stay: plaintext doc outputs keep their bullets.
func StripGFM(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = rule.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")

	content = multiNewline.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
