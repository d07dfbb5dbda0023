// Package markup hosts the renderer registry and the conversion helpers
// shared by the format-specific renderers in the subpackages org and
// markdown. Renderers turn documentation sources into the HTML and
// plaintext outputs shipped in the release archive, and convert org
// changelog bodies to GitHub-flavoured markdown for release notes.
package markup
