package extract

import (
	"regexp"
	"strings"
)

var (
	scriptRe  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRe   = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe     = regexp.MustCompile(`(?s)<[^>]+>`)
	spaceRe   = regexp.MustCompile(`\s+`)

	pTagRe           = regexp.MustCompile(`(?i)<p[\s>]`)
	frameworkRootRe  = regexp.MustCompile(`(?i)<(?:div|main)[^>]+id=["'](?:root|app|__next|___gatsby)["']`)
	frameworkStateRe = regexp.MustCompile(`window\.__INITIAL_STATE__|__NEXT_DATA__|window\.__NUXT__`)
)

// CleanHTML strips scripts, styles, comments, and tags, then collapses
// whitespace and caps the result at maxChars (0 means no cap). The output
// is the text content fed to the LLM extractor.
func CleanHTML(html string, maxChars int) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = commentRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return text
}

// IsJSShell reports whether a page is an empty JavaScript shell: a
// framework root marker alongside near-empty body text. Such pages need
// headless rendering before anything can be extracted.
func IsJSShell(html string) bool {
	if !frameworkRootRe.MatchString(html) && !frameworkStateRe.MatchString(html) {
		return false
	}
	paragraphs := len(pTagRe.FindAllString(html, 4))
	bodyText := CleanHTML(html, 0)
	return paragraphs < 3 || len(bodyText) < 500
}
