package text

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExcerptLength is the number of characters shown on article cards.
const ExcerptLength = 110

// Excerpt returns the card text of an article: its summary when set,
// otherwise the first ExcerptLength characters of the content with HTML
// stripped and whitespace collapsed.
func Excerpt(summary, content string) string {
	if s := strings.TrimSpace(summary); s != "" {
		return s
	}
	return Truncate(StripHTML(content), ExcerptLength)
}

// StripHTML returns the visible text of an HTML fragment. Script and style
// bodies are dropped. Input that is not HTML comes back whitespace-collapsed.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		b.WriteString(s.Text())
		b.WriteByte(' ')
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// Block is one rendered paragraph of article content.
type Block struct {
	Heading bool
	Text    string
}

// blockSelector lists the elements rendered as their own paragraph. Nested
// matches are skipped so a <p> inside a <blockquote> is not shown twice.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre"

// Paragraphs splits article content into plain-text blocks for the detail
// page. Markup is never passed through: the editor's HTML is reduced to its
// headings and paragraphs. Content without block elements is split on blank
// lines.
func Paragraphs(content string) []Block {
	var out []Block
	if strings.Contains(content, "<") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err == nil {
			doc.Find("script, style, noscript").Remove()
			doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
				if s.ParentsFiltered(blockSelector).Length() > 0 {
					return
				}
				t := strings.Join(strings.Fields(s.Text()), " ")
				if t == "" {
					return
				}
				name := goquery.NodeName(s)
				out = append(out, Block{Heading: len(name) == 2 && name[0] == 'h', Text: t})
			})
			if len(out) > 0 {
				return out
			}
		}
	}
	for _, para := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n") {
		if t := StripHTML(para); t != "" {
			out = append(out, Block{Text: t})
		}
	}
	return out
}
