// Package readme turns README Markdown into the structural pieces the
// analyzer looks at: headings, paragraphs, fenced code blocks and badges.
package readme

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// htmlBadgeRegex matches <a href="..."><img src="..." alt="..."></a>.
// It covers the standard pattern, not every HTML variation.
var htmlBadgeRegex = regexp.MustCompile(`<a\s+href="([^"]+)"[^>]*>\s*<img\s+src="([^"]+)"(?:\s+alt="([^"]*)")?[^>]*>\s*</a>`)

// Heading is a Markdown ATX or setext heading.
type Heading struct {
	Level int
	Text  string
}

// Document is a parsed README.
type Document struct {
	Headings   []Heading
	Paragraphs []string // top-level and quoted paragraphs with badges, images and HTML removed
	Blocks     []models.CodeBlock
	Badges     []models.Badge
}

// Parse parses README content. It never fails; unparseable input yields
// an empty Document.
func Parse(content []byte) *Document {
	doc := &Document{}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(content))

	var trail []Heading

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			h := Heading{Level: node.Level, Text: collapseSpace(inlineText(node, content))}
			doc.Headings = append(doc.Headings, h)
			for len(trail) > 0 && trail[len(trail)-1].Level >= h.Level {
				trail = trail[:len(trail)-1]
			}
			trail = append(trail, h)

		case *ast.Paragraph:
			if topLevel(node) {
				if p := collapseSpace(inlineText(node, content)); p != "" {
					doc.Paragraphs = append(doc.Paragraphs, p)
				}
			}

		case *ast.FencedCodeBlock:
			doc.Blocks = append(doc.Blocks, models.CodeBlock{
				Language: fenceLanguage(node, content),
				Body:     blockBody(node, content),
				Section:  headingTexts(trail),
			})
			return ast.WalkSkipChildren, nil

		case *ast.Link:
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if img, ok := child.(*ast.Image); ok {
					badge := models.Badge{
						AltText:   inlineText(img, content),
						ImageURL:  string(img.Destination),
						TargetURL: string(node.Destination),
					}
					normalizeBadge(&badge)
					doc.Badges = append(doc.Badges, badge)
				}
			}
		}
		return ast.WalkContinue, nil
	})

	for _, match := range htmlBadgeRegex.FindAllSubmatch(content, -1) {
		badge := models.Badge{
			TargetURL: string(match[1]),
			ImageURL:  string(match[2]),
			AltText:   string(match[3]),
		}
		normalizeBadge(&badge)
		doc.Badges = append(doc.Badges, badge)
	}

	return doc
}

// CodeBlocks returns only the fenced code blocks of content.
func CodeBlocks(content []byte) []models.CodeBlock {
	return Parse(content).Blocks
}

// inlineText concatenates the visible text below n. Images and raw HTML
// contribute nothing, so a paragraph made only of badges comes out empty.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch v := c.(type) {
			case *ast.Text:
				buf.Write(v.Value(source))
				if v.SoftLineBreak() || v.HardLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(v.Value)
			case *ast.AutoLink:
				buf.Write(v.Label(source))
			case *ast.Image, *ast.RawHTML:
				// not visible prose
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return buf.String()
}

// topLevel reports whether a paragraph sits directly in the document or in
// a blockquote that does. Quoted taglines count as prose.
func topLevel(n *ast.Paragraph) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	if parent.Kind() == ast.KindBlockquote {
		parent = parent.Parent()
	}
	return parent != nil && parent.Kind() == ast.KindDocument
}

func fenceLanguage(n *ast.FencedCodeBlock, source []byte) string {
	lang := n.Language(source)
	if lang == nil {
		return ""
	}
	// Info strings like "bash title=setup.sh" keep only the language.
	fields := strings.Fields(string(lang))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Trim(fields[0], "{}."))
}

func blockBody(n *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	body := strings.ReplaceAll(buf.String(), "\r\n", "\n")
	return strings.TrimSuffix(body, "\n")
}

func headingTexts(trail []Heading) []string {
	if len(trail) == 0 {
		return nil
	}
	out := make([]string, len(trail))
	for i, h := range trail {
		out[i] = h.Text
	}
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalizeBadge(b *models.Badge) {
	if u, err := url.Parse(b.ImageURL); err == nil {
		b.HostImage = u.Host
	}
	if u, err := url.Parse(b.TargetURL); err == nil {
		b.HostTarget = u.Host
	}
}
