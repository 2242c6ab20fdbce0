// Package portabletext converts CMS rich text (Portable Text JSON blocks)
// into plain text and HTML.
package portabletext

import (
	"bytes"
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Block is a single Portable Text node. Text blocks carry Children and
// MarkDefs; image blocks carry URL and Alt (the query dereferences the asset).
type Block struct {
	Key      string    `json:"_key"`
	Type     string    `json:"_type"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`
	URL      string    `json:"url,omitempty"`
	Alt      string    `json:"alt,omitempty"`
}

// Span is an inline run of text with decorators and annotation keys.
type Span struct {
	Key   string   `json:"_key"`
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef is an annotation referenced from Span.Marks by key.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
)

// PlainText returns the text of all text blocks, blocks separated by a
// blank line.
func PlainText(blocks []Block) string {
	var parts []string
	for _, b := range blocks {
		if b.Type != "block" {
			continue
		}
		var sb strings.Builder
		for _, s := range b.Children {
			sb.WriteString(s.Text)
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n\n")
}

// HTML renders blocks as sanitized HTML. Raw HTML in span text is escaped.
func HTML(blocks []Block) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(blocks)), &buf); err != nil {
		return "", fmt.Errorf("portabletext: render: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Markdown converts blocks to CommonMark.
func Markdown(blocks []Block) string {
	var buf strings.Builder
	prevList := false
	numbers := map[int]int{}

	for _, b := range blocks {
		switch b.Type {
		case "image":
			if b.URL == "" {
				continue
			}
			closeList(&buf, &prevList, numbers)
			fmt.Fprintf(&buf, "![%s](<%s>)\n\n", escapeText(b.Alt), b.URL)
			continue
		case "block":
		default:
			continue
		}

		text := renderSpans(b)
		if b.ListItem != "" {
			level := b.Level
			if level < 1 {
				level = 1
			}
			for l := range numbers {
				if l > level {
					delete(numbers, l)
				}
			}
			indent := strings.Repeat("    ", level-1)
			if b.ListItem == "number" {
				numbers[level]++
				fmt.Fprintf(&buf, "%s%d. %s\n", indent, numbers[level], text)
			} else {
				fmt.Fprintf(&buf, "%s- %s\n", indent, text)
			}
			prevList = true
			continue
		}

		closeList(&buf, &prevList, numbers)
		if strings.TrimSpace(text) == "" {
			continue
		}
		switch b.Style {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			buf.WriteString(strings.Repeat("#", int(b.Style[1]-'0')))
			buf.WriteString(" ")
			buf.WriteString(text)
		case "blockquote":
			buf.WriteString("> ")
			buf.WriteString(text)
		default:
			buf.WriteString(text)
		}
		buf.WriteString("\n\n")
	}
	return strings.TrimRight(buf.String(), "\n") + "\n"
}

func closeList(buf *strings.Builder, open *bool, numbers map[int]int) {
	if !*open {
		return
	}
	buf.WriteString("\n")
	*open = false
	clear(numbers)
}

func renderSpans(b Block) string {
	links := make(map[string]string, len(b.MarkDefs))
	for _, d := range b.MarkDefs {
		if d.Type == "link" && d.Href != "" {
			links[d.Key] = d.Href
		}
	}

	var sb strings.Builder
	for _, s := range b.Children {
		text := escapeText(s.Text)
		if strings.TrimSpace(text) == "" {
			sb.WriteString(text)
			continue
		}
		// Markdown emphasis cannot start or end on whitespace.
		lead := text[:len(text)-len(strings.TrimLeft(text, " "))]
		trail := text[len(strings.TrimRight(text, " ")):]
		text = strings.TrimSpace(text)

		if slices.Contains(s.Marks, "code") {
			text = "`" + strings.ReplaceAll(strings.TrimSpace(s.Text), "`", "") + "`"
		}
		href := ""
		for _, m := range s.Marks {
			switch m {
			case "code":
			case "strong":
				text = "**" + text + "**"
			case "em":
				text = "*" + text + "*"
			case "strike-through":
				text = "~~" + text + "~~"
			default:
				if u, ok := links[m]; ok {
					href = u
				}
			}
		}
		if href != "" {
			text = "[" + text + "](<" + href + ">)"
		}
		sb.WriteString(lead)
		sb.WriteString(text)
		sb.WriteString(trail)
	}
	return sb.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`#`, `\#`,
	`<`, `\<`,
	`>`, `\>`,
	`~`, `\~`,
	`|`, `\|`,
	"\n", " ",
)

func escapeText(s string) string {
	return mdEscaper.Replace(s)
}
