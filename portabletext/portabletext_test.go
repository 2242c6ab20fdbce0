package portabletext

import (
	"encoding/json"
	"strings"
	"testing"
)

const sampleBody = `[
  {"_type":"block","_key":"b1","style":"h2","children":[{"_type":"span","text":"Symptoms","marks":[]}],"markDefs":[]},
  {"_type":"block","_key":"b2","style":"normal","markDefs":[{"_key":"l1","_type":"link","href":"https://example.com"}],
   "children":[
     {"_type":"span","text":"A ","marks":[]},
     {"_type":"span","text":"blue screen","marks":["strong"]},
     {"_type":"span","text":" means ","marks":[]},
     {"_type":"span","text":"trouble","marks":["l1"]}
   ]},
  {"_type":"block","_key":"b3","style":"normal","listItem":"bullet","level":1,"children":[{"_type":"span","text":"Overheating"}]},
  {"_type":"block","_key":"b4","style":"normal","listItem":"bullet","level":1,"children":[{"_type":"span","text":"Bad RAM"}]},
  {"_type":"block","_key":"b5","style":"normal","listItem":"number","level":1,"children":[{"_type":"span","text":"Reboot"}]},
  {"_type":"block","_key":"b6","style":"normal","listItem":"number","level":1,"children":[{"_type":"span","text":"Run diagnostics"}]},
  {"_type":"image","_key":"i1","url":"https://cdn.example.com/bsod.png","alt":"BSOD"},
  {"_type":"block","_key":"b7","style":"normal","children":[{"_type":"span","text":"Done."}]}
]`

func sampleBlocks(t *testing.T) []Block {
	t.Helper()
	var blocks []Block
	if err := json.Unmarshal([]byte(sampleBody), &blocks); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	return blocks
}

func TestPlainText(t *testing.T) {
	got := PlainText(sampleBlocks(t))
	want := "Symptoms\n\nA blue screen means trouble\n\nOverheating\n\nBad RAM\n\nReboot\n\nRun diagnostics\n\nDone."
	if got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestPlainTextEmpty(t *testing.T) {
	if got := PlainText(nil); got != "" {
		t.Errorf("PlainText(nil) = %q, want empty", got)
	}
}

func TestMarkdown(t *testing.T) {
	got := Markdown(sampleBlocks(t))
	for _, want := range []string{
		"## Symptoms\n",
		"A **blue screen** means [trouble](<https://example.com>)\n",
		"- Overheating\n- Bad RAM\n",
		"1. Reboot\n2. Run diagnostics\n",
		"![BSOD](<https://cdn.example.com/bsod.png>)\n",
		"Done.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Markdown missing %q in:\n%s", want, got)
		}
	}
}

func TestMarkdownEscapesText(t *testing.T) {
	blocks := []Block{{
		Type:     "block",
		Style:    "normal",
		Children: []Span{{Type: "span", Text: "2 * 3 <b>"}},
	}}
	got := Markdown(blocks)
	if got != "2 \\* 3 \\<b\\>\n" {
		t.Errorf("Markdown = %q", got)
	}
}

func TestMarkdownNestedList(t *testing.T) {
	blocks := []Block{
		{Type: "block", ListItem: "number", Level: 1, Children: []Span{{Text: "Back up"}}},
		{Type: "block", ListItem: "bullet", Level: 2, Children: []Span{{Text: "photos"}}},
		{Type: "block", ListItem: "number", Level: 1, Children: []Span{{Text: "Reinstall"}}},
	}
	got := Markdown(blocks)
	want := "1. Back up\n    - photos\n2. Reinstall\n"
	if got != want {
		t.Errorf("Markdown = %q, want %q", got, want)
	}
}

func TestHTML(t *testing.T) {
	got, err := HTML(sampleBlocks(t))
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	html := string(got)
	for _, want := range []string{
		"<h2>Symptoms</h2>",
		"<strong>blue screen</strong>",
		`<a href="https://example.com">trouble</a>`,
		"<li>Overheating</li>",
		"<ol>",
		`<img src="https://cdn.example.com/bsod.png" alt="BSOD">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q in:\n%s", want, html)
		}
	}
}

func TestHTMLEscapesMarkup(t *testing.T) {
	blocks := []Block{{
		Type:     "block",
		Children: []Span{{Text: "<script>alert(1)</script>"}},
	}}
	got, err := HTML(blocks)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if strings.Contains(string(got), "<script>") {
		t.Errorf("HTML leaked raw markup: %s", got)
	}
}
