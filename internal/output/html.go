package output

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"catrepo/internal/types"
)

const highlightStyleName = "github"

const dumpPageTemplateText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Root}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
pre.tree { background: #f6f8fa; padding: 1em; overflow-x: auto; }
section.file { margin-bottom: 2em; }
section.file h2 { font-size: 1em; font-family: monospace; border-bottom: 1px solid #ddd; }
section.file .meta { color: #57606a; font-size: 0.85em; }
section.file pre { overflow-x: auto; }
footer { color: #57606a; border-top: 1px solid #ddd; padding-top: 1em; }
</style>
</head>
<body>
<h1>{{.Root}}</h1>
{{if .Tree}}<pre class="tree">{{.Tree}}</pre>{{end}}
{{range .Sections}}<section class="file">
<h2>{{.Path}}</h2>
<p class="meta">{{.Meta}}</p>
{{if .Truncated}}<p class="meta">{{.Notice}}</p>{{else}}{{.Body}}{{end}}
</section>
{{end}}<footer>{{.Summary}}</footer>
</body>
</html>
`

var dumpPageTemplate = template.Must(template.New("dump").Parse(dumpPageTemplateText))

type htmlFileSection struct {
	Path      string
	Meta      string
	Body      template.HTML
	Truncated bool
	Notice    string
}

type htmlPageData struct {
	Root     string
	Tree     string
	Sections []htmlFileSection
	Summary  string
}

// renderHTML serializes the dump as a standalone HTML page with the tree view
// in a preformatted block and every file section syntax-highlighted.
func renderHTML(document types.DumpDocument) (string, error) {
	sections := make([]htmlFileSection, 0, len(document.Files))
	for _, entry := range document.Files {
		section := htmlFileSection{
			Path:      entry.Path,
			Meta:      fmt.Sprintf("%s, %d tokens", entry.Size, entry.Tokens),
			Truncated: entry.Truncated,
			Notice:    truncatedContentNotice,
		}
		if !entry.Truncated {
			highlighted, highlightError := highlightContent(entry.Path, entry.Content)
			if highlightError != nil {
				escaped := template.HTMLEscapeString(entry.Content)
				highlighted = "<pre>" + escaped + "</pre>"
			}
			section.Body = template.HTML(highlighted)
		}
		sections = append(sections, section)
	}

	summary := fmt.Sprintf(textSummaryFormat, document.Summary.TotalFiles, document.Summary.TotalSize, document.Summary.TotalTokens)
	pageData := htmlPageData{
		Root:     document.Root,
		Tree:     document.Tree,
		Sections: sections,
		Summary:  summary,
	}

	var buffer bytes.Buffer
	if executeError := dumpPageTemplate.Execute(&buffer, pageData); executeError != nil {
		return "", fmt.Errorf("render HTML dump: %w", executeError)
	}
	return buffer.String(), nil
}

// highlightContent renders content as highlighted HTML, picking the lexer from
// the file name and falling back to the plain-text lexer.
func highlightContent(relativePath, content string) (string, error) {
	lexer := lexers.Match(filepath.Base(relativePath))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, tokeniseError := lexer.Tokenise(nil, content)
	if tokeniseError != nil {
		return "", tokeniseError
	}

	formatter := chromahtml.New()
	var buffer bytes.Buffer
	if formatError := formatter.Format(&buffer, style, iterator); formatError != nil {
		return "", formatError
	}
	return buffer.String(), nil
}
