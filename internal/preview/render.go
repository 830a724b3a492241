// Package preview assembles generated websites into standalone documents and
// keeps the most recent results available for the preview surfaces.
package preview

import (
	"html/template"
	"strings"

	"sitegen/internal/types"
)

// WindowTitle is the document title used for the pop-out preview window.
const WindowTitle = "Website Preview"

// CSP isolates a rendered preview into an opaque origin while still letting its script run.
const CSP = "sandbox allow-scripts allow-forms allow-modals allow-popups"

var documentTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
{{- if .Title}}
<title>{{.Title}}</title>
{{- end}}
<base href="about:blank">
<style>{{.CSS}}</style>
</head>
<body>
{{.HTML}}
<script>{{.JS}}</script>
</body>
</html>
`))

type document struct {
	Title string
	CSS   template.CSS
	HTML  template.HTML
	JS    template.JS
}

// Render builds one self-contained HTML document embedding the result's CSS in a
// style block and its JS in a script block after the HTML body fragment. The
// generated content is inserted verbatim; title is escaped and omitted when empty.
func Render(result types.GenerationResult, title string) (string, error) {
	var b strings.Builder
	err := documentTemplate.Execute(&b, document{
		Title: title,
		CSS:   template.CSS(result.CSSContent),
		HTML:  template.HTML(result.HTMLContent),
		JS:    template.JS(result.JSContent),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
