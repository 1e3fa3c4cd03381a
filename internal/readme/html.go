package readme

import (
	"bytes"
	"embed"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/ghreadme/ghreadme/internal/config"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
)

//go:embed styles/*.css
var stylesheets embed.FS

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithXHTML()),
		)
	})
	return markdownInstance
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
{{.Style}}
</style>
</head>
<body>
<article class="markdown-body">
{{.Body}}
</article>
</body>
</html>
`))

// Stylesheet returns the embedded CSS for theme.
func Stylesheet(theme config.Theme) (string, error) {
	if !config.IsValidTheme(string(theme)) {
		return "", domainErrors.ErrInvalidTheme.WithContext("theme", string(theme))
	}
	css, err := stylesheets.ReadFile("styles/" + string(theme) + ".css")
	if err != nil {
		return "", domainErrors.ErrRender.WithError(err)
	}
	return string(css), nil
}

// RenderHTML converts markdown into a standalone page styled for theme.
// Raw HTML in the markdown is not passed through.
func RenderHTML(markdown string, theme config.Theme, title, lang string) (string, error) {
	css, err := Stylesheet(theme)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := getMarkdown().Convert([]byte(markdown), &body); err != nil {
		return "", domainErrors.ErrRender.WithError(err)
	}

	if lang == "" {
		lang = string(config.DefaultLanguage)
	}

	var page bytes.Buffer
	err = pageTemplate.Execute(&page, struct {
		Lang  string
		Title string
		Style template.CSS
		Body  template.HTML
	}{
		Lang:  lang,
		Title: title,
		Style: template.CSS(css),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", domainErrors.ErrRender.WithError(err)
	}

	return page.String(), nil
}
