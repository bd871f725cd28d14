package main

import (
	"context"
	"flag"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-mdpad/cmd/mdpad/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

var page = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.6; }
pre { padding: 1rem; overflow-x: auto; border-radius: 4px; }
code { font-family: ui-monospace, monospace; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; }
blockquote { margin-left: 0; padding-left: 1rem; border-left: 4px solid #ddd; color: #555; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Title string
	Body  template.HTML
}

func main() {
	if err := runPreview(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("mdpad preview: %v", err)
	}
}

func runPreview(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("mdpad-preview", flag.ExitOnError)
	opts := bootstrap.BindFlags(fs)
	output := fs.String("out", "", "Write the page to this file instead of stdout")
	title := fs.String("title", "", "Page title (defaults to the document title)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(ctx, *opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	rendered, err := module.Module.RenderHTML(ctx)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	data := pageData{
		Title: strings.TrimSpace(*title),
		// goldmark drops raw HTML, so the fragment is safe to embed.
		Body: template.HTML(rendered.Output),
	}
	if data.Title == "" {
		data.Title = rendered.Title
	}
	if data.Title == "" {
		data.Title = "mdpad preview"
	}

	out := stdout
	if path := strings.TrimSpace(*output); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := page.Execute(out, data); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	module.Logger.Debug("cli.preview.rendered", "bytes", len(rendered.Output), "title", data.Title)
	return nil
}
