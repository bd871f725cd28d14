package render

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// codeRenderer highlights fenced blocks that name a known language. Anything
// else renders as a plain pre/code block.
type codeRenderer struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

func newCodeRenderer(styleName string) *codeRenderer {
	return &codeRenderer{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(2)),
	}
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *codeRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	language := string(n.Language(source))
	code := blockText(n, source)

	if language != "" {
		if lexer := lexers.Get(language); lexer != nil {
			iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
			if err == nil {
				var buf bytes.Buffer
				if err := r.formatter.Format(&buf, r.style, iterator); err == nil {
					_, _ = w.Write(buf.Bytes())
					return ast.WalkSkipChildren, nil
				}
			}
		}
	}

	_, _ = w.WriteString("<pre><code")
	if language != "" {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML([]byte(language)))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
	_, _ = w.Write(util.EscapeHTML([]byte(code)))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func blockText(n *ast.FencedCodeBlock, source []byte) string {
	lines := n.Lines()
	var out []byte
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		out = append(out, line.Value(source)...)
	}
	return string(out)
}
