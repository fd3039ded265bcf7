// Package markdown renders note content to HTML for the preview pane
// Package markdown 将笔记内容渲染为预览 HTML
package markdown

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Placeholder shown when the editor is empty
// Placeholder 编辑器为空时显示的占位文本
const Placeholder = "Start typing to see preview..."

// Options renderer options
// Options 渲染选项
type Options struct {
	// AllowUnsafeHTML pass raw HTML through, off by default
	// AllowUnsafeHTML 是否透传原始 HTML，默认关闭
	AllowUnsafeHTML bool
	// ExternalLinksNewTab open absolute links in a new tab
	// ExternalLinksNewTab 外部链接在新标签页打开
	ExternalLinksNewTab bool
}

// Renderer GFM renderer where single newlines become <br>
// Renderer GFM 渲染器，单个换行渲染为 <br>
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer
// New 创建渲染器
func New(opts Options) *Renderer {
	rendererOpts := []goldmark.Option{}
	htmlOpts := []renderer.Option{html.WithHardWraps()}
	if opts.AllowUnsafeHTML {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}

	exts := []goldmark.Extender{extension.GFM}
	if opts.ExternalLinksNewTab {
		exts = append(exts, &linkTargetBlank{})
	}

	rendererOpts = append(rendererOpts,
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(htmlOpts...),
	)
	return &Renderer{md: goldmark.New(rendererOpts...)}
}

// Render converts markdown source to HTML
// Render 将 markdown 转换为 HTML
// blank content renders the emphasized placeholder
// 空内容渲染为强调的占位文本
func (r *Renderer) Render(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		source = "*" + Placeholder + "*"
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", errors.Wrap(err, "markdown.Render")
	}
	return buf.String(), nil
}

type linkTargetBlank struct{}

func (e *linkTargetBlank) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&linkTargetBlankTransformer{}, 100),
	))
}

type linkTargetBlankTransformer struct{}

func (t *linkTargetBlankTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch link := n.(type) {
		case *ast.Link:
			if isExternal(link.Destination) {
				link.SetAttributeString("target", []byte("_blank"))
				link.SetAttributeString("rel", []byte("noopener noreferrer"))
			}
		case *ast.AutoLink:
			if isExternal(link.URL(reader.Source())) {
				link.SetAttributeString("target", []byte("_blank"))
				link.SetAttributeString("rel", []byte("noopener noreferrer"))
			}
		}
		return ast.WalkContinue, nil
	})
}

func isExternal(dest []byte) bool {
	d := strings.ToLower(string(dest))
	return strings.HasPrefix(d, "http://") || strings.HasPrefix(d, "https://")
}
