package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// markup writes HTML and remembers the first write error so components can
// be written as straight-line code.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (m *markup) attr(name string, value string) {
	m.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (m *markup) attrIf(cond bool, name string, value string) {
	if cond {
		m.attr(name, value)
	}
}

func (m *markup) component(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

func component(write func(ctx context.Context, m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		write(ctx, m)
		return m.err
	})
}

// Fragments renders components back to back.
func Fragments(components ...templ.Component) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		for _, c := range components {
			m.component(ctx, c)
		}
	})
}
