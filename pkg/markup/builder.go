// Package markup builds HTML fragments with a hard escaping rule: static
// template fragments may contain markup, every interpolated dynamic value
// is escaped. Record content originates from upstream collectors and must
// never be able to inject markup into a rendered page.
package markup

import (
	"html"
	"strings"
)

// Escape HTML-escapes a dynamic value for safe insertion.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Builder accumulates an HTML fragment.
type Builder struct {
	sb strings.Builder
}

// Raw appends a trusted static fragment. Never pass record content here.
func (b *Builder) Raw(fragment string) *Builder {
	b.sb.WriteString(fragment)
	return b
}

// Text appends a dynamic value, escaped.
func (b *Builder) Text(value string) *Builder {
	b.sb.WriteString(html.EscapeString(value))
	return b
}

// Attr appends a name="value" attribute pair (with a leading space), with
// the value escaped.
func (b *Builder) Attr(name, value string) *Builder {
	b.sb.WriteString(" ")
	b.sb.WriteString(name)
	b.sb.WriteString(`="`)
	b.sb.WriteString(html.EscapeString(value))
	b.sb.WriteString(`"`)
	return b
}

// String returns the accumulated fragment.
func (b *Builder) String() string {
	return b.sb.String()
}

// Tag wraps escaped text in a single element with a class:
// <span class="badge">...</span>
func Tag(element, class, text string) string {
	var b Builder
	b.Raw("<").Raw(element)
	if class != "" {
		b.Attr("class", class)
	}
	b.Raw(">").Text(text).Raw("</").Raw(element).Raw(">")
	return b.String()
}
