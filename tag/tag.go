// Package tag provides a system of functional options that build HTML tags programmatically.
package tag

import (
	"strings"

	"github.com/swdunlop/page-go"
)

// New constructs a new HTML tag and applies the provided options.
func New(name string, options ...Option) html.Tag {
	tag := html.Tag{Name: name}
	for _, option := range options {
		option(&tag)
	}
	return tag
}

// Factory constructs an html tag factory using functional options.  This is generally used to stamp out basic
// HTML element functions, applying some basic options as a template.
func Factory(name string, options ...Option) func(...Option) html.Tag {
	base := New(name, options...)
	return func(options ...Option) html.Tag {
		tag := base
		// copy, so that tags stamped from the same factory do not share backing arrays.
		tag.Attrs = append([]html.Attr(nil), base.Attrs...)
		tag.Content = append([]html.Element(nil), base.Content...)
		for _, option := range options {
			option(&tag)
		}
		return tag
	}
}

// Static appends static content inside the tag.
func Static(contents ...html.Element) Option {
	static := html.Static(contents...)
	return Content(static)
}

// Text appends escaped text content inside the tag.
func Text(text string) Option {
	return Content(html.Text(text))
}

// HTML appends markup inside the tag verbatim.  An empty string adds nothing.
func HTML(markup string) Option {
	if markup == `` {
		return Apply()
	}
	return Content(html.HTML(markup))
}

// Content appends content inside the tag.
func Content(contents ...html.Element) Option {
	return func(tag *html.Tag) {
		tag.Content = append(tag.Content, contents...)
	}
}

// ID sets the id attribute on the tag.
func ID(id string) Option {
	return Set(`id`, id)
}

// Class appends classes to the class attribute on the tag.
func Class(classes ...string) Option {
	return func(tag *html.Tag) {
		for i := range tag.Attrs {
			if tag.Attrs[i].Name == `class` {
				tag.Attrs[i].Value = strings.Join(append([]string{tag.Attrs[i].Value}, classes...), ` `)
				return
			}
		}
		tag.Attrs = append(tag.Attrs, html.Attr{Name: `class`, Value: strings.Join(classes, ` `)})
	}
}

// Attr appends an attribute on the tag.
func Attr(name, value string) Option {
	return func(tag *html.Tag) {
		tag.Attrs = append(tag.Attrs, html.Attr{Name: name, Value: value})
	}
}

// RawAttr appends an attribute whose value is emitted without escaping.
func RawAttr(name, value string) Option {
	return func(tag *html.Tag) {
		tag.Attrs = append(tag.Attrs, html.Attr{Name: name, Value: value, Raw: true})
	}
}

// Set replaces the value of an attribute on the tag, or appends it if the tag does not have one.
func Set(name, value string) Option {
	return func(tag *html.Tag) {
		for i := range tag.Attrs {
			if tag.Attrs[i].Name == name {
				tag.Attrs[i] = html.Attr{Name: name, Value: value}
				return
			}
		}
		tag.Attrs = append(tag.Attrs, html.Attr{Name: name, Value: value})
	}
}

// Apply applies a series of options as an option.
func Apply(options ...Option) Option {
	return func(tag *html.Tag) {
		for _, option := range options {
			option(tag)
		}
	}
}

// An Option affects an HTML tag.
type Option func(*html.Tag)
