// Package pagefile builds page Documents from JSON page descriptions, such as:
//
//	{
//	  "title": "Home", "charset": "UTF-8", "favicon": "/f.ico", "libraries": false,
//	  "header": "<h1>Home</h1>", "content": ["<p>one</p>", "<p>two</p>"], "footer": "...",
//	  "stylesheets": ["/s.css"], "scripts": ["/a.js"],
//	  "cdn_stylesheets": ["<link ...>"], "cdn_scripts": ["<script ...></script>"]
//	}
//
// Fragment fields accept either a string or an array of strings; arrays are appended in order.  Omitted fields keep
// the Document defaults.
package pagefile

import (
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/swdunlop/page-go/page"
)

// ErrInvalidJSON is returned when a page description is not valid JSON.
var ErrInvalidJSON = errors.New(`invalid JSON page description`)

// Read reads a page description from r and decodes it with Decode.
func Read(r io.Reader, options ...page.Option) (*page.Document, error) {
	js, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf(`reading page description: %w`, err)
	}
	return Decode(js, options...)
}

// Decode builds a Document from a JSON page description.  The provided options are applied after the options derived
// from the description, so they take precedence.
func Decode(js []byte, options ...page.Option) (*page.Document, error) {
	if !gjson.ValidBytes(js) {
		return nil, ErrInvalidJSON
	}
	desc := gjson.ParseBytes(js)
	if !desc.IsObject() {
		return nil, fmt.Errorf(`%w: expected an object, got %v`, ErrInvalidJSON, desc.Type)
	}

	var opts []page.Option
	if v := desc.Get(`charset`); v.Exists() {
		opts = append(opts, page.Charset(v.String()))
	}
	if v := desc.Get(`favicon`); v.Exists() {
		opts = append(opts, page.Favicon(v.String()))
	}
	if v := desc.Get(`libraries`); v.Exists() {
		if v.IsObject() {
			opts = append(opts, page.WithLibraries(page.Libraries{
				JQuery:       v.Get(`jquery`).String(),
				BootstrapCSS: v.Get(`bootstrap_css`).String(),
				BootstrapJS:  v.Get(`bootstrap_js`).String(),
				FontAwesome:  v.Get(`font_awesome`).String(),
			}))
		} else {
			opts = append(opts, page.IncludeDefaultLibraries(v.Bool()))
		}
	}
	if desc.Get(`emit_title`).Bool() {
		opts = append(opts, page.EmitTitle())
	}
	doc := page.New(desc.Get(`title`).String(), append(opts, options...)...)

	for _, field := range fields {
		if err := each(desc, field.name, field.add(doc)); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

var fields = []struct {
	name string
	add  func(*page.Document) func(string)
}{
	{`header`, func(doc *page.Document) func(string) { return doc.AppendHeader }},
	{`content`, func(doc *page.Document) func(string) { return doc.AppendContent }},
	{`footer`, func(doc *page.Document) func(string) { return doc.AppendFooter }},
	{`stylesheets`, func(doc *page.Document) func(string) { return doc.AddStylesheet }},
	{`scripts`, func(doc *page.Document) func(string) { return doc.AddScript }},
	{`cdn_stylesheets`, func(doc *page.Document) func(string) { return doc.AppendCDNStylesheet }},
	{`cdn_scripts`, func(doc *page.Document) func(string) { return doc.AppendCDNScript }},
}

// each calls add with the field's string, or with each string in the field's array.
func each(desc gjson.Result, name string, add func(string)) error {
	v := desc.Get(name)
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return nil
	case v.Type == gjson.String:
		add(v.Str)
		return nil
	case v.IsArray():
		items := v.Array()
		for i, item := range items {
			if item.Type != gjson.String {
				return fmt.Errorf(`%q[%v] must be a string, got %v`, name, i, item.Type)
			}
		}
		for _, item := range items {
			add(item.Str)
		}
		return nil
	default:
		return fmt.Errorf(`%q must be a string or an array of strings, got %v`, name, v.Type)
	}
}
