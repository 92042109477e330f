package page

import (
	"io"

	"github.com/swdunlop/page-go"
	"github.com/swdunlop/page-go/tag"
)

var (
	stylesheetLink = tag.Factory(`link`, tag.Attr(`rel`, `stylesheet`))
	iconLink       = tag.Factory(`link`, tag.Attr(`rel`, `icon`))
	scriptTag      = tag.Factory(`script`)
	footerTag      = tag.Factory(`footer`, tag.Class(`footer`))
)

// Render returns the document as HTML.  Rendering does not change the document, so it may be repeated.
func (doc *Document) Render() string {
	return string(doc.AppendHTML(make([]byte, 0, doc.sizeHint())))
}

// WriteTo implements io.WriterTo by writing the rendered document to w.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(doc.AppendHTML(make([]byte, 0, doc.sizeHint())))
	return int64(n), err
}

// AppendHTML implements html.Element by appending the complete document.  Stylesheets are placed in the head, before
// the body is laid out, and scripts at the end of the body, once the elements they refer to exist.
func (doc *Document) AppendHTML(buf []byte) []byte {
	head := html.Group{
		html.HTML5,
		html.HTML(`<html><head>`),
		tag.New(`meta`, tag.RawAttr(`charset`, doc.charset)),
	}
	if doc.emitTitle {
		head = append(head, tag.New(`title`, tag.HTML(doc.title)))
	}
	buf = head.AppendHTML(buf)
	buf = append(buf, doc.libs.BootstrapCSS...)
	buf = append(buf, doc.libs.FontAwesome...)
	buf = append(buf, doc.cdnStylesheet...)
	for _, path := range doc.stylesheets {
		buf = stylesheetLink(tag.RawAttr(`href`, path)).AppendHTML(buf)
	}
	buf = iconLink(tag.RawAttr(`href`, doc.faviconPath)).AppendHTML(buf)
	buf = append(buf, `</head><body>`...)

	if doc.header != `` {
		buf = tag.New(`header`, tag.HTML(doc.header)).AppendHTML(buf)
	}
	buf = append(buf, doc.content...)
	if doc.footer != `` {
		buf = footerTag(tag.HTML(doc.footer)).AppendHTML(buf)
	}

	buf = append(buf, doc.libs.JQuery...)
	buf = append(buf, doc.libs.BootstrapJS...)
	buf = append(buf, doc.cdnScript...)
	for _, path := range doc.scripts {
		buf = scriptTag(tag.RawAttr(`src`, path)).AppendHTML(buf)
	}
	return append(buf, `</body></html>`...)
}

// sizeHint estimates the rendered size, so rendering usually allocates once.
func (doc *Document) sizeHint() int {
	n := 256 + len(doc.charset) + len(doc.title) + len(doc.faviconPath)
	n += len(doc.header) + len(doc.content) + len(doc.footer)
	n += len(doc.cdnStylesheet) + len(doc.cdnScript)
	n += len(doc.libs.JQuery) + len(doc.libs.BootstrapCSS) + len(doc.libs.BootstrapJS) + len(doc.libs.FontAwesome)
	for _, path := range doc.stylesheets {
		n += 32 + len(path)
	}
	for _, path := range doc.scripts {
		n += 24 + len(path)
	}
	return n
}
