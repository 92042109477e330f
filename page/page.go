// Package page accumulates fragments of HTML (header, content, footer, scripts and stylesheets) and renders them into
// a complete HTML document, optionally loading jQuery, Bootstrap and Font Awesome from their CDNs.
//
// Nothing added to a Document is escaped or validated; callers are trusted to supply well formed markup and paths.
// A Document is not safe for concurrent use, and is meant to be built and rendered once per page or request.
package page

// New returns an empty Document with the provided title.  Unless options say otherwise, the charset is "UTF-8", the
// favicon path is empty and the default libraries are included.
func New(title string, options ...Option) *Document {
	doc := &Document{
		title:   title,
		charset: `UTF-8`,
		libs:    DefaultLibraries(),
	}
	for _, option := range options {
		option(doc)
	}
	return doc
}

// Charset sets the character encoding declared by the document's meta tag.
func Charset(charset string) Option {
	return func(doc *Document) { doc.charset = charset }
}

// Favicon sets the path of the icon linked from the document's head.  The icon link is emitted even if this is empty.
func Favicon(path string) Option {
	return func(doc *Document) { doc.faviconPath = path }
}

// IncludeDefaultLibraries chooses between DefaultLibraries and NoLibraries.
func IncludeDefaultLibraries(include bool) Option {
	if include {
		return WithLibraries(DefaultLibraries())
	}
	return WithLibraries(NoLibraries)
}

// WithoutDefaultLibraries omits jQuery, Bootstrap and Font Awesome from the document.
func WithoutDefaultLibraries() Option { return IncludeDefaultLibraries(false) }

// WithLibraries replaces the library markup for the lifetime of the document.
func WithLibraries(libs Libraries) Option {
	return func(doc *Document) { doc.libs = libs }
}

// EmitTitle adds a <title> tag to the document's head, after the charset.  Documents omit it by default.
func EmitTitle() Option {
	return func(doc *Document) { doc.emitTitle = true }
}

// An Option affects the construction of a Document.
type Option func(*Document)

// A Document accumulates the parts of an HTML page.  Every mutator appends; nothing is ever replaced or removed.
type Document struct {
	charset     string
	title       string
	header      string
	content     string
	footer      string
	faviconPath string
	scripts     []string
	stylesheets []string

	cdnStylesheet string
	cdnScript     string

	libs      Libraries
	emitTitle bool
}

func (doc *Document) Charset() string     { return doc.charset }
func (doc *Document) Title() string       { return doc.title }
func (doc *Document) Header() string      { return doc.header }
func (doc *Document) Content() string     { return doc.content }
func (doc *Document) Footer() string      { return doc.footer }
func (doc *Document) FaviconPath() string { return doc.faviconPath }

// Scripts returns the script paths in the order they were added.  The slice is shared with the document and must not
// be modified.
func (doc *Document) Scripts() []string { return doc.scripts }

// Stylesheets returns the stylesheet paths in the order they were added.  The slice is shared with the document and
// must not be modified.
func (doc *Document) Stylesheets() []string { return doc.stylesheets }

// CDNStylesheet returns the markup added by AppendCDNStylesheet.
func (doc *Document) CDNStylesheet() string { return doc.cdnStylesheet }

// CDNScript returns the markup added by AppendCDNScript.
func (doc *Document) CDNScript() string { return doc.cdnScript }

// Libraries returns the library markup chosen when the document was constructed.
func (doc *Document) Libraries() Libraries { return doc.libs }

// AppendHeader appends markup to the header, which is wrapped in a <header> tag at the top of the body.
func (doc *Document) AppendHeader(markup string) { doc.header += markup }

// AppendContent appends markup to the body, after the header.
func (doc *Document) AppendContent(markup string) { doc.content += markup }

// AppendFooter appends markup to the footer, which is wrapped in a <footer class="footer"> tag after the content.
func (doc *Document) AppendFooter(markup string) { doc.footer += markup }

// AddScript adds a script path, loaded at the end of the body.  Duplicates are kept.
func (doc *Document) AddScript(path string) { doc.scripts = append(doc.scripts, path) }

// AddStylesheet adds a stylesheet path, linked from the head.  Duplicates are kept.
func (doc *Document) AddStylesheet(path string) { doc.stylesheets = append(doc.stylesheets, path) }

// AppendCDNStylesheet appends stylesheet markup, such as a complete <link> tag, emitted after the default libraries.
func (doc *Document) AppendCDNStylesheet(markup string) { doc.cdnStylesheet += markup }

// AppendCDNScript appends script markup, such as a complete <script> tag, emitted after the default libraries.
func (doc *Document) AppendCDNScript(markup string) { doc.cdnScript += markup }
