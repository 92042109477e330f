package page

// Libraries holds the CDN markup a Document places around its own content.  BootstrapCSS and FontAwesome are emitted
// at the start of the head, JQuery and BootstrapJS at the end of the body.  An empty field emits nothing.
type Libraries struct {
	JQuery       string `json:"jquery"`
	BootstrapCSS string `json:"bootstrap_css"`
	BootstrapJS  string `json:"bootstrap_js"`
	FontAwesome  string `json:"font_awesome"`
}

// DefaultLibraries returns the markup for jQuery 3.4.1 (slim), Bootstrap 4.4.1 with popper.js 1.16.0, and Font Awesome
// 5.8.1, each pinned with its subresource integrity hash.
func DefaultLibraries() Libraries {
	return Libraries{
		JQuery:       cdnJQuery,
		BootstrapCSS: cdnBootstrapCSS,
		BootstrapJS:  cdnBootstrapJS,
		FontAwesome:  cdnFontAwesome,
	}
}

// NoLibraries is the empty set of libraries.
var NoLibraries = Libraries{}

// IsZero reports whether no library markup is set.
func (libs Libraries) IsZero() bool { return libs == NoLibraries }

const (
	cdnJQuery = `<script src="https://code.jquery.com/jquery-3.4.1.slim.min.js" integrity="sha384-J6qa4849blE2+poT4WnyKhv5vZF5SrPo0iEjwBvKU7imGFAV0wwj1yYfoRSJoZ+n" crossorigin="anonymous"></script>`

	cdnBootstrapCSS = `<link rel="stylesheet" href="https://stackpath.bootstrapcdn.com/bootstrap/4.4.1/css/bootstrap.min.css" integrity="sha384-Vkoo8x4CGsO3+Hhxv8T/Q5PaXtkKtu6ug5TOeNV6gBiFeWPGFN9MuhOf23Q9Ifjh" crossorigin="anonymous">`

	// popper.js must load before bootstrap.
	cdnBootstrapJS = `<script src="https://cdn.jsdelivr.net/npm/popper.js@1.16.0/dist/umd/popper.min.js" integrity="sha384-Q6E9RHvbIyZFJoft+2mJbHaEWldlvI9IOYy5n3zV9zzTtmI3UksdQRVvoxMfooAo" crossorigin="anonymous"></script>
<script src="https://stackpath.bootstrapcdn.com/bootstrap/4.4.1/js/bootstrap.min.js" integrity="sha384-wfSDF2E50Y2D1uUdj0O3uMBJnjuUD4Ih7YwaYd1iqfktj0Uod8GCExl3Og8ifwB6" crossorigin="anonymous"></script>`

	cdnFontAwesome = `<link rel="stylesheet" href="https://use.fontawesome.com/releases/v5.8.1/css/all.css" integrity="sha384-50oBUHEmvpQ+1lW4y57PTFmhCaXp0ML5d60M1M7uH2+nqUivzIebhndOJK28anvf" crossorigin="anonymous">`
)
