package pagefile

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swdunlop/page-go/page"
)

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(`{
		"title": "Home",
		"charset": "UTF-8",
		"favicon": "/f.ico",
		"libraries": false,
		"header": ["<h1>", "Home</h1>"],
		"content": "<p>Hi</p>",
		"footer": null,
		"stylesheets": ["/s.css", "/s.css"],
		"scripts": ["/a.js"],
		"cdn_stylesheets": "<link rel=\"stylesheet\" href=\"https://cdn/x.css\">",
		"cdn_scripts": ["<script src=\"https://cdn/x.js\"></script>"]
	}`))
	require.NoError(t, err)
	assert.Equal(t, `Home`, doc.Title())
	assert.Equal(t, `/f.ico`, doc.FaviconPath())
	assert.True(t, doc.Libraries().IsZero())
	assert.Equal(t, `<h1>Home</h1>`, doc.Header())
	assert.Equal(t, `<p>Hi</p>`, doc.Content())
	assert.Empty(t, doc.Footer())
	assert.Equal(t, []string{`/s.css`, `/s.css`}, doc.Stylesheets())
	assert.Equal(t, []string{`/a.js`}, doc.Scripts())
	assert.Equal(t, `<link rel="stylesheet" href="https://cdn/x.css">`, doc.CDNStylesheet())
	assert.Equal(t, `<script src="https://cdn/x.js"></script>`, doc.CDNScript())
}

func TestDecodeDefaults(t *testing.T) {
	doc, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, ``, doc.Title())
	assert.Equal(t, `UTF-8`, doc.Charset())
	assert.Equal(t, page.DefaultLibraries(), doc.Libraries())
}

func TestDecodeLibraries(t *testing.T) {
	doc, err := Decode([]byte(`{"title":"t","libraries":{"jquery":"<script src=\"/jq.js\"></script>"}}`))
	require.NoError(t, err)
	assert.Equal(t, page.Libraries{JQuery: `<script src="/jq.js"></script>`}, doc.Libraries())
}

func TestDecodeEmitTitle(t *testing.T) {
	doc, err := Decode([]byte(`{"title":"Home","emit_title":true,"libraries":false}`))
	require.NoError(t, err)
	assert.Contains(t, doc.Render(), `<title>Home</title>`)
}

func TestDecodeOptionsOverride(t *testing.T) {
	doc, err := Decode([]byte(`{"title":"t","libraries":true}`), page.WithoutDefaultLibraries())
	require.NoError(t, err)
	assert.True(t, doc.Libraries().IsZero())
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		js   string
	}{
		{`Malformed`, `{"title":`},
		{`NotObject`, `["title"]`},
		{`NumberFragment`, `{"content": 42}`},
		{`NumberInArray`, `{"scripts": ["/a.js", 7]}`},
		{`ObjectFragment`, `{"header": {"a": "b"}}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.js))
			assert.Error(t, err)
		})
	}
	_, err := Decode([]byte(`nope`))
	assert.True(t, errors.Is(err, ErrInvalidJSON))
}

func TestRead(t *testing.T) {
	doc, err := Read(strings.NewReader(`{"title":"Read","content":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, `Read`, doc.Title())
	assert.Equal(t, `x`, doc.Content())
}
