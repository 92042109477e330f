package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// cdnCmd prints the markup for packages hosted on unpkg.com, pinned to a version with subresource integrity, ready to
// paste into a page description's cdn_scripts or cdn_stylesheets.
type cdnCmd struct {
	Paths []string `arg:"" help:"Package paths, such as alpinejs, alpinejs@3.12.0 or bootstrap/dist/css/bootstrap.min.css"`
	Defer bool     `help:"Use the defer attribute for <script> tags"`
	Base  string   `default:"https://unpkg.com" help:"Base URL of the unpkg service"`
}

func (cmd *cdnCmd) Run(ctx context.Context) error {
	failed := 0
	for _, path := range cmd.Paths {
		markup, err := cmd.resolve(ctx, path)
		if err != nil {
			log.Error().Err(err).Str(`path`, path).Msg(`could not resolve`)
			failed++
			continue
		}
		fmt.Println(markup)
	}
	if failed > 0 {
		return fmt.Errorf(`%v of %v paths could not be resolved`, failed, len(cmd.Paths))
	}
	return nil
}

func (cmd *cdnCmd) resolve(ctx context.Context, path string) (string, error) {
	path, err := cmd.resolvePath(ctx, path)
	if err != nil {
		return ``, err
	}
	meta, err := cmd.fetchMeta(ctx, path)
	if err != nil {
		return ``, err
	}

	contentType := strings.SplitN(meta.Get(`type`).String(), `;`, 2)[0]
	table := map[string]string{
		`url`:       cmd.Base + `/` + path,
		`integrity`: meta.Get(`integrity`).String(),
	}
	switch contentType {
	case `text/javascript`, `application/javascript`:
		deferred := ``
		if cmd.Defer {
			deferred = `defer ` // mind the space.
		}
		return expandHTML(`<script `+deferred+`src="$url" integrity="$integrity" crossorigin="anonymous" referrerpolicy="no-referrer"></script>`, table), nil
	case `text/css`:
		return expandHTML(`<link rel="stylesheet" href="$url" integrity="$integrity" crossorigin="anonymous" referrerpolicy="no-referrer">`, table), nil
	case ``:
		return ``, fmt.Errorf(`no content type for %q`, path)
	default:
		return ``, fmt.Errorf(`unknown content type %q for %q`, contentType, path)
	}
}

// resolvePath lets unpkg redirect us to the full path, which includes the package, version and file.
func (cmd *cdnCmd) resolvePath(ctx context.Context, path string) (string, error) {
	rsp, err := cmd.get(ctx, cmd.Base+`/`+path)
	if err != nil {
		return ``, err
	}
	defer rsp.Body.Close()
	_, _ = io.Copy(io.Discard, rsp.Body)
	return strings.TrimPrefix(rsp.Request.URL.Path, `/`), nil
}

// fetchMeta returns unpkg's metadata for the file at path, which must include the package version.
func (cmd *cdnCmd) fetchMeta(ctx context.Context, path string) (gjson.Result, error) {
	m := rxResource.FindStringSubmatch(path)
	if m == nil {
		return gjson.Result{}, fmt.Errorf(`could not parse %q into package, version and file`, path)
	}
	pkg, file := m[1]+m[2], m[3]

	url := cmd.Base + `/` + pkg + `/?meta`
	rsp, err := cmd.get(ctx, url)
	if err != nil {
		return gjson.Result{}, err
	}
	defer rsp.Body.Close()
	js, err := io.ReadAll(rsp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf(`reading %v: %w`, url, err)
	}
	if !gjson.ValidBytes(js) {
		return gjson.Result{}, fmt.Errorf(`invalid metadata from %v`, url)
	}
	meta := findFile(gjson.ParseBytes(js), file)
	if !meta.Exists() {
		return gjson.Result{}, fmt.Errorf(`could not find %q in %v`, file, url)
	}
	return meta, nil
}

// findFile searches unpkg metadata for a file, descending into directories.  Older metadata lists files flat under
// "files"; newer metadata nests directories, each with its own "files".
func findFile(meta gjson.Result, file string) gjson.Result {
	var found gjson.Result
	meta.Get(`files`).ForEach(func(_, item gjson.Result) bool {
		switch {
		case item.Get(`path`).String() == file && item.Get(`type`).String() != `directory`:
			found = item
		case item.Get(`files`).IsArray():
			found = findFile(item, file)
		}
		return !found.Exists()
	})
	return found
}

func (cmd *cdnCmd) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, `GET`, url, nil)
	if err != nil {
		return nil, err
	}
	rsp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode != http.StatusOK {
		rsp.Body.Close()
		return nil, fmt.Errorf(`%v while fetching %v`, rsp.Status, url)
	}
	return rsp, nil
}

var rxResource = regexp.MustCompile(`^((?:@[^@/]+/)?[^@/]+)(@[^/@]+)(/.*)$`)

// expandHTML expands $name references in the template, replacing '&', '"' and '<' in the expansions with entities.
func expandHTML(template string, table map[string]string) string {
	return rxParam.ReplaceAllStringFunc(template, func(param string) string {
		str, ok := table[param[1:]]
		if !ok {
			return param
		}
		return entityReplacer.Replace(str)
	})
}

var rxParam = regexp.MustCompile(`\$[a-z]+`)

var entityReplacer = strings.NewReplacer(
	`&`, `&amp;`,
	`"`, `&quot;`,
	`<`, `&lt;`,
)
