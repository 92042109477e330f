package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/swdunlop/page-go/page"
	"github.com/swdunlop/page-go/pagefile"
)

type renderCmd struct {
	Input         string `arg:"" optional:"" default:"-" help:"Page description to render, or - for stdin"`
	Output        string `short:"o" default:"-" help:"Where to write the HTML, or - for stdout"`
	NoDefaultLibs bool   `name:"no-default-libs" help:"Omit jQuery, Bootstrap and Font Awesome"`
	EmitTitle     bool   `name:"emit-title" help:"Emit a <title> tag in the head"`
}

func (cmd *renderCmd) Run() error {
	doc, err := readPage(cmd.Input, cmd.options()...)
	if err != nil {
		return err
	}
	return writePage(cmd.Output, doc)
}

func (cmd *renderCmd) options() []page.Option {
	var options []page.Option
	if cmd.NoDefaultLibs {
		options = append(options, page.WithoutDefaultLibraries())
	}
	if cmd.EmitTitle {
		options = append(options, page.EmitTitle())
	}
	return options
}

// readPage reads a page description from a file, or stdin if path is "-".
func readPage(path string, options ...page.Option) (*page.Document, error) {
	if path == `-` {
		return pagefile.Read(os.Stdin, options...)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := pagefile.Read(f, options...)
	if err != nil {
		return nil, fmt.Errorf(`%v: %w`, path, err)
	}
	return doc, nil
}

// writePage writes the rendered document to a file, or stdout if path is "-".
func writePage(path string, doc *page.Document) error {
	if path == `-` {
		return writeDocument(os.Stdout, path, doc)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return closeAfter(f, func() error { return writeDocument(f, path, doc) })
}

func writeDocument(w io.Writer, path string, doc *page.Document) error {
	n, err := doc.WriteTo(w)
	if err != nil {
		return err
	}
	log.Debug().Str(`title`, doc.Title()).Int64(`wrote`, n).Str(`output`, path).Msg(`rendered page`)
	return nil
}

// closeAfter runs fn then closes c, returning the first error; a failed close means the output is incomplete.
func closeAfter(c io.Closer, fn func() error) error {
	err := fn()
	if cerr := c.Close(); err == nil {
		err = cerr
	}
	return err
}
