// Command pagegen renders JSON page descriptions into HTML documents, either once to a file or on every request to
// an HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var cli struct {
	Verbose bool `short:"v" env:"PAGEGEN_VERBOSE" help:"Enable debug logging"`

	Render renderCmd `cmd:"" help:"Render a page description to HTML"`
	Serve  serveCmd  `cmd:"" help:"Serve a page description over HTTP, re-reading it for every request"`
	CDN    cdnCmd    `cmd:"" name:"cdn" help:"Print pinned <script> and <link> markup for packages on unpkg.com"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	k := kong.Parse(&cli,
		kong.Name(`pagegen`),
		kong.Description(`Assemble HTML documents from JSON page descriptions.`),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cli.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	err := k.Run()
	if err != nil {
		stop()
		log.Fatal().Err(err).Str(`command`, k.Command()).Msg(`failed`)
	}
}
