package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/gg"
	"github.com/pingcap/errors"
	"github.com/urfave/cli"

	"github.com/Zachkp/portfolio-tiles/internal/config"
	"github.com/Zachkp/portfolio-tiles/internal/content"
	"github.com/Zachkp/portfolio-tiles/internal/github"
	"github.com/Zachkp/portfolio-tiles/internal/raster"
	"github.com/Zachkp/portfolio-tiles/internal/server"
	"github.com/Zachkp/portfolio-tiles/internal/store"
	"github.com/Zachkp/portfolio-tiles/internal/tile"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	if err := newApp().Run(os.Args); err != nil {
		logger.Error("exiting", "err", fmt.Sprintf("%+v", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	serveFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "port,p",
			Usage: "HTTP listen port (overrides PORT)",
		},
		cli.StringFlag{
			Name:  "db",
			Usage: "sqlite database path (overrides DATABASE_PATH)",
		},
	}

	app := cli.NewApp()
	app.Name = "portfolio"
	app.Usage = "portfolio backend and project tile generator"
	app.Flags = serveFlags
	app.Action = runServe
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "run the HTTP server",
			Flags:  serveFlags,
			Action: runServe,
		},
		{
			Name:      "tile",
			Usage:     "write the tile for a project name",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "tech,t",
					Usage: "technology tag, repeatable",
				},
				cli.StringFlag{
					Name:  "format,f",
					Usage: "uri, svg or png",
					Value: "uri",
				},
				cli.StringFlag{
					Name:  "out,o",
					Usage: "output file, stdout when empty",
				},
				cli.Float64Flag{
					Name:  "scale",
					Usage: "png scale factor",
					Value: 1,
				},
			},
			Action: runTile,
		},
	}
	return app
}

func runServe(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if p := c.String("port"); p != "" {
		cfg.Port = p
	}
	if db := c.String("db"); db != "" {
		cfg.DatabasePath = db
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	client := github.NewClient(cfg.GitHubToken)
	client.Endpoint = cfg.GitHubEndpoint
	client.Topic = cfg.GitHubTopic
	client.Logger = logger
	syncer := github.NewSyncer(client, st, cfg.CacheDuration, logger)

	srv := server.New(server.Options{
		Projects:  syncer,
		Visits:    st,
		Profile:   content.Default,
		Salt:      cfg.VisitorSalt,
		StaticDir: cfg.StaticDir,
		Logger:    logger,
	})

	go retainVisits(ctx, srv)

	err = srv.ListenAndServe(ctx, ":"+cfg.Port)
	if err == http.ErrServerClosed {
		return nil
	}
	return errors.Trace(err)
}

// retainVisits purges expired visit records at startup and once a day.
func retainVisits(ctx context.Context, srv *server.Server) {
	srv.PurgeOldVisits(ctx)
	t := time.NewTicker(24 * time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			srv.PurgeOldVisits(ctx)
		}
	}
}

func runTile(c *cli.Context) error {
	name := c.Args().First()
	techs := c.StringSlice("tech")

	var w io.Writer = os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Trace(err)
		}
		defer f.Close()
		w = f
	}

	switch format := c.String("format"); format {
	case "uri":
		_, err := fmt.Fprintln(w, tile.Generate(name, techs))
		return errors.Trace(err)
	case "svg":
		_, err := w.Write(tile.SVG(name, techs))
		return errors.Trace(err)
	case "png":
		return raster.EncodePNG(w, tile.New(name), raster.WithScale(c.Float64("scale")))
	default:
		return errors.Errorf("unknown format %q", format)
	}
}
