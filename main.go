package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"ytconv/cmd"
	"ytconv/config"
	"ytconv/services"
	"ytconv/types"
	"ytconv/ytdlp"

	"github.com/schollz/progressbar/v3"
)

func main() {
	var (
		server bool
		port   int
		url    string
		format string
	)

	flag.BoolVar(&server, "server", false, "Start in web server mode")
	flag.IntVar(&port, "port", 0, "Port for web server mode (overrides PORT)")
	flag.StringVar(&url, "url", "", "Media URL to convert")
	flag.StringVar(&format, "format", "mp3-192", "Target format token (e.g. mp3-320, mp4-720)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if port != 0 {
		cfg.Port = port
	}

	// Server mode takes precedence
	if server {
		cmd.StartWebServer(cfg)
		return
	}

	if url == "" {
		flag.Usage()
		return
	}

	if err := convertOnce(cfg, url, types.Format(format)); err != nil {
		log.Fatalf("Error: %s", err)
	}
}

// convertOnce runs a single conversion in the foreground with a terminal
// progress bar.
func convertOnce(cfg config.Config, url string, format types.Format) error {
	if !format.Valid() {
		return fmt.Errorf("unsupported format: %s", format)
	}

	ctx := context.Background()
	engine := ytdlp.New(cfg.YtdlpPath)

	info, err := engine.FetchInfo(ctx, url)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", info.Title, format)

	policy := services.FormatPolicy{OutputDir: cfg.DownloadDir}
	directive := policy.Resolve(format, url)

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
	)

	err = engine.Download(ctx, url, directive, func(evt types.ProgressEvent) {
		if evt.Finished {
			bar.Set(100)
			return
		}
		bar.Set(int(evt.Percent))
	})
	if err != nil {
		return err
	}
	bar.Finish()
	fmt.Println()

	locator := services.OutputLocator{Dir: cfg.DownloadDir}
	path, ok := locator.Locate(info.VideoID, format, directive.Ext)
	if !ok {
		return services.ErrOutputNotFound
	}

	fmt.Printf("Saved to %s\n", path)
	return nil
}
