package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"

	"github.com/adampresley/albumshare/pkg/app"
	"github.com/adampresley/albumshare/pkg/configuration"
	"github.com/adampresley/albumshare/pkg/logging"
	"github.com/adampresley/albumshare/pkg/models"
	"github.com/adampresley/albumshare/pkg/services"
	"github.com/alitto/pond/v2"
)

var (
	Version string = "development"
	appName string = "albumpublish"

	config configuration.Config
)

type publishOutcome struct {
	dir  string
	link string
	err  error
}

func main() {
	var (
		err         error
		appServices app.Services
	)

	config = configuration.LoadConfig()
	logging.Setup(appName, Version, config.LogLevel)

	dirs := config.Dirs()

	if len(dirs) == 0 {
		fmt.Fprintln(os.Stderr, "no album directories given. use -dirs=path1,path2")
		os.Exit(1)
	}

	if appServices, err = app.NewServices(config); err != nil {
		slog.Error("error setting up services", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	outcomes := publishDirs(ctx, appServices.PublishService, dirs, config.MaxPublishWorkers)
	failed := 0

	for _, outcome := range outcomes {
		if outcome.err != nil {
			failed++
			fmt.Printf("%s -> FAILED: %v\n", outcome.dir, outcome.err)
			continue
		}

		fmt.Printf("%s -> %s\n", outcome.dir, outcome.link)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

/*
publishDirs publishes each directory as its own album. Albums run side by
side on the pool, but every album uploads its own images one at a time.
Outcomes come back in the same order as dirs.
*/
func publishDirs(ctx context.Context, publishService services.PublishServicer, dirs []string, maxWorkers int) []publishOutcome {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	outcomes := make([]publishOutcome, len(dirs))
	mu := sync.Mutex{}

	pool := pond.NewPool(maxWorkers, pond.WithContext(ctx))

	for index, dir := range dirs {
		pool.Submit(func() {
			var (
				err       error
				images    []services.ImageReference
				published models.PublishedAlbum
			)

			outcome := publishOutcome{dir: dir}

			if images, err = imagesInDir(dir); err != nil {
				outcome.err = err
			} else if published, err = publishService.Publish(ctx, images); err != nil {
				outcome.err = err
			} else {
				outcome.link = published.Link
			}

			mu.Lock()
			outcomes[index] = outcome
			mu.Unlock()
		})
	}

	_ = pool.Stop().Wait()

	for index, outcome := range outcomes {
		if outcome.dir == "" {
			outcomes[index] = publishOutcome{dir: dirs[index], err: fmt.Errorf("album was not published: %v", ctx.Err())}
		}
	}

	return outcomes
}

/*
imagesInDir returns the images in dir sorted by file name, which becomes the
album's photo order.
*/
func imagesInDir(dir string) ([]services.ImageReference, error) {
	var (
		err     error
		entries []os.DirEntry
	)

	if entries, err = os.ReadDir(dir); err != nil {
		return nil, fmt.Errorf("error reading directory '%s': %w", dir, err)
	}

	names := []string{}

	for _, entry := range entries {
		if entry.IsDir() || !services.IsImageFile(entry.Name()) {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)
	result := make([]services.ImageReference, 0, len(names))

	for _, name := range names {
		result = append(result, services.FileImage{Path: filepath.Join(dir, name)})
	}

	return result, nil
}
