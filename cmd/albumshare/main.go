package main

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/albumshare/cmd/albumshare/internal/albums"
	"github.com/adampresley/albumshare/cmd/albumshare/internal/maintenance"
	"github.com/adampresley/albumshare/pkg/app"
	"github.com/adampresley/albumshare/pkg/configuration"
	"github.com/adampresley/albumshare/pkg/logging"
	"github.com/rs/cors"
)

var (
	Version string = "development"
	appName string = "albumshare"

	config configuration.Config

	/* Services */
	appServices app.Services

	/* Controllers */
	albumController       albums.AlbumHandlers
	maintenanceController maintenance.MaintenanceHandlers
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	logging.Setup(appName, Version, config.LogLevel)

	slog.Info("configuration loaded",
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("imageStore", config.ImageStore),
		slog.String("galleryBaseURL", config.GalleryBaseURL),
		slog.String("albumIDScheme", config.AlbumIDScheme),
	)

	slog.Debug("setting up...")

	/*
	 * Setup services
	 */
	if appServices, err = app.NewServices(config); err != nil {
		panic(err)
	}

	/*
	 * Setup controllers
	 */
	albumController = albums.NewAlbumController(albums.AlbumControllerConfig{
		AlbumService:   appServices.AlbumService,
		GalleryBaseURL: config.GalleryBaseURL,
		MaxUploadBytes: int64(config.MaxUploadMB) << 20,
		PublishService: appServices.PublishService,
		QRCodeService:  appServices.QRCodeService,
		ShareService:   appServices.ShareService,
		ZipService:     appServices.ZipService,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	requestLogger := newRequestLoggerMiddleware([]string{"/heartbeat"})

	galleryCors := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}).Handler

	logged := []mux.MiddlewareFunc{requestLogger}
	public := []mux.MiddlewareFunc{requestLogger, galleryCors}

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "POST /albums", HandlerFunc: albumController.PublishAlbum, Middlewares: logged},
		{Path: "GET /albums", HandlerFunc: albumController.ListAlbums, Middlewares: logged},
		{Path: "GET /albums/live", HandlerFunc: albumController.LiveAlbums, Middlewares: logged},
		{Path: "GET /albums/{albumId}", HandlerFunc: albumController.GetAlbum, Middlewares: public},
		{Path: "GET /albums/{albumId}/qrcode", HandlerFunc: albumController.QRCode, Middlewares: public},
		{Path: "GET /albums/{albumId}/download", HandlerFunc: albumController.DownloadAlbum, Middlewares: public},
		{Path: "POST /albums/{albumId}/share", HandlerFunc: albumController.ShareAlbum, Middlewares: logged},
		{Path: "DELETE /albums/{id}", HandlerFunc: albumController.DeleteAlbum, Middlewares: logged},
	}

	if appServices.OrphanService != nil {
		maintenanceController = maintenance.NewMaintenanceController(maintenance.MaintenanceControllerConfig{
			OrphanService: appServices.OrphanService,
		})

		routes = append(routes, mux.Route{Path: "GET /maintenance/orphans", HandlerFunc: maintenanceController.Orphans, Middlewares: logged})
	}

	routerConfig := mux.RouterConfig{
		Address:          config.Host,
		Debug:            Version == "development",
		HttpWriteTimeout: 120,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}
