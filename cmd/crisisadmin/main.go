package main

import (
	"context"
	"fmt"
	"log"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	admin "github.com/refugehq/crisis-admin/components/admin"
	"github.com/refugehq/crisis-admin/components/admin/commands"
	"github.com/refugehq/crisis-admin/components/admin/gorouter"
	"github.com/refugehq/crisis-admin/pkg/datastore"
)

type cli struct {
	Serve serveCmd `cmd:"" help:"Serve the admin dashboard and catalog API."`
	Seed  seedCmd  `cmd:"" help:"Seed the catalog from a YAML manifest."`
}

// storeFlags select the backing store. The remote credentials bind to
// environment variables so deployments never pass keys on the command line.
type storeFlags struct {
	StoreURL string `name:"store-url" env:"CRISIS_STORE_URL" help:"Remote store project URL."`
	StoreKey string `name:"store-key" env:"CRISIS_STORE_KEY" help:"Remote store API key."`
	Memory   bool   `help:"Use an in-memory store instead of the remote one."`
}

func (f storeFlags) open() (admin.Store, error) {
	if f.Memory {
		return datastore.NewMemoryStore(), nil
	}
	return datastore.NewHTTPClient(datastore.HTTPConfig{
		BaseURL: f.StoreURL,
		APIKey:  f.StoreKey,
	})
}

type serveCmd struct {
	storeFlags
	Addr     string `default:":8080" help:"Listen address."`
	BasePath string `default:"/admin" help:"Base path for admin routes."`
	Manifest string `type:"path" help:"Optional catalog manifest to seed on boot."`
	Theme    string `help:"ECharts theme override."`
}

func (cmd *serveCmd) Run(ctx context.Context) error {
	store, err := cmd.open()
	if err != nil {
		return err
	}

	hook := admin.NewBroadcastHook()
	var chartOpts []admin.ChartRendererOption
	if cmd.Theme != "" {
		chartOpts = append(chartOpts, admin.WithChartTheme(cmd.Theme))
	}
	service, err := admin.NewService(store, admin.Options{
		RefreshHook:   hook,
		ChartRenderer: admin.NewChartRenderer(chartOpts...),
	})
	if err != nil {
		return err
	}

	if cmd.Manifest != "" {
		seed := commands.NewSeedCatalogCommand(service, nil)
		if err := seed.Execute(ctx, commands.SeedCatalogInput{ManifestPath: cmd.Manifest}); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	renderer, err := admin.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("template renderer: %w", err)
	}
	controller := admin.NewController(admin.ControllerOptions{
		Service:  service,
		Renderer: renderer,
	})

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        service,
		Broadcast:  hook,
		BasePath:   cmd.BasePath,
	}); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	log.Printf("admin dashboard ready: http://localhost%s%s/dashboard", cmd.Addr, cmd.BasePath)
	return server.Serve(cmd.Addr)
}

type seedCmd struct {
	storeFlags
	Manifest string `arg:"" type:"path" help:"Catalog manifest to load."`
}

func (cmd *seedCmd) Run(ctx context.Context) error {
	store, err := cmd.open()
	if err != nil {
		return err
	}
	service, err := admin.NewService(store, admin.Options{})
	if err != nil {
		return err
	}
	manifest, err := admin.ReadManifest(cmd.Manifest)
	if err != nil {
		return err
	}
	if manifest.Empty() {
		return fmt.Errorf("seed: manifest %s has no entries", cmd.Manifest)
	}
	seed := commands.NewSeedCatalogCommand(service, nil)
	if err := seed.Execute(ctx, commands.SeedCatalogInput{Manifest: manifest}); err != nil {
		return err
	}
	log.Printf("seeded %d scenarios and %d resources", len(manifest.Scenarios), len(manifest.Resources))
	return nil
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Administrative console for the crisis guidance chat service."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}
