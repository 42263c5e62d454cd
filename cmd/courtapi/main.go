package main

import (
	"context"

	"causelist-backend/lib/configuration"
	"causelist-backend/lib/scrapers/ecourts"
	"causelist-backend/lib/serviceutil"
	"causelist-backend/lib/sqliteutil"
	"causelist-backend/lib/telemetry"
	"causelist-backend/services/courtapi"
	"causelist-backend/services/courtdata"
	courtdatadb "causelist-backend/services/courtdata/db"
)

type Config struct {
	Port          int    `json:"port"`
	PortalBaseUrl string `json:"portal_base_url"`
	// sqlite path or libsql url; leave empty to disable history
	Database string `json:"database"`
	Verbose  bool   `json:"verbose"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configuration.ReadRecursively[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8470
	}

	t, err := telemetry.SetupFromEnv(ctx, "courtapi")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InitSlog(config.Verbose)
	telemetry.InstrumentPerfStats(ctx)

	scraper, err := ecourts.NewClient(ecourts.ClientOptions{
		BaseUrl: config.PortalBaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize portal client", err)
	}

	var store *courtdata.Store
	if config.Database != "" {
		db, err := sqliteutil.OpenDB(courtdatadb.Schema, config.Database)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer db.Close()
		s := courtdata.NewStore(db)
		store = &s
	}

	service := courtapi.NewService(scraper, store)
	go serviceutil.StartHttpServer(config.Port, service.Routes())

	<-ctx.Done()
}
