package main

import (
	"context"
	"flag"
	"os"
	"time"

	"boostjar/internal/modkit"
	"boostjar/internal/modkit/module"
	"boostjar/internal/platform/config"
	"boostjar/internal/platform/logger"
	"boostjar/internal/platform/store"

	dirmod "boostjar/internal/services/directory/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	dbCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dbCfg.MustString("DBURL"),
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		fSite     = flag.String("site", "", "Jira cloud site id to sync (optional; falls back to env)")
		fInterval = flag.Duration("interval", time.Hour, "delay between roster sync runs")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// Export as env so the module can also read via config
	mustSetEnv("DIRECTORY_SYNC_SITE", *fSite)
	mustSetEnv("DIRECTORY_SYNC_INTERVAL", fInterval.String())

	mod := dirmod.New(deps)
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[dirmod.Ports](mod)

	site := root.MayString("DIRECTORY_SYNC_SITE", "")
	if err := ports.Runner.RunSync(context.Background(), site, *fInterval); err != nil {
		l.Fatal().Err(err).Msg("directory sync worker failed")
	}
}
