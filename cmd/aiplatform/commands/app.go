package commands

import (
	"github.com/Sereen-Kh/ai-deployment-platform/api"
	"github.com/Sereen-Kh/ai-deployment-platform/internal/config"
	"github.com/Sereen-Kh/ai-deployment-platform/session"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
)

// app wires the pieces every command needs: resolved config, the on-disk
// session store, and the API client bound to both.
type app struct {
	cfg     *config.Config
	cfgPath string
	store   *session.FileStore
	client  *api.Client
}

func newApp() (*app, error) {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagOutput != "" {
		cfg.OutputFormat = flagOutput
	}

	credPath, err := session.DefaultCredentialsPath()
	if err != nil {
		return nil, err
	}
	store, err := session.NewFileStore(credPath)
	if err != nil {
		return nil, err
	}
	store.OnClear(func() {
		color.Yellow("Session expired - run 'aiplatform login' to sign in again.")
	})

	options := []api.Option{
		api.WithLogger(log.Logger),
		api.WithRefreshLeeway(cfg.RefreshLeeway),
	}
	if cfg.WSURL != "" {
		options = append(options, api.WithWebSocketURL(cfg.WSURL))
	}

	client, err := api.NewClient(cfg.APIURL, store, options...)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, cfgPath: cfgPath, store: store, client: client}, nil
}

func (a *app) jsonOutput() bool {
	return a.cfg.OutputFormat == "json"
}
