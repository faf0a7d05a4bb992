package app

import (
	"github.com/per2jensen/clonepulse/internal/config"
	"github.com/per2jensen/clonepulse/internal/utils"
	"github.com/per2jensen/clonepulse/pkg/badge"
	"github.com/per2jensen/clonepulse/pkg/dashboard"
	"github.com/per2jensen/clonepulse/pkg/fetch"
	"github.com/per2jensen/clonepulse/pkg/github"
	"github.com/per2jensen/clonepulse/pkg/traffic"
)

// Dependencies holds all services of the application.
type Dependencies struct {
	TrafficRepo  traffic.Repository
	GitHubClient github.Client
	BadgeWriter  badge.Writer

	FetchService fetch.Service

	ChartRenderer    *dashboard.ChartRenderer
	DashboardService dashboard.Service

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services.
func BuildDependencies(cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.TrafficRepo = traffic.NewFileRepository(cfg.Storage.ClonesFile)
	deps.GitHubClient = github.NewClient()
	deps.BadgeWriter = badge.NewFileWriter(cfg.Storage.BadgeDir)

	deps.FetchService = fetch.NewService(
		deps.GitHubClient,
		deps.TrafficRepo,
		deps.BadgeWriter,
		fetch.NewMilestones(cfg.Milestones),
		cfg.GitHub.TokenEnv,
	)

	deps.ChartRenderer = dashboard.NewChartRenderer(cfg.Dashboard.Width, cfg.Dashboard.Height)
	deps.DashboardService = dashboard.NewService(deps.TrafficRepo, deps.ChartRenderer, cfg.Dashboard.OutputFile)

	return deps
}
