package community

import (
	"embed"

	"github.com/commverse/community-sdk/modules/community/infrastructure/persistence"
	"github.com/commverse/community-sdk/modules/community/services"
	"github.com/commverse/community-sdk/pkg/application"
	"github.com/commverse/community-sdk/pkg/composables"
)

//go:embed infrastructure/persistence/schema/*.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	repo := persistence.NewSegmentRepository()
	transactor := composables.NewPgxTransactor()

	app.RegisterServices(
		services.NewSegmentService(repo, transactor, app.EventBus()),
		services.NewSegmentQueryService(repo),
		services.NewActivitySettingsService(repo, app.EventBus()),
	)

	return nil
}

func (m *Module) Name() string {
	return "community"
}
