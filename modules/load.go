package modules

import (
	"github.com/commverse/community-sdk/modules/community"
	"github.com/commverse/community-sdk/pkg/application"
)

var BuiltInModules = []application.Module{
	community.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
