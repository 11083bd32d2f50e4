package migration

import (
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/repository"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&repository.PrincipalModel{},
		&repository.RecipientModel{},
		&repository.SharedAuthorizationModel{},
		&repository.AuthRequestModel{},
	}
}
