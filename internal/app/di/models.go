package di

import (
	actionadapters "finbar/internal/feature/action/adapters"
	authadapters "finbar/internal/feature/auth/adapters"
	authentity "finbar/internal/feature/auth/domain/entity"
	portfolioadapters "finbar/internal/feature/portfolio/adapters"
)

// Models lists every table for AutoMigrate, parents first.
func Models() []any {
	return []any{
		&authentity.User{},
		&authadapters.SessionModel{},
		&portfolioadapters.PortfolioModel{},
		&actionadapters.ActionModel{},
	}
}
