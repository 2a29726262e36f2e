package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcfadden20/Swim-meet-timer/internal/database/postgres"
	"github.com/mcfadden20/Swim-meet-timer/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Meets    repository.Meets
	Results  repository.Results
	Receipts repository.Receipts
}

// InitializeRepositories creates the postgres repositories over one pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Meets:    postgres.NewMeetRepository(dbPool),
		Results:  postgres.NewResultRepository(dbPool),
		Receipts: postgres.NewReceiptRepository(dbPool),
	}
}
