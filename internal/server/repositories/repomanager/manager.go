package repomanager

import (
	"context"
	"database/sql"

	"github.com/infixtech/ixtportal/internal/dbx"
	"github.com/infixtech/ixtportal/internal/server/repositories/accounts"
	"github.com/infixtech/ixtportal/internal/server/repositories/activitylogs"
	"github.com/infixtech/ixtportal/internal/server/repositories/refreshtokens"
)

// RepositoryManager binds repositories to a connection or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	ActivityLogs(db dbx.DBTX) activitylogs.Repository
}
