package repomanager

import (
	"github.com/dmitrijs2005/recipex/internal/dbx"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/caregivers"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/measurements"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/messages"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/relations"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, either the pool or a
// transaction handed out by a dbx.Transactor.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Caregivers(db dbx.DBTX) caregivers.Repository
	Relations(db dbx.DBTX) relations.Repository
	Measurements(db dbx.DBTX) measurements.Repository
	Messages(db dbx.DBTX) messages.Repository
}
