package repository

import (
	"context"

	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/query"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// Repository declares persistence operations shared by every list module.
// Filter must honor the query contract exactly: the memory store delegates to
// query.Engine, the Postgres store translates the same request to SQL.
// Errors surface as the domain errors from errors.go rather than driver codes.
type Repository[T any] interface {
	Create(ctx context.Context, v T) (T, error)
	GetByID(ctx context.Context, id int64) (T, error)
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context, req query.Request) (query.Page[T], error)
}

// Set bundles one repository per list module regardless of backend.
type Set struct {
	Patients     Repository[model.Patient]
	Doctors      Repository[model.Doctor]
	Branches     Repository[model.Branch]
	Appointments Repository[model.Appointment]
	Products     Repository[model.Product]
	Transactions Repository[model.Transaction]
}
