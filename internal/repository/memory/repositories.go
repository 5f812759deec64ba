package memory

import (
	"time"

	"github.com/maxviazov/clinic-admin-service/internal/catalog"
	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
)

// Repositories bundles one store per module.
type Repositories struct {
	Patients     *Store[model.Patient]
	Doctors      *Store[model.Doctor]
	Branches     *Store[model.Branch]
	Appointments *Store[model.Appointment]
	Products     *Store[model.Product]
	Transactions *Store[model.Transaction]
}

// NewRepositories builds empty stores for every module. Catalog schemas are
// validated by their own tests, so construction errors are programming errors.
func NewRepositories() Repositories {
	return Repositories{
		Patients: must(NewStore(catalog.Patients, WithClock(time.Now, func(p model.Patient, at time.Time) model.Patient {
			p.CreatedAt = stampOr(p.CreatedAt, at)
			return p
		}))),
		Doctors: must(NewStore(catalog.Doctors, WithClock(time.Now, func(d model.Doctor, at time.Time) model.Doctor {
			d.CreatedAt = stampOr(d.CreatedAt, at)
			return d
		}))),
		Branches: must(NewStore(catalog.Branches, WithClock(time.Now, func(b model.Branch, at time.Time) model.Branch {
			b.CreatedAt = stampOr(b.CreatedAt, at)
			return b
		}))),
		Appointments: must(NewStore(catalog.Appointments, WithClock(time.Now, func(a model.Appointment, at time.Time) model.Appointment {
			a.CreatedAt = stampOr(a.CreatedAt, at)
			return a
		}))),
		Products: must(NewStore(catalog.Products, WithClock(time.Now, func(p model.Product, at time.Time) model.Product {
			p.CreatedAt = stampOr(p.CreatedAt, at)
			return p
		}))),
		Transactions: must(NewStore(catalog.Transactions, WithClock(time.Now, func(t model.Transaction, at time.Time) model.Transaction {
			t.CreatedAt = stampOr(t.CreatedAt, at)
			return t
		}))),
	}
}

// Set exposes the stores through the backend-neutral bundle.
func (r Repositories) Set() repository.Set {
	return repository.Set{
		Patients:     r.Patients,
		Doctors:      r.Doctors,
		Branches:     r.Branches,
		Appointments: r.Appointments,
		Products:     r.Products,
		Transactions: r.Transactions,
	}
}

// stampOr keeps a caller-provided timestamp, which seed data relies on.
func stampOr(have, now time.Time) time.Time {
	if have.IsZero() {
		return now.UTC()
	}
	return have
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
