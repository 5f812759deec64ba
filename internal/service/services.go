package service

import (
	"github.com/maxviazov/clinic-admin-service/internal/cache"
	"github.com/maxviazov/clinic-admin-service/internal/catalog"
	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
	"github.com/rs/zerolog"
)

// Services groups the catalog services of every admin module.
type Services struct {
	Patients     CatalogService[model.Patient]
	Doctors      CatalogService[model.Doctor]
	Branches     CatalogService[model.Branch]
	Appointments CatalogService[model.Appointment]
	Products     CatalogService[model.Product]
	Transactions CatalogService[model.Transaction]
}

func NewServices(repos repository.Set, c cache.Cache, opts Options, logger zerolog.Logger) Services {
	return Services{
		Patients:     NewCatalogService(catalog.PatientsModule, repos.Patients, c, opts, logger),
		Doctors:      NewCatalogService(catalog.DoctorsModule, repos.Doctors, c, opts, logger),
		Branches:     NewCatalogService(catalog.BranchesModule, repos.Branches, c, opts, logger),
		Appointments: NewCatalogService(catalog.AppointmentsModule, repos.Appointments, c, opts, logger),
		Products:     NewCatalogService(catalog.ProductsModule, repos.Products, c, opts, logger),
		Transactions: NewCatalogService(catalog.TransactionsModule, repos.Transactions, c, opts, logger),
	}
}
