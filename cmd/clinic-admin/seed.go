package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxviazov/clinic-admin-service/internal/repository"
	"github.com/maxviazov/clinic-admin-service/internal/repository/postgres"
	"github.com/maxviazov/clinic-admin-service/internal/seed"
)

func seedCmd(configPath *string) *cobra.Command {
	counts := seed.DefaultCounts
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into Postgres in one transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			pool, err := repository.New(cmd.Context(), cfg.Postgres, &log)
			if err != nil {
				return fmt.Errorf("postgres connection failed: %w", err)
			}
			defer pool.Close()
			repos := postgres.NewRepositories(pool.Raw())
			return seed.New(repos, postgres.NewTxManager(pool.Raw()), counts, log).Run(cmd.Context())
		},
	}
	f := cmd.Flags()
	f.IntVar(&counts.Branches, "branches", counts.Branches, "number of branches")
	f.IntVar(&counts.Doctors, "doctors", counts.Doctors, "number of doctors")
	f.IntVar(&counts.Patients, "patients", counts.Patients, "number of patients")
	f.IntVar(&counts.Products, "products", counts.Products, "number of products")
	f.IntVar(&counts.Transactions, "transactions", counts.Transactions, "number of transactions")
	f.IntVar(&counts.Appointments, "appointments", counts.Appointments, "number of appointments")
	return cmd
}
