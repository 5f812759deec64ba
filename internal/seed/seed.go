// Package seed loads deterministic demo data into any repository backend.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
)

// Counts sets how many records of each kind are generated.
type Counts struct {
	Branches     int
	Doctors      int
	Patients     int
	Products     int
	Transactions int
	Appointments int
}

// DefaultCounts matches the demo data set shipped with the admin panel.
var DefaultCounts = Counts{
	Branches:     50,
	Doctors:      40,
	Patients:     200,
	Products:     60,
	Transactions: 150,
	Appointments: 120,
}

var (
	cities          = []string{"Tel Aviv", "Haifa", "Jerusalem", "Eilat", "Beersheba", "Netanya", "Ashdod"}
	firstNames      = []string{"Noa", "David", "Maya", "Yosef", "Tamar", "Ari", "Lea", "Omer", "Dana", "Eitan", "Rivka", "Amit"}
	lastNames       = []string{"Cohen", "Levi", "Mizrahi", "Peretz", "Biton", "Friedman", "Azoulay", "Katz", "Shapiro", "Golan"}
	genders         = []string{"Male", "Female", "Other"}
	bloodGroups     = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	specializations = []string{"Cardiology", "Dermatology", "Pediatrics", "Neurology", "Orthopedics", "General Practice"}
	doctorStatuses  = []string{"active", "active", "active", "on_leave", "inactive"}
	categories      = []string{"Medication", "Consumables", "Equipment", "Supplements"}
	methods         = []string{"cash", "card", "insurance", "transfer"}
	txStatuses      = []string{"pending", "paid", "paid", "refunded", "void"}
	apptStatuses    = []string{"scheduled", "waiting", "in_progress", "completed", "cancelled"}
)

// Seeder generates the data set. The same seed always yields the same records.
type Seeder struct {
	repos  repository.Set
	tx     repository.TxManager
	counts Counts
	rnd    *rand.Rand
	now    time.Time
	log    zerolog.Logger
}

// New builds a seeder. tx may be nil for backends without transactions.
func New(repos repository.Set, tx repository.TxManager, counts Counts, logger zerolog.Logger) *Seeder {
	return &Seeder{
		repos:  repos,
		tx:     tx,
		counts: counts,
		rnd:    rand.New(rand.NewPCG(20240101, 42)),
		now:    time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC),
		log:    logger.With().Str("module", "seed").Logger(),
	}
}

// Run inserts every collection, parents first. With a TxManager the whole
// load is one transaction.
func (s *Seeder) Run(ctx context.Context) error {
	start := time.Now()
	load := func(ctx context.Context) error { return s.load(ctx) }
	var err error
	if s.tx != nil {
		err = s.tx.WithinTx(ctx, load)
	} else {
		err = load(ctx)
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	s.log.Info().Dur("took", time.Since(start)).Interface("counts", s.counts).Msg("demo data loaded")
	return nil
}

func (s *Seeder) load(ctx context.Context) error {
	branchIDs, err := s.branches(ctx)
	if err != nil {
		return err
	}
	doctorIDs, err := s.doctors(ctx, branchIDs)
	if err != nil {
		return err
	}
	patientIDs, err := s.patients(ctx, branchIDs)
	if err != nil {
		return err
	}
	if err := s.products(ctx); err != nil {
		return err
	}
	if err := s.transactions(ctx, patientIDs); err != nil {
		return err
	}
	return s.appointments(ctx, patientIDs, doctorIDs, branchIDs)
}

func (s *Seeder) branches(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, s.counts.Branches)
	for i := 1; i <= s.counts.Branches; i++ {
		status := "active"
		if i%9 == 0 {
			status = "inactive"
		}
		b, err := s.repos.Branches.Create(ctx, model.Branch{
			Name:      fmt.Sprintf("Branch %d", i),
			Code:      fmt.Sprintf("BR-%03d", i),
			City:      cities[(i-1)%len(cities)],
			Status:    status,
			CreatedAt: s.stamp(i),
		})
		if err != nil {
			return nil, fmt.Errorf("branch %d: %w", i, err)
		}
		ids = append(ids, b.ID)
	}
	return ids, nil
}

func (s *Seeder) doctors(ctx context.Context, branchIDs []int64) ([]int64, error) {
	ids := make([]int64, 0, s.counts.Doctors)
	for i := 1; i <= s.counts.Doctors; i++ {
		first, last := pick(s.rnd, firstNames), pick(s.rnd, lastNames)
		d, err := s.repos.Doctors.Create(ctx, model.Doctor{
			Name:           fmt.Sprintf("Dr. %s %s", first, last),
			Email:          fmt.Sprintf("doctor%d@clinic.example", i),
			Specialization: pick(s.rnd, specializations),
			Status:         pick(s.rnd, doctorStatuses),
			BranchID:       pickID(s.rnd, branchIDs),
			CreatedAt:      s.stamp(i),
		})
		if err != nil {
			return nil, fmt.Errorf("doctor %d: %w", i, err)
		}
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (s *Seeder) patients(ctx context.Context, branchIDs []int64) ([]int64, error) {
	ids := make([]int64, 0, s.counts.Patients)
	for i := 1; i <= s.counts.Patients; i++ {
		p, err := s.repos.Patients.Create(ctx, model.Patient{
			FirstName:  pick(s.rnd, firstNames),
			LastName:   pick(s.rnd, lastNames),
			Email:      fmt.Sprintf("patient%d@mail.example", i),
			Phone:      fmt.Sprintf("+972-5%d-%07d", i%10, s.rnd.IntN(10_000_000)),
			Gender:     pick(s.rnd, genders),
			BloodGroup: pick(s.rnd, bloodGroups),
			BranchID:   pickID(s.rnd, branchIDs),
			CreatedAt:  s.stamp(i),
		})
		if err != nil {
			return nil, fmt.Errorf("patient %d: %w", i, err)
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (s *Seeder) products(ctx context.Context) error {
	for i := 1; i <= s.counts.Products; i++ {
		category := categories[(i-1)%len(categories)]
		_, err := s.repos.Products.Create(ctx, model.Product{
			Name:      fmt.Sprintf("%s item %d", category, i),
			Code:      fmt.Sprintf("SKU-%04d", i),
			Category:  category,
			Stock:     int64(s.rnd.IntN(500)),
			Price:     float64(100+s.rnd.IntN(49_900)) / 100,
			CreatedAt: s.stamp(i),
		})
		if err != nil {
			return fmt.Errorf("product %d: %w", i, err)
		}
	}
	return nil
}

func (s *Seeder) transactions(ctx context.Context, patientIDs []int64) error {
	for i := 1; i <= s.counts.Transactions; i++ {
		_, err := s.repos.Transactions.Create(ctx, model.Transaction{
			Reference: fmt.Sprintf("TX-%06d", i),
			PatientID: pickID(s.rnd, patientIDs),
			Method:    pick(s.rnd, methods),
			Status:    pick(s.rnd, txStatuses),
			Total:     float64(500+s.rnd.IntN(200_000)) / 100,
			CreatedAt: s.stamp(i),
		})
		if err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}

// appointments fills a daily queue per doctor: queue numbers restart at 1
// for each doctor and day.
func (s *Seeder) appointments(ctx context.Context, patientIDs, doctorIDs, branchIDs []int64) error {
	type slot struct {
		doctor int64
		day    int
	}
	queue := map[slot]int64{}
	for i := 1; i <= s.counts.Appointments; i++ {
		doctor := pickID(s.rnd, doctorIDs)
		day := s.rnd.IntN(7)
		queue[slot{doctor, day}]++
		n := queue[slot{doctor, day}]
		_, err := s.repos.Appointments.Create(ctx, model.Appointment{
			PatientID:   pickID(s.rnd, patientIDs),
			DoctorID:    doctor,
			BranchID:    pickID(s.rnd, branchIDs),
			ScheduledAt: s.now.AddDate(0, 0, day).Add(time.Duration(n-1) * 20 * time.Minute),
			Status:      pick(s.rnd, apptStatuses),
			QueueNumber: n,
			Reason:      "Consultation",
			CreatedAt:   s.stamp(i),
		})
		if err != nil {
			return fmt.Errorf("appointment %d: %w", i, err)
		}
	}
	return nil
}

func (s *Seeder) stamp(i int) time.Time {
	return s.now.Add(-time.Duration(i) * time.Hour)
}

func pick(r *rand.Rand, from []string) string {
	return from[r.IntN(len(from))]
}

// pickID returns 0 when there is nothing to reference.
func pickID(r *rand.Rand, ids []int64) int64 {
	if len(ids) == 0 {
		return 0
	}
	return ids[r.IntN(len(ids))]
}
