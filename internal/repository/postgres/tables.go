package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/clinic-admin-service/internal/catalog"
	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
)

var patientTable = Table[model.Patient]{
	Name:    catalog.PatientsModule,
	Columns: []string{"first_name", "last_name", "email", "phone", "gender", "blood_group", "branch_id", "created_at"},
	Insert:  []string{"first_name", "last_name", "email", "phone", "gender", "blood_group", "branch_id"},
	Values: func(p model.Patient) []any {
		return []any{p.FirstName, p.LastName, p.Email, p.Phone, p.Gender, p.BloodGroup, p.BranchID}
	},
	Scan: func(scan ScanFunc) (model.Patient, error) {
		var p model.Patient
		err := scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Gender, &p.BloodGroup, &p.BranchID, &p.CreatedAt)
		return p, err
	},
}

var doctorTable = Table[model.Doctor]{
	Name:    catalog.DoctorsModule,
	Columns: []string{"name", "email", "specialization", "status", "branch_id", "created_at"},
	Insert:  []string{"name", "email", "specialization", "status", "branch_id"},
	Values: func(d model.Doctor) []any {
		return []any{d.Name, d.Email, d.Specialization, d.Status, d.BranchID}
	},
	Scan: func(scan ScanFunc) (model.Doctor, error) {
		var d model.Doctor
		err := scan(&d.ID, &d.Name, &d.Email, &d.Specialization, &d.Status, &d.BranchID, &d.CreatedAt)
		return d, err
	},
}

var branchTable = Table[model.Branch]{
	Name:    catalog.BranchesModule,
	Columns: []string{"name", "code", "city", "status", "created_at"},
	Insert:  []string{"name", "code", "city", "status"},
	Values: func(b model.Branch) []any {
		return []any{b.Name, b.Code, b.City, b.Status}
	},
	Scan: func(scan ScanFunc) (model.Branch, error) {
		var b model.Branch
		err := scan(&b.ID, &b.Name, &b.Code, &b.City, &b.Status, &b.CreatedAt)
		return b, err
	},
}

var appointmentTable = Table[model.Appointment]{
	Name:    catalog.AppointmentsModule,
	Columns: []string{"patient_id", "doctor_id", "branch_id", "scheduled_at", "status", "queue_number", "reason", "created_at"},
	Insert:  []string{"patient_id", "doctor_id", "branch_id", "scheduled_at", "status", "queue_number", "reason"},
	Values: func(a model.Appointment) []any {
		return []any{a.PatientID, a.DoctorID, a.BranchID, a.ScheduledAt, a.Status, a.QueueNumber, a.Reason}
	},
	Scan: func(scan ScanFunc) (model.Appointment, error) {
		var a model.Appointment
		err := scan(&a.ID, &a.PatientID, &a.DoctorID, &a.BranchID, &a.ScheduledAt, &a.Status, &a.QueueNumber, &a.Reason, &a.CreatedAt)
		return a, err
	},
}

var productTable = Table[model.Product]{
	Name:    catalog.ProductsModule,
	Columns: []string{"name", "code", "category", "stock", "price", "created_at"},
	Insert:  []string{"name", "code", "category", "stock", "price"},
	Values: func(p model.Product) []any {
		return []any{p.Name, p.Code, p.Category, p.Stock, p.Price}
	},
	Scan: func(scan ScanFunc) (model.Product, error) {
		var p model.Product
		err := scan(&p.ID, &p.Name, &p.Code, &p.Category, &p.Stock, &p.Price, &p.CreatedAt)
		return p, err
	},
}

var transactionTable = Table[model.Transaction]{
	Name:    catalog.TransactionsModule,
	Columns: []string{"reference", "patient_id", "method", "status", "total", "created_at"},
	Insert:  []string{"reference", "patient_id", "method", "status", "total"},
	Values: func(t model.Transaction) []any {
		return []any{t.Reference, t.PatientID, t.Method, t.Status, t.Total}
	},
	Scan: func(scan ScanFunc) (model.Transaction, error) {
		var t model.Transaction
		err := scan(&t.ID, &t.Reference, &t.PatientID, &t.Method, &t.Status, &t.Total, &t.CreatedAt)
		return t, err
	},
}

// NewRepositories builds one store per module over a shared pool.
func NewRepositories(pool *pgxpool.Pool) repository.Set {
	return repository.Set{
		Patients:     NewStore(pool, patientTable, catalog.Patients),
		Doctors:      NewStore(pool, doctorTable, catalog.Doctors),
		Branches:     NewStore(pool, branchTable, catalog.Branches),
		Appointments: NewStore(pool, appointmentTable, catalog.Appointments),
		Products:     NewStore(pool, productTable, catalog.Products),
		Transactions: NewStore(pool, transactionTable, catalog.Transactions),
	}
}
