// Package catalog declares how each admin list module plugs into the shared
// query engine: which fields are searchable, filterable and sortable.
package catalog

import (
	"time"

	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/query"
)

// Module names double as route segments and table names.
const (
	PatientsModule     = "patients"
	DoctorsModule      = "doctors"
	BranchesModule     = "branches"
	AppointmentsModule = "appointments"
	ProductsModule     = "products"
	TransactionsModule = "transactions"
)

// Modules lists every module in routing order.
var Modules = []string{
	PatientsModule,
	DoctorsModule,
	BranchesModule,
	AppointmentsModule,
	ProductsModule,
	TransactionsModule,
}

var Patients = query.Schema[model.Patient]{
	Name: PatientsModule,
	Fields: map[string]query.Field[model.Patient]{
		"id":         query.Int("id", func(p model.Patient) int64 { return p.ID }),
		"firstName":  query.String("first_name", func(p model.Patient) string { return p.FirstName }),
		"lastName":   query.String("last_name", func(p model.Patient) string { return p.LastName }),
		"email":      query.String("email", func(p model.Patient) string { return p.Email }),
		"phone":      query.String("phone", func(p model.Patient) string { return p.Phone }),
		"gender":     query.String("gender", func(p model.Patient) string { return p.Gender }),
		"bloodGroup": query.String("blood_group", func(p model.Patient) string { return p.BloodGroup }),
		"branchId":   query.Int("branch_id", func(p model.Patient) int64 { return p.BranchID }),
		"createdAt":  query.Time("created_at", func(p model.Patient) time.Time { return p.CreatedAt }),
	},
	Search:  []string{"firstName", "lastName", "email", "phone"},
	Filters: map[string]string{"gender": "gender", "bloodGroup": "bloodGroup", "branch": "branchId"},
	Sorts:   []string{"id", "firstName", "lastName", "createdAt"},
}

var Doctors = query.Schema[model.Doctor]{
	Name: DoctorsModule,
	Fields: map[string]query.Field[model.Doctor]{
		"id":             query.Int("id", func(d model.Doctor) int64 { return d.ID }),
		"name":           query.String("name", func(d model.Doctor) string { return d.Name }),
		"email":          query.String("email", func(d model.Doctor) string { return d.Email }),
		"specialization": query.String("specialization", func(d model.Doctor) string { return d.Specialization }),
		"status":         query.String("status", func(d model.Doctor) string { return d.Status }),
		"branchId":       query.Int("branch_id", func(d model.Doctor) int64 { return d.BranchID }),
		"createdAt":      query.Time("created_at", func(d model.Doctor) time.Time { return d.CreatedAt }),
	},
	Search:  []string{"name", "email", "specialization"},
	Filters: map[string]string{"specialization": "specialization", "status": "status", "branch": "branchId"},
	Sorts:   []string{"id", "name", "specialization", "createdAt"},
}

var Branches = query.Schema[model.Branch]{
	Name: BranchesModule,
	Fields: map[string]query.Field[model.Branch]{
		"id":        query.Int("id", func(b model.Branch) int64 { return b.ID }),
		"name":      query.String("name", func(b model.Branch) string { return b.Name }),
		"code":      query.String("code", func(b model.Branch) string { return b.Code }),
		"city":      query.String("city", func(b model.Branch) string { return b.City }),
		"status":    query.String("status", func(b model.Branch) string { return b.Status }),
		"createdAt": query.Time("created_at", func(b model.Branch) time.Time { return b.CreatedAt }),
	},
	Search:  []string{"name", "code", "city"},
	Filters: map[string]string{"city": "city", "status": "status"},
	Sorts:   []string{"id", "name", "code", "city", "createdAt"},
}

// Appointments backs the waiting queue: sort by queueNumber within a filtered day/doctor.
var Appointments = query.Schema[model.Appointment]{
	Name: AppointmentsModule,
	Fields: map[string]query.Field[model.Appointment]{
		"id":          query.Int("id", func(a model.Appointment) int64 { return a.ID }),
		"patientId":   query.Int("patient_id", func(a model.Appointment) int64 { return a.PatientID }),
		"doctorId":    query.Int("doctor_id", func(a model.Appointment) int64 { return a.DoctorID }),
		"branchId":    query.Int("branch_id", func(a model.Appointment) int64 { return a.BranchID }),
		"scheduledAt": query.Time("scheduled_at", func(a model.Appointment) time.Time { return a.ScheduledAt }),
		"status":      query.String("status", func(a model.Appointment) string { return a.Status }),
		"queueNumber": query.Int("queue_number", func(a model.Appointment) int64 { return a.QueueNumber }),
		"reason":      query.String("reason", func(a model.Appointment) string { return a.Reason }),
	},
	Search: []string{"reason", "status"},
	Filters: map[string]string{
		"status":  "status",
		"doctor":  "doctorId",
		"patient": "patientId",
		"branch":  "branchId",
	},
	Sorts: []string{"id", "scheduledAt", "queueNumber", "status"},
}

var Products = query.Schema[model.Product]{
	Name: ProductsModule,
	Fields: map[string]query.Field[model.Product]{
		"id":        query.Int("id", func(p model.Product) int64 { return p.ID }),
		"name":      query.String("name", func(p model.Product) string { return p.Name }),
		"code":      query.String("code", func(p model.Product) string { return p.Code }),
		"category":  query.String("category", func(p model.Product) string { return p.Category }),
		"stock":     query.Int("stock", func(p model.Product) int64 { return p.Stock }),
		"price":     query.Float("price", func(p model.Product) float64 { return p.Price }),
		"createdAt": query.Time("created_at", func(p model.Product) time.Time { return p.CreatedAt }),
	},
	Search:  []string{"name", "code"},
	Filters: map[string]string{"category": "category"},
	Sorts:   []string{"id", "name", "stock", "price", "createdAt"},
}

var Transactions = query.Schema[model.Transaction]{
	Name: TransactionsModule,
	Fields: map[string]query.Field[model.Transaction]{
		"id":        query.Int("id", func(t model.Transaction) int64 { return t.ID }),
		"reference": query.String("reference", func(t model.Transaction) string { return t.Reference }),
		"patientId": query.Int("patient_id", func(t model.Transaction) int64 { return t.PatientID }),
		"method":    query.String("method", func(t model.Transaction) string { return t.Method }),
		"status":    query.String("status", func(t model.Transaction) string { return t.Status }),
		"total":     query.Float("total", func(t model.Transaction) float64 { return t.Total }),
		"createdAt": query.Time("created_at", func(t model.Transaction) time.Time { return t.CreatedAt }),
	},
	Search:  []string{"reference"},
	Filters: map[string]string{"status": "status", "method": "method", "patient": "patientId"},
	Sorts:   []string{"id", "total", "createdAt"},
}
