// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior, apart from the
// small identity helpers stores need.
package model

import "time"

// Record is implemented by every entity a list module serves.
// WithRecordID returns a copy carrying the store-assigned identifier.
type Record[T any] interface {
	RecordID() int64
	WithRecordID(id int64) T
}

// Patient is a person registered at one of the clinic branches.
type Patient struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"firstName" validate:"required,min=1,max=100"`
	LastName   string    `json:"lastName" validate:"required,min=1,max=100"`
	Email      string    `json:"email" validate:"omitempty,email"`
	Phone      string    `json:"phone" validate:"omitempty,max=32"`
	Gender     string    `json:"gender" validate:"required,oneof=Male Female Other"`
	BloodGroup string    `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	BranchID   int64     `json:"branchId" validate:"gte=0"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Doctor is a practitioner assigned to a branch.
type Doctor struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name" validate:"required,min=2,max=120"`
	Email          string    `json:"email" validate:"omitempty,email"`
	Specialization string    `json:"specialization" validate:"required,max=80"`
	Status         string    `json:"status" validate:"required,oneof=active on_leave inactive"`
	BranchID       int64     `json:"branchId" validate:"gte=0"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Branch is a physical clinic location.
type Branch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,min=2,max=120"`
	Code      string    `json:"code" validate:"required,max=20"`
	City      string    `json:"city" validate:"omitempty,max=80"`
	Status    string    `json:"status" validate:"required,oneof=active inactive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Appointment is a booked slot; QueueNumber orders patients waiting on the same day.
type Appointment struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patientId" validate:"gt=0"`
	DoctorID    int64     `json:"doctorId" validate:"gt=0"`
	BranchID    int64     `json:"branchId" validate:"gte=0"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Status      string    `json:"status" validate:"required,oneof=scheduled waiting in_progress completed cancelled"`
	QueueNumber int64     `json:"queueNumber" validate:"gte=0"`
	Reason      string    `json:"reason" validate:"omitempty,max=500"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Product is an inventory item sold or dispensed at the clinic.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,min=2,max=120"`
	Code      string    `json:"code" validate:"required,max=40"`
	Category  string    `json:"category" validate:"required,max=60"`
	Stock     int64     `json:"stock" validate:"gte=0"`
	Price     float64   `json:"price" validate:"gte=0"`
	CreatedAt time.Time `json:"createdAt"`
}

// Transaction is a billing event against a patient.
type Transaction struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference" validate:"required,max=40"`
	PatientID int64     `json:"patientId" validate:"gt=0"`
	Method    string    `json:"method" validate:"required,oneof=cash card insurance transfer"`
	Status    string    `json:"status" validate:"required,oneof=pending paid refunded void"`
	Total     float64   `json:"total" validate:"gte=0"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p Patient) RecordID() int64 { return p.ID }
func (p Patient) WithRecordID(id int64) Patient {
	p.ID = id
	return p
}

func (d Doctor) RecordID() int64 { return d.ID }
func (d Doctor) WithRecordID(id int64) Doctor {
	d.ID = id
	return d
}

func (b Branch) RecordID() int64 { return b.ID }
func (b Branch) WithRecordID(id int64) Branch {
	b.ID = id
	return b
}

func (a Appointment) RecordID() int64 { return a.ID }
func (a Appointment) WithRecordID(id int64) Appointment {
	a.ID = id
	return a
}

func (p Product) RecordID() int64 { return p.ID }
func (p Product) WithRecordID(id int64) Product {
	p.ID = id
	return p
}

func (t Transaction) RecordID() int64 { return t.ID }
func (t Transaction) WithRecordID(id int64) Transaction {
	t.ID = id
	return t
}
