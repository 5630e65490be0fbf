package models

import "time"

// Employee is a staff member who creates and mutates orders
type Employee struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Position     string    `db:"position" json:"position"`
	EmployeeCode string    `db:"employee_code" json:"employee_code,omitempty"`
	Email        string    `db:"email" json:"email"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}
