package model

import (
	"time"
)

type Category struct {
	Name string `json:"name" db:"name" validate:"required"`
}

type Book struct {
	BookID   string `json:"book_id" db:"book_id" validate:"required"`
	Title    string `json:"title" db:"title" validate:"required"`
	Author   string `json:"author" db:"author" validate:"required"`
	Category string `json:"category" db:"category" validate:"required"`
	Quantity int    `json:"quantity" db:"quantity" validate:"gte=0"`
}

type UpdateQuantityRequest struct {
	BookID   string `json:"book_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type BookRequest struct {
	RequestID       int        `json:"request_id" db:"request_id"`
	BookID          string     `json:"book_id" db:"book_id"`
	StudentUsername string     `json:"student_username" db:"student_username"`
	Status          Status     `json:"status" db:"status"`
	RequestDate     time.Time  `json:"request_date" db:"request_date"`
	ResponseDate    *time.Time `json:"response_date" db:"response_date"`
}

// StudentRequest is a BookRequest joined with its book's title and author.
type StudentRequest struct {
	BookRequest
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`
}

type CreateRequestRequest struct {
	BookID          string `json:"book_id" validate:"required"`
	StudentUsername string `json:"student_username" validate:"required"`
}
