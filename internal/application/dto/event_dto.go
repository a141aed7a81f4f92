package dto

import "time"

// CreateEventRequest entrada para crear un evento. Date en formato YYYY-MM-DD, Time opcional HH:MM.
type CreateEventRequest struct {
	Name   string  `json:"name" validate:"required"`
	Date   string  `json:"date" validate:"required"`
	Time   *string `json:"time,omitempty"`
	Status string  `json:"status,omitempty" validate:"omitempty,oneof=planned in-progress completed cancelled"`
}

// UpdateEventStatusRequest body para PATCH /api/events/:id/status.
type UpdateEventStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planned in-progress completed cancelled"`
}

// EventResponse salida de un evento.
type EventResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Date               string    `json:"date"`
	Time               *string   `json:"time,omitempty"`
	Status             string    `json:"status"`
	AcceptsAllocations bool      `json:"accepts_allocations"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedBy          string    `json:"created_by"`
	CreatorName        string    `json:"creator_name,omitempty"`
}

// EventListResponse lista de eventos.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
}
