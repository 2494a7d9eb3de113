package dto

import "github.com/google/uuid"

type AvailableSlotsResponse struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name"`
	Date           string    `json:"date"`
	AvailableSlots []string  `json:"available_slots"`
	TotalSlots     int       `json:"total_slots"`
}
