package models

import "time"

// ContactMessage is one submission of the public contact form, appended to the
// bounded "contact_messages" document.
type ContactMessage struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	ServiceType string    `json:"service_type,omitempty"`
}
