// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package contact implements the public contact form.

Messages are persisted for the support team and trigger two emails: a
notification to the support inbox and an acknowledgement to the sender.
*/
package contact

import "time"

// Message represents a single contact form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldBody    = "body"
)
