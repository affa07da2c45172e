// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package auth implements the user identity and registration lifecycle.

It defines the core domain entity (User) and the logic for registration,
email ownership verification via one-time codes, and login.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/claimpoint/claimpoint/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the ClaimPoint platform.
type User struct {
	ID            string       `json:"id"`
	FullName      string       `json:"full_name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	PasswordHash  string       `json:"-"` // Explicitly omitted from JSON for security.
	Role          sec.UserRole `json:"role"`
	EmailVerified bool         `json:"email_verified"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPassword = "password"
	FieldOTP      = "otp"
	FieldToken    = "token"
	FieldUser     = "user"
	FieldMessage  = "message"
)
