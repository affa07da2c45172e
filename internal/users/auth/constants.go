// Copyright (c) 2026 ClaimPoint. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a bearer token remains valid.
	// Long enough for a browsing session; expiry is rediscovered by the
	// client through a failed profile fetch.
	AccessTokenTTL = 24 * time.Hour

	// OTPLength is the number of digits in the emailed verification code.
	OTPLength = 6

	// OTPTTL is the window during which an emailed code can be redeemed.
	OTPTTL = 300 * time.Second

	// ResendCooldown is the minimum delay between verification emails for
	// the same address.
	ResendCooldown = 30 * time.Second

	// TempPasswordLength is the length of generated staff invite passwords.
	TempPasswordLength = 12
)
