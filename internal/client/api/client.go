// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package api is the HTTP gateway client consumed by the session controller.

It exposes one named method per backend operation and unwraps the server's
response envelope: {"data": ...} on success, {"error", "code", "details"} on
failure. Callers receive plain Go values and never see transport details.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Profile mirrors the account record returned by GET /auth/profile.
type Profile struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// FoundItem mirrors a catalogue entry returned by GET /items.
type FoundItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	FoundAt     time.Time `json:"found_at"`
	Status      string    `json:"status"`
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// StaffInput carries the add-staff form fields.
type StaffInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Error is a failure reported by the backend, carrying the server-supplied
// message verbatim so it can be shown to the user as-is.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// Client calls the ClaimPoint REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a gateway [Client] against the given base URL, e.g.
// "https://api.claimpoint.app/api/v1".
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// # Operations

/*
Login exchanges credentials for a bearer token.

Description: The response carries only the token. Callers needing the account
record follow up with [Client.GetProfile].

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - string: Bearer token
  - err: *Error with the server message, or transport failures
*/
func (client *Client) Login(context context.Context, email, password string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}

	err := client.do(context, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return "", err
	}

	return result.Token, nil
}

/*
GetProfile returns the account record behind a token.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *Profile: Hydrated account record
  - err: *Error (invalid or expired token) or transport failures
*/
func (client *Client) GetProfile(context context.Context, token string) (*Profile, error) {
	var result struct {
		User *Profile `json:"user"`
	}

	if err := client.do(context, http.MethodGet, "/auth/profile", token, nil, &result); err != nil {
		return nil, err
	}

	// A 2xx envelope without a user record is a malformed response, not a
	// success. Callers rely on a non-nil profile when err is nil.
	if result.User == nil {
		return nil, &Error{
			Code:    "UNKNOWN",
			Message: "Profile payload was missing from the response",
			Status:  http.StatusOK,
		}
	}

	return result.User, nil
}

// Register creates a new unverified account.
func (client *Client) Register(context context.Context, input RegisterInput) error {
	return client.do(context, http.MethodPost, "/auth/register", "", input, nil)
}

// VerifyEmail redeems the emailed OTP code.
func (client *Client) VerifyEmail(context context.Context, otp, email string) error {
	return client.do(context, http.MethodPost, "/auth/verify-email", "", map[string]string{
		"otp":   otp,
		"email": email,
	}, nil)
}

// ResendVerificationCode re-issues the OTP code.
func (client *Client) ResendVerificationCode(context context.Context, email string) error {
	return client.do(context, http.MethodPost, "/auth/resend-verification", "", map[string]string{
		"email": email,
	}, nil)
}

/*
GetAllFoundItems returns the found-item catalogue.

Description: The token is optional. Callers must degrade to an empty list on
failure rather than surfacing the error.

Parameters:
  - context: context.Context
  - token: string (may be empty)

Returns:
  - []FoundItem: Catalogue entries
  - err: *Error or transport failures
*/
func (client *Client) GetAllFoundItems(context context.Context, token string) ([]FoundItem, error) {
	var result []FoundItem
	if err := client.do(context, http.MethodGet, "/items", token, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// AddStaff creates a pre-verified staff account. Requires an ADMIN token.
func (client *Client) AddStaff(context context.Context, input StaffInput, token string) error {
	return client.do(context, http.MethodPost, "/staff", token, input, nil)
}

// # Transport

// do issues one request and unwraps the response envelope into out.
func (client *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api_client_encode_failed: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api_client_request_failed: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("api_client_transport_failed: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("api_client_read_failed: %w", err)
	}

	if response.StatusCode >= 400 {
		return decodeError(response.StatusCode, payload)
	}

	if out == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fmt.Errorf("api_client_decode_failed: %w", err)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("api_client_decode_failed: %w", err)
	}

	return nil
}

// decodeError turns an error envelope into an *Error, falling back to a
// generic message when the body is not the expected shape.
func decodeError(status int, payload []byte) error {
	var envelope struct {
		Message string `json:"error"`
		Code    string `json:"code"`
	}

	if err := json.Unmarshal(payload, &envelope); err != nil || envelope.Message == "" {
		return &Error{
			Code:    "UNKNOWN",
			Message: fmt.Sprintf("Request failed with status %d", status),
			Status:  status,
		}
	}

	return &Error{
		Code:    envelope.Code,
		Message: envelope.Message,
		Status:  status,
	}
}
