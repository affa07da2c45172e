// Copyright (c) 2026 ClaimPoint. All rights reserved.

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimpoint/claimpoint/internal/client/api"
)

/*
TestClient_Login verifies token extraction from the success envelope.
*/
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dana@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"token":"abc123"}}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client())

	token, err := client.Login(context.Background(), "dana@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

/*
TestClient_Login_ServerError verifies the server message passes through
verbatim as an *api.Error.
*/
func TestClient_Login_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid login credentials","code":"UNAUTHORIZED"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client())

	_, err := client.Login(context.Background(), "dana@example.com", "wrong")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

/*
TestClient_Login_MalformedErrorBody verifies the generic fallback when the
error body is not the expected envelope.
*/
func TestClient_Login_MalformedErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client())

	_, err := client.Login(context.Background(), "dana@example.com", "pw")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNKNOWN", apiErr.Code)
	assert.Contains(t, apiErr.Message, "502")
}

/*
TestClient_GetProfile verifies bearer header propagation and user decoding.
*/
func TestClient_GetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/profile", r.URL.Path)
		require.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"user":{"id":"u1","full_name":"Dana Reeve","email":"dana@example.com","role":"USER","email_verified":true}}}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client())

	profile, err := client.GetProfile(context.Background(), "tkn")
	require.NoError(t, err)
	assert.Equal(t, "Dana Reeve", profile.FullName)
	assert.Equal(t, "USER", profile.Role)
	assert.True(t, profile.EmailVerified)
}

/*
TestClient_GetProfile_MissingUserPayload verifies that a 2xx envelope without
a user record yields an error instead of a nil profile.
*/
func TestClient_GetProfile_MissingUserPayload(t *testing.T) {
	for name, body := range map[string]string{
		"absent_user": `{"data":{}}`,
		"null_user":   `{"data":{"user":null}}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			}))
			defer server.Close()

			client := api.NewClient(server.URL, server.Client())

			profile, err := client.GetProfile(context.Background(), "tkn")
			require.Error(t, err)
			require.Nil(t, profile)

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "UNKNOWN", apiErr.Code)
		})
	}
}

/*
TestClient_GetAllFoundItems verifies the anonymous path and list decoding.
*/
func TestClient_GetAllFoundItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/items", r.URL.Path)
		// No token supplied, no Authorization header sent.
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"i1","name":"Black Umbrella","status":"STORED"}]}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client())

	found, err := client.GetAllFoundItems(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Black Umbrella", found[0].Name)
}

/*
TestClient_Register verifies that a 2xx with no payload body is accepted.
*/
func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"u1"}}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client())

	err := client.Register(context.Background(), api.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "pw",
	})
	require.NoError(t, err)
}
