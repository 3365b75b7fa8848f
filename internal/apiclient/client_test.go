package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxxy-presents/presents-api/internal/model"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(srv.URL, 5*time.Second, log)
}

func TestCreateRegistration(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/registrations", r.URL.Path)

		var req model.CreateRegistrationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ana", req.Name)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Registration{
			ID:               "r1",
			EventID:          req.EventID,
			Name:             req.Name,
			RegistrationType: req.RegistrationType,
		})
	})

	reg, err := c.CreateRegistration(context.Background(), model.CreateRegistrationRequest{
		EventID:          "e1",
		Name:             "Ana",
		Email:            "ana@x.com",
		RegistrationType: model.RegWaitlist,
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", reg.ID)
}

func TestCreateRegistrationServerMessageVerbatim(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"email is required for Waitlist registrations"}`))
	})

	_, err := c.CreateRegistration(context.Background(), model.CreateRegistrationRequest{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "email is required for Waitlist registrations", apiErr.Message)
}

func TestCreateRegistrationUnparseableErrorBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.CreateRegistration(context.Background(), model.CreateRegistrationRequest{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "request failed (502)", apiErr.Message)
}

func TestListRegistrationsByEventNormalizes(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/registrations/event/e1", r.URL.Path)
		_, _ = w.Write([]byte(`{"registrations":{"a":{"name":"Ana"},"b":{"name":"Bo"}}}`))
	})

	regs, err := c.ListRegistrationsByEvent(context.Background(), "e1")
	require.NoError(t, err)
	assert.Len(t, regs, 2)
}

func TestListRegistrationsByEventMalformedDegrades(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	})

	regs, err := c.ListRegistrationsByEvent(context.Background(), "e1")
	require.NoError(t, err, "malformed shapes must not fail the panel")
	assert.NotNil(t, regs)
	assert.Empty(t, regs)
}

func TestListRegistrationsByEventNetworkError(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	c := New("http://127.0.0.1:1", time.Second, log)

	_, err := c.ListRegistrationsByEvent(context.Background(), "e1")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not application errors")
}

func TestMarkEmailSent(t *testing.T) {
	var gotMethod, gotPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = w.Write([]byte(`{"emailSent":true}`))
	})

	require.NoError(t, c.MarkEmailSent(context.Background(), "r1"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/registrations/r1/email-sent", gotPath)
}
