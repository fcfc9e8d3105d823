//nolint:errcheck // unchecked errors are acceptable in test files
package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/benx421/atm-core/internal/bank"
	"github.com/benx421/atm-core/internal/cashbin"
	"github.com/benx421/atm-core/internal/chip"
	"github.com/benx421/atm-core/internal/handlers"
	"github.com/benx421/atm-core/internal/middleware"
	"github.com/benx421/atm-core/internal/models"
	"github.com/benx421/atm-core/internal/service"
	"github.com/benx421/atm-core/internal/session"
)

const (
	testCardNumber = "1234567890123456"
	testPIN        = "1234"
	testCVV        = "123"
	testExpiry     = "20991231"
)

// TestServer wraps the HTTP test server and its collaborators for
// integration tests.
type TestServer struct {
	Server *httptest.Server
	Bin    *cashbin.CashBin
	t      *testing.T
}

// BinState configures the cash inventory for a test server.
type BinState struct {
	Initial  int64
	Capacity int64
}

// SetupTest creates a test server with a roomy cash bin and seeded accounts:
// acc-checking holds 100000, acc-savings is empty.
func SetupTest(t *testing.T) *TestServer {
	return SetupTestWithBin(t, BinState{Initial: 100000, Capacity: 1000000})
}

// SetupTestWithBin creates a test server with the given cash inventory.
func SetupTestWithBin(t *testing.T, bin BinState) *TestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fakeBank := bank.NewFake(bank.FakeConfig{AuthKeyTTL: 3 * time.Minute})
	require.NoError(t, fakeBank.RegisterCard(models.CardData{
		Number:           testCardNumber,
		HolderName:       "HONG GILDONG",
		ExpirationDate:   testExpiry,
		ServiceCode:      "101",
		VerificationCode: testCVV,
	}, testPIN))
	fakeBank.SeedAccount("acc-checking", testCardNumber, 100000)
	fakeBank.SeedAccount("acc-savings", testCardNumber, 0)

	cashBin, err := cashbin.New(bin.Initial, bin.Capacity)
	require.NoError(t, err)

	sessions := session.NewMemoryStore(5 * time.Minute)
	atm := service.NewATMService(sessions, fakeBank, cashBin, chip.NewDecryptor(), logger)

	router := handlers.NewRouter(atm, middleware.NewMemoryIdempotencyStore(time.Hour), nil, logger)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		Bin:    cashBin,
		t:      t,
	}
}

// Close shuts down the test server.
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// URL returns the full URL for a given path.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// CardPayload builds the chip payload the reader would hand over for the
// given card fields.
func CardPayload(number, expiry, cvv string) string {
	payload, _ := json.Marshal(map[string]string{
		"card_number":            number,
		"name":                   "HONG GILDONG",
		"expiration_date":        expiry,
		"service_code":           "101",
		"card_verification_code": cvv,
	})
	return string(payload)
}

func (ts *TestServer) do(t *testing.T, method, path, sessionID, idempotencyKey string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL(path), reader)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

// ValidateCard sends a POST request with the chip payload.
func (ts *TestServer) ValidateCard(t *testing.T, payload string) *http.Response {
	return ts.do(t, http.MethodPost, "/api/v1/cards", "", "", map[string]any{
		"encrypted_card_info": payload,
	})
}

// Authenticate sends a POST request with the PIN for the session.
func (ts *TestServer) Authenticate(t *testing.T, sessionID, pin string) *http.Response {
	return ts.do(t, http.MethodPost, "/api/v1/auth", sessionID, "", map[string]any{
		"pin": pin,
	})
}

// Balance sends a GET request for the account balance.
func (ts *TestServer) Balance(t *testing.T, sessionID, accountID string) *http.Response {
	return ts.do(t, http.MethodGet, "/api/v1/accounts/"+accountID+"/balance", sessionID, "", nil)
}

// Deposit sends a POST request crediting the account.
func (ts *TestServer) Deposit(t *testing.T, sessionID, accountID string, amount int64, idempotencyKey string) *http.Response {
	return ts.do(t, http.MethodPost, "/api/v1/accounts/"+accountID+"/deposits", sessionID, idempotencyKey, map[string]any{
		"amount": amount,
	})
}

// Withdraw sends a POST request debiting the account.
func (ts *TestServer) Withdraw(t *testing.T, sessionID, accountID string, amount int64, idempotencyKey string) *http.Response {
	return ts.do(t, http.MethodPost, "/api/v1/accounts/"+accountID+"/withdrawals", sessionID, idempotencyKey, map[string]any{
		"amount": amount,
	})
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return body
}

// OpenSession validates the test card and returns the new session ID.
func (ts *TestServer) OpenSession(t *testing.T) string {
	t.Helper()

	resp := ts.ValidateCard(t, CardPayload(testCardNumber, testExpiry, testCVV))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	sessionID, _ := body["session_id"].(string)
	require.NotEmpty(t, sessionID)
	return sessionID
}

// OpenAuthenticatedSession validates the test card and completes the PIN
// handshake, returning the session ID.
func (ts *TestServer) OpenAuthenticatedSession(t *testing.T) string {
	t.Helper()

	sessionID := ts.OpenSession(t)

	resp := ts.Authenticate(t, sessionID, testPIN)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	return sessionID
}
