package bank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benx421/atm-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_GetAuthKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth-keys", r.URL.Path)

		var req authKeyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1234567890123456", req.Card.Number)

		if req.PIN == "1234" {
			json.NewEncoder(w).Encode(authKeyResponse{AuthKey: "key-1"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(authKeyResponse{}) //nolint:errcheck
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, nil)
	ctx := context.Background()

	key, err := g.GetAuthKey(ctx, testCard, "1234")
	require.NoError(t, err)
	assert.Equal(t, "key-1", key)

	key, err = g.GetAuthKey(ctx, testCard, "0000")
	require.NoError(t, err)
	assert.Empty(t, key, "a rejected pin is not a transport error")
}

func TestGateway_Withdraw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts/acc-1/withdrawals", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get(authKeyHeader))

		var req amountRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(500), req.Amount)

		json.NewEncoder(w).Encode(models.BalanceResult{ //nolint:errcheck
			Success:   true,
			AccountID: "acc-1",
			Balance:   1500,
			Message:   "withdrawal successful",
		})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, nil)

	res, err := g.Withdraw(context.Background(), "acc-1", "key-1", 500)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(1500), res.Balance)
}

func TestGateway_ServerFaultIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "ledger offline", http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, nil)

	_, err := g.GetBalance(context.Background(), "acc-1", "key-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
}

func TestGateway_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GetAccounts(ctx, "key-1")
	assert.Error(t, err, "a canceled call must surface as a ledger failure")
}
