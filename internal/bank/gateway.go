package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/benx421/atm-core/internal/models"
)

const authKeyHeader = "X-Auth-Key"

// Gateway is a Client backed by a bank gateway speaking JSON over HTTP. The
// gateway owns the real-bank wire protocol; this client only carries the
// ledger contract across the network.
type Gateway struct {
	base string
	http *http.Client
}

var _ Client = (*Gateway)(nil)

// NewGateway creates a Gateway client for the given base URL. A nil
// http.Client gets a default with a 10s timeout; every request also honors
// its context, so a timeout surfaces as a ledger failure.
func NewGateway(base string, hc *http.Client) *Gateway {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}

	return &Gateway{
		base: strings.TrimRight(base, "/"),
		http: hc,
	}
}

type authKeyRequest struct {
	Card models.CardData `json:"card"`
	PIN  string          `json:"pin"`
}

type authKeyResponse struct {
	AuthKey string `json:"auth_key"`
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// GetAuthKey asks the gateway to verify the PIN. A rejection comes back as
// an empty key with status 200; only transport or server faults are errors.
func (g *Gateway) GetAuthKey(ctx context.Context, card models.CardData, pin string) (string, error) {
	var out authKeyResponse
	err := g.do(ctx, http.MethodPost, "/auth-keys", "", authKeyRequest{Card: card, PIN: pin}, &out)
	if err != nil {
		return "", err
	}

	return out.AuthKey, nil
}

// GetAccounts lists the account IDs reachable with the credential.
func (g *Gateway) GetAccounts(ctx context.Context, authKey string) (models.AccountsResult, error) {
	var out models.AccountsResult
	err := g.do(ctx, http.MethodGet, "/accounts", authKey, nil, &out)
	return out, err
}

// GetBalance reports the current balance of the account.
func (g *Gateway) GetBalance(ctx context.Context, accountID, authKey string) (models.BalanceResult, error) {
	var out models.BalanceResult
	path := "/accounts/" + url.PathEscape(accountID) + "/balance"
	err := g.do(ctx, http.MethodGet, path, authKey, nil, &out)
	return out, err
}

// Deposit instructs the gateway to credit the account ledger.
func (g *Gateway) Deposit(ctx context.Context, accountID, authKey string, amount int64) (models.BalanceResult, error) {
	var out models.BalanceResult
	path := "/accounts/" + url.PathEscape(accountID) + "/deposits"
	err := g.do(ctx, http.MethodPost, path, authKey, amountRequest{Amount: amount}, &out)
	return out, err
}

// Withdraw instructs the gateway to debit the account ledger.
func (g *Gateway) Withdraw(ctx context.Context, accountID, authKey string, amount int64) (models.BalanceResult, error) {
	var out models.BalanceResult
	path := "/accounts/" + url.PathEscape(accountID) + "/withdrawals"
	err := g.do(ctx, http.MethodPost, path, authKey, amountRequest{Amount: amount}, &out)
	return out, err
}

func (g *Gateway) do(ctx context.Context, method, path, authKey string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authKey != "" {
		req.Header.Set(authKeyHeader, authKey)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status=%d body=%s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}
