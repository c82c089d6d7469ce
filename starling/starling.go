// Package starling implements the banking gateway against the Starling Bank
// API v2. Savings goals ("spaces") play the role of pots; moving money into
// one is the add-money endpoint with a caller-generated transfer UID.
package starling

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/paydrift/waterfall"
)

const baseURL = "https://api.starlingbank.com/api/v2"

// requestTimeout bounds every call to the bank. A timeout is a transient
// failure, never a success: the engine retries on the next invocation.
const requestTimeout = 30 * time.Second

// Client talks to the Starling API for one account.
// It implements waterfall.Gateway.
type Client struct {
	accountUID string
	token      string

	// BaseURL and HTTPClient exist for tests; zero values mean production.
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client for the given account, authenticating with the given
// personal access token.
func New(accountUID, token string) *Client {
	return &Client{accountUID: accountUID, token: token}
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return baseURL
}

func (c *Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: requestTimeout}
}

// do performs an authenticated request and decodes the JSON response into
// data when data is not nil.
func (c *Client) do(method, url string, body, data any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	log.Printf("%s %s %s", method, req.URL.Path, resp.Status)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cannot %s %s: %s: %s", method, req.URL.Path, resp.Status, payload)
	}
	if data == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(data)
}

// jamount is the wire form of a monetary amount.
type jamount struct {
	Currency   string `json:"currency"`
	MinorUnits int64  `json:"minorUnits"`
}

func (a jamount) money() waterfall.Money { return waterfall.M(a.MinorUnits, a.Currency) }

// Balance returns the account's effective balance.
func (c *Client) Balance() (waterfall.Money, error) {
	var data struct {
		EffectiveBalance jamount `json:"effectiveBalance"`
	}
	url := fmt.Sprintf("%s/accounts/%s/balance", c.base(), c.accountUID)
	if err := c.do(http.MethodGet, url, nil, &data); err != nil {
		return waterfall.Money{}, err
	}
	return data.EffectiveBalance.money(), nil
}

// jgoal is one savings goal as the API reports it.
type jgoal struct {
	SavingsGoalUID string   `json:"savingsGoalUid"`
	Name           string   `json:"name"`
	Target         *jamount `json:"target,omitempty"`
	TotalSaved     jamount  `json:"totalSaved"`
	State          string   `json:"state"`
}

// Pots returns the account's active savings goals as pots. The goal's own
// target is ignored; targets come from the allocation plan so that the plan
// file stays the single source of truth for the waterfall.
func (c *Client) Pots() ([]waterfall.Pot, error) {
	var data struct {
		SavingsGoalList []jgoal `json:"savingsGoalList"`
	}
	url := fmt.Sprintf("%s/account/%s/savings-goals", c.base(), c.accountUID)
	if err := c.do(http.MethodGet, url, nil, &data); err != nil {
		return nil, err
	}
	pots := make([]waterfall.Pot, 0, len(data.SavingsGoalList))
	for _, g := range data.SavingsGoalList {
		if g.State != "ACTIVE" {
			continue
		}
		pots = append(pots, waterfall.Pot{
			ID:      g.SavingsGoalUID,
			Name:    g.Name,
			Balance: g.TotalSaved.money(),
		})
	}
	return pots, nil
}

// Transfer moves the given amount from the main account into a savings goal.
// The transfer UID is generated fresh per call; the engine's retry strategy
// recomputes need from balances, so a repeated call is a new transfer of a
// newly computed (possibly zero, hence absent) amount.
func (c *Client) Transfer(potID string, amount waterfall.Money) error {
	body := struct {
		Amount jamount `json:"amount"`
	}{Amount: jamount{Currency: amount.Currency(), MinorUnits: amount.MinorUnits()}}
	url := fmt.Sprintf("%s/account/%s/savings-goals/%s/add-money/%s",
		c.base(), c.accountUID, potID, uuid.NewString())
	return c.do(http.MethodPut, url, body, nil)
}

// RecurringTransfer is a legacy fixed-day transfer still configured on a
// savings goal. The balances report shows them so a user migrating to the
// waterfall can see what remains to be switched off.
type RecurringTransfer struct {
	GoalName        string
	Amount          waterfall.Money
	NextPaymentDate string
}

// RecurringTransfers lists the recurring transfers configured on the
// account's active savings goals.
func (c *Client) RecurringTransfers() ([]RecurringTransfer, error) {
	var data struct {
		SavingsGoalList []jgoal `json:"savingsGoalList"`
	}
	url := fmt.Sprintf("%s/account/%s/savings-goals", c.base(), c.accountUID)
	if err := c.do(http.MethodGet, url, nil, &data); err != nil {
		return nil, err
	}

	var transfers []RecurringTransfer
	for _, g := range data.SavingsGoalList {
		if g.State != "ACTIVE" {
			continue
		}
		var rt struct {
			RecurrenceRule struct {
				StartDate string `json:"startDate"`
			} `json:"recurrenceRule"`
			CurrencyAndAmount jamount `json:"currencyAndAmount"`
			NextPaymentDate   string  `json:"nextPaymentDate"`
		}
		url := fmt.Sprintf("%s/account/%s/savings-goals/%s/recurring-transfer",
			c.base(), c.accountUID, g.SavingsGoalUID)
		if err := c.do(http.MethodGet, url, nil, &rt); err != nil {
			// A goal without a recurring transfer answers 404; skip it.
			continue
		}
		next := rt.NextPaymentDate
		if next == "" {
			next = rt.RecurrenceRule.StartDate
		}
		transfers = append(transfers, RecurringTransfer{
			GoalName:        g.Name,
			Amount:          rt.CurrencyAndAmount.money(),
			NextPaymentDate: next,
		})
	}
	return transfers, nil
}

// check that Client satisfies the engine's gateway contract.
var _ waterfall.Gateway = (*Client)(nil)
