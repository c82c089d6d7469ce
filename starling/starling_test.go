package starling

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydrift/waterfall"
)

const balanceBody = `{
  "clearedBalance":   {"currency": "GBP", "minorUnits": 123450},
  "effectiveBalance": {"currency": "GBP", "minorUnits": 123451}
}`

const goalsBody = `{
  "savingsGoalList": [
    {
      "savingsGoalUid": "77887788-7788-7788-7788-778877887788",
      "name": "Trip to Paris",
      "target": {"currency": "GBP", "minorUnits": 100000},
      "totalSaved": {"currency": "GBP", "minorUnits": 50000},
      "savedPercentage": 50,
      "state": "ACTIVE"
    },
    {
      "savingsGoalUid": "77887788-7788-7788-7788-778877887789",
      "name": "Rainy Day Fund",
      "target": {"currency": "GBP", "minorUnits": 10000},
      "totalSaved": {"currency": "GBP", "minorUnits": 2000},
      "savedPercentage": 20,
      "state": "ACTIVE"
    },
    {
      "savingsGoalUid": "77887788-7788-7788-7788-778877887790",
      "name": "Closed Space",
      "totalSaved": {"currency": "GBP", "minorUnits": 999},
      "state": "ARCHIVED"
    }
  ]
}`

const recurringBody = `{
  "transferUid": "88998899-8899-8899-8899-889988998899",
  "recurrenceRule": {"startDate": "2023-01-01", "frequency": "MONTHLY"},
  "currencyAndAmount": {"currency": "GBP", "minorUnits": 123456},
  "nextPaymentDate": "2023-02-01"
}`

// testClient returns a client pointed at a test server serving the handler.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("fake-account-uid", "fake-access-token")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	return c
}

func TestBalance(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/fake-account-uid/balance", r.URL.Path)
		assert.Equal(t, "Bearer fake-access-token", r.Header.Get("Authorization"))
		io.WriteString(w, balanceBody)
	}))

	got, err := c.Balance()
	require.NoError(t, err)
	assert.Equal(t, waterfall.M(123451, "GBP"), got)
}

func TestPots(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account/fake-account-uid/savings-goals", r.URL.Path)
		io.WriteString(w, goalsBody)
	}))

	pots, err := c.Pots()
	require.NoError(t, err)
	require.Len(t, pots, 2, "archived goals are not pots")
	assert.Equal(t, "Trip to Paris", pots[0].Name)
	assert.Equal(t, waterfall.M(50000, "GBP"), pots[0].Balance)
	assert.Equal(t, "77887788-7788-7788-7788-778877887789", pots[1].ID)
	assert.Equal(t, waterfall.M(2000, "GBP"), pots[1].Balance)
}

func TestTransfer(t *testing.T) {
	addMoneyPath := regexp.MustCompile(
		`^/account/fake-account-uid/savings-goals/pot-1/add-money/[0-9a-f-]{36}$`)

	var gotBody struct {
		Amount struct {
			Currency   string `json:"currency"`
			MinorUnits int64  `json:"minorUnits"`
		} `json:"amount"`
	}
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Regexp(t, addMoneyPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, `{"transferUid":"x","success":true}`)
	}))

	err := c.Transfer("pot-1", waterfall.M(20000, "GBP"))
	require.NoError(t, err)
	assert.Equal(t, "GBP", gotBody.Amount.Currency)
	assert.Equal(t, int64(20000), gotBody.Amount.MinorUnits)
}

func TestTransferFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"insufficient funds"}`, http.StatusUnprocessableEntity)
	}))

	err := c.Transfer("pot-1", waterfall.M(20000, "GBP"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestRecurringTransfers(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/account/fake-account-uid/savings-goals":
			io.WriteString(w, goalsBody)
		case r.URL.Path == "/account/fake-account-uid/savings-goals/77887788-7788-7788-7788-778877887788/recurring-transfer":
			io.WriteString(w, recurringBody)
		default:
			// the second goal has no recurring transfer configured.
			http.NotFound(w, r)
		}
	}))

	transfers, err := c.RecurringTransfers()
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "Trip to Paris", transfers[0].GoalName)
	assert.Equal(t, waterfall.M(123456, "GBP"), transfers[0].Amount)
	assert.Equal(t, "2023-02-01", transfers[0].NextPaymentDate)
}
