package payments

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test helpers ---

func newTestRouter(store *Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(store, logger)

	r := gin.New()
	v1 := r.Group("/v1")
	h.RegisterRoutes(v1)
	h.RegisterAdminRoutes(v1)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

// ============================================================
// Handler tests
// ============================================================

func TestListPendingEndpoint(t *testing.T) {
	r := newTestRouter(NewStore())

	w, payload := doRequest(t, r, http.MethodGet, "/v1/payments/pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(20), payload["total_count"])
	assert.Len(t, payload["payments"], DefaultPendingLimit)
}

func TestListPendingEndpoint_Limit(t *testing.T) {
	r := newTestRouter(NewStore())

	w, payload := doRequest(t, r, http.MethodGet, "/v1/payments/pending?limit=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, payload["payments"], 5)

	// Garbage limits fall back to the default.
	_, payload = doRequest(t, r, http.MethodGet, "/v1/payments/pending?limit=banana", nil)
	assert.Len(t, payload["payments"], DefaultPendingLimit)
}

func TestGetPaymentEndpoint(t *testing.T) {
	r := newTestRouter(NewStore())

	w, payload := doRequest(t, r, http.MethodGet, "/v1/payments/PAY-13009", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	payment := payload["payment"].(map[string]any)
	assert.Equal(t, "PAY-13009", payment["payment_id"])
	assert.Equal(t, "CARD_DECLINED", payment["error_code"])
	assert.Equal(t, "International transaction", payment["compliance_notes"])
}

func TestGetPaymentEndpoint_NotFound(t *testing.T) {
	r := newTestRouter(NewStore())

	w, payload := doRequest(t, r, http.MethodGet, "/v1/payments/PAY-00000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", payload["error"])
}

func TestRetryEndpoint(t *testing.T) {
	r := newTestRouter(NewStore(WithRetryOutcome(Always)))

	w, payload := doRequest(t, r, http.MethodPost, "/v1/payments/PAY-13005/retry",
		map[string]any{"reason": "Customer confirmed funds"})
	assert.Equal(t, http.StatusOK, w.Code)

	retry := payload["retry"].(map[string]any)
	assert.Equal(t, "SUCCESS", retry["result"])
	assert.Equal(t, float64(1), retry["retry_count"])
	assert.Equal(t, "Customer confirmed funds", retry["reason"])
}

func TestRetryEndpoint_MissingReason(t *testing.T) {
	r := newTestRouter(NewStore())

	w, payload := doRequest(t, r, http.MethodPost, "/v1/payments/PAY-13005/retry", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", payload["error"])
}

func TestRetryEndpoint_InvalidState(t *testing.T) {
	r := newTestRouter(NewStore())

	w, payload := doRequest(t, r, http.MethodPost, "/v1/payments/PAY-12350/retry",
		map[string]any{"reason": "nudge"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", payload["error"])
}

func TestRetryEndpoint_NotFound(t *testing.T) {
	r := newTestRouter(NewStore())

	w, _ := doRequest(t, r, http.MethodPost, "/v1/payments/PAY-00000/retry",
		map[string]any{"reason": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEscalateEndpoint(t *testing.T) {
	r := newTestRouter(NewStore())

	w, payload := doRequest(t, r, http.MethodPost, "/v1/payments/PAY-12347/escalate",
		map[string]any{"issue_type": "compliance_review", "notes": "Hold on high-value transaction"})
	assert.Equal(t, http.StatusOK, w.Code)

	escalation := payload["escalation"].(map[string]any)
	assert.Equal(t, "ESC-12347", escalation["escalation_id"])
	assert.Equal(t, "ESCALATED", escalation["status"])
	assert.Equal(t, "compliance_review", escalation["issue_type"])
}

func TestNotifyEndpoint(t *testing.T) {
	r := newTestRouter(NewStore(WithNotifyOutcome(Always)))

	w, payload := doRequest(t, r, http.MethodPost, "/v1/notifications", map[string]any{
		"customer_id": "CUST-789",
		"message":     "Please update your payment method",
		"payment_id":  "PAY-12345",
		"channel":     "sms",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	n := payload["notification"].(map[string]any)
	assert.Equal(t, "SENT", n["status"])
	assert.Equal(t, "sms", n["channel"])
	assert.Equal(t, "CUST-789", n["customer_id"])
}

func TestNotifyEndpoint_BadChannel(t *testing.T) {
	r := newTestRouter(NewStore())

	w, payload := doRequest(t, r, http.MethodPost, "/v1/notifications", map[string]any{
		"customer_id": "CUST-789",
		"message":     "hello",
		"channel":     "carrier_pigeon",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", payload["error"])
}

func TestActionLogEndpoint(t *testing.T) {
	store := NewStore(WithRetryOutcome(Never))
	r := newTestRouter(store)

	for _, id := range []string{"PAY-12345", "PAY-12346", "PAY-12349"} {
		w, _ := doRequest(t, r, http.MethodPost, "/v1/payments/"+id+"/retry",
			map[string]any{"reason": "sweep"})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, payload := doRequest(t, r, http.MethodGet, "/v1/actions?limit=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), payload["total_actions"])
	assert.Equal(t, float64(2), payload["limit"])

	actions := payload["actions"].([]any)
	require.Len(t, actions, 2)
	assert.Equal(t, "PAY-12346", actions[0].(map[string]any)["payment_id"])
	assert.Equal(t, "PAY-12349", actions[1].(map[string]any)["payment_id"])
}

func TestResetEndpoint(t *testing.T) {
	store := NewStore(WithRetryOutcome(Always))
	r := newTestRouter(store)

	w, _ := doRequest(t, r, http.MethodPost, "/v1/payments/PAY-13005/retry",
		map[string]any{"reason": "pre-reset"})
	require.Equal(t, http.StatusOK, w.Code)

	w, payload := doRequest(t, r, http.MethodPost, "/v1/admin/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reset", payload["status"])
	assert.Equal(t, float64(20), payload["pending_count"])

	_, payload = doRequest(t, r, http.MethodGet, "/v1/actions", nil)
	assert.Equal(t, float64(0), payload["total_actions"])
}
