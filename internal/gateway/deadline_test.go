package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sebuszqo/BillPlatform/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadline_BoundsRequestContext(t *testing.T) {
	var deadline time.Time
	var ok bool
	handler := Deadline(2 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))

	start := time.Now()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/IndUser/GetAllBill", nil))

	require.True(t, ok)
	assert.WithinDuration(t, start.Add(2*time.Second), deadline, time.Second)
}

func TestDeadlineExceeded_IsEnvelope(t *testing.T) {
	g := newTestGateway(t, true)
	g.bills.err = context.DeadlineExceeded
	server := Deadline(time.Second)(g.server)

	req := httptest.NewRequest(http.MethodGet, "/IndUser/GetAllBill?userID="+aliceID, nil)
	req.Header.Set("Authorization", "Bearer "+g.token(t, auth.RoleIndUser))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":500,"msg":"`+msgInternal+`"}`, w.Body.String())

	food := g.addCategory(t, "food")
	env := g.do(t, http.MethodPost, "/IndUser/AddIndUserBill",
		map[string]interface{}{"billTypeID": food, "indUserID": aliceID, "amount": 3}, auth.RoleIndUser)
	assert.Equal(t, http.StatusBadRequest, env.Code)
	assert.Equal(t, msgFailed, env.Msg)
}
