package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(t *testing.T, fn http.HandlerFunc) (int, probeResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp probeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestReadyEndpoint_GatedUntilSetReady(t *testing.T) {
	svc := New()

	code, resp := probe(t, svc.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", resp.Status)

	svc.SetReady(true)
	code, resp = probe(t, svc.ReadyEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)

	svc.SetReady(false)
	code, _ = probe(t, svc.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestReadinessCheck_Failure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := New()
	svc.SetReady(true)
	svc.AddReadinessCheck("database", time.Second, func(context.Context) error {
		return errors.New("connection refused")
	})
	svc.Start(ctx, time.Minute)
	defer svc.Stop()

	code, resp := probe(t, svc.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "connection refused", resp.Checks["database"])
}

func TestReadinessCheck_Recovery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthy := false
	svc := New()
	svc.SetReady(true)
	svc.AddReadinessCheck("database", time.Second, func(context.Context) error {
		if !healthy {
			return errors.New("down")
		}
		return nil
	})
	svc.Start(ctx, 10*time.Millisecond)
	defer svc.Stop()

	code, _ := probe(t, svc.ReadyEndpoint)
	require.Equal(t, http.StatusServiceUnavailable, code)

	healthy = true
	require.Eventually(t, func() bool {
		code, _ := probe(t, svc.ReadyEndpoint)
		return code == http.StatusOK
	}, time.Second, 10*time.Millisecond, "probe flips once the check recovers")
}

func TestLiveEndpoint_IndependentOfReadyGate(t *testing.T) {
	svc := New()

	code, resp := probe(t, svc.LiveEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
}

func TestLivenessCheck_Failure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := New()
	svc.AddLivenessCheck("stuck", time.Second, func(context.Context) error {
		return errors.New("deadlocked")
	})
	svc.Start(ctx, time.Minute)
	defer svc.Stop()

	code, resp := probe(t, svc.LiveEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "deadlocked", resp.Checks["stuck"])
}

func TestCheckTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := New()
	svc.SetReady(true)
	svc.AddReadinessCheck("slow", 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	svc.Start(ctx, time.Minute)
	defer svc.Stop()

	code, resp := probe(t, svc.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, resp.Checks["slow"], "context deadline exceeded")
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(100000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
