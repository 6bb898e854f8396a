package e2e

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeSessionFixture(home))

	backend := newBackend(t)
	env := []string{
		"HOME=" + home,
		"SIMPLU_API_URL=" + backend.server.URL,
		"SIMPLU_STRIPE_PUBLISHABLE_KEY=pk_test_smoke",
		"SIMPLU_STRIPE_API_URL=" + backend.server.URL,
		"SIMPLU_SECRETS_BACKEND=file",
	}

	run := func(args ...string) string {
		t.Helper()
		stdout, stderr, err := runSimplu(t, binaryPath, env, args...)
		require.NoError(t, err, "simplu %v\nstderr: %s", args, stderr)
		return stdout
	}

	stdout := run("wizard", "start")
	assert.Contains(t, stdout, "step 1/7: Company")

	run("wizard", "set", "companyName=Clinica Zambet", "domainLabel=clinica-zambet")
	for range 4 {
		stdout = run("wizard", "next")
	}
	assert.Contains(t, stdout, "step 5/7: Review")

	stdout = run("wizard", "submit")
	assert.Contains(t, stdout, "step 6/7: Payment")

	stdout = run("wizard", "pay", "--interval", "year")
	assert.Contains(t, stdout, "step 7/7: Launch")
	assert.Contains(t, stdout, "Payment confirmed.")
	assert.Equal(t, "year", backend.setupInterval())

	stdout = run("wizard", "confirm")
	assert.Contains(t, stdout, "Ready to launch")

	stdout = run("wizard", "launch")
	assert.Contains(t, stdout, "Finished")

	stdout = run("business", "list")
	assert.Contains(t, stdout, "Clinica Zambet")
	assert.Contains(t, stdout, "active")

	stdout = run("wizard", "list")
	assert.Contains(t, stdout, "closed")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "simplu-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/simplu")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build simplu binary: %s", string(output))
	return binaryPath
}

func runSimplu(t *testing.T, binaryPath string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeSessionFixture(home string) error {
	dir := filepath.Join(home, ".simplu", "secrets", "cognito", "default")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"sub-ana","email":"ana@example.com"}`))
	payload, err := json.Marshal(map[string]any{
		"access_token": "smoke-token",
		"id_token":     header + "." + claims + ".sig",
		"expires_at":   time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "session"), payload, 0o600)
}

// backend serves both the REST API and the payment provider's confirm route.
type backend struct {
	server *httptest.Server

	mu       sync.Mutex
	business map[string]any
	interval string
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /businesses/configure", func(w http.ResponseWriter, r *http.Request) {
		body := decode(r)
		body["businessId"] = "biz-1"
		body["status"] = "suspended"
		body["paymentStatus"] = "unpaid"
		body["createdBy"] = "sub-ana"
		b.mu.Lock()
		b.business = body
		b.mu.Unlock()
		writeJSON(w, body)
	})
	mux.HandleFunc("GET /businesses/biz-1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, b.snapshot())
	})
	mux.HandleFunc("GET /businesses", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]any{b.snapshot()})
	})
	mux.HandleFunc("POST /businesses/biz-1/payment", func(w http.ResponseWriter, r *http.Request) {
		body := decode(r)
		b.mu.Lock()
		b.interval, _ = body["billingInterval"].(string)
		b.mu.Unlock()
		writeJSON(w, map[string]string{"subscriptionId": "sub_1", "status": "incomplete", "clientSecret": "pi_1_secret_smoke"})
	})
	mux.HandleFunc("POST /v1/payment_intents/pi_1/confirm", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.business["paymentStatus"] = "paid"
		b.mu.Unlock()
		writeJSON(w, map[string]string{"id": "pi_1", "object": "payment_intent", "status": "succeeded"})
	})
	mux.HandleFunc("POST /businesses/biz-1/launch", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.business["status"] = "active"
		b.mu.Unlock()
		writeJSON(w, b.snapshot())
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"email": "ana@example.com", "defaultPaymentMethodId": "pm_card_visa"})
	})
	mux.HandleFunc("GET /users/me/payment-methods", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]any{{"id": "pm_card_visa", "card": map[string]any{"brand": "visa", "last4": "4242"}}})
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) snapshot() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	copied := make(map[string]any, len(b.business))
	for key, value := range b.business {
		copied[key] = value
	}
	return copied
}

func (b *backend) setupInterval() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.interval
}

func decode(r *http.Request) map[string]any {
	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)
	return body
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
