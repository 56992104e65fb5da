package sap_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/amortization_manager/internal/adapters/ledger/sap"
	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServiceLayer struct {
	logins       atomic.Int32
	entries      atomic.Int32
	rejectFirst  atomic.Bool
	entryStatus  int
	entryPayload string

	mu        sync.Mutex
	lastEntry map[string]any
}

func (f *fakeServiceLayer) last() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastEntry
}

func (f *fakeServiceLayer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /b1s/v1/Login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["Password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":100000027,"message":{"lang":"en-us","value":"Login failed"}}}`))
			return
		}
		n := f.logins.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"SessionId": fmt.Sprintf("session-%d", n), "SessionTimeout": 30})
	})
	mux.HandleFunc("POST /b1s/v1/JournalEntries", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("B1SESSION")
		if err != nil || cookie.Value == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.rejectFirst.CompareAndSwap(true, false) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":301,"message":{"value":"Invalid session"}}}`))
			return
		}
		f.entries.Add(1)
		entry := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&entry))
		f.mu.Lock()
		f.lastEntry = entry
		f.mu.Unlock()
		status := f.entryStatus
		if status == 0 {
			status = http.StatusCreated
		}
		w.WriteHeader(status)
		payload := f.entryPayload
		if payload == "" {
			payload = `{"JdtNum": 4711}`
		}
		_, _ = w.Write([]byte(payload))
	})
	return mux
}

func newClient(t *testing.T, srv *httptest.Server, password string, opts ...sap.ClientOption) *sap.Client {
	t.Helper()
	client, err := sap.NewClient(sap.Config{
		BaseURL:       srv.URL + "/b1s/v1/",
		CompanyDB:     "SBODEMO",
		Username:      "manager",
		Password:      password,
		DebitAccount:  "_SYS00000000001",
		CreditAccount: "_SYS00000000002",
		Timeout:       2 * time.Second,
	}, opts...)
	require.NoError(t, err)
	return client
}

func ledgerEntry() domain.LedgerEntry {
	return domain.LedgerEntry{
		AmortizationID:    "amort-1",
		InstallmentID:     "inst-3",
		InstallmentNumber: 3,
		Reference:         "LOAN-2024-001",
		Amount:            decimal.RequireFromString("1027.705"),
		Date:              time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewClient_RequiresConfiguration(t *testing.T) {
	_, err := sap.NewClient(sap.Config{BaseURL: "http://sap"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAP_DEBIT_ACCOUNT")
	assert.Contains(t, err.Error(), "SAP_COMPANY_DB")
}

func TestRecordEntry_PostsBalancedJournalEntry(t *testing.T) {
	fake := &fakeServiceLayer{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	ref, err := newClient(t, srv, "secret").RecordEntry(context.Background(), ledgerEntry())
	require.NoError(t, err)
	assert.Equal(t, "4711", ref)

	posted := fake.last()
	assert.Equal(t, "2024-03-01", posted["ReferenceDate"])
	assert.Equal(t, "Amortización LOAN-2024-001", posted["Memo"])
	lines := posted["JournalEntryLines"].([]any)
	require.Len(t, lines, 2)
	debit := lines[0].(map[string]any)
	credit := lines[1].(map[string]any)
	assert.Equal(t, "_SYS00000000001", debit["AccountCode"])
	assert.Equal(t, 1027.71, debit["Debit"])
	assert.Equal(t, 0.0, debit["Credit"])
	assert.Equal(t, "_SYS00000000002", credit["AccountCode"])
	assert.Equal(t, 1027.71, credit["Credit"])
	assert.Equal(t, "Cuota 3", credit["LineMemo"])
}

func TestRecordEntry_ReusesSessionUntilExpiry(t *testing.T) {
	fake := &fakeServiceLayer{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	client := newClient(t, srv, "secret", sap.WithClock(func() time.Time { return now }))

	for i := 0; i < 3; i++ {
		_, err := client.RecordEntry(context.Background(), ledgerEntry())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), fake.logins.Load())

	now = now.Add(30 * time.Minute)
	_, err := client.RecordEntry(context.Background(), ledgerEntry())
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.logins.Load())
	assert.Equal(t, int32(4), fake.entries.Load())
}

func TestRecordEntry_RelogsInOnceWhenSessionIsRejected(t *testing.T) {
	fake := &fakeServiceLayer{}
	fake.rejectFirst.Store(true)
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	ref, err := newClient(t, srv, "secret").RecordEntry(context.Background(), ledgerEntry())
	require.NoError(t, err)
	assert.Equal(t, "4711", ref)
	assert.Equal(t, int32(2), fake.logins.Load())
}

func TestRecordEntry_Failures(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		status      int
		payload     string
		errContains string
	}{
		{"login rejected", "wrong", 0, "", "Login failed"},
		{"entry rejected", "secret", http.StatusBadRequest, `{"error":{"code":-5002,"message":{"value":"Account is inactive"}}}`, "Account is inactive"},
		{"missing JdtNum", "secret", http.StatusCreated, `{}`, "no JdtNum"},
		{"garbage body", "secret", http.StatusCreated, `not json`, "decode journal entry response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeServiceLayer{entryStatus: tt.status, entryPayload: tt.payload}
			srv := httptest.NewServer(fake.handler(t))
			defer srv.Close()

			ref, err := newClient(t, srv, tt.password).RecordEntry(context.Background(), ledgerEntry())
			require.Error(t, err)
			assert.Empty(t, ref)
			assert.ErrorIs(t, err, apperrors.ErrExternalSystem)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestRecordEntry_HonoursContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newClient(t, srv, "secret").RecordEntry(ctx, ledgerEntry())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrExternalSystem)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
