// Package sap posts amortization payments to an SAP Business One Service Layer.
package sap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/amortization_manager/internal/apperrors"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/SscSPs/amortization_manager/internal/utils"
	"github.com/SscSPs/amortization_manager/internal/utils/accounting"
	"github.com/SscSPs/amortization_manager/internal/utils/dates"
)

const (
	sessionCookie     = "B1SESSION"
	defaultSessionTTL = 30 * time.Minute
	// sessionMargin renews the session a little before the server drops it.
	sessionMargin = time.Minute
)

// Config holds the Service Layer connection settings.
type Config struct {
	BaseURL       string
	CompanyDB     string
	Username      string
	Password      string
	DebitAccount  string
	CreditAccount string
	Timeout       time.Duration
	Precision     int
}

// Client is a LedgerClient backed by the Service Layer JournalEntries resource.
// It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger

	mu        sync.Mutex
	sessionID string
	expiresAt time.Time
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock replaces time.Now, used to expire the session.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// WithLogger sets the logger used for session events.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

var _ portssvc.LedgerClient = (*Client)(nil)

// NewClient validates cfg and creates a Client. No request is made until the first entry.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	var missing []string
	for name, v := range map[string]string{
		"SAP_SERVICE_LAYER_URL": cfg.BaseURL,
		"SAP_COMPANY_DB":        cfg.CompanyDB,
		"SAP_USERNAME":          cfg.Username,
		"SAP_DEBIT_ACCOUNT":     cfg.DebitAccount,
		"SAP_CREDIT_ACCOUNT":    cfg.CreditAccount,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("sap: missing configuration: %s", strings.Join(missing, ", "))
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Precision <= 0 {
		cfg.Precision = 2
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loginRequest struct {
	CompanyDB string `json:"CompanyDB"`
	UserName  string `json:"UserName"`
	Password  string `json:"Password"`
}

type loginResponse struct {
	SessionID      string `json:"SessionId"`
	SessionTimeout int    `json:"SessionTimeout"` // minutes
}

type journalEntryLine struct {
	AccountCode string      `json:"AccountCode"`
	Debit       json.Number `json:"Debit"`
	Credit      json.Number `json:"Credit"`
	LineMemo    string      `json:"LineMemo,omitempty"`
}

type journalEntry struct {
	ReferenceDate     string             `json:"ReferenceDate"`
	Memo              string             `json:"Memo"`
	Reference         string             `json:"Reference,omitempty"`
	JournalEntryLines []journalEntryLine `json:"JournalEntryLines"`
}

type journalEntryResponse struct {
	JdtNum int `json:"JdtNum"`
}

type errorResponse struct {
	Error struct {
		Code    int `json:"code"`
		Message struct {
			Value string `json:"value"`
		} `json:"message"`
	} `json:"error"`
}

// RecordEntry posts a balanced journal entry for the payment and returns its JdtNum.
func (c *Client) RecordEntry(ctx context.Context, entry domain.LedgerEntry) (string, error) {
	body, err := c.buildJournalEntry(entry)
	if err != nil {
		return "", err
	}

	ref, status, err := c.postJournalEntry(ctx, body)
	if status == http.StatusUnauthorized {
		// Session dropped server side; log in again once.
		c.invalidateSession()
		ref, _, err = c.postJournalEntry(ctx, body)
	}
	return ref, err
}

func (c *Client) buildJournalEntry(entry domain.LedgerEntry) ([]byte, error) {
	amount := accounting.RoundMoney(entry.Amount, int32(c.cfg.Precision))
	lines := []accounting.EntryLine{
		{Account: c.cfg.DebitAccount, Debit: amount},
		{Account: c.cfg.CreditAccount, Credit: amount},
	}
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalSystem, err)
	}

	memo := fmt.Sprintf("Cuota %d", entry.InstallmentNumber)
	je := journalEntry{
		ReferenceDate: dates.Format(entry.Date),
		Memo:          "Amortización " + entry.Reference,
		Reference:     entry.Reference,
	}
	for _, l := range lines {
		je.JournalEntryLines = append(je.JournalEntryLines, journalEntryLine{
			AccountCode: l.Account,
			Debit:       json.Number(utils.FormatWithPrecision(l.Debit, c.cfg.Precision)),
			Credit:      json.Number(utils.FormatWithPrecision(l.Credit, c.cfg.Precision)),
			LineMemo:    memo,
		})
	}
	return json.Marshal(je)
}

func (c *Client) postJournalEntry(ctx context.Context, body []byte) (string, int, error) {
	sessionID, err := c.session(ctx)
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/JournalEntries", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("%w: build journal entry request: %v", apperrors.ErrExternalSystem, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: sessionID})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%w: post journal entry: %w", apperrors.ErrExternalSystem, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, fmt.Errorf("%w: journal entry rejected: %s", apperrors.ErrExternalSystem, readError(resp))
	}

	var created journalEntryResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", resp.StatusCode, fmt.Errorf("%w: decode journal entry response: %v", apperrors.ErrExternalSystem, err)
	}
	if created.JdtNum == 0 {
		return "", resp.StatusCode, fmt.Errorf("%w: journal entry response has no JdtNum", apperrors.ErrExternalSystem)
	}
	return strconv.Itoa(created.JdtNum), resp.StatusCode, nil
}

// session returns a live session id, logging in when there is none or it is about to expire.
func (c *Client) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessionID != "" && c.now().Before(c.expiresAt) {
		return c.sessionID, nil
	}

	body, err := json.Marshal(loginRequest{
		CompanyDB: c.cfg.CompanyDB,
		UserName:  c.cfg.Username,
		Password:  c.cfg.Password,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode login: %v", apperrors.ErrExternalSystem, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/Login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build login request: %v", apperrors.ErrExternalSystem, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: login: %w", apperrors.ErrExternalSystem, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: login rejected: %s", apperrors.ErrExternalSystem, readError(resp))
	}

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return "", fmt.Errorf("%w: decode login response: %v", apperrors.ErrExternalSystem, err)
	}
	if login.SessionID == "" {
		return "", fmt.Errorf("%w: login response has no session", apperrors.ErrExternalSystem)
	}

	ttl := defaultSessionTTL
	if login.SessionTimeout > 0 {
		ttl = time.Duration(login.SessionTimeout) * time.Minute
	}
	c.sessionID = login.SessionID
	c.expiresAt = c.now().Add(ttl - sessionMargin)
	c.logger.Debug("SAP session opened", "company_db", c.cfg.CompanyDB, "expires_at", c.expiresAt)
	return c.sessionID, nil
}

func (c *Client) invalidateSession() {
	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()
}

func readError(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return resp.Status
	}
	var e errorResponse
	if json.Unmarshal(raw, &e) == nil && e.Error.Message.Value != "" {
		return fmt.Sprintf("%s (code %d): %s", resp.Status, e.Error.Code, e.Error.Message.Value)
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return resp.Status + ": " + msg
	}
	return resp.Status
}
