package handler

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/database"
	"github.com/bfbl/moneyglow/internal/email"
	"github.com/bfbl/moneyglow/internal/gamification"
	"github.com/bfbl/moneyglow/internal/session"
	"github.com/bfbl/moneyglow/internal/store"
)

// testEnv wires an in-memory database with every store and service the
// handlers need. The mail server records outgoing requests.
type testEnv struct {
	db       *sql.DB
	users    *store.UserStore
	links    *store.MagicLinkStore
	incomes  *store.IncomeStore
	expenses *store.ExpenseStore
	budgets  *store.BudgetStore
	advices  *store.AdviceStore
	chats    *store.ChatStore
	feedback *store.FeedbackStore
	gamify   *gamification.Service
	email    *email.Client
	codec    *session.Codec
	logger   *slog.Logger
	mailed   *int
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mailed := 0
	mailServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mailed++
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(mailServer.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	env := &testEnv{
		db:       db,
		users:    store.NewUserStore(db),
		links:    store.NewMagicLinkStore(db),
		incomes:  store.NewIncomeStore(db),
		expenses: store.NewExpenseStore(db),
		budgets:  store.NewBudgetStore(db),
		advices:  store.NewAdviceStore(db),
		chats:    store.NewChatStore(db),
		feedback: store.NewFeedbackStore(db),
		email:    email.NewClient("key", "secret", "hello@moneyglow.ph", "http://localhost:3000", email.WithAPIURL(mailServer.URL)),
		codec:    session.NewCodec("test-secret"),
		logger:   logger,
		mailed:   &mailed,
	}
	env.gamify = gamification.NewService(env.users, env.incomes, env.budgets, env.expenses, nil, logger)
	return env
}

// authedRequest builds a request carrying the user's auth context, the
// way the auth middleware would.
func authedRequest(method, target string, body io.Reader, userID int64, userEmail string) *http.Request {
	r := httptest.NewRequest(method, target, body)
	ctx := auth.WithAuth(r.Context(), auth.AuthContext{UserID: userID, Email: userEmail})
	return r.WithContext(ctx)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func mustCreateUser(t *testing.T, env *testEnv, addr string) int64 {
	t.Helper()
	u, err := env.users.Create(addr)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}
