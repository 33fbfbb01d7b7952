package store

import (
	"testing"
	"time"

	"github.com/bfbl/moneyglow/internal/database"
)

func setupUserTestDB(t *testing.T) *UserStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db)
}

func TestUserCreate(t *testing.T) {
	us := setupUserTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Email != "mara@example.com" {
		t.Errorf("email = %q, want %q", u.Email, "mara@example.com")
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if u.XP != 0 || u.Level != 1 {
		t.Errorf("xp/level = %d/%d, want 0/1", u.XP, u.Level)
	}
	if u.Onboarded {
		t.Error("new user should not be onboarded")
	}
	if len(u.IncomeSources) != 0 {
		t.Errorf("income sources = %v, want empty", u.IncomeSources)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	us := setupUserTestDB(t)

	if _, err := us.Create("mara@example.com"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := us.Create("mara@example.com"); err == nil {
		t.Fatal("expected error for duplicate email, got nil")
	}
}

func TestUserGetByEmail(t *testing.T) {
	us := setupUserTestDB(t)

	created, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	u, err := us.GetByEmail("mara@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if u == nil || u.ID != created.ID {
		t.Fatalf("got %+v, want user %d", u, created.ID)
	}

	missing, err := us.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}
}

func TestUserUpdateProfileMergesFields(t *testing.T) {
	us := setupUserTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	name := "Mara"
	age := 24
	income := 35000.0
	if _, err := us.UpdateProfile(u.ID, ProfileUpdate{
		Name:          &name,
		Age:           &age,
		MonthlyIncome: &income,
		IncomeSources: []string{"freelance", "content"},
	}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	goal := "emergency_fund"
	updated, err := us.UpdateProfile(u.ID, ProfileUpdate{FinancialGoal: &goal})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if updated.Name == nil || *updated.Name != "Mara" {
		t.Errorf("name lost on partial update: %+v", updated.Name)
	}
	if updated.Age == nil || *updated.Age != 24 {
		t.Errorf("age lost on partial update: %+v", updated.Age)
	}
	if updated.FinancialGoal == nil || *updated.FinancialGoal != "emergency_fund" {
		t.Errorf("financial goal = %+v, want emergency_fund", updated.FinancialGoal)
	}
	if len(updated.IncomeSources) != 2 || updated.IncomeSources[0] != "freelance" {
		t.Errorf("income sources = %v", updated.IncomeSources)
	}
}

func TestUserCompleteOnboarding(t *testing.T) {
	us := setupUserTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	name := "Mara"
	onboarded, err := us.CompleteOnboarding(u.ID, ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("complete onboarding: %v", err)
	}
	if !onboarded.Onboarded {
		t.Error("expected onboarded flag set")
	}
}

func TestUserAddXP(t *testing.T) {
	us := setupUserTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	total, err := us.AddXP(u.ID, 10)
	if err != nil {
		t.Fatalf("add xp: %v", err)
	}
	if total != 10 {
		t.Errorf("xp = %d, want 10", total)
	}

	total, err = us.AddXP(u.ID, 15)
	if err != nil {
		t.Fatalf("add xp: %v", err)
	}
	if total != 25 {
		t.Errorf("xp = %d, want 25", total)
	}
}

func TestUserSetStreak(t *testing.T) {
	us := setupUserTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	checkIn := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	if err := us.SetStreak(u.ID, 4, 7, checkIn); err != nil {
		t.Fatalf("set streak: %v", err)
	}

	got, err := us.GetByID(u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.StreakCount != 4 || got.LongestStreak != 7 {
		t.Errorf("streak = %d/%d, want 4/7", got.StreakCount, got.LongestStreak)
	}
	if got.LastCheckIn == nil || !got.LastCheckIn.Equal(checkIn) {
		t.Errorf("last check-in = %v, want %v", got.LastCheckIn, checkIn)
	}
}

func TestUserSetQuizResult(t *testing.T) {
	us := setupUserTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := us.SetQuizResult(u.ID, "Saver", "Track every peso for a week"); err != nil {
		t.Fatalf("set quiz result: %v", err)
	}

	got, err := us.GetByID(u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.QuizResult == nil || *got.QuizResult != "Saver" {
		t.Errorf("quiz result = %+v, want Saver", got.QuizResult)
	}
	if got.QuizChallenge == nil || *got.QuizChallenge != "Track every peso for a week" {
		t.Errorf("quiz challenge = %+v", got.QuizChallenge)
	}
}

func TestUserLevelDistributionSeedsAllLevels(t *testing.T) {
	us := setupUserTestDB(t)

	u, err := us.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := us.SetLevel(u.ID, 3); err != nil {
		t.Fatalf("set level: %v", err)
	}

	dist, err := us.LevelDistribution()
	if err != nil {
		t.Fatalf("level distribution: %v", err)
	}
	if len(dist) != 4 {
		t.Errorf("distribution has %d levels, want 4", len(dist))
	}
	if dist[3] != 1 {
		t.Errorf("level 3 count = %d, want 1", dist[3])
	}
	if dist[1] != 0 {
		t.Errorf("level 1 count = %d, want 0", dist[1])
	}
}

func TestUserListSearchAndPaging(t *testing.T) {
	us := setupUserTestDB(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@other.net"} {
		if _, err := us.Create(email); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	users, total, err := us.List("example", 1, 10)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(users) != 2 {
		t.Errorf("page size = %d, want 2", len(users))
	}

	users, total, err = us.List("", 1, 2)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("page size = %d, want 2", len(users))
	}
}
