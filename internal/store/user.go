package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bfbl/moneyglow/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userCols = `id, email, name, age, income_sources, monthly_income, financial_goal,
	employment_status, has_emergency_fund, debt_situation, language_pref,
	quiz_result, quiz_challenge, onboarded, is_admin, xp, level,
	streak_count, longest_streak, last_check_in, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	var name, financialGoal, employmentStatus, hasEmergencyFund, debtSituation, quizResult, quizChallenge sql.NullString
	var age sql.NullInt64
	var monthlyIncome sql.NullFloat64
	var lastCheckIn sql.NullTime
	var incomeSources string

	err := scanner.Scan(
		&u.ID, &u.Email, &name, &age, &incomeSources, &monthlyIncome, &financialGoal,
		&employmentStatus, &hasEmergencyFund, &debtSituation, &u.LanguagePref,
		&quizResult, &quizChallenge, &u.Onboarded, &u.IsAdmin, &u.XP, &u.Level,
		&u.StreakCount, &u.LongestStreak, &lastCheckIn, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if name.Valid {
		u.Name = &name.String
	}
	if age.Valid {
		a := int(age.Int64)
		u.Age = &a
	}
	if monthlyIncome.Valid {
		u.MonthlyIncome = &monthlyIncome.Float64
	}
	if financialGoal.Valid {
		u.FinancialGoal = &financialGoal.String
	}
	if employmentStatus.Valid {
		u.EmploymentStatus = &employmentStatus.String
	}
	if hasEmergencyFund.Valid {
		u.HasEmergencyFund = &hasEmergencyFund.String
	}
	if debtSituation.Valid {
		u.DebtSituation = &debtSituation.String
	}
	if quizResult.Valid {
		u.QuizResult = &quizResult.String
	}
	if quizChallenge.Valid {
		u.QuizChallenge = &quizChallenge.String
	}
	if lastCheckIn.Valid {
		t := lastCheckIn.Time
		u.LastCheckIn = &t
	}

	u.IncomeSources = []string{}
	if incomeSources != "" {
		if err := json.Unmarshal([]byte(incomeSources), &u.IncomeSources); err != nil {
			return nil, fmt.Errorf("decode income sources: %w", err)
		}
	}

	return &u, nil
}

// Create inserts a new user with only an email; everything else is filled
// in during onboarding. Level starts at 1 with zero XP.
func (s *UserStore) Create(email string) (*model.User, error) {
	result, err := s.db.Exec(`INSERT INTO users (email) VALUES (?)`, email)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// ProfileUpdate carries optional profile fields; nil fields are left unchanged.
type ProfileUpdate struct {
	Name             *string
	Age              *int
	IncomeSources    []string
	MonthlyIncome    *float64
	FinancialGoal    *string
	EmploymentStatus *string
	HasEmergencyFund *string
	DebtSituation    *string
	LanguagePref     *string
}

// UpdateProfile merges the non-nil fields of upd into the stored profile.
func (s *UserStore) UpdateProfile(id int64, upd ProfileUpdate) (*model.User, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("update profile: user %d not found", id)
	}

	if upd.Name != nil {
		u.Name = upd.Name
	}
	if upd.Age != nil {
		u.Age = upd.Age
	}
	if upd.IncomeSources != nil {
		u.IncomeSources = upd.IncomeSources
	}
	if upd.MonthlyIncome != nil {
		u.MonthlyIncome = upd.MonthlyIncome
	}
	if upd.FinancialGoal != nil {
		u.FinancialGoal = upd.FinancialGoal
	}
	if upd.EmploymentStatus != nil {
		u.EmploymentStatus = upd.EmploymentStatus
	}
	if upd.HasEmergencyFund != nil {
		u.HasEmergencyFund = upd.HasEmergencyFund
	}
	if upd.DebtSituation != nil {
		u.DebtSituation = upd.DebtSituation
	}
	if upd.LanguagePref != nil {
		u.LanguagePref = *upd.LanguagePref
	}

	sources, err := json.Marshal(u.IncomeSources)
	if err != nil {
		return nil, fmt.Errorf("encode income sources: %w", err)
	}

	_, err = s.db.Exec(
		`UPDATE users SET name = ?, age = ?, income_sources = ?, monthly_income = ?,
			financial_goal = ?, employment_status = ?, has_emergency_fund = ?,
			debt_situation = ?, language_pref = ?, updated_at = datetime('now')
		WHERE id = ?`,
		u.Name, u.Age, string(sources), u.MonthlyIncome,
		u.FinancialGoal, u.EmploymentStatus, u.HasEmergencyFund,
		u.DebtSituation, u.LanguagePref, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetByID(id)
}

// CompleteOnboarding writes the onboarding profile and flips the onboarded flag.
func (s *UserStore) CompleteOnboarding(id int64, upd ProfileUpdate) (*model.User, error) {
	if _, err := s.UpdateProfile(id, upd); err != nil {
		return nil, err
	}
	_, err := s.db.Exec(
		`UPDATE users SET onboarded = 1, updated_at = datetime('now') WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("complete onboarding: %w", err)
	}
	return s.GetByID(id)
}

// SetQuizResult stores the money-personality result and its generated challenge.
func (s *UserStore) SetQuizResult(id int64, result, challenge string) error {
	_, err := s.db.Exec(
		`UPDATE users SET quiz_result = ?, quiz_challenge = ?, updated_at = datetime('now') WHERE id = ?`,
		result, challenge, id,
	)
	if err != nil {
		return fmt.Errorf("set quiz result: %w", err)
	}
	return nil
}

// AddXP atomically increments the user's XP by delta and returns the new
// total. The increment happens in the database so concurrent awards for
// the same user cannot lose an update.
func (s *UserStore) AddXP(id int64, delta int) (int, error) {
	_, err := s.db.Exec(
		`UPDATE users SET xp = xp + ?, updated_at = datetime('now') WHERE id = ?`,
		delta, id,
	)
	if err != nil {
		return 0, fmt.Errorf("add xp: %w", err)
	}

	var xp int
	err = s.db.QueryRow(`SELECT xp FROM users WHERE id = ?`, id).Scan(&xp)
	if err != nil {
		return 0, fmt.Errorf("read xp: %w", err)
	}
	return xp, nil
}

// SetLevel writes the level derived from the latest XP total. Safe to run
// redundantly: the value is recomputed from stored XP by the caller.
func (s *UserStore) SetLevel(id int64, level int) error {
	_, err := s.db.Exec(
		`UPDATE users SET level = ?, updated_at = datetime('now') WHERE id = ?`,
		level, id,
	)
	if err != nil {
		return fmt.Errorf("set level: %w", err)
	}
	return nil
}

// SetStreak writes the streak counters and the check-in timestamp together.
func (s *UserStore) SetStreak(id int64, streak, longest int, lastCheckIn time.Time) error {
	_, err := s.db.Exec(
		`UPDATE users SET streak_count = ?, longest_streak = ?, last_check_in = ?, updated_at = datetime('now') WHERE id = ?`,
		streak, longest, lastCheckIn, id,
	)
	if err != nil {
		return fmt.Errorf("set streak: %w", err)
	}
	return nil
}

func (s *UserStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *UserStore) CountOnboarded() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE onboarded = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count onboarded users: %w", err)
	}
	return n, nil
}

// CountActiveSince counts users whose last streak-qualifying action is at
// or after the cutoff.
func (s *UserStore) CountActiveSince(cutoff time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM users WHERE last_check_in >= ?`, cutoff,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return n, nil
}

func (s *UserStore) CountQuizCompleted() (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM users WHERE onboarded = 1 AND quiz_result IS NOT NULL`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quiz completions: %w", err)
	}
	return n, nil
}

// LevelDistribution returns user counts keyed by level, with all four
// levels present even when empty.
func (s *UserStore) LevelDistribution() (map[int]int, error) {
	rows, err := s.db.Query(`SELECT level, COUNT(*) FROM users GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("level distribution: %w", err)
	}
	defer rows.Close()

	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0}
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("scan level distribution: %w", err)
		}
		dist[level] = count
	}
	return dist, rows.Err()
}

// List returns a page of users matching the search term (email or name,
// case-insensitive), newest first, plus the total match count.
func (s *UserStore) List(search string, page, limit int) ([]*model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := (page - 1) * limit

	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE email LIKE ? OR name LIKE ?`
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count matching users: %w", err)
	}

	query := `SELECT ` + userCols + ` FROM users` + where + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
