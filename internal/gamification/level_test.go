package gamification

import "testing"

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		name string
		xp   int
		want int
	}{
		{"zero xp", 0, 1},
		{"just under level 2", 99, 1},
		{"exactly level 2", 100, 2},
		{"mid level 2", 250, 2},
		{"exactly level 3", 300, 3},
		{"just under level 4", 599, 3},
		{"exactly level 4", 600, 4},
		{"far past max", 10000, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLevel(tt.xp)
			if got.Level != tt.want {
				t.Errorf("CalculateLevel(%d) = level %d, want %d", tt.xp, got.Level, tt.want)
			}
		})
	}
}

func TestNextLevel(t *testing.T) {
	next := NextLevel(0)
	if next == nil {
		t.Fatal("NextLevel(0) = nil, want level 2")
	}
	if next.Level.Level != 2 || next.XPNeeded != 100 {
		t.Errorf("NextLevel(0) = level %d needing %d, want level 2 needing 100", next.Level.Level, next.XPNeeded)
	}
	if next.Progress != 0 {
		t.Errorf("progress = %v, want 0", next.Progress)
	}

	next = NextLevel(150)
	if next == nil {
		t.Fatal("NextLevel(150) = nil, want level 3")
	}
	if next.Level.Level != 3 || next.XPNeeded != 150 {
		t.Errorf("NextLevel(150) = level %d needing %d, want level 3 needing 150", next.Level.Level, next.XPNeeded)
	}
	if next.Progress != 25 {
		t.Errorf("progress = %v, want 25", next.Progress)
	}
}

func TestNextLevelNilAtMax(t *testing.T) {
	if next := NextLevel(600); next != nil {
		t.Errorf("NextLevel(600) = %+v, want nil", next)
	}
	if next := NextLevel(9999); next != nil {
		t.Errorf("NextLevel(9999) = %+v, want nil", next)
	}
	if next := NextLevel(599); next == nil {
		t.Error("NextLevel(599) = nil, want level 4")
	}
}

func TestXPAward(t *testing.T) {
	tests := []struct {
		action Action
		want   int
	}{
		{ActionLogIncome, 10},
		{ActionSaveBudget, 15},
		{ActionDailyAdvice, 20},
		{ActionCompleteQuiz, 25},
		{ActionDailyCheckIn, 5},
		{ActionLogExpense, 5},
		{Action("UNKNOWN"), 0},
	}
	for _, tt := range tests {
		if got := XPAward(tt.action); got != tt.want {
			t.Errorf("XPAward(%s) = %d, want %d", tt.action, got, tt.want)
		}
	}
}
