package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDateParseAndISO(t *testing.T) {
	d, err := ParseDate("2024-10-28")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.ISO() != "2024-10-28" {
		t.Fatalf("unexpected ISO %q", d.ISO())
	}
	if !(Date{Time: time.Time{}}).IsEmpty() {
		t.Fatalf("zero date should be empty")
	}
	if (Date{}).ISO() != "" {
		t.Fatalf("empty date should format as blank")
	}
	if _, err := ParseDate("28.10.2024"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestApiaryValidate(t *testing.T) {
	good := Apiary{ID: 1, Name: "Солнечная поляна", HiveCount: 12, TotalHoney: 324, AvgPerHive: 27, Status: StatusActive}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		mutate func(*Apiary)
		want   error
	}{
		{func(a *Apiary) { a.ID = 0 }, ErrInvalidID},
		{func(a *Apiary) { a.Name = "  " }, ErrEmptyName},
		{func(a *Apiary) { a.HiveCount = -1 }, ErrNegativeCount},
		{func(a *Apiary) { a.TotalHoney = -1 }, ErrNegativeHoney},
		{func(a *Apiary) { a.Status = "retired" }, ErrUnknownStatus},
		{func(a *Apiary) { a.TotalHoney = math.NaN() }, ErrNonFiniteAmount},
		{func(a *Apiary) { a.TotalHoney = math.Inf(1) }, ErrNonFiniteAmount},
		{func(a *Apiary) { a.AvgPerHive = math.Inf(-1) }, ErrNonFiniteAmount},
	}
	for i, tc := range cases {
		a := good
		tc.mutate(&a)
		if err := a.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestApiaryAvgPerHiveIsNotReconciled(t *testing.T) {
	// 324 / 12 = 27, but a stored value that disagrees is still valid.
	a := Apiary{ID: 1, Name: "x", HiveCount: 12, TotalHoney: 324, AvgPerHive: 99, Status: StatusActive}
	if err := a.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestHiveValidate(t *testing.T) {
	good := Hive{ID: 1, ApiaryID: 1, Number: "П1-01", QueenAge: 2, Strength: 85, LastInspection: NewDate(2024, 10, 28), HoneyCollected: 32}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Hive{
		{ID: 0, ApiaryID: 1},
		{ID: 1, ApiaryID: 1, QueenAge: -1},
		{ID: 1, ApiaryID: 1, Strength: 101},
		{ID: 1, ApiaryID: 1, Strength: -5},
		{ID: 1, ApiaryID: 1, HoneyCollected: -0.5},
		{ID: 1, ApiaryID: 1, HoneyCollected: math.NaN()},
		{ID: 1, ApiaryID: 1, HoneyCollected: math.Inf(1)},
	}
	for i, h := range bads {
		if err := h.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestHarvestAndTaskValidate(t *testing.T) {
	if err := (HarvestRecord{HiveID: 1, Amount: 45, Season: Spring}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := (HarvestRecord{HiveID: 1, Amount: amount, Season: Spring}).Validate(); !errors.Is(err, ErrNonFiniteAmount) {
			t.Fatalf("amount %v: expected ErrNonFiniteAmount, got %v", amount, err)
		}
	}
	if err := (HarvestRecord{HiveID: 1, Amount: 45, Season: "winter"}).Validate(); !errors.Is(err, ErrUnknownSeason) {
		t.Fatalf("expected ErrUnknownSeason, got %v", err)
	}
	if err := (Task{Title: "Утепление ульев", Priority: PriorityHigh}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Task{Title: "x", Priority: "low"}).Validate(); !errors.Is(err, ErrUnknownPriority) {
		t.Fatalf("expected ErrUnknownPriority, got %v", err)
	}
	if err := (Task{Priority: PriorityHigh}).Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestEnumListsAreValid(t *testing.T) {
	for _, s := range Statuses() {
		if !s.IsValid() {
			t.Fatalf("status %q should be valid", s)
		}
	}
	for _, s := range Seasons() {
		if !s.IsValid() {
			t.Fatalf("season %q should be valid", s)
		}
	}
	for _, p := range Priorities() {
		if !p.IsValid() {
			t.Fatalf("priority %q should be valid", p)
		}
	}
}
