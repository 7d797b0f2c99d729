package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	StatusActive      ApiaryStatus = "active"
	StatusDormant     ApiaryStatus = "dormant"
	StatusMaintenance ApiaryStatus = "maintenance"
)

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
)

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// MaxStrength is the upper bound of Hive.Strength, in percent.
const MaxStrength = 100

type (
	ApiaryStatus string
	Season       string
	Priority     string

	Date struct {
		time.Time
	}

	Apiary struct {
		ID         int
		Name       string
		Location   string
		HiveCount  int
		TotalHoney float64 // kg
		AvgPerHive float64 // kg per hive, stored as entered
		Status     ApiaryStatus
	}

	Hive struct {
		ID             int
		ApiaryID       int
		Number         string // display code, e.g. "П1-01"
		QueenAge       int    // years
		Strength       int    // percent, 0-100
		LastInspection Date
		HoneyCollected float64 // kg
	}

	HarvestRecord struct {
		Date   Date
		Amount float64 // kg
		HiveID int
		Season Season
	}

	// Task is one entry of the seasonal work checklist.
	Task struct {
		Title    string
		Window   string // free-text date range
		Priority Priority
		Done     bool
	}
)

var (
	ErrInvalidID          = errors.New("invalid id")
	ErrEmptyName          = errors.New("empty name")
	ErrNegativeCount      = errors.New("negative hive count")
	ErrNegativeHoney      = errors.New("negative honey amount")
	ErrNonFiniteAmount    = errors.New("honey amount is not a finite number")
	ErrNegativeQueenAge   = errors.New("negative queen age")
	ErrStrengthOutOfRange = errors.New("strength out of range")
	ErrUnknownStatus      = errors.New("unknown apiary status")
	ErrUnknownSeason      = errors.New("unknown season")
	ErrUnknownPriority    = errors.New("unknown priority")
	ErrEmptyTitle         = errors.New("empty task title")
)

// Statuses returns every apiary status in declaration order.
func Statuses() []ApiaryStatus {
	return []ApiaryStatus{StatusActive, StatusDormant, StatusMaintenance}
}

// Seasons returns the fixed harvest season ordering.
func Seasons() []Season {
	return []Season{Spring, Summer, Autumn}
}

// Priorities returns every task priority in declaration order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium}
}

func (s ApiaryStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusDormant, StatusMaintenance:
		return true
	default:
		return false
	}
}

func (s Season) IsValid() bool {
	switch s {
	case Spring, Summer, Autumn:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium:
		return true
	default:
		return false
	}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// IsEmpty reports whether the date was never set.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// ISO returns the date as YYYY-MM-DD, or "" when empty.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

// checkAmount accepts finite kilogram values >= 0.
func checkAmount(kg float64) error {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return ErrNonFiniteAmount
	}
	if kg < 0 {
		return ErrNegativeHoney
	}
	return nil
}

func (a Apiary) Validate() error {
	if a.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if a.HiveCount < 0 {
		return ErrNegativeCount
	}
	if err := checkAmount(a.TotalHoney); err != nil {
		return err
	}
	if err := checkAmount(a.AvgPerHive); err != nil {
		return err
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, a.Status)
	}
	return nil
}

func (h Hive) Validate() error {
	if h.ID <= 0 || h.ApiaryID <= 0 {
		return ErrInvalidID
	}
	if h.QueenAge < 0 {
		return ErrNegativeQueenAge
	}
	if h.Strength < 0 || h.Strength > MaxStrength {
		return ErrStrengthOutOfRange
	}
	if err := checkAmount(h.HoneyCollected); err != nil {
		return err
	}
	return nil
}

func (r HarvestRecord) Validate() error {
	if r.HiveID <= 0 {
		return ErrInvalidID
	}
	if err := checkAmount(r.Amount); err != nil {
		return err
	}
	if !r.Season.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownSeason, r.Season)
	}
	return nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPriority, t.Priority)
	}
	return nil
}
