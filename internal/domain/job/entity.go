package job

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("job not found")
)

type Type string

const (
	TypeFullTime  Type = "Full-time"
	TypePartTime  Type = "Part-time"
	TypeContract  Type = "Contract"
	TypeTemporary Type = "Temporary"
	TypeSeasonal  Type = "Seasonal"
)

type Status string

const (
	StatusActive Status = "Active"
	StatusFilled Status = "Filled"
	StatusClosed Status = "Closed"
)

type PayType string

const (
	PayHourly  PayType = "Hourly"
	PayDaily   PayType = "Daily"
	PayWeekly  PayType = "Weekly"
	PayMonthly PayType = "Monthly"
	PayFixed   PayType = "Fixed"
)

// Point is a resolved coordinate pair. The zero value is the sentinel for
// "location unknown" and must never be treated as a real place.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func (p Point) IsSentinel() bool {
	return p.Lon == 0 && p.Lat == 0
}

type Job struct {
	ID         uuid.UUID `json:"id"`
	EmployerID uuid.UUID `json:"employerId"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Type        Type   `json:"jobType"`

	// City is the human-entered display value; Location is derived from it
	// through the geocoder and used only for proximity ranking.
	City        string `json:"city"`
	AddressText string `json:"addressText"`
	Location    Point  `json:"location"`

	PayRateMin float64 `json:"payRateMin"`
	PayRateMax float64 `json:"payRateMax"`
	PayType    PayType `json:"payType"`

	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	RequiredSkills      []string   `json:"requiredSkills"`
	ImageURL            string     `json:"imageUrl"`
	Status              Status     `json:"status"`

	PostedAt  time.Time `json:"postedAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var jobTypes = map[string]Type{
	"full-time": TypeFullTime,
	"part-time": TypePartTime,
	"contract":  TypeContract,
	"temporary": TypeTemporary,
	"seasonal":  TypeSeasonal,
}

func ParseType(s string) (Type, bool) {
	t, ok := jobTypes[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

var statuses = map[string]Status{
	"active": StatusActive,
	"filled": StatusFilled,
	"closed": StatusClosed,
}

func ParseStatus(s string) (Status, bool) {
	st, ok := statuses[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

var payTypes = map[string]PayType{
	"hourly":  PayHourly,
	"daily":   PayDaily,
	"weekly":  PayWeekly,
	"monthly": PayMonthly,
	"fixed":   PayFixed,
}

func ParsePayType(s string) (PayType, bool) {
	p, ok := payTypes[strings.ToLower(strings.TrimSpace(s))]
	return p, ok
}

// Terminal statuses are not reversible through normal flow; admins may
// force any transition.
func (s Status) Terminal() bool {
	return s == StatusFilled || s == StatusClosed
}
