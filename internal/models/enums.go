package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCategory    = errors.New("invalid train category")
	ErrInvalidTicketClass = errors.New("invalid ticket class")
)

// Category is the service class of a train on a route
type Category string

const (
	CategorySlow   Category = "slow"
	CategoryFast   Category = "fast"
	CategoryLadies Category = "ladies"
	// CategoryAll selects every category of a timetable
	CategoryAll Category = "all"
)

// TimetableCategories returns the concrete categories in the order they are
// concatenated for CategoryAll.
func TimetableCategories() []Category {
	return []Category{CategorySlow, CategoryFast, CategoryLadies}
}

// ParseCategory converts a category name. An empty string selects CategoryAll.
func ParseCategory(s string) (Category, error) {
	if strings.TrimSpace(s) == "" {
		return CategoryAll, nil
	}
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategorySlow, CategoryFast, CategoryLadies, CategoryAll:
		return true
	}
	return false
}

// Letter is the single upper-case letter used in generated train numbers
func (c Category) Letter() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1]))
}

// TicketClass selects a column of the fare table
type TicketClass string

const (
	ClassSecond TicketClass = "second"
	ClassFirst  TicketClass = "first"
)

// ParseTicketClass converts a class name. An empty string selects second class.
func ParseTicketClass(s string) (TicketClass, error) {
	if strings.TrimSpace(s) == "" {
		return ClassSecond, nil
	}
	c := TicketClass(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicketClass, s)
	}
	return c, nil
}

func (c TicketClass) Valid() bool {
	return c == ClassSecond || c == ClassFirst
}

// Status of a scheduled or live train
type Status string

const (
	StatusOnTime  Status = "on-time"
	StatusDelayed Status = "delayed"
)

func (s Status) Valid() bool {
	return s == StatusOnTime || s == StatusDelayed
}

// CrowdLevel is a coarse occupancy classification of a live train
type CrowdLevel string

const (
	CrowdLow      CrowdLevel = "low"
	CrowdModerate CrowdLevel = "moderate"
	CrowdHigh     CrowdLevel = "high"
)

func (c CrowdLevel) Valid() bool {
	switch c {
	case CrowdLow, CrowdModerate, CrowdHigh:
		return true
	}
	return false
}

// Facility tags a station amenity
type Facility string

const (
	FacilityParking  Facility = "parking"
	FacilityFood     Facility = "food"
	FacilityATM      Facility = "atm"
	FacilityRestroom Facility = "restroom"
	FacilityMall     Facility = "mall"
)
