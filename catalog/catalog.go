package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no item is stored for a day and meal.
	ErrNotFound = errors.New("mess/catalog: menu item not found")

	// ErrInvalidKey is returned for a day or meal outside the week's schedule.
	ErrInvalidKey = errors.New("mess/catalog: invalid day or meal")
)

// Meal is one of the four daily services.
type Meal int

const (
	Breakfast Meal = iota
	Lunch
	Snacks
	Dinner
)

// Meals lists every meal in serving order.
var Meals = []Meal{Breakfast, Lunch, Snacks, Dinner}

func (m Meal) String() string {
	switch m {
	case Breakfast:
		return "BREAKFAST"
	case Lunch:
		return "LUNCH"
	case Snacks:
		return "SNACKS"
	case Dinner:
		return "DINNER"
	default:
		return fmt.Sprintf("Meal(%d)", int(m))
	}
}

// Valid reports whether m is a known meal.
func (m Meal) Valid() bool {
	return m >= Breakfast && m <= Dinner
}

// ParseMeal parses a meal name, ignoring case.
func ParseMeal(s string) (Meal, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BREAKFAST":
		return Breakfast, nil
	case "LUNCH":
		return Lunch, nil
	case "SNACKS", "SNACK":
		return Snacks, nil
	case "DINNER":
		return Dinner, nil
	}
	return 0, fmt.Errorf("%w: meal %q", ErrInvalidKey, s)
}

// ParseWeekday parses an English weekday name such as "MONDAY", ignoring case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.TrimSpace(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: day %q", ErrInvalidKey, s)
}

// Key identifies one menu entry.
type Key struct {
	Day  time.Weekday
	Meal Meal
}

// Valid reports whether both the day and the meal are in range.
func (k Key) Valid() bool {
	return k.Day >= time.Sunday && k.Day <= time.Saturday && k.Meal.Valid()
}

// String renders the key as DAY_MEAL, e.g. MONDAY_LUNCH.
func (k Key) String() string {
	return strings.ToUpper(k.Day.String()) + "_" + k.Meal.String()
}

// Item is a dish with its macro-nutrient breakdown.
type Item struct {
	Item    string `json:"item"`
	Carbs   string `json:"carbs"`
	Fat     string `json:"fat"`
	Protein string `json:"protein"`
}

// DayMenu is the full menu for one day. A nil entry means nothing is
// scheduled for that meal.
type DayMenu struct {
	Breakfast *Item `json:"breakfast"`
	Lunch     *Item `json:"lunch"`
	Snacks    *Item `json:"snacks"`
	Dinner    *Item `json:"dinner"`
}

// Set stores item under meal.
func (d *DayMenu) Set(meal Meal, item Item) {
	switch meal {
	case Breakfast:
		d.Breakfast = &item
	case Lunch:
		d.Lunch = &item
	case Snacks:
		d.Snacks = &item
	case Dinner:
		d.Dinner = &item
	}
}

// Catalog defines the interface for menu backends.
type Catalog interface {
	// Lookup returns the item for a day and meal, or ErrNotFound.
	Lookup(ctx context.Context, day time.Weekday, meal Meal) (Item, error)

	// Day returns every meal scheduled for day.
	Day(ctx context.Context, day time.Weekday) (DayMenu, error)

	// Update overwrites the item for a day and meal.
	Update(ctx context.Context, day time.Weekday, meal Meal, item Item) error

	// Close releases any resources held by the catalog.
	Close() error
}

type lookupFunc func(ctx context.Context, day time.Weekday, meal Meal) (Item, error)

// dayFromLookups assembles a DayMenu from one lookup per meal.
func dayFromLookups(ctx context.Context, lookup lookupFunc, day time.Weekday) (DayMenu, error) {
	var menu DayMenu
	for _, meal := range Meals {
		item, err := lookup(ctx, day, meal)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return DayMenu{}, err
		}
		menu.Set(meal, item)
	}
	return menu, nil
}

func checkKey(day time.Weekday, meal Meal) error {
	k := Key{Day: day, Meal: meal}
	if !k.Valid() {
		return fmt.Errorf("%w: %d/%d", ErrInvalidKey, int(day), int(meal))
	}
	return nil
}
