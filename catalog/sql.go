package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Compile-time interface check.
var _ Catalog = (*SQLCatalog)(nil)

// SQLCatalog is a persistent Catalog stored in the mess_menu table of a
// SQLite or MySQL database.
type SQLCatalog struct {
	db     *sql.DB
	driver string
}

// NewSQLCatalog opens the database named by driver ("sqlite" or "mysql") and
// dsn, creates the schema and inserts seed entries that are not present yet.
// Existing rows, including admin edits, are never overwritten by the seed.
func NewSQLCatalog(ctx context.Context, driver, dsn string, seed map[Key]Item) (*SQLCatalog, error) {
	switch driver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("mess/catalog: unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("mess/catalog: open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	c := &SQLCatalog{db: db, driver: driver}
	if err := c.migrate(ctx, seed); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *SQLCatalog) migrate(ctx context.Context, seed map[Key]Item) error {
	if _, err := c.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS mess_menu (
			day     VARCHAR(16)  NOT NULL,
			meal    VARCHAR(16)  NOT NULL,
			item    VARCHAR(255) NOT NULL,
			carbs   VARCHAR(32)  NOT NULL DEFAULT '',
			fat     VARCHAR(32)  NOT NULL DEFAULT '',
			protein VARCHAR(32)  NOT NULL DEFAULT '',
			PRIMARY KEY (day, meal)
		)
	`); err != nil {
		return fmt.Errorf("mess/catalog: create table: %w", err)
	}

	insert := `INSERT OR IGNORE INTO`
	if c.driver == "mysql" {
		insert = `INSERT IGNORE INTO`
	}
	query := insert + ` mess_menu (day, meal, item, carbs, fat, protein) VALUES (?, ?, ?, ?, ?, ?)`

	for k, v := range seed {
		if _, err := c.db.ExecContext(ctx, query, dayColumn(k.Day), k.Meal.String(), v.Item, v.Carbs, v.Fat, v.Protein); err != nil {
			return fmt.Errorf("mess/catalog: seed %s: %w", k, err)
		}
	}
	return nil
}

// Lookup returns the item for a day and meal.
func (c *SQLCatalog) Lookup(ctx context.Context, day time.Weekday, meal Meal) (Item, error) {
	if err := checkKey(day, meal); err != nil {
		return Item{}, err
	}

	var item Item
	err := c.db.QueryRowContext(ctx,
		`SELECT item, carbs, fat, protein FROM mess_menu WHERE day = ? AND meal = ?`,
		dayColumn(day), meal.String(),
	).Scan(&item.Item, &item.Carbs, &item.Fat, &item.Protein)

	if err == sql.ErrNoRows {
		return Item{}, fmt.Errorf("%w: %s", ErrNotFound, Key{day, meal})
	}
	if err != nil {
		return Item{}, fmt.Errorf("mess/catalog: lookup %s: %w", Key{day, meal}, err)
	}
	return item, nil
}

// Day returns every meal scheduled for day.
func (c *SQLCatalog) Day(ctx context.Context, day time.Weekday) (DayMenu, error) {
	if err := checkKey(day, Breakfast); err != nil {
		return DayMenu{}, err
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT meal, item, carbs, fat, protein FROM mess_menu WHERE day = ?`, dayColumn(day),
	)
	if err != nil {
		return DayMenu{}, fmt.Errorf("mess/catalog: day %s: %w", day, err)
	}
	defer rows.Close()

	var menu DayMenu
	for rows.Next() {
		var mealName string
		var item Item
		if err := rows.Scan(&mealName, &item.Item, &item.Carbs, &item.Fat, &item.Protein); err != nil {
			return DayMenu{}, fmt.Errorf("mess/catalog: day %s: %w", day, err)
		}
		meal, err := ParseMeal(mealName)
		if err != nil {
			continue
		}
		menu.Set(meal, item)
	}
	if err := rows.Err(); err != nil {
		return DayMenu{}, fmt.Errorf("mess/catalog: day %s: %w", day, err)
	}
	return menu, nil
}

// Update overwrites the item for a day and meal.
func (c *SQLCatalog) Update(ctx context.Context, day time.Weekday, meal Meal, item Item) error {
	if err := checkKey(day, meal); err != nil {
		return err
	}
	_, err := c.db.ExecContext(ctx,
		`REPLACE INTO mess_menu (day, meal, item, carbs, fat, protein) VALUES (?, ?, ?, ?, ?, ?)`,
		dayColumn(day), meal.String(), item.Item, item.Carbs, item.Fat, item.Protein,
	)
	if err != nil {
		return fmt.Errorf("mess/catalog: update %s: %w", Key{day, meal}, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (c *SQLCatalog) Close() error {
	return c.db.Close()
}

func dayColumn(day time.Weekday) string {
	return strings.ToUpper(day.String())
}
