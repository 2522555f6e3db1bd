package engine

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"db-verify/internal/dialect"

	"github.com/brianvoe/gofakeit/v6"
)

// SeedSpec describes one demo table to (re)create and fill.
type SeedSpec struct {
	Table string
	Count int
	Seed  int64
	// Drift renames two columns and perturbs values within the documented
	// tolerances, so a seeded pair exercises every comparison category.
	Drift bool
}

type demoColumn struct {
	name string
	kind string
}

// demoColumns returns the demo product table layout. The drifted variant
// renames product_name and price, matching the column_mappings in the
// sample suite.
func demoColumns(drift bool) []demoColumn {
	name, price := "product_name", "price"
	if drift {
		name, price = "product_description", "cost_price"
	}
	return []demoColumn{
		{"product_id", "integer"},
		{name, "text"},
		{price, "real"},
		{"stock_quantity", "integer"},
		{"is_active", "text"},
		{"created_at", "timestamp"},
	}
}

func createQuery(d dialect.Dialect, table string, cols []demoColumn) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = c.name + " " + d.TypeName(c.kind)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))
}

// Seed drops, recreates and fills one demo table. Both sides of a pair must
// use the same Seed and Count so the generated value sequences line up; the
// drifted side then skips every 50th row, nudges prices by less than a cent,
// flips the case of every 3rd status and shifts every 7th timestamp by 30s.
func Seed(db *sql.DB, d dialect.Dialect, spec SeedSpec, onProgress func()) (int, error) {
	cols := demoColumns(spec.Drift)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}

	db.Exec(fmt.Sprintf("DROP TABLE %s", spec.Table)) // best effort
	if _, err := db.Exec(createQuery(d, spec.Table, cols)); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", spec.Table, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx for %s: %w", spec.Table, err)
	}

	f := gofakeit.New(spec.Seed)
	query := d.InsertQuery(spec.Table, names)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inserted := 0
	for i := 1; i <= spec.Count; i++ {
		// Generate every value before any drift decision so both sides
		// consume the faker sequence identically.
		name := f.ProductName()
		price := f.Price(1, 500)
		stock := f.Number(0, 1000)
		active := "active"
		if f.Bool() {
			active = "inactive"
		}
		created := base.Add(time.Duration(i) * time.Minute)

		if spec.Drift {
			if i%50 == 0 {
				continue
			}
			price += 0.004
			if i%3 == 0 {
				active = strings.ToUpper(active[:1]) + active[1:]
			}
			if i%7 == 0 {
				created = created.Add(30 * time.Second)
			}
		}

		if _, err := tx.Exec(query, i, name, price, stock, active, created); err != nil {
			tx.Rollback()
			return inserted, fmt.Errorf("failed to insert into %s: %w", spec.Table, err)
		}
		inserted++
		if onProgress != nil {
			onProgress()
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("failed to commit %s: %w", spec.Table, err)
	}
	return inserted, nil
}
