package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"pasika/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository reads a dataset from a SQLite file. It never writes after
// the migrations have run.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements dataset.Source.
func (r *SQLiteRepository) Load(ctx context.Context) (core.Dataset, error) {
	apiaries, err := r.listApiaries(ctx)
	if err != nil {
		return core.Dataset{}, err
	}
	hives, err := r.listHives(ctx)
	if err != nil {
		return core.Dataset{}, err
	}
	harvests, err := r.listHarvests(ctx)
	if err != nil {
		return core.Dataset{}, err
	}
	tasks, err := r.listTasks(ctx)
	if err != nil {
		return core.Dataset{}, err
	}

	ds := core.NewDataset(apiaries, hives, harvests, tasks)
	if err := ds.Validate(); err != nil {
		return core.Dataset{}, fmt.Errorf("validate dataset: %w", err)
	}

	slog.InfoContext(ctx, "Dataset loaded from SQLite",
		"apiaries", len(apiaries),
		"hives", len(hives),
		"harvests", len(harvests),
		"tasks", len(tasks))

	return ds, nil
}

func (r *SQLiteRepository) listApiaries(ctx context.Context) ([]core.Apiary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, location, hive_count, total_honey, avg_per_hive, status FROM apiaries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query apiaries: %w", err)
	}
	defer rows.Close()

	var out []core.Apiary
	for rows.Next() {
		var a core.Apiary
		var status string
		if err := rows.Scan(&a.ID, &a.Name, &a.Location, &a.HiveCount, &a.TotalHoney, &a.AvgPerHive, &status); err != nil {
			return nil, fmt.Errorf("scan apiary: %w", err)
		}
		a.Status = core.ApiaryStatus(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate apiaries: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) listHives(ctx context.Context) ([]core.Hive, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, apiary_id, number, queen_age, strength, last_inspection, honey_collected FROM hives ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query hives: %w", err)
	}
	defer rows.Close()

	var out []core.Hive
	for rows.Next() {
		var h core.Hive
		var inspected string
		if err := rows.Scan(&h.ID, &h.ApiaryID, &h.Number, &h.QueenAge, &h.Strength, &inspected, &h.HoneyCollected); err != nil {
			return nil, fmt.Errorf("scan hive: %w", err)
		}
		if inspected != "" {
			d, err := core.ParseDate(inspected)
			if err != nil {
				return nil, fmt.Errorf("hive %d: %w", h.ID, err)
			}
			h.LastInspection = d
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hives: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) listHarvests(ctx context.Context) ([]core.HarvestRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, amount, hive_id, season FROM harvest_records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query harvest records: %w", err)
	}
	defer rows.Close()

	var out []core.HarvestRecord
	for rows.Next() {
		var rec core.HarvestRecord
		var date, season string
		if err := rows.Scan(&date, &rec.Amount, &rec.HiveID, &season); err != nil {
			return nil, fmt.Errorf("scan harvest record: %w", err)
		}
		if date != "" {
			d, err := core.ParseDate(date)
			if err != nil {
				return nil, fmt.Errorf("harvest record: %w", err)
			}
			rec.Date = d
		}
		rec.Season = core.Season(season)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate harvest records: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) listTasks(ctx context.Context) ([]core.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT title, due_window, priority, done FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var out []core.Task
	for rows.Next() {
		var t core.Task
		var priority string
		var done int64
		if err := rows.Scan(&t.Title, &t.Window, &priority, &done); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Priority = core.Priority(priority)
		t.Done = done != 0
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}
