package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists evaluation history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id            TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			project       TEXT NOT NULL,
			capacity_mw   REAL,
			cuf           REAL,
			capital_cost  REAL,
			tariff        REAL,
			discount_rate REAL,
			loan_fraction REAL,
			life_years    INTEGER,
			params_json   TEXT,
			project_irr   REAL,
			equity_irr    REAL,
			npv           REAL,
			lcoe          REAL,
			payback_years INTEGER,
			feasibility   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_project_ts ON evaluations(project, timestamp)`,

		`CREATE TABLE IF NOT EXISTS cash_flows (
			evaluation_id TEXT NOT NULL REFERENCES evaluations(id),
			year          INTEGER NOT NULL,
			energy_kwh    REAL,
			revenue       REAL,
			om_cost       REAL,
			ebitda        REAL,
			depreciation  REAL,
			interest      REAL,
			principal     REAL,
			tax_project   REAL,
			tax_equity    REAL,
			project_cf    REAL,
			equity_cf     REAL,
			PRIMARY KEY (evaluation_id, year)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvaluation(ctx context.Context, ev *Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	params, err := json.Marshal(ev.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	res := ev.Result
	p := ev.Params

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO evaluations
		(id, timestamp, project, capacity_mw, cuf, capital_cost, tariff, discount_rate,
		 loan_fraction, life_years, params_json,
		 project_irr, equity_irr, npv, lcoe, payback_years, feasibility)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		ev.RunID.String(), ev.EvaluatedAt.Unix(), ev.Project,
		p.CapacityMW, p.CUF, p.CapitalCost(), p.Tariff, p.DiscountRate,
		p.LoanFraction, p.LifeYears, string(params),
		res.ProjectIRR, res.EquityIRR, res.NPV, res.LCOE, res.PaybackYears, string(res.Feasibility),
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cash_flows
		(evaluation_id, year, energy_kwh, revenue, om_cost, ebitda, depreciation,
		 interest, principal, tax_project, tax_equity, project_cf, equity_cf)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare cash flows: %w", err)
	}
	defer stmt.Close()

	for _, y := range res.Years {
		if _, err := stmt.ExecContext(ctx,
			ev.RunID.String(), y.Year, y.EnergyKWh, y.Revenue, y.OMCost, y.EBITDA, y.Depreciation,
			y.Interest, y.Principal, y.TaxProject, y.TaxEquity, y.ProjectCashFlow, y.EquityCashFlow,
		); err != nil {
			return fmt.Errorf("insert year %d: %w", y.Year, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
