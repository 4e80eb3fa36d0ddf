package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRecorder persists evaluation history to PostgreSQL.
type PostgresRecorder struct {
	pool *pgxpool.Pool
}

// NewPostgresRecorder connects to databaseURL and runs migrations.
func NewPostgresRecorder(ctx context.Context, databaseURL string) (*PostgresRecorder, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	r := &PostgresRecorder{pool: pool}
	if err := r.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Printf("[INFO] postgres recorder connected: %s", cfg.ConnConfig.Host)
	return r, nil
}

func (r *PostgresRecorder) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id            UUID PRIMARY KEY,
			evaluated_at  TIMESTAMPTZ NOT NULL,
			project       TEXT NOT NULL,
			capacity_mw   DOUBLE PRECISION,
			cuf           DOUBLE PRECISION,
			capital_cost  DOUBLE PRECISION,
			tariff        DOUBLE PRECISION,
			discount_rate DOUBLE PRECISION,
			loan_fraction DOUBLE PRECISION,
			life_years    INTEGER,
			params        JSONB,
			project_irr   DOUBLE PRECISION,
			equity_irr    DOUBLE PRECISION,
			npv           DOUBLE PRECISION,
			lcoe          DOUBLE PRECISION,
			payback_years INTEGER,
			feasibility   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_project_ts ON evaluations(project, evaluated_at)`,
		`CREATE TABLE IF NOT EXISTS cash_flows (
			evaluation_id UUID NOT NULL REFERENCES evaluations(id) ON DELETE CASCADE,
			year          INTEGER NOT NULL,
			energy_kwh    DOUBLE PRECISION,
			revenue       DOUBLE PRECISION,
			om_cost       DOUBLE PRECISION,
			ebitda        DOUBLE PRECISION,
			depreciation  DOUBLE PRECISION,
			interest      DOUBLE PRECISION,
			principal     DOUBLE PRECISION,
			tax_project   DOUBLE PRECISION,
			tax_equity    DOUBLE PRECISION,
			project_cf    DOUBLE PRECISION,
			equity_cf     DOUBLE PRECISION,
			PRIMARY KEY (evaluation_id, year)
		)`,
	}
	for _, s := range stmts {
		if _, err := r.pool.Exec(ctx, s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *PostgresRecorder) RecordEvaluation(ctx context.Context, ev *Evaluation) error {
	params, err := json.Marshal(ev.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	res := ev.Result
	p := ev.Params

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO evaluations
			(id, evaluated_at, project, capacity_mw, cuf, capital_cost, tariff, discount_rate,
			 loan_fraction, life_years, params,
			 project_irr, equity_irr, npv, lcoe, payback_years, feasibility)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
			ev.RunID.String(), ev.EvaluatedAt, ev.Project,
			p.CapacityMW, p.CUF, p.CapitalCost(), p.Tariff, p.DiscountRate,
			p.LoanFraction, p.LifeYears, params,
			res.ProjectIRR, res.EquityIRR, res.NPV, res.LCOE, res.PaybackYears, string(res.Feasibility),
		)
		if err != nil {
			return fmt.Errorf("insert evaluation: %w", err)
		}

		batch := &pgx.Batch{}
		for _, y := range res.Years {
			batch.Queue(`INSERT INTO cash_flows
				(evaluation_id, year, energy_kwh, revenue, om_cost, ebitda, depreciation,
				 interest, principal, tax_project, tax_equity, project_cf, equity_cf)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
				ev.RunID.String(), y.Year, y.EnergyKWh, y.Revenue, y.OMCost, y.EBITDA, y.Depreciation,
				y.Interest, y.Principal, y.TaxProject, y.TaxEquity, y.ProjectCashFlow, y.EquityCashFlow,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert cash flows: %w", err)
		}
		return nil
	})
}

func (r *PostgresRecorder) Close() error {
	log.Println("[INFO] closing postgres recorder")
	r.pool.Close()
	return nil
}
