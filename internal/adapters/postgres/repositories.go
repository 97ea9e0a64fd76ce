package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"bdcompass/internal/domain"
	"bdcompass/internal/ports"
)

var (
	_ ports.AnalysisRepository    = (*DB)(nil)
	_ ports.RunRepository         = (*DB)(nil)
	_ ports.OpportunityRepository = (*DB)(nil)
	_ ports.ActivityRepository    = (*DB)(nil)
	_ ports.JobRepository         = (*DB)(nil)
)

// AnalysisRepository

func (db *DB) LoadInput(ctx context.Context, accountID string) (domain.AnalysisInput, error) {
	var in domain.AnalysisInput

	rows, err := db.Pool.Query(ctx, `
        SELECT id, name, industry, size_bucket, domain
        FROM companies WHERE account_id = $1 ORDER BY id
    `, accountID)
	if err != nil {
		return in, fmt.Errorf("query companies: %w", err)
	}
	in.Companies, err = pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.Company, error) {
		var c domain.Company
		err := r.Scan(&c.ID, &c.Name, &c.Industry, &c.SizeBucket, &c.Domain)
		return c, err
	})
	if err != nil {
		return in, fmt.Errorf("scan companies: %w", err)
	}

	rows, err = db.Pool.Query(ctx, `
        SELECT id, name, email, company_id, role_title, seniority,
               previous_companies, previous_roles, connections, interaction_log
        FROM contacts WHERE account_id = $1 ORDER BY id
    `, accountID)
	if err != nil {
		return in, fmt.Errorf("query contacts: %w", err)
	}
	in.Contacts, err = pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.Contact, error) {
		var c domain.Contact
		err := r.Scan(&c.ID, &c.Name, &c.Email, &c.CompanyID, &c.RoleTitle, &c.Seniority,
			&c.PreviousCompanies, &c.PreviousRoles, &c.Connections, &c.InteractionLog)
		return c, err
	})
	if err != nil {
		return in, fmt.Errorf("scan contacts: %w", err)
	}

	rows, err = db.Pool.Query(ctx, `
        SELECT id, name, email, company_id, role_title, seniority,
               previous_companies, previous_roles, connections
        FROM target_contacts WHERE account_id = $1 ORDER BY id
    `, accountID)
	if err != nil {
		return in, fmt.Errorf("query targets: %w", err)
	}
	in.Targets, err = pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.TargetContact, error) {
		var t domain.TargetContact
		err := r.Scan(&t.ID, &t.Name, &t.Email, &t.CompanyID, &t.RoleTitle, &t.Seniority,
			&t.PreviousCompanies, &t.PreviousRoles, &t.Connections)
		return t, err
	})
	if err != nil {
		return in, fmt.Errorf("scan targets: %w", err)
	}

	rows, err = db.Pool.Query(ctx, `
        SELECT company_id, type, description, strength
        FROM buying_signals WHERE account_id = $1 ORDER BY company_id, observed_at, id
    `, accountID)
	if err != nil {
		return in, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()
	in.Signals = make(map[string][]domain.BuyingSignal)
	for rows.Next() {
		var companyID string
		var s domain.BuyingSignal
		if err := rows.Scan(&companyID, &s.Type, &s.Description, &s.Strength); err != nil {
			return in, fmt.Errorf("scan signals: %w", err)
		}
		in.Signals[companyID] = append(in.Signals[companyID], s)
	}
	return in, rows.Err()
}

// RunRepository

func (db *DB) Create(ctx context.Context, runID, accountID string) (err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `
        INSERT INTO analysis_runs (id, account_id, status, progress)
        VALUES ($1, $2, 'queued', 0)
    `, runID, accountID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO analysis_jobs (run_id) VALUES ($1)`, runID)
	return err
}

func (db *DB) Status(ctx context.Context, runID string) (ports.RunStatus, error) {
	var st ports.RunStatus
	err := db.Pool.QueryRow(ctx, `
        SELECT id::text, account_id, status, progress, COALESCE(error, '')
        FROM analysis_runs WHERE id::text = $1
    `, runID).Scan(&st.ID, &st.AccountID, &st.Status, &st.Progress, &st.Error)
	if errors.Is(err, pgx.ErrNoRows) {
		return st, ports.ErrNotFound
	}
	return st, err
}

// OpportunityRepository

func (db *DB) SaveOpportunities(ctx context.Context, runID, accountID string, opps []domain.ScoredOpportunity) (err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	// reprocessing a run replaces its previous output
	if _, err = tx.Exec(ctx, `DELETE FROM opportunities WHERE run_id = $1`, runID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for i, o := range opps {
		payload, mErr := json.Marshal(o)
		if mErr != nil {
			return mErr
		}
		batch.Queue(`
            INSERT INTO opportunities (run_id, account_id, company_id, target_id, rank, payload)
            VALUES ($1, $2, $3, $4, $5, $6)
        `, runID, accountID, o.CompanyID, o.Target.ID, i, payload)
	}
	return tx.SendBatch(ctx, batch).Close()
}

func (db *DB) LatestOpportunities(ctx context.Context, accountID string) ([]domain.ScoredOpportunity, error) {
	var runID string
	err := db.Pool.QueryRow(ctx, `
        SELECT id::text FROM analysis_runs
        WHERE account_id = $1 AND status = 'completed'
        ORDER BY finished_at DESC
        LIMIT 1
    `, accountID).Scan(&runID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, `
        SELECT payload FROM opportunities WHERE run_id::text = $1 ORDER BY rank
    `, runID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.ScoredOpportunity, error) {
		var (
			raw []byte
			o   domain.ScoredOpportunity
		)
		if err := r.Scan(&raw); err != nil {
			return o, err
		}
		return o, json.Unmarshal(raw, &o)
	})
}

// ActivityRepository

func (db *DB) ListAccounts(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT account_id FROM companies
        UNION
        SELECT account_id FROM activity_events
        ORDER BY 1
    `)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (db *DB) WeeklyActivity(ctx context.Context, accountID string, from, to time.Time) (domain.WeeklyActivity, error) {
	var a domain.WeeklyActivity
	err := db.Pool.QueryRow(ctx, `
        SELECT
            count(*) FILTER (WHERE kind = 'intro_generated'),
            count(*) FILTER (WHERE kind = 'intro_requested'),
            count(*) FILTER (WHERE kind = 'response'),
            count(*) FILTER (WHERE kind = 'outbound_suggested'),
            count(*) FILTER (WHERE kind = 'outbound_executed'),
            count(*) FILTER (WHERE kind = 'win'),
            count(*) FILTER (WHERE kind = 'loss'),
            count(*) FILTER (WHERE kind = 'opportunity_created')
        FROM activity_events
        WHERE account_id = $1 AND occurred_at >= $2 AND occurred_at < $3
    `, accountID, from, to).Scan(&a.IntrosGenerated, &a.IntrosRequested, &a.Responses,
		&a.OutboundSuggested, &a.OutboundExecuted, &a.Wins, &a.Losses, &a.OpportunitiesCreated)
	if err != nil {
		return a, fmt.Errorf("aggregate activity: %w", err)
	}

	rows, err := db.Pool.Query(ctx, `
        SELECT industry,
               count(*) FILTER (WHERE kind = 'opportunity_created'),
               count(*) FILTER (WHERE kind = 'win')
        FROM activity_events
        WHERE account_id = $1 AND occurred_at >= $2 AND occurred_at < $3 AND industry <> ''
        GROUP BY industry
        ORDER BY industry
    `, accountID, from, to)
	if err != nil {
		return a, fmt.Errorf("aggregate industries: %w", err)
	}
	a.Industries, err = pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.IndustryActivity, error) {
		var ind domain.IndustryActivity
		err := r.Scan(&ind.Industry, &ind.Opportunities, &ind.Wins)
		return ind, err
	})
	return a, err
}
