package visits

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StoredVisit is a persisted visit record plus its audit fields.
type StoredVisit struct {
	ID            uuid.UUID `json:"id"`
	WorkerID      string    `json:"worker_id"`
	Record        Record    `json:"record"`
	Transcription string    `json:"transcription"`
	CreatedAt     time.Time `json:"created_at"`
}

// Repository persists extracted visit records in Postgres.
type Repository struct {
	pool Querier
}

func NewRepository(pool Querier) *Repository {
	if pool == nil {
		return nil
	}
	return &Repository{pool: pool}
}

// Save inserts a visit record and returns its generated id.
func (r *Repository) Save(ctx context.Context, workerID, transcription string, record Record) (uuid.UUID, error) {
	id := uuid.New()
	data, err := json.Marshal(record)
	if err != nil {
		return uuid.Nil, fmt.Errorf("visits: marshal record: %w", err)
	}

	query := `
		INSERT INTO visit_records (id, worker_id, patient_name, visit_type, record, transcription, follow_up_required, referral_needed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.pool.Exec(ctx, query,
		id,
		workerID,
		record.PatientName,
		record.VisitType,
		data,
		transcription,
		record.FollowUpRequired,
		record.ReferralNeeded,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("visits: insert visit record: %w", err)
	}
	return id, nil
}

// ListByWorker returns a worker's visits, newest first.
func (r *Repository) ListByWorker(ctx context.Context, workerID string, limit int) ([]StoredVisit, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, worker_id, record, transcription, created_at
		FROM visit_records
		WHERE worker_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, workerID, limit)
	if err != nil {
		return nil, fmt.Errorf("visits: list visit records: %w", err)
	}
	defer rows.Close()

	var visits []StoredVisit
	for rows.Next() {
		var (
			visit StoredVisit
			data  []byte
		)
		if err := rows.Scan(&visit.ID, &visit.WorkerID, &data, &visit.Transcription, &visit.CreatedAt); err != nil {
			return nil, fmt.Errorf("visits: scan visit record: %w", err)
		}
		visit.Record = EmptyRecord()
		if err := json.Unmarshal(data, &visit.Record); err != nil {
			return nil, fmt.Errorf("visits: decode stored record: %w", err)
		}
		visit.Record.Normalize()
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("visits: iterate visit records: %w", err)
	}
	return visits, nil
}
