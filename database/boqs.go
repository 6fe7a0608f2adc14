package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"tatvadirect/backend/models"
)

const boqColumns = `id, service_provider_id, name, description, project::text, items::text, status, total_value,
normalized_at, completed_at, COALESCE(uploaded_file::text, ''), processing_log::text, is_active, created_at, updated_at`

func scanBOQ(row pgx.Row) (*models.BOQ, error) {
	var b models.BOQ
	var project, items, file, plog string
	err := row.Scan(&b.ID, &b.ServiceProvider, &b.Name, &b.Description, &project, &items, &b.Status, &b.TotalValue,
		&b.NormalizedAt, &b.CompletedAt, &file, &plog, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := fromJSON(project, &b.Project); err != nil {
		return nil, err
	}
	if err := fromJSON(items, &b.Items); err != nil {
		return nil, err
	}
	if file != "" && file != "null" {
		b.UploadedFile = &models.UploadedFile{}
		if err := fromJSON(file, b.UploadedFile); err != nil {
			return nil, err
		}
	}
	if err := fromJSON(plog, &b.ProcessingLog); err != nil {
		return nil, err
	}
	if b.Items == nil {
		b.Items = []models.BOQItem{}
	}
	if b.ProcessingLog == nil {
		b.ProcessingLog = []models.ProcessingLogEntry{}
	}
	return &b, nil
}

func collectBOQs(rows pgx.Rows) ([]models.BOQ, error) {
	defer rows.Close()
	out := []models.BOQ{}
	for rows.Next() {
		b, err := scanBOQ(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// boqJSON returns project, items, uploaded file (nil stays SQL NULL) and log.
func boqJSON(b *models.BOQ) (project, items string, file *string, plog string, err error) {
	js, err := jsonArgs(b.Project, b.Items, b.ProcessingLog)
	if err != nil {
		return "", "", nil, "", err
	}
	if b.UploadedFile != nil {
		f, err := toJSON(b.UploadedFile)
		if err != nil {
			return "", "", nil, "", err
		}
		file = &f
	}
	return js[0], js[1], file, js[2], nil
}

// CreateBOQ inserts b with its total derived from the items.
func (s *Store) CreateBOQ(ctx context.Context, b *models.BOQ) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = models.BOQStatusDraft
	}
	if b.Items == nil {
		b.Items = []models.BOQItem{}
	}
	if b.ProcessingLog == nil {
		b.ProcessingLog = []models.ProcessingLogEntry{}
	}
	b.RecalculateTotal()
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	project, items, file, plog, err := boqJSON(b)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO boqs(id, service_provider_id, name, description, project, items, status,
total_value, normalized_at, completed_at, uploaded_file, processing_log, is_active, created_at, updated_at)
VALUES($1,$2,$3,$4,$5::jsonb,$6::jsonb,$7,$8,$9,$10,$11::jsonb,$12::jsonb,$13,$14,$15)`,
		b.ID, b.ServiceProvider, b.Name, b.Description, project, items, b.Status,
		b.TotalValue, b.NormalizedAt, b.CompletedAt, file, plog, b.IsActive, b.CreatedAt, b.UpdatedAt)
	return mapWriteErr(err)
}

// GetBOQ loads a BOQ only when it belongs to ownerID.
func (s *Store) GetBOQ(ctx context.Context, ownerID, id string) (*models.BOQ, error) {
	return scanBOQ(s.pool.QueryRow(ctx,
		`SELECT `+boqColumns+` FROM boqs WHERE id=$1 AND service_provider_id=$2`, id, ownerID))
}

func (s *Store) ListBOQsByServiceProvider(ctx context.Context, ownerID string) ([]models.BOQ, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+boqColumns+` FROM boqs WHERE service_provider_id=$1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectBOQs(rows)
}

func (s *Store) ListBOQs(ctx context.Context) ([]models.BOQ, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+boqColumns+` FROM boqs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectBOQs(rows)
}

// UpdateBOQ saves b, scoped to its owner, re-deriving the total.
func (s *Store) UpdateBOQ(ctx context.Context, b *models.BOQ) error {
	b.RecalculateTotal()
	b.UpdatedAt = time.Now().UTC()
	project, items, file, plog, err := boqJSON(b)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE boqs SET name=$3, description=$4, project=$5::jsonb, items=$6::jsonb,
status=$7, total_value=$8, normalized_at=$9, completed_at=$10, uploaded_file=$11::jsonb, processing_log=$12::jsonb,
is_active=$13, updated_at=$14 WHERE id=$1 AND service_provider_id=$2`,
		b.ID, b.ServiceProvider, b.Name, b.Description, project, items,
		b.Status, b.TotalValue, b.NormalizedAt, b.CompletedAt, file, plog,
		b.IsActive, b.UpdatedAt)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
