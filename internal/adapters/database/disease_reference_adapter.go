package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/repositories"
	"github.com/florencehealth/ai-nurse-florence/internal/infrastructure/clients/postgres"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

const referenceTable = "disease_references"

var referenceColumns = []interface{}{
	"id", "name", "mondo_id", "icd10_code", "summary",
	"status", "search_count", "promoted_at", "created_at", "updated_at",
}

// DiseaseReferenceAdapter implements DiseaseReferenceRepository
type DiseaseReferenceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDiseaseReferenceAdapter creates a new disease reference adapter
func NewDiseaseReferenceAdapter(client *postgres.Client) repositories.DiseaseReferenceRepository {
	return &DiseaseReferenceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new reference entry
func (a *DiseaseReferenceAdapter) Create(ctx context.Context, ref *entities.DiseaseReference) error {
	record := goqu.Record{
		"id":           ref.ID,
		"name":         ref.Name,
		"mondo_id":     sql.NullString{String: ref.MondoID, Valid: ref.MondoID != ""},
		"icd10_code":   sql.NullString{String: ref.ICD10Code, Valid: ref.ICD10Code != ""},
		"summary":      sql.NullString{String: ref.Summary, Valid: ref.Summary != ""},
		"status":       string(ref.Status),
		"search_count": ref.SearchCount,
		"promoted_at":  ref.PromotedAt,
		"created_at":   ref.CreatedAt,
		"updated_at":   ref.UpdatedAt,
	}

	query, args, err := a.db.Insert(referenceTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create disease reference", err)
	}

	return nil
}

// GetByID retrieves a reference entry by ID
func (a *DiseaseReferenceAdapter) GetByID(ctx context.Context, id string) (*entities.DiseaseReference, error) {
	return a.getByField(ctx, "id", id)
}

// GetByName retrieves a reference entry by its canonical name
func (a *DiseaseReferenceAdapter) GetByName(ctx context.Context, name string) (*entities.DiseaseReference, error) {
	return a.getByField(ctx, "name", name)
}

func (a *DiseaseReferenceAdapter) getByField(ctx context.Context, field, value string) (*entities.DiseaseReference, error) {
	query, args, err := a.db.Select(referenceColumns...).
		From(referenceTable).
		Where(goqu.Ex{field: value}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	ref, err := scanReference(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("disease reference not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get disease reference", err)
	}
	return ref, nil
}

// Update updates a reference entry
func (a *DiseaseReferenceAdapter) Update(ctx context.Context, ref *entities.DiseaseReference) error {
	ref.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"name":         ref.Name,
		"mondo_id":     sql.NullString{String: ref.MondoID, Valid: ref.MondoID != ""},
		"icd10_code":   sql.NullString{String: ref.ICD10Code, Valid: ref.ICD10Code != ""},
		"summary":      sql.NullString{String: ref.Summary, Valid: ref.Summary != ""},
		"status":       string(ref.Status),
		"search_count": ref.SearchCount,
		"promoted_at":  ref.PromotedAt,
		"updated_at":   ref.UpdatedAt,
	}

	query, args, err := a.db.Update(referenceTable).
		Set(record).
		Where(goqu.Ex{"id": ref.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update disease reference", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError("disease reference not found")
	}

	return nil
}

// IncrementSearchCount atomically bumps the lookup counter and returns the
// updated entry. The counter update and the read happen in one statement so
// concurrent lookups cannot lose increments.
func (a *DiseaseReferenceAdapter) IncrementSearchCount(ctx context.Context, id string) (*entities.DiseaseReference, error) {
	query := `UPDATE disease_references
		SET search_count = search_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, mondo_id, icd10_code, summary, status, search_count, promoted_at, created_at, updated_at`

	row := a.client.DB().QueryRowContext(ctx, query, id)
	ref, err := scanReference(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("disease reference not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to increment search count", err)
	}
	return ref, nil
}

// List retrieves reference entries with filters
func (a *DiseaseReferenceAdapter) List(ctx context.Context, filter repositories.ReferenceFilter) ([]*entities.DiseaseReference, error) {
	ds := a.db.Select(referenceColumns...).
		From(referenceTable).
		Order(goqu.I("search_count").Desc(), goqu.I("name").Asc())

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": string(filter.Status)})
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list disease references", err)
	}
	defer rows.Close()

	refs := []*entities.DiseaseReference{}
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan disease reference", err)
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReference(row rowScanner) (*entities.DiseaseReference, error) {
	ref := &entities.DiseaseReference{}
	var mondoID, icd10Code, summary sql.NullString
	var status string
	var promotedAt sql.NullTime

	err := row.Scan(
		&ref.ID,
		&ref.Name,
		&mondoID,
		&icd10Code,
		&summary,
		&status,
		&ref.SearchCount,
		&promotedAt,
		&ref.CreatedAt,
		&ref.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ref.MondoID = mondoID.String
	ref.ICD10Code = icd10Code.String
	ref.Summary = summary.String
	ref.Status = entities.ReferenceStatus(status)
	if promotedAt.Valid {
		ref.PromotedAt = &promotedAt.Time
	}

	return ref, nil
}
