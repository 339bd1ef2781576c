package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Harshal6927/advanced-alchemy/dberrors"
	"github.com/Harshal6927/advanced-alchemy/filters"
	"github.com/Harshal6927/advanced-alchemy/logger"
)

// Repository implements CRUD and filtered listings for one model type
type Repository[T any] struct {
	db  *gorm.DB
	log logger.Logger
}

// New creates a repository bound to a session or engine
func New[T any](db *gorm.DB, log logger.Logger) (*Repository[T], error) {
	if db == nil {
		return nil, fmt.Errorf("db must not be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	return &Repository[T]{db: db, log: log}, nil
}

func (r *Repository[T]) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Add persists a new record
func (r *Repository[T]) Add(ctx context.Context, entity *T) error {
	if err := r.session(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", dberrors.Translate(err))
	}

	r.log.Debug("created record")
	return nil
}

// AddMany persists a batch of records in one statement
func (r *Repository[T]) AddMany(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}
	if err := r.session(ctx).Create(&entities).Error; err != nil {
		return fmt.Errorf("failed to create records: %w", dberrors.Translate(err))
	}

	r.log.Debug("created ", len(entities), " records")
	return nil
}

// Get fetches a record by primary key
func (r *Repository[T]) Get(ctx context.Context, id any) (*T, error) {
	var entity T
	if err := r.session(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch record: %w", dberrors.Translate(err))
	}
	return &entity, nil
}

// GetOne fetches the first record matching the filters and fails when none
// matches
func (r *Repository[T]) GetOne(ctx context.Context, fs ...filters.StatementFilter) (*T, error) {
	var entity T
	if err := filters.Apply(r.session(ctx), fs...).First(&entity).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch record: %w", dberrors.Translate(err))
	}
	return &entity, nil
}

// GetOneOrNone fetches the first record matching the filters, returning nil
// without an error when none matches
func (r *Repository[T]) GetOneOrNone(ctx context.Context, fs ...filters.StatementFilter) (*T, error) {
	entity, err := r.GetOne(ctx, fs...)
	if err != nil {
		if errors.Is(err, dberrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entity, nil
}

// List fetches every record matching the filters
func (r *Repository[T]) List(ctx context.Context, fs ...filters.StatementFilter) ([]T, error) {
	var entities []T
	if err := filters.Apply(r.session(ctx), fs...).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", dberrors.Translate(err))
	}
	return entities, nil
}

// ListAndCount fetches the records matching the filters together with the
// total count the pagination is cutting into
func (r *Repository[T]) ListAndCount(ctx context.Context, fs ...filters.StatementFilter) ([]T, int64, error) {
	total, err := r.Count(ctx, fs...)
	if err != nil {
		return nil, 0, err
	}

	entities, err := r.List(ctx, fs...)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// Count counts the records matching the filters, ignoring pagination
func (r *Repository[T]) Count(ctx context.Context, fs ...filters.StatementFilter) (int64, error) {
	var n int64
	tx := filters.Apply(r.session(ctx).Model(new(T)), filters.WithoutPagination(fs)...)
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", dberrors.Translate(err))
	}
	return n, nil
}

// Exists reports whether any record matches the filters
func (r *Repository[T]) Exists(ctx context.Context, fs ...filters.StatementFilter) (bool, error) {
	n, err := r.Count(ctx, fs...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update persists every field of an existing record
func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	if err := r.session(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to update record: %w", dberrors.Translate(err))
	}

	r.log.Debug("updated record")
	return nil
}

// Upsert persists a record, updating the existing row on primary key conflict
func (r *Repository[T]) Upsert(ctx context.Context, entity *T) error {
	if err := r.session(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to upsert record: %w", dberrors.Translate(err))
	}
	return nil
}

// Delete removes a record by primary key and fails when it does not exist
func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	result := r.session(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", dberrors.Translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete record: %w", dberrors.Translate(gorm.ErrRecordNotFound))
	}

	r.log.Info("deleted record with id ", id)
	return nil
}

// DeleteMany removes records by primary key and returns how many existed
func (r *Repository[T]) DeleteMany(ctx context.Context, ids []any) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.session(ctx).Where("id IN ?", ids).Delete(new(T))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete records: %w", dberrors.Translate(result.Error))
	}

	r.log.Info("deleted ", result.RowsAffected, " records")
	return result.RowsAffected, nil
}

// DeleteWhere removes every record matching the filters and returns how many
// were removed. At least one restricting filter is required, deleting a whole
// table this way is rejected
func (r *Repository[T]) DeleteWhere(ctx context.Context, fs ...filters.StatementFilter) (int64, error) {
	result := filters.Apply(r.session(ctx), fs...).Delete(new(T))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete records: %w", dberrors.Translate(result.Error))
	}

	r.log.Info("deleted ", result.RowsAffected, " records")
	return result.RowsAffected, nil
}
