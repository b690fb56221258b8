package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/validator"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db, now: time.Now}
}

// CreateTransaction validates and stores a new transaction. A missing date
// defaults to the current time.
func (s *transactionService) CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	if violations := validator.Check(&in); violations != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidationFailed, violations)
	}

	date := s.now().UTC()
	if in.Date != nil {
		parsed, err := validator.ParseDate(*in.Date)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrValidationFailed, err)
		}
		date = parsed
	}

	tx := &models.Transaction{
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        date,
		Type:        in.Type,
	}

	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// ListTransactions returns one page of transactions matching every given
// filter, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, filter TransactionFilter) (*TransactionList, error) {
	if violations := validator.Check(&filter); violations != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidationFailed, violations)
	}
	filter.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.Category != "" {
		base = base.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		base = base.Where("type = ?", filter.Type)
	}
	if filter.StartDate != "" {
		from, err := validator.ParseDate(filter.StartDate)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrValidationFailed, err)
		}
		base = base.Where("date >= ?", from)
	}
	if filter.EndDate != "" {
		to, err := validator.ParseDate(filter.EndDate)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrValidationFailed, err)
		}
		if validator.IsDateOnly(filter.EndDate) {
			base = base.Where("date < ?", to.AddDate(0, 0, 1))
		} else {
			base = base.Where("date <= ?", to)
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transactions := make([]models.Transaction, 0, filter.Limit)
	if err := base.Order("date DESC").Order("id DESC").
		Scopes(pagination.Paginate(filter.PageRequest)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &TransactionList{
		Transactions: transactions,
		Pagination:   pagination.NewMeta(filter.Page, filter.Limit, total),
	}, nil
}

// GetTransaction returns a transaction by ID.
func (s *transactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// UpdateTransaction applies the fields present in patch and returns the
// updated transaction.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (*models.Transaction, error) {
	if violations := validator.Check(&patch); violations != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidationFailed, violations)
	}

	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.Date != nil {
		date, err := validator.ParseDate(*patch.Date)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrValidationFailed, err)
		}
		updates["date"] = date
	}

	if len(updates) == 0 {
		return tx, nil
	}

	if err := s.db.WithContext(ctx).Model(tx).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTransaction(ctx, id)
}

// DeleteTransaction permanently removes a transaction.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
