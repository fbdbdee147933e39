package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
	"github.com/shahmir3899/fee_ledger_app/internal/utils/mapping"
	"github.com/shahmir3899/fee_ledger_app/internal/utils/pagination"
)

type PgxFeePaymentRepository struct {
	BaseRepository
}

// newPgxFeePaymentRepository creates a new repository for ledger records.
func newPgxFeePaymentRepository(pool *pgxpool.Pool) portsrepo.FeePaymentRepositoryFacade {
	return &PgxFeePaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFeePaymentRepository implements portsrepo.FeePaymentRepositoryFacade
var _ portsrepo.FeePaymentRepositoryFacade = (*PgxFeePaymentRepository)(nil)

const feePaymentSelectColumns = `
	payment_id, school_id, student_id, class_id, fee_type, period, year,
	amount_due, amount_paid, previous_balance, method, account_id, receipt_no,
	payment_date, notes, created_at, created_by, last_updated_at, last_updated_by
`

func scanFeePaymentRow(row pgx.Row) (models.FeePayment, error) {
	var m models.FeePayment
	err := row.Scan(
		&m.PaymentID,
		&m.SchoolID,
		&m.StudentID,
		&m.ClassID,
		&m.FeeType,
		&m.Period,
		&m.Year,
		&m.AmountDue,
		&m.AmountPaid,
		&m.PreviousBalance,
		&m.Method,
		&m.AccountID,
		&m.ReceiptNo,
		&m.PaymentDate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// getPayments runs the shared SELECT with the given filter clause and collects rows.
func (r *PgxFeePaymentRepository) getPayments(ctx context.Context, filterQuery string, args ...any) ([]domain.FeePayment, error) {
	query := `SELECT ` + feePaymentSelectColumns + ` FROM fee_payments ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fee payments", err)
	}
	defer rows.Close()

	modelPayments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FeePayment, error) {
		return scanFeePaymentRow(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.FeePayment{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect fee payment rows", err)
	}

	return mapping.ToDomainFeePayments(modelPayments), nil
}

func (r *PgxFeePaymentRepository) FindPaymentByID(ctx context.Context, schoolID, paymentID string) (*domain.FeePayment, error) {
	payments, err := r.getPayments(ctx, `WHERE school_id = $1 AND payment_id = $2`, schoolID, paymentID)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &payments[0], nil
}

// FindPaymentByKey retrieves the record for the unique
// (student, feeType, period, year) key.
func (r *PgxFeePaymentRepository) FindPaymentByKey(ctx context.Context, schoolID, studentID string, feeType domain.FeeType, period, year int) (*domain.FeePayment, error) {
	filter := `WHERE school_id = $1 AND student_id = $2 AND fee_type = $3 AND period = $4 AND year = $5`
	payments, err := r.getPayments(ctx, filter, schoolID, studentID, feeType, period, year)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &payments[0], nil
}

// MapPaymentsByStudent retrieves all records for (feeType, period, year) keyed
// by student ID. Generation uses the map for both the existing-record skip and
// the prior-month carry-forward lookup.
func (r *PgxFeePaymentRepository) MapPaymentsByStudent(ctx context.Context, schoolID string, feeType domain.FeeType, period, year int) (map[string]domain.FeePayment, error) {
	filter := `WHERE school_id = $1 AND fee_type = $2 AND period = $3 AND year = $4`
	payments, err := r.getPayments(ctx, filter, schoolID, feeType, period, year)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[string]domain.FeePayment, len(payments))
	for _, p := range payments {
		byStudent[p.StudentID] = p
	}
	return byStudent, nil
}

// ListPayments retrieves ledger records matching the filter using token-based
// pagination ordered by (created_at, payment_id) descending.
func (r *PgxFeePaymentRepository) ListPayments(ctx context.Context, schoolID string, filter portsrepo.ListPaymentsFilter, limit int, nextToken *string) ([]domain.FeePayment, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	whereClause := `WHERE school_id = $1`
	args := []any{schoolID}

	addFilter := func(column string, value any) {
		args = append(args, value)
		whereClause += ` AND ` + column + ` = $` + strconv.Itoa(len(args))
	}

	if filter.FeeType != nil {
		addFilter("fee_type", *filter.FeeType)
	}
	if filter.Period != nil {
		addFilter("period", *filter.Period)
	}
	if filter.Year != nil {
		addFilter("year", *filter.Year)
	}
	if filter.ClassID != nil {
		addFilter("class_id", *filter.ClassID)
	}
	if filter.StudentID != nil {
		addFilter("student_id", *filter.StudentID)
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastPaymentID, decodeErr := pagination.DecodeCursorToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastPaymentID)
		whereClause += ` AND (created_at, payment_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	filterQuery := whereClause + ` ORDER BY created_at DESC, payment_id DESC LIMIT $` + strconv.Itoa(len(args))

	payments, err := r.getPayments(ctx, filterQuery, args...)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(payments) > limit {
		payments = payments[:limit]
		last := payments[len(payments)-1]
		token := pagination.EncodeCursorToken(last.CreatedAt, last.PaymentID)
		newNextToken = &token
	}

	return payments, newNextToken, nil
}

// ListOutstanding retrieves records with amount_paid < amount_due for a
// (feeType, period, year) key, optionally restricted to one class.
func (r *PgxFeePaymentRepository) ListOutstanding(ctx context.Context, schoolID string, feeType domain.FeeType, period, year int, classID *string) ([]domain.FeePayment, error) {
	filter := `
		WHERE school_id = $1 AND fee_type = $2 AND period = $3 AND year = $4
		  AND amount_paid < amount_due`
	args := []any{schoolID, feeType, period, year}

	if classID != nil {
		args = append(args, *classID)
		filter += ` AND class_id = $` + strconv.Itoa(len(args))
	}
	filter += ` ORDER BY (amount_due - amount_paid) DESC`

	return r.getPayments(ctx, filter, args...)
}

const insertFeePaymentQuery = `
	INSERT INTO fee_payments (
		payment_id, school_id, student_id, class_id, fee_type, period, year,
		amount_due, amount_paid, previous_balance, method, account_id, receipt_no,
		payment_date, notes, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
`

func feePaymentInsertArgs(m models.FeePayment) []any {
	return []any{
		m.PaymentID,
		m.SchoolID,
		m.StudentID,
		m.ClassID,
		m.FeeType,
		m.Period,
		m.Year,
		m.AmountDue,
		m.AmountPaid,
		m.PreviousBalance,
		m.Method,
		m.AccountID,
		m.ReceiptNo,
		m.PaymentDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func (r *PgxFeePaymentRepository) SavePayment(ctx context.Context, payment domain.FeePayment) error {
	m := mapping.ToModelFeePayment(payment)
	_, err := r.Pool.Exec(ctx, insertFeePaymentQuery+`;`, feePaymentInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save fee payment "+m.PaymentID, err)
	}
	return nil
}

// CreatePaymentsBatch inserts generated records within one transaction. Rows
// whose unique (school, student, fee_type, period, year) key already exists
// are skipped by ON CONFLICT DO NOTHING; the constraint is the safety net
// against concurrent generation runs.
func (r *PgxFeePaymentRepository) CreatePaymentsBatch(ctx context.Context, payments []domain.FeePayment) (int, int, error) {
	if len(payments) == 0 {
		return 0, 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer r.Rollback(ctx, tx)

	batchQuery := insertFeePaymentQuery + `
	ON CONFLICT (school_id, student_id, fee_type, period, year) DO NOTHING;`

	batch := &pgx.Batch{}
	for _, payment := range payments {
		m := mapping.ToModelFeePayment(payment)
		batch.Queue(batchQuery, feePaymentInsertArgs(m)...)
	}

	br := tx.SendBatch(ctx, batch)

	created := 0
	skipped := 0
	for range payments {
		tag, execErr := br.Exec()
		if execErr != nil {
			br.Close()
			return 0, 0, apperrors.NewAppError(500, "failed to execute fee payment batch insert", execErr)
		}
		if tag.RowsAffected() > 0 {
			created++
		} else {
			skipped++
		}
	}
	if err := br.Close(); err != nil {
		return 0, 0, apperrors.NewAppError(500, "failed to close fee payment batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, 0, err
	}
	return created, skipped, nil
}

func (r *PgxFeePaymentRepository) UpdatePayment(ctx context.Context, payment domain.FeePayment) error {
	m := mapping.ToModelFeePayment(payment)
	query := `
		UPDATE fee_payments
		SET amount_paid = $1, method = $2, account_id = $3, receipt_no = $4,
		    payment_date = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE school_id = $9 AND payment_id = $10;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.AmountPaid,
		m.Method,
		m.AccountID,
		m.ReceiptNo,
		m.PaymentDate,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SchoolID,
		m.PaymentID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fee payment "+m.PaymentID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFeePaymentRepository) DeletePayment(ctx context.Context, schoolID, paymentID string) error {
	query := `DELETE FROM fee_payments WHERE school_id = $1 AND payment_id = $2;`
	result, err := r.Pool.Exec(ctx, query, schoolID, paymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete fee payment "+paymentID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
