package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	// pgExclusionViolation нарушено ограничение bookings_no_overlap
	pgExclusionViolation = "23P01"
	// pgSerializationFailure конкурентная сериализуемая транзакция победила
	pgSerializationFailure = "40001"
)

var bookingColumns = []string{
	"id",
	"service_id",
	"staff_id",
	"customer_name",
	"phone_number",
	"start_time",
	"duration_minutes",
	"status",
	"seen",
	"suggested_time",
	"admin_notes",
	"service_title",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Пересечение с другим неотклоненным бронированием сотрудника отсекается
// ограничением-исключением в БД и возвращается как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"staff_id",
			"customer_name",
			"phone_number",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"seen",
			"suggested_time",
			"admin_notes",
			"service_title",
		).
		Values(
			booking.ServiceID,
			booking.StaffID,
			booking.CustomerName,
			booking.PhoneNumber,
			booking.StartTime,
			booking.EndTime(),
			booking.DurationMinutes,
			booking.Status,
			booking.Seen,
			booking.SuggestedTime,
			booking.AdminNotes,
			booking.ServiceTitle,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, classifyError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, classifyError("GetByID - scan booking", err)
	}

	return booking, nil
}

// FindForStaffOnDate бронирования сотрудника, пересекающие календарный день date.
// date - полночь дня в часовом поясе салона.
func (r *Repository) FindForStaffOnDate(
	ctx context.Context,
	staffID int64,
	date time.Time,
	excludeStatuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	return r.FindOnDate(ctx, []int64{staffID}, date, excludeStatuses)
}

// FindOnDate бронирования нескольких сотрудников за день одним запросом.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) FindOnDate(
	ctx context.Context,
	staffIDs []int64,
	date time.Time,
	excludeStatuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Lt{"start_time": dayEnd}).
		Where(squirrel.Gt{"end_time": dayStart}).
		OrderBy("staff_id ASC", "start_time ASC")

	if len(excludeStatuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": excludeStatuses})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError("FindOnDate - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// List бронирования по фильтру, сначала новые
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC", "id DESC")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus сохраняет результат смены статуса.
// Если update.StartTime задан, запись переносится и end_time пересчитывается
// из сохраненной длительности.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, update domain.StatusUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", update.Status).
		Set("seen", update.Seen).
		Set("suggested_time", update.SuggestedTime).
		Set("admin_notes", update.AdminNotes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.StartTime != nil {
		updateBuilder = updateBuilder.
			Set("start_time", *update.StartTime).
			Set("end_time", squirrel.Expr("?::timestamptz + duration_minutes * INTERVAL '1 minute'", *update.StartTime))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyError("UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// IsConflict проверяет, что ошибка Postgres означает занятый интервал
func IsConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgExclusionViolation || pqErr.Code == pgSerializationFailure
}

// classifyError отделяет конфликт интервалов от прочих ошибок выполнения
func classifyError(op string, err error) error {
	if IsConflict(err) {
		return fmt.Errorf("%w: %s: %v", ErrSlotConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.StaffID,
		&booking.CustomerName,
		&booking.PhoneNumber,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.Seen,
		&booking.SuggestedTime,
		&booking.AdminNotes,
		&booking.ServiceTitle,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, classifyError("scanBookings - rows error", err)
	}

	return bookings, nil
}
