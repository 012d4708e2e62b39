package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var staffColumns = []string{"id", "display_name", "role", "active"}

// bookableRoles роли, на которые можно записаться
var bookableRoles = []domain.StaffRole{domain.RoleStaff, domain.RoleAdmin, domain.RoleRoot}

// Repository справочник сотрудников из таблицы staff
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBookableStaff активные сотрудники по возрастанию id
func (r *Repository) ListBookableStaff(ctx context.Context) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"role": bookableRoles}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookableStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookableStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	roster := make([]*domain.Staff, 0)
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.DisplayName, &s.Role, &s.Active); err != nil {
			return nil, fmt.Errorf("%w: ListBookableStaff - scan row: %v", ErrScanRow, err)
		}
		roster = append(roster, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookableStaff - rows error: %v", ErrScanRow, err)
	}

	return roster, nil
}

// GetStaff получает сотрудника по ID. Неактивный сотрудник считается отсутствующим.
func (r *Repository) GetStaff(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.DisplayName, &s.Role, &s.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan staff: %v", ErrScanRow, err)
	}

	if !s.IsBookable() {
		return nil, ErrStaffNotFound
	}

	return &s, nil
}
