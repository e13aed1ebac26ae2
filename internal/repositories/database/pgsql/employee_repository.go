package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for employee data.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeSelect = `
	SELECT e.employee_id, e.tenant_id, e.login_id, e.name, e.email, e.password_hash,
		e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
	FROM employees e
`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.EmployeeID, &e.TenantID, &e.LoginID, &e.Name, &e.Email, &e.PasswordHash,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
	}
	return &e, nil
}

func (r *PgxEmployeeRepository) loadStoreIDs(ctx context.Context, employeeID string) ([]string, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT store_id FROM employee_stores WHERE employee_id = $1 ORDER BY store_id;`, employeeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query store assignments", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan store assignment", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	e, err := scanEmployee(r.db(ctx).QueryRow(ctx, employeeSelect+` WHERE e.employee_id = $1;`, employeeID))
	if err != nil {
		return nil, err
	}
	if e.StoreIDs, err = r.loadStoreIDs(ctx, e.EmployeeID); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByLoginID(ctx context.Context, tenantID, loginID string) (*domain.Employee, error) {
	e, err := scanEmployee(r.db(ctx).QueryRow(ctx,
		employeeSelect+` WHERE e.tenant_id = $1 AND e.login_id = $2;`, tenantID, loginID))
	if err != nil {
		return nil, err
	}
	if e.StoreIDs, err = r.loadStoreIDs(ctx, e.EmployeeID); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PgxEmployeeRepository) collectEmployees(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}
	return employees, nil
}

func (r *PgxEmployeeRepository) ListEmployeesByTenant(ctx context.Context, tenantID string) ([]domain.Employee, error) {
	return r.collectEmployees(ctx, employeeSelect+` WHERE e.tenant_id = $1 ORDER BY e.name;`, tenantID)
}

func (r *PgxEmployeeRepository) ListEmployeesByStore(ctx context.Context, storeID string) ([]domain.Employee, error) {
	query := employeeSelect + `
		JOIN employee_stores es ON es.employee_id = e.employee_id
		WHERE es.store_id = $1 ORDER BY e.name;`
	return r.collectEmployees(ctx, query, storeID)
}

func (r *PgxEmployeeRepository) saveAssignments(ctx context.Context, tx pgx.Tx, employeeID string, storeIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM employee_stores WHERE employee_id = $1;`, employeeID); err != nil {
		return apperrors.NewAppError(500, "failed to reset store assignments", err)
	}
	for _, storeID := range storeIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO employee_stores (employee_id, store_id) VALUES ($1, $2);`,
			employeeID, storeID); err != nil {
			return apperrors.NewAppError(500, "failed to save store assignment", err)
		}
	}
	return nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO employees (
			employee_id, tenant_id, login_id, name, email, password_hash,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		employee.EmployeeID, employee.TenantID, employee.LoginID, employee.Name,
		employee.Email, employee.PasswordHash,
		employee.CreatedAt, employee.CreatedBy, employee.LastUpdatedAt, employee.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewFieldConflictError("login_id", employee.LoginID)
		}
		return apperrors.NewAppError(500, "failed to save employee "+employee.EmployeeID, err)
	}
	if err := r.saveAssignments(ctx, tx, employee.EmployeeID, employee.StoreIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE employees
		SET name = $2, email = $3, password_hash = $4, last_updated_at = $5, last_updated_by = $6
		WHERE employee_id = $1;
	`
	result, err := tx.Exec(ctx, query,
		employee.EmployeeID, employee.Name, employee.Email, employee.PasswordHash,
		employee.LastUpdatedAt, employee.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update employee "+employee.EmployeeID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	if err := r.saveAssignments(ctx, tx, employee.EmployeeID, employee.StoreIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxEmployeeRepository) DeleteEmployee(ctx context.Context, employeeID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM employee_stores WHERE employee_id = $1;`, employeeID); err != nil {
		return apperrors.NewAppError(500, "failed to delete store assignments", err)
	}
	result, err := tx.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1;`, employeeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete employee "+employeeID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}
