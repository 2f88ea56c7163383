package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

const userColumns = `u.id, u.email, u.password_hash, u.name, u.role, u.phone, u.city, u.state, u.avatar_url, u.created_at, u.updated_at`

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner, extra ...interface{}) (*user.User, error) {
	var u user.User
	var phone, city, state, avatar sql.NullString
	var createdAt, updatedAt int64

	dest := []interface{}{
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&phone, &city, &state, &avatar, &createdAt, &updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	u.Phone = phone.String
	u.City = city.String
	u.State = state.String
	u.AvatarURL = avatar.String
	u.CreatedAt = fromUnix(createdAt)
	u.UpdatedAt = fromUnix(updatedAt)
	return &u, nil
}

// Create creates a new user and its empty role profile
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	ts := now()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = fromUnix(ts.Unix())
	u.UpdatedAt = u.CreatedAt

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, email, password_hash, name, role, phone, city, state, avatar_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			u.ID, u.Email, u.PasswordHash, u.Name, string(u.Role),
			nullString(u.Phone), nullString(u.City), nullString(u.State), nullString(u.AvatarURL),
			ts.Unix(), ts.Unix(),
		)
		if err != nil {
			return err
		}

		switch u.Role {
		case user.RolePrestador:
			_, err = tx.ExecContext(ctx, `INSERT INTO worker_profiles (user_id) VALUES ($1)`, u.ID)
		case user.RoleEmpregador:
			_, err = tx.ExecContext(ctx, `INSERT INTO employer_profiles (user_id) VALUES ($1)`, u.ID)
		}
		return err
	})
	if isUniqueViolation(err) {
		return errors.Conflict("Email already registered")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return u, nil
}

// Update updates the contact fields of a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	ts := now()
	u.UpdatedAt = fromUnix(ts.Unix())

	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, phone = $2, city = $3, state = $4, avatar_url = $5, updated_at = $6
		WHERE id = $7
	`,
		u.Name, nullString(u.Phone), nullString(u.City), nullString(u.State), nullString(u.AvatarURL),
		ts.Unix(), u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}
	return expectOne(result, "User")
}

// GetWorkerProfile retrieves the worker profile of a user
func (r *UserRepository) GetWorkerProfile(ctx context.Context, userID string) (*user.WorkerProfile, error) {
	var p user.WorkerProfile
	var categoryID sql.NullString
	var price sql.NullInt64

	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, category_id, description, average_price_cents
		FROM worker_profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &categoryID, &p.Description, &price)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Worker profile")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get worker profile", err)
	}

	p.CategoryID = stringPtr(categoryID)
	p.AveragePriceCents = intPtr(price)
	return &p, nil
}

// UpdateWorkerProfile updates a worker profile
func (r *UserRepository) UpdateWorkerProfile(ctx context.Context, p *user.WorkerProfile) error {
	var categoryID sql.NullString
	if p.CategoryID != nil {
		categoryID = nullString(*p.CategoryID)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE worker_profiles
		SET category_id = $1, description = $2, average_price_cents = $3
		WHERE user_id = $4
	`, categoryID, p.Description, nullInt(p.AveragePriceCents), p.UserID)
	if err != nil {
		return errors.DatabaseError("Failed to update worker profile", err)
	}
	return expectOne(result, "Worker profile")
}

// GetEmployerProfile retrieves the employer profile of a user
func (r *UserRepository) GetEmployerProfile(ctx context.Context, userID string) (*user.EmployerProfile, error) {
	var p user.EmployerProfile
	var budget sql.NullInt64

	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, company_name, advertised_service, budget_cents
		FROM employer_profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.CompanyName, &p.AdvertisedService, &budget)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Employer profile")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get employer profile", err)
	}

	p.BudgetCents = intPtr(budget)
	return &p, nil
}

// UpdateEmployerProfile updates an employer profile
func (r *UserRepository) UpdateEmployerProfile(ctx context.Context, p *user.EmployerProfile) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE employer_profiles
		SET company_name = $1, advertised_service = $2, budget_cents = $3
		WHERE user_id = $4
	`, p.CompanyName, p.AdvertisedService, nullInt(p.BudgetCents), p.UserID)
	if err != nil {
		return errors.DatabaseError("Failed to update employer profile", err)
	}
	return expectOne(result, "Employer profile")
}

// Search returns users of one role matching the filter
func (r *UserRepository) Search(ctx context.Context, f user.SearchFilter) ([]*user.SearchRow, error) {
	var w whereBuilder
	var query string

	w.add("u.role = " + w.arg(string(f.Role)))

	if f.Role == user.RoleEmpregador {
		query = `SELECT ` + userColumns + `, e.company_name, e.advertised_service, e.budget_cents
			FROM users u JOIN employer_profiles e ON e.user_id = u.id`
		if f.Query != "" {
			p := w.arg(likePattern(f.Query))
			w.add(likeAny(p, "u.name", "e.advertised_service", "e.company_name"))
		}
	} else {
		query = `SELECT ` + userColumns + `, w.category_id, w.description, w.average_price_cents
			FROM users u JOIN worker_profiles w ON w.user_id = u.id`
		if f.CategoryID != "" {
			w.add("w.category_id = " + w.arg(f.CategoryID))
		}
		if f.Query != "" {
			p := w.arg(likePattern(f.Query))
			w.add(likeAny(p, "u.name", "w.description"))
		}
	}

	if f.City != "" {
		w.add("LOWER(u.city) = " + w.arg(strings.ToLower(strings.TrimSpace(f.City))))
	}
	if f.State != "" {
		w.add("UPPER(u.state) = " + w.arg(strings.ToUpper(strings.TrimSpace(f.State))))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += w.sql() + " ORDER BY u.created_at DESC LIMIT " + w.arg(limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to search users", err)
	}
	defer rows.Close()

	var results []*user.SearchRow
	for rows.Next() {
		row, err := scanSearchRow(rows, f.Role)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan search result", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate search results", err)
	}
	return results, nil
}

func scanSearchRow(rows *sql.Rows, role user.Role) (*user.SearchRow, error) {
	if role == user.RoleEmpregador {
		var e user.EmployerProfile
		var budget sql.NullInt64
		u, err := scanUser(rows, &e.CompanyName, &e.AdvertisedService, &budget)
		if err != nil {
			return nil, err
		}
		e.UserID = u.ID
		e.BudgetCents = intPtr(budget)
		return &user.SearchRow{
			Profile:    user.Profile{User: u, Employer: &e},
			PriceCents: e.BudgetCents,
		}, nil
	}

	var wp user.WorkerProfile
	var categoryID sql.NullString
	var price sql.NullInt64
	u, err := scanUser(rows, &categoryID, &wp.Description, &price)
	if err != nil {
		return nil, err
	}
	wp.UserID = u.ID
	wp.CategoryID = stringPtr(categoryID)
	wp.AveragePriceCents = intPtr(price)
	return &user.SearchRow{
		Profile:    user.Profile{User: u, Worker: &wp},
		PriceCents: wp.AveragePriceCents,
	}, nil
}

func expectOne(result sql.Result, resource string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to read affected rows", err)
	}
	if n == 0 {
		return errors.NotFound(resource)
	}
	return nil
}
