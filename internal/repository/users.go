package repository

import (
	"context"
	"time"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
)

func (r *Repository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (email, nama, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{user.Email, user.Nama, user.PasswordHash, user.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT email, nama, password, role
		FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Email, &user.Nama, &user.PasswordHash, &user.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
		SELECT id, nama, password, role
		FROM users WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		Email: email,
	}

	dst := []any{&user.ID, &user.Nama, &user.PasswordHash, &user.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

// GetAllUsersExcept mengembalikan semua user kecuali user dengan id yang
// diberikan (pemanggilnya sendiri).
func (r *Repository) GetAllUsersExcept(id int64) ([]*domain.User, error) {
	query := `
		SELECT id, email, nama, password, role
		FROM users WHERE id <> $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Email, &user.Nama, &user.PasswordHash, &user.Role}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) CountUsers() (int64, error) {
	query := `
		SELECT count(*) FROM users
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) DeleteUser(id int64) (int64, error) {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) UpdateUserNama(id int64, nama string) (int64, error) {
	query := `
		UPDATE users SET nama = $1 WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, nama, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) UpdateUserPassword(id int64, passwordHash string) (int64, error) {
	query := `
		UPDATE users SET password = $1 WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// PromoteToSuperadmin menurunkan caller menjadi admin dan menaikkan target
// menjadi superadmin dalam satu transaksi, supaya sistem tidak pernah berada
// dalam keadaan dua superadmin atau tanpa superadmin.
func (r *Repository) PromoteToSuperadmin(targetID int64, callerID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE users SET role = $1 WHERE id = $2`

	if _, err := tx.ExecContext(ctx, query, domain.RoleAdmin, callerID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, domain.RoleSuperadmin, targetID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
