package repositories

import (
	"database/sql"
	"errors"

	intconfig "busnexus/internal/config"
	"busnexus/internal/domain"
	"busnexus/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepo) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, first_name, last_name, email, phone, role, password_hash, created_at
		FROM users WHERE email = ?`, email).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.NotFoundError{Resource: "user"}
		}
		return u, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepo) GetByID(userID int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, first_name, last_name, email, phone, role, password_hash, created_at
		FROM users WHERE id = ?`, userID).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.NotFoundError{Resource: "user"}
		}
		return u, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepo) EmailExists(email string) (bool, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n); err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

func (r UserRepo) Insert(u models.User) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (first_name, last_name, email, phone, role, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.FirstName, u.LastName, u.Email, u.Phone, u.Role, u.PasswordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}
