package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
)

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, username, hashed_password, first_name, last_name, bio, profile_picture,
       is_active, total_score, total_cards_reviewed, total_cards_learned, created_at, updated_at, last_login`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.HashedPassword, &u.FirstName, &u.LastName,
		&u.Bio, &u.ProfilePicture, &u.IsActive, &u.TotalScore, &u.TotalCardsReviewed,
		&u.TotalCardsLearned, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: username=%s", u.Username)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (email, username, hashed_password, first_name, last_name, is_active)
VALUES (?, ?, ?, ?, ?, ?)
`, u.Email, u.Username, u.HashedPassword, u.FirstName, u.LastName, u.IsActive)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, upd models.UserUpdate) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating user profile: id=%d", id)

	query := sqlBuilder.Update("users").Where("id = ?", id).Set("updated_at", time.Now().UTC())
	if upd.FirstName != nil {
		query = query.Set("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		query = query.Set("last_name", *upd.LastName)
	}
	if upd.Bio != nil {
		query = query.Set("bio", *upd.Bio)
	}
	if upd.ProfilePicture != nil {
		query = query.Set("profile_picture", *upd.ProfilePicture)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build update query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		log.Error("failed to update user: %v", err)
		return err
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64, t time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, t, id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("user_repo").Error("failed to update last login: %v", err)
	}
	return err
}

func (r *userRepository) ApplyScore(ctx context.Context, id int64, score int, isCorrect bool) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("applying score to user totals: id=%d, score=%d, correct=%t", id, score, isCorrect)

	learned := 0
	if isCorrect {
		learned = 1
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE users
SET total_score = total_score + ?,
    total_cards_reviewed = total_cards_reviewed + 1,
    total_cards_learned = total_cards_learned + ?
WHERE id = ?
`, score, learned, id)
	if err != nil {
		log.Error("failed to update user totals: %v", err)
	}
	return err
}
