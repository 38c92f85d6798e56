package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"resortshare/internal/domain"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) ByResort(resortID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT id, resort_id, user_id, rating, title, content, COALESCE(created_at,'') AS created_at
	  FROM reviews WHERE resort_id=? ORDER BY created_at DESC`, resortID)
	return out, err
}

// Create inserts the review and bumps the resort's review count in the same
// transaction.
func (r *ReviewRepo) Create(in domain.Review) (domain.Review, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Review{}, err
	}
	defer func() { _ = tx.Rollback() }()

	in.ID = uuid.NewString()
	if _, err := tx.Exec(`
	  INSERT INTO reviews(id,resort_id,user_id,rating,title,content)
	  VALUES(?,?,?,?,?,?)`, in.ID, in.ResortID, in.UserID, in.Rating, in.Title, in.Content); err != nil {
		return domain.Review{}, err
	}
	if _, err := tx.Exec(`UPDATE resorts SET review_count = review_count + 1 WHERE id=?`, in.ResortID); err != nil {
		return domain.Review{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Review{}, err
	}

	var out domain.Review
	err = r.db.Get(&out, `
	  SELECT id, resort_id, user_id, rating, title, content, COALESCE(created_at,'') AS created_at
	  FROM reviews WHERE id=?`, in.ID)
	return out, err
}
