package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"resortshare/internal/domain"
)

type InquiryRepo struct{ db *sqlx.DB }

func NewInquiryRepo(db *sqlx.DB) *InquiryRepo { return &InquiryRepo{db: db} }

const inquiryCols = `id, name, email, phone, resort_id, message, status, COALESCE(created_at,'') AS created_at`

func (r *InquiryRepo) List() ([]domain.PropertyInquiry, error) {
	var out []domain.PropertyInquiry
	err := r.db.Select(&out, `SELECT `+inquiryCols+` FROM property_inquiries ORDER BY created_at DESC`)
	return out, err
}

func (r *InquiryRepo) Create(in domain.PropertyInquiry) (domain.PropertyInquiry, error) {
	in.ID = uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO property_inquiries(id,name,email,phone,resort_id,message,status)
	  VALUES(?,?,?,?,?,?,'new')`,
		in.ID, in.Name, in.Email, in.Phone, in.ResortID, in.Message)
	if err != nil {
		return domain.PropertyInquiry{}, err
	}
	var out domain.PropertyInquiry
	err = r.db.Get(&out, `SELECT `+inquiryCols+` FROM property_inquiries WHERE id=?`, in.ID)
	return out, err
}

func (r *InquiryRepo) UpdateStatus(id, status string) (domain.PropertyInquiry, error) {
	res, err := r.db.Exec(`UPDATE property_inquiries SET status=? WHERE id=?`, status, id)
	if err != nil {
		return domain.PropertyInquiry{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.PropertyInquiry{}, ErrNotFound
	}
	var out domain.PropertyInquiry
	err = r.db.Get(&out, `SELECT `+inquiryCols+` FROM property_inquiries WHERE id=?`, id)
	return out, err
}
