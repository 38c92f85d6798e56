package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"resortshare/internal/domain"
)

type BookingRepo struct{ db *sqlx.DB }

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, resort_id, user_id, check_in, check_out, guests, total_price, status, COALESCE(created_at,'') AS created_at`

func (r *BookingRepo) ByUser(userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.Select(&out, `SELECT `+bookingCols+` FROM bookings WHERE user_id=? ORDER BY created_at DESC`, userID)
	return out, err
}

func (r *BookingRepo) Create(in domain.Booking) (domain.Booking, error) {
	in.ID = uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO bookings(id,resort_id,user_id,check_in,check_out,guests,total_price,status)
	  VALUES(?,?,?,?,?,?,?,'pending')`,
		in.ID, in.ResortID, in.UserID, in.CheckIn, in.CheckOut, in.Guests, in.TotalPrice)
	if err != nil {
		return domain.Booking{}, err
	}
	var out domain.Booking
	err = r.db.Get(&out, `SELECT `+bookingCols+` FROM bookings WHERE id=?`, in.ID)
	return out, err
}
