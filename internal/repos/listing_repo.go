package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"resortshare/internal/domain"
)

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingCols = `id, resort_id, owner_id, title, description, price_per_night,
  available_from, available_to, max_guests, is_active,
  contract_document_url, contract_verification_status,
  escrow_status, escrow_account_id, ownership_verified,
  sale_price, is_for_sale, COALESCE(created_at,'') AS created_at`

func (r *ListingRepo) ByOwner(ownerID string) ([]domain.Listing, error) {
	var out []domain.Listing
	err := r.db.Select(&out, `SELECT `+listingCols+` FROM listings WHERE owner_id=? ORDER BY created_at DESC`, ownerID)
	return out, err
}

func (r *ListingRepo) Get(id string) (domain.Listing, error) {
	var out domain.Listing
	err := r.db.Get(&out, `SELECT `+listingCols+` FROM listings WHERE id=?`, id)
	return out, err
}

func (r *ListingRepo) Create(in domain.Listing) (domain.Listing, error) {
	in.ID = uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO listings(id,resort_id,owner_id,title,description,price_per_night,
	    available_from,available_to,max_guests,sale_price,is_for_sale)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		in.ID, in.ResortID, in.OwnerID, in.Title, in.Description, in.PricePerNight,
		in.AvailableFrom, in.AvailableTo, in.MaxGuests, in.SalePrice, boolToInt(in.IsForSale))
	if err != nil {
		return domain.Listing{}, err
	}
	return r.Get(in.ID)
}

// AttachContract records the uploaded contract document and moves the listing
// into review.
func (r *ListingRepo) AttachContract(id, contractURL string) (domain.Listing, error) {
	res, err := r.db.Exec(`
	  UPDATE listings SET contract_document_url=?, contract_verification_status='under_review'
	  WHERE id=?`, contractURL, id)
	if err != nil {
		return domain.Listing{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Listing{}, ErrNotFound
	}
	return r.Get(id)
}

func (r *ListingRepo) InitiateEscrow(id, escrowAccountID string, salePrice int) (domain.Listing, error) {
	res, err := r.db.Exec(`
	  UPDATE listings SET escrow_status='initiated', escrow_account_id=?, sale_price=?, is_for_sale=1
	  WHERE id=?`, escrowAccountID, salePrice, id)
	if err != nil {
		return domain.Listing{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Listing{}, ErrNotFound
	}
	return r.Get(id)
}
