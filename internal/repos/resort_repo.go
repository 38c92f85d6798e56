package repos

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"resortshare/internal/domain"
)

type ResortRepo struct{ db *sqlx.DB }

func NewResortRepo(db *sqlx.DB) *ResortRepo { return &ResortRepo{db: db} }

const resortCols = `id, name, location, destination, description, image_url, amenities_json,
  rating, review_count, price_min, price_max, available_rentals, is_new_availability,
  COALESCE(created_at,'') AS created_at`

func hydrate(rs []domain.Resort) []domain.Resort {
	for i := range rs {
		hydrateOne(&rs[i])
	}
	return rs
}

func hydrateOne(r *domain.Resort) {
	r.Amenities = []string{}
	if r.AmenitiesJSON != "" {
		_ = json.Unmarshal([]byte(r.AmenitiesJSON), &r.Amenities)
	}
}

func amenitiesJSON(a []string) string {
	if a == nil {
		a = []string{}
	}
	b, _ := json.Marshal(a)
	return string(b)
}

func (r *ResortRepo) List() ([]domain.Resort, error) {
	var out []domain.Resort
	err := r.db.Select(&out, `SELECT `+resortCols+` FROM resorts ORDER BY created_at DESC, name`)
	return hydrate(out), err
}

func (r *ResortRepo) Get(id string) (domain.Resort, error) {
	var res domain.Resort
	err := r.db.Get(&res, `SELECT `+resortCols+` FROM resorts WHERE id = ?`, id)
	hydrateOne(&res)
	return res, err
}

func (r *ResortRepo) ByDestination(destination string) ([]domain.Resort, error) {
	var out []domain.Resort
	err := r.db.Select(&out, `
	  SELECT `+resortCols+` FROM resorts
	  WHERE LOWER(destination) LIKE '%' || LOWER(?) || '%'
	  ORDER BY name`, destination)
	return hydrate(out), err
}

func (r *ResortRepo) NewAvailability() ([]domain.Resort, error) {
	var out []domain.Resort
	err := r.db.Select(&out, `
	  SELECT `+resortCols+` FROM resorts
	  WHERE is_new_availability = 1
	  ORDER BY created_at DESC`)
	return hydrate(out), err
}

func (r *ResortRepo) Top(limit int) ([]domain.Resort, error) {
	if limit <= 0 {
		limit = 6
	}
	var out []domain.Resort
	err := r.db.Select(&out, `
	  SELECT `+resortCols+` FROM resorts
	  ORDER BY CAST(rating AS REAL) DESC, review_count DESC
	  LIMIT ?`, limit)
	return hydrate(out), err
}

func (r *ResortRepo) Search(q string) ([]domain.Resort, error) {
	var out []domain.Resort
	like := "%" + q + "%"
	err := r.db.Select(&out, `
	  SELECT `+resortCols+` FROM resorts
	  WHERE LOWER(name) LIKE LOWER(?)
	     OR LOWER(location) LIKE LOWER(?)
	     OR LOWER(destination) LIKE LOWER(?)
	     OR LOWER(description) LIKE LOWER(?)
	  ORDER BY name`, like, like, like, like)
	return hydrate(out), err
}

func (r *ResortRepo) Create(in domain.InsertResort) (domain.Resort, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO resorts(id,name,location,destination,description,image_url,amenities_json,
	    rating,price_min,price_max,available_rentals,is_new_availability)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, in.Name, in.Location, in.Destination, in.Description, in.ImageURL,
		amenitiesJSON(in.Amenities), in.Rating, in.PriceMin, in.PriceMax,
		in.AvailableRentals, boolToInt(in.IsNewAvailability))
	if err != nil {
		return domain.Resort{}, err
	}
	return r.Get(id)
}

// CreateBulk inserts the whole batch in one transaction and returns the
// created rows. This is the persist target for inventory syncs.
func (r *ResortRepo) CreateBulk(batch []domain.InsertResort) ([]domain.Resort, error) {
	if len(batch) == 0 {
		return []domain.Resort{}, nil
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	ids := make([]string, 0, len(batch))
	for _, in := range batch {
		id := uuid.NewString()
		if _, err := tx.Exec(`
		  INSERT INTO resorts(id,name,location,destination,description,image_url,amenities_json,
		    rating,price_min,price_max,available_rentals,is_new_availability)
		  VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
			id, in.Name, in.Location, in.Destination, in.Description, in.ImageURL,
			amenitiesJSON(in.Amenities), in.Rating, in.PriceMin, in.PriceMax,
			in.AvailableRentals, boolToInt(in.IsNewAvailability)); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	query, args, err := sqlx.In(`SELECT `+resortCols+` FROM resorts WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var out []domain.Resort
	if err := r.db.Select(&out, query, args...); err != nil {
		return nil, err
	}
	return hydrate(out), nil
}

func (r *ResortRepo) Update(id string, in domain.InsertResort) (domain.Resort, error) {
	res, err := r.db.Exec(`
	  UPDATE resorts SET name=?, location=?, destination=?, description=?, image_url=?,
	    amenities_json=?, rating=?, price_min=?, price_max=?, available_rentals=?, is_new_availability=?
	  WHERE id=?`,
		in.Name, in.Location, in.Destination, in.Description, in.ImageURL,
		amenitiesJSON(in.Amenities), in.Rating, in.PriceMin, in.PriceMax,
		in.AvailableRentals, boolToInt(in.IsNewAvailability), id)
	if err != nil {
		return domain.Resort{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Resort{}, ErrNotFound
	}
	return r.Get(id)
}

func (r *ResortRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM resorts WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
