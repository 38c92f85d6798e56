package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single pooled connection also keeps
	// ':memory:' databases from splitting across connections.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog data if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure baseline users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Resorts (catalog)
CREATE TABLE IF NOT EXISTS resorts(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  location TEXT NOT NULL,
  destination TEXT NOT NULL,
  description TEXT NOT NULL,
  image_url TEXT NOT NULL,
  amenities_json TEXT NOT NULL DEFAULT '[]',
  rating TEXT NOT NULL DEFAULT '0',
  review_count INTEGER NOT NULL DEFAULT 0,
  price_min INTEGER NOT NULL CHECK (price_min >= 0),
  price_max INTEGER NOT NULL CHECK (price_max >= 0),
  available_rentals INTEGER NOT NULL DEFAULT 0,
  is_new_availability INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_resorts_destination ON resorts(LOWER(destination));
CREATE INDEX IF NOT EXISTS idx_resorts_name ON resorts(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_resorts_created_at ON resorts(created_at);

-- Reviews
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  resort_id TEXT NOT NULL REFERENCES resorts(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL REFERENCES users(id),
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reviews_resort ON reviews(resort_id);

-- Bookings
CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  resort_id TEXT NOT NULL REFERENCES resorts(id),
  user_id TEXT NOT NULL REFERENCES users(id),
  check_in TEXT NOT NULL,
  check_out TEXT NOT NULL,
  guests INTEGER NOT NULL CHECK (guests >= 1),
  total_price INTEGER NOT NULL CHECK (total_price >= 0),
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);

-- Owner listings
CREATE TABLE IF NOT EXISTS listings(
  id TEXT PRIMARY KEY,
  resort_id TEXT NOT NULL REFERENCES resorts(id),
  owner_id TEXT NOT NULL REFERENCES users(id),
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  price_per_night INTEGER NOT NULL CHECK (price_per_night >= 0),
  available_from TEXT NOT NULL,
  available_to TEXT NOT NULL,
  max_guests INTEGER NOT NULL CHECK (max_guests >= 1),
  is_active INTEGER NOT NULL DEFAULT 1,
  contract_document_url TEXT NOT NULL DEFAULT '',
  contract_verification_status TEXT NOT NULL DEFAULT 'pending',
  escrow_status TEXT NOT NULL DEFAULT 'none',
  escrow_account_id TEXT NOT NULL DEFAULT '',
  ownership_verified INTEGER NOT NULL DEFAULT 0,
  sale_price INTEGER NOT NULL DEFAULT 0,
  is_for_sale INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_listings_owner ON listings(owner_id);

-- Site settings
CREATE TABLE IF NOT EXISTS site_settings(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT 'general',
  description TEXT NOT NULL DEFAULT '',
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Property inquiries
CREATE TABLE IF NOT EXISTS property_inquiries(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  resort_id TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'new',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM resorts`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo resorts")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO resorts(id,name,location,destination,description,image_url,amenities_json,rating,review_count,price_min,price_max,available_rentals,is_new_availability) VALUES
	  ('rs-maui-001','Grand Wailea Maui','Wailea, Hawaii','Hawaii','Sprawling oceanfront timeshare resort on Wailea Beach.','https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?w=800','["Beachfront","Spa","Pool","WiFi"]','4.7',42,400,900,4,1),
	  ('rs-orlando-001','Lake Buena Vista Villas','Orlando, Florida','Florida','Family villas minutes from the theme parks.','https://images.unsplash.com/photo-1566073771259-6a8506099945?w=800','["Pool","Parking","WiFi","Kitchen"]','4.4',61,150,350,9,0),
	  ('rs-aspen-001','Snowmass Creek Lodge','Aspen, Colorado','Colorado','Ski-in ski-out lodge with hot tubs and fireplaces.','https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=800','["Ski Access","Hot Tub","Fireplace","WiFi"]','4.6',28,300,700,2,0)`)

	return tx.Commit()
}

// seedUsers ensures one ADMIN and one USER exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Username, Email, First, Last, Role, Hash string
	}
	mk := func(id, username, email, first, last, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Username: username, Email: email, First: first, Last: last, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin", "admin@resortshare.test", "Site", "Admin", "ADMIN", "Passw0rd!"),
		mk("u-demo", "demo", "demo@resortshare.test", "Demo", "Owner", "USER", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,username,email,password_hash,first_name,last_name,role)
			VALUES(?,?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Username, x.Email, x.Hash, x.First, x.Last, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
