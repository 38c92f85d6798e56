package domain

// Resort is one catalog entry. Amenities are stored as a JSON array in
// amenities_json; repos marshal on write and unmarshal on read.
type Resort struct {
	ID                string   `db:"id" json:"id"`
	Name              string   `db:"name" json:"name"`
	Location          string   `db:"location" json:"location"`
	Destination       string   `db:"destination" json:"destination"`
	Description       string   `db:"description" json:"description"`
	ImageURL          string   `db:"image_url" json:"imageUrl"`
	AmenitiesJSON     string   `db:"amenities_json" json:"-"`
	Amenities         []string `db:"-" json:"amenities"`
	Rating            string   `db:"rating" json:"rating"`
	ReviewCount       int      `db:"review_count" json:"reviewCount"`
	PriceMin          int      `db:"price_min" json:"priceMin"`
	PriceMax          int      `db:"price_max" json:"priceMax"`
	AvailableRentals  int      `db:"available_rentals" json:"availableRentals"`
	IsNewAvailability bool     `db:"is_new_availability" json:"isNewAvailability"`
	CreatedAt         string   `db:"created_at" json:"createdAt"`
}

// InsertResort is the normalized shape the inventory pipeline produces.
// It carries no provider identity; provenance is not preserved.
type InsertResort struct {
	Name              string   `json:"name"`
	Location          string   `json:"location"`
	Destination       string   `json:"destination"`
	Description       string   `json:"description"`
	ImageURL          string   `json:"imageUrl"`
	Amenities         []string `json:"amenities"`
	Rating            string   `json:"rating"`
	PriceMin          int      `json:"priceMin"`
	PriceMax          int      `json:"priceMax"`
	AvailableRentals  int      `json:"availableRentals"`
	IsNewAvailability bool     `json:"isNewAvailability"`
}

type Review struct {
	ID        string `db:"id" json:"id"`
	ResortID  string `db:"resort_id" json:"resortId"`
	UserID    string `db:"user_id" json:"userId"`
	Rating    int    `db:"rating" json:"rating"`
	Title     string `db:"title" json:"title"`
	Content   string `db:"content" json:"content"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Booking struct {
	ID         string `db:"id" json:"id"`
	ResortID   string `db:"resort_id" json:"resortId"`
	UserID     string `db:"user_id" json:"userId"`
	CheckIn    string `db:"check_in" json:"checkIn"`
	CheckOut   string `db:"check_out" json:"checkOut"`
	Guests     int    `db:"guests" json:"guests"`
	TotalPrice int    `db:"total_price" json:"totalPrice"`
	Status     string `db:"status" json:"status"` // pending | confirmed | canceled
	CreatedAt  string `db:"created_at" json:"createdAt"`
}

type Listing struct {
	ID                         string `db:"id" json:"id"`
	ResortID                   string `db:"resort_id" json:"resortId"`
	OwnerID                    string `db:"owner_id" json:"ownerId"`
	Title                      string `db:"title" json:"title"`
	Description                string `db:"description" json:"description"`
	PricePerNight              int    `db:"price_per_night" json:"pricePerNight"`
	AvailableFrom              string `db:"available_from" json:"availableFrom"`
	AvailableTo                string `db:"available_to" json:"availableTo"`
	MaxGuests                  int    `db:"max_guests" json:"maxGuests"`
	IsActive                   bool   `db:"is_active" json:"isActive"`
	ContractDocumentURL        string `db:"contract_document_url" json:"contractDocumentUrl"`
	ContractVerificationStatus string `db:"contract_verification_status" json:"contractVerificationStatus"` // pending | under_review | verified
	EscrowStatus               string `db:"escrow_status" json:"escrowStatus"`                               // none | initiated
	EscrowAccountID            string `db:"escrow_account_id" json:"escrowAccountId"`
	OwnershipVerified          bool   `db:"ownership_verified" json:"ownershipVerified"`
	SalePrice                  int    `db:"sale_price" json:"salePrice"`
	IsForSale                  bool   `db:"is_for_sale" json:"isForSale"`
	CreatedAt                  string `db:"created_at" json:"createdAt"`
}

type SiteSetting struct {
	Key         string `db:"key" json:"key"`
	Value       string `db:"value" json:"value"`
	Category    string `db:"category" json:"category"`
	Description string `db:"description" json:"description"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt"`
}

type PropertyInquiry struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
	ResortID  string `db:"resort_id" json:"resortId"`
	Message   string `db:"message" json:"message"`
	Status    string `db:"status" json:"status"` // new | contacted | closed
	CreatedAt string `db:"created_at" json:"createdAt"`
}
