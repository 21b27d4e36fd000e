package upstream

import (
	"time"

	"github.com/shopspring/decimal"
)

// Page mirrors the backend's paginated list envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// User is the account record as served by /api/users/me/.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsStaff    bool   `json:"is_staff"`
	IsRetailer bool   `json:"is_retailer"`
	UserType   string `json:"user_type"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
}

// NewUser is the registration payload for /api/users/.
type NewUser struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	UserType  string `json:"user_type,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Category is a product grouping.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Product is a near-expiry listing. Prices are decimal strings on the wire.
type Product struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Slug               string          `json:"slug"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	ExpiryDate         string          `json:"expiry_date"`
	Category           int64           `json:"category"`
	Retailer           int64           `json:"retailer"`
	Stock              int             `json:"stock"`
	Image              *string         `json:"image"`
	DiscountPercentage int             `json:"discount_percentage"`
	IsFeatured         bool            `json:"is_featured"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProductInput is the create/update payload for retailer product management.
type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	ExpiryDate    string          `json:"expiry_date"`
	Category      int64           `json:"category"`
	Stock         int             `json:"stock"`
	Image         *string         `json:"image,omitempty"`
	IsActive      *bool           `json:"is_active,omitempty"`
}

// ProductSnapshot is the denormalized product view embedded in cart items.
type ProductSnapshot struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	ExpiryDate         string          `json:"expiry_date"`
	Image              *string         `json:"image,omitempty"`
	Stock              int             `json:"stock"`
	DiscountPercentage int             `json:"discount_percentage"`
}

// CartItem is one line of a user's in-progress order.
type CartItem struct {
	ID            int64            `json:"id"`
	Product       int64            `json:"product"`
	Quantity      int              `json:"quantity"`
	User          int64            `json:"user"`
	TotalPrice    *decimal.Decimal `json:"total_price,omitempty"`
	ProductDetail *ProductSnapshot `json:"product_detail,omitempty"`
}

// WishlistItem links a user to a saved product.
type WishlistItem struct {
	ID      int64     `json:"id"`
	User    int64     `json:"user"`
	Product int64     `json:"product"`
	AddedAt time.Time `json:"added_at"`
}

// OrderItem captures the price at time of purchase.
type OrderItem struct {
	ID       int64           `json:"id"`
	Product  int64           `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is a placed order with its line items.
type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	PromoCode       *string         `json:"promo_code,omitempty"`
	PromoDiscount   decimal.Decimal `json:"promo_discount"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderInput is the checkout payload.
type OrderInput struct {
	ShippingAddress string          `json:"shipping_address"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	PromoCode       string          `json:"promo_code,omitempty"`
}

// Review is a 1-5 star product review.
type Review struct {
	ID        int64     `json:"id"`
	Product   int64     `json:"product"`
	User      int64     `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewInput is the review creation payload.
type ReviewInput struct {
	Product int64  `json:"product"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RetailerProfile is the seller-side account record.
type RetailerProfile struct {
	ID              int64  `json:"id"`
	User            int64  `json:"user"`
	CompanyName     string `json:"company_name"`
	CompanyAddress  string `json:"company_address"`
	BusinessLicense string `json:"business_license"`
	Approved        bool   `json:"approved"`
}

// RetailerProfileInput is the registration/update payload for retailers.
type RetailerProfileInput struct {
	CompanyName     string `json:"company_name"`
	CompanyAddress  string `json:"company_address"`
	BusinessLicense string `json:"business_license"`
}

// PromoValidation is the result of checking a promo code against a cart total.
type PromoValidation struct {
	Valid         bool             `json:"valid"`
	Discount      *decimal.Decimal `json:"discount,omitempty"`
	DiscountType  string           `json:"discount_type,omitempty"`
	DiscountValue *decimal.Decimal `json:"discount_value,omitempty"`
	Detail        string           `json:"detail,omitempty"`
}

// BinaryFile is an uploaded asset reference.
type BinaryFile struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	File string `json:"file"`
}
