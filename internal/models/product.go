package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is the canonical internal shape for prices. Flat strings such as
// "19.99 EUR" exist only at the CSV and HTTP boundaries.
type Money struct {
	Amount   float64 `json:"amount" bson:"amount"`
	Currency string  `json:"currency,omitempty" bson:"currency,omitempty"`
}

func (m Money) String() string {
	s := strconv.FormatFloat(m.Amount, 'f', -1, 64)
	if m.Currency != "" {
		return s + " " + m.Currency
	}

	return s
}

// ParseMoney accepts "12.50" or "19.99 EUR".
func ParseMoney(s string) (Money, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 || len(fields) > 2 {
		return Money{}, fmt.Errorf("unparsable price %q", s)
	}

	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Money{}, fmt.Errorf("unparsable price %q: %w", s, err)
	}

	money := Money{Amount: amount}
	if len(fields) == 2 {
		money.Currency = fields[1]
	}

	return money, nil
}

// Volume is the canonical internal shape for volumes, e.g. {500, "mL"}.
type Volume struct {
	Value float64 `json:"value" bson:"value"`
	Unit  string  `json:"unit,omitempty" bson:"unit,omitempty"`
}

func (v Volume) String() string {
	s := strconv.FormatFloat(v.Value, 'f', -1, 64)
	if v.Unit != "" {
		return s + " " + v.Unit
	}

	return s
}

// ParseVolume accepts "500 mL", "500mL" or "500".
func ParseVolume(s string) (Volume, error) {
	trimmed := strings.TrimSpace(s)

	cut := len(trimmed)
	for i, r := range trimmed {
		if !unicode.IsDigit(r) && r != '.' && r != '-' && r != '+' {
			cut = i
			break
		}
	}

	value, err := strconv.ParseFloat(trimmed[:cut], 64)
	if err != nil {
		return Volume{}, fmt.Errorf("unparsable volume %q: %w", s, err)
	}

	return Volume{Value: value, Unit: strings.TrimSpace(trimmed[cut:])}, nil
}

// AIDescription is generated elsewhere and carried through untouched.
type AIDescription struct {
	Content     string    `json:"content" bson:"content"`
	Model       string    `json:"model,omitempty" bson:"model,omitempty"`
	GeneratedAt time.Time `json:"generatedAt,omitempty" bson:"generatedAt,omitempty"`
}

// Product is one catalog record. Code is the business key used to reconcile
// imports; it is distinct from the storage id.
type Product struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Barcode          string             `json:"barcode,omitempty" bson:"barcode,omitempty"`
	Code             string             `json:"code" bson:"code"`
	Name             string             `json:"name" bson:"name"`
	ShortDescription string             `json:"shortDescription,omitempty" bson:"shortDescription,omitempty"`
	Description      string             `json:"description,omitempty" bson:"description,omitempty"`
	Brand            string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Category         string             `json:"category,omitempty" bson:"category,omitempty"`
	Price            *Money             `json:"price,omitempty" bson:"price,omitempty"`
	Volume           *Volume            `json:"volume,omitempty" bson:"volume,omitempty"`
	ImageURL         string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Tags             []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Attributes       map[string]string  `json:"attributes,omitempty" bson:"attributes,omitempty"`
	AIDescription    *AIDescription     `json:"aiDescription,omitempty" bson:"aiDescription,omitempty"`
	StockQty         int                `json:"stockQty" bson:"stockQty"`
	IsActive         bool               `json:"isActive" bson:"isActive"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateProductRequest struct {
	Barcode          string            `json:"barcode,omitempty"`
	Code             string            `json:"code" validate:"required,min=1,max=64"`
	Name             string            `json:"name" validate:"required,min=1,max=200"`
	ShortDescription string            `json:"shortDescription,omitempty" validate:"omitempty,max=160"`
	Description      string            `json:"description,omitempty"`
	Brand            string            `json:"brand,omitempty"`
	Category         string            `json:"category,omitempty"`
	Price            *Money            `json:"price,omitempty"`
	Volume           *Volume           `json:"volume,omitempty"`
	ImageURL         string            `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Tags             []string          `json:"tags,omitempty"`
	Attributes       map[string]string `json:"attributes,omitempty"`
	AIDescription    *AIDescription    `json:"aiDescription,omitempty"`
	StockQty         int               `json:"stockQty" validate:"gte=0"`
	IsActive         *bool             `json:"isActive,omitempty"`
}

type UpdateProductRequest struct {
	Barcode          *string           `json:"barcode,omitempty"`
	Name             *string           `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	ShortDescription *string           `json:"shortDescription,omitempty" validate:"omitempty,max=160"`
	Description      *string           `json:"description,omitempty"`
	Brand            *string           `json:"brand,omitempty"`
	Category         *string           `json:"category,omitempty"`
	Price            *Money            `json:"price,omitempty"`
	Volume           *Volume           `json:"volume,omitempty"`
	ImageURL         *string           `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Tags             []string          `json:"tags,omitempty"`
	Attributes       map[string]string `json:"attributes,omitempty"`
	AIDescription    *AIDescription    `json:"aiDescription,omitempty"`
	StockQty         *int              `json:"stockQty,omitempty" validate:"omitempty,gte=0"`
	IsActive         *bool             `json:"isActive,omitempty"`
}
