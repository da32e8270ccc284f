package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/govalues/decimal"
)

const (
	// DefaultBookURL is the cover image used when a book has none.
	DefaultBookURL = "/images/default.jpg"

	// MinBookID and MaxBookID bound the ids accepted from clients.
	MinBookID = 1
	MaxBookID = 1000
)

// Price bounds, inclusive.
var (
	MinPrice = decimal.MustNew(1, 0)
	MaxPrice = decimal.MustNew(100, 0)
)

// Validation messages reported for book input.
const (
	MsgTitleRequired   = "The title is required."
	MsgTitleTooShort   = "The title should include at least two characters."
	MsgTitleTooLong    = "The title must be 25 characters or less."
	MsgPriceRange      = "Price must be between 1 and 100."
	MsgCategoryID      = "The category id must be a positive number."
	MsgURLTooLong      = "The url must be 255 characters or less."
	MsgCategoryMissing = "The category with the given id does not exist."
)

// Book is a catalogue entry. Category is populated on every read.
type Book struct {
	ID         int
	Title      string
	Price      decimal.Decimal
	URL        string
	CategoryID int
	Category   *Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BookInput is the write model shared by insert and update.
type BookInput struct {
	Title      string `validate:"required,min=2,max=25"`
	Price      decimal.Decimal
	CategoryID int    `validate:"gt=0"`
	URL        string `validate:"max=255"`
}

var bookValidate = validator.New()

// bookMessages maps StructField.tag to the message reported for it.
var bookMessages = map[string]string{
	"Title.required": MsgTitleRequired,
	"Title.min":      MsgTitleTooShort,
	"Title.max":      MsgTitleTooLong,
	"CategoryID.gt":  MsgCategoryID,
	"URL.max":        MsgURLTooLong,
}

// Normalize trims the title and applies the default cover URL.
func (in *BookInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	if in.URL == "" {
		in.URL = DefaultBookURL
	}
}

// Validate checks the input and returns a *ValidationError listing every
// violated rule, or nil.
func (in BookInput) Validate() error {
	byField := make(map[string]string)
	if err := bookValidate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		for _, fe := range verrs {
			if _, seen := byField[fe.StructField()]; seen {
				continue
			}
			msg, known := bookMessages[fe.StructField()+"."+fe.Tag()]
			if !known {
				msg = fmt.Sprintf("The %s field is invalid.", strings.ToLower(fe.StructField()))
			}
			byField[fe.StructField()] = msg
		}
	}
	if in.Price.Cmp(MinPrice) < 0 || in.Price.Cmp(MaxPrice) > 0 {
		byField["Price"] = MsgPriceRange
	}

	var messages []string
	for _, field := range []string{"Title", "Price", "CategoryID", "URL"} {
		if msg, ok := byField[field]; ok {
			messages = append(messages, msg)
		}
	}
	if len(messages) == 0 {
		return nil
	}
	return NewValidationError(messages...)
}

// IDOutOfRangeError reports a book id outside MinBookID..MaxBookID.
type IDOutOfRangeError struct {
	ID int
}

func (e *IDOutOfRangeError) Error() string {
	return fmt.Sprintf("%d is not between %d and %d", e.ID, MinBookID, MaxBookID)
}

// Unwrap allows errors.Is(err, ErrIDOutOfRange).
func (e *IDOutOfRangeError) Unwrap() error {
	return ErrIDOutOfRange
}

// ValidateBookID returns an *IDOutOfRangeError for ids outside
// MinBookID..MaxBookID.
func ValidateBookID(id int) error {
	if id < MinBookID || id > MaxBookID {
		return &IDOutOfRangeError{ID: id}
	}
	return nil
}

// Apply copies the input onto the book.
func (b *Book) Apply(in BookInput) {
	b.Title = in.Title
	b.Price = in.Price
	b.URL = in.URL
	b.CategoryID = in.CategoryID
}
