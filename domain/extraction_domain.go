package domain

import (
	"encoding/json"
	"errors"
	"math"
	"mime/multipart"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	DeclaredTypeImage = "image"
	DeclaredTypePDF   = "pdf"
)

var (
	MessageSuccessImportMenu      = "menu imported successfully"
	MessageSuccessGetExtraction   = "menu extraction retrieved successfully"
	MessageSuccessGetExtractions  = "menu extractions retrieved successfully"
	MessageFailedImportMenu       = "failed to import menu"
	MessageFailedGetExtraction    = "failed to retrieve menu extraction"
	MessageFailedGetExtractions   = "failed to retrieve menu extractions"
	MessageInvalidImageFile       = "file is not a supported image (jpeg, png, webp, gif)"
	MessageInvalidPDFFile         = "file is not a valid PDF document"
	MessagePDFNotSupported        = "PDF menus are not supported yet, upload a photo or screenshot of the menu instead"
	MessageInvalidDeclaredType    = "type must be either image or pdf"
	MessageFileTooLarge           = "file exceeds the maximum upload size"
	MessageEmptyFile              = "file is empty"
	MessageImportCompletedSubject = "Your menu import is ready"
	MessageImportFailedSubject    = "Your menu import failed"

	ErrExtractionNotFound  = errors.New("menu extraction not found")
	ErrExtractionFinalized = errors.New("menu extraction already finalized")
)

type (
	ImportMenuRequest struct {
		RestaurantID string                `json:"restaurant_id" validate:"required,uuid"`
		File         *multipart.FileHeader `json:"file" form:"file" validate:"required"`
		DeclaredType string                `json:"type" form:"type" validate:"required"`
		NotifyEmail  string                `json:"-" form:"-"`
	}

	ImportMenuResponse struct {
		ExtractionID string                 `json:"extraction_id"`
		FileURL      string                 `json:"file_url"`
		Status       string                 `json:"status"`
		Categories   []MenuCategoryResponse `json:"new_categories"`
		Items        []MenuItemResponse     `json:"new_items"`
	}

	ExtractionResponse struct {
		ID            string          `json:"id"`
		RestaurantID  string          `json:"restaurant_id"`
		FileURL       string          `json:"file_url"`
		ContentType   string          `json:"content_type,omitempty"`
		Status        string          `json:"status"`
		ExtractedData json.RawMessage `json:"extracted_data,omitempty"`
		ErrorMessage  *string         `json:"error_message,omitempty"`
		CreatedAt     time.Time       `json:"created_at"`
		UpdatedAt     time.Time       `json:"updated_at"`
	}

	StoredFile struct {
		ObjectKey   string
		URL         string
		ContentType string
		Size        int64
	}

	VisionInput struct {
		ImageURL    string
		ContentType string
	}

	ExtractedMenu struct {
		Categories []ExtractedCategory `json:"categories" validate:"required,min=1,dive"`
	}

	ExtractedCategory struct {
		Name        string          `json:"name" validate:"required"`
		Description string          `json:"description,omitempty"`
		Items       []ExtractedItem `json:"items" validate:"dive"`
	}

	ExtractedItem struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description,omitempty"`
		Price       Price  `json:"price"`
		IsSpecial   *bool  `json:"is_special,omitempty"`
		IsAvailable *bool  `json:"is_available,omitempty"`
	}
)

// Normalize trims names and descriptions so blank names fail validation.
func (m *ExtractedMenu) Normalize() {
	for i := range m.Categories {
		c := &m.Categories[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Description = strings.TrimSpace(c.Description)
		for j := range c.Items {
			c.Items[j].Name = strings.TrimSpace(c.Items[j].Name)
			c.Items[j].Description = strings.TrimSpace(c.Items[j].Description)
		}
	}
}

func (m ExtractedMenu) ItemCount() int {
	n := 0
	for _, c := range m.Categories {
		n += len(c.Items)
	}
	return n
}

func (i ExtractedItem) Special() bool {
	return i.IsSpecial != nil && *i.IsSpecial
}

// Available is true unless the payload explicitly said false.
func (i ExtractedItem) Available() bool {
	return i.IsAvailable == nil || *i.IsAvailable
}

// Price accepts a JSON number or numeric string. Anything else, including
// negative, NaN and infinite values, becomes 0. Decoding never fails.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	*p = 0

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case float64:
		*p = Price(clampPrice(v))
	case string:
		*p = Price(ParsePrice(v))
	}
	return nil
}

func (p Price) Float64() float64 {
	return float64(p)
}

// ParsePrice reads the leading decimal number of s after an optional
// currency prefix such as "$", "€ " or "USD ". A dot followed by exactly three
// digits after a short integer part is a thousands separator ("Rp 25.000").
// A comma ends the number. Unparseable input yields 0.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Sc, r)
	})

	letters := 0
	for letters < len(s) && letters < 3 && isASCIILetter(s[letters]) {
		letters++
	}
	if letters > 0 && (letters == len(s) || !isASCIILetter(s[letters])) {
		s = strings.TrimLeftFunc(s[letters:], func(r rune) bool {
			return unicode.IsSpace(r) || unicode.Is(unicode.Sc, r)
		})
	}

	var b strings.Builder
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		b.WriteByte(s[i])
		i++
	}

	lead := i
	for i < len(s) && isDigit(s[i]) {
		b.WriteByte(s[i])
		i++
	}
	intDigits := i - lead

	grouped := false
	for i < len(s) && s[i] == '.' && isThousandsGroup(s[i+1:]) &&
		(grouped || (intDigits >= 1 && intDigits <= 3 && s[lead] != '0')) {
		b.WriteString(s[i+1 : i+4])
		i += 4
		grouped = true
	}

	fracDigits := 0
	if !grouped && i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits = j - i - 1
		if fracDigits > 0 {
			b.WriteString(s[i:j])
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return clampPrice(v)
}

// isThousandsGroup reports whether s starts with exactly three digits.
func isThousandsGroup(s string) bool {
	if len(s) < 3 || !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[2]) {
		return false
	}
	return len(s) == 3 || !isDigit(s[3])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func clampPrice(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
