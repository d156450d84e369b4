package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Worker is a service professional as returned by the backend.
type Worker struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Category  string  `json:"category"`
	City      string  `json:"city"`
	Rating    Rating  `json:"rating"`
	Phone     string  `json:"phone"`
	WhatsApp  *string `json:"whatsapp_number"`
	Bio       string  `json:"bio"`
	Image     string  `json:"image"`
}

// FullName is the display name handed to the detail screen.
func (w Worker) FullName() string {
	return w.FirstName + " " + w.LastName
}

// searchText is the haystack the search box is matched against.
func (w Worker) searchText() string {
	return strings.ToLower(w.FirstName + " " + w.LastName + " " + w.Category + " " + w.City)
}

// Rating is a one-decimal score. The backend serialises decimals as strings
// ("4.5"), but plain numbers and null are accepted too.
type Rating struct {
	Value float64
	Valid bool
}

// UnmarshalJSON accepts a quoted decimal, a bare number or null. An empty
// string decodes as no rating.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Rating{}
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*r = Rating{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("rating %q: %w", raw, err)
	}
	*r = Rating{Value: v, Valid: true}
	return nil
}

// MarshalJSON writes the backend's form: a one-decimal string, or null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(strconv.FormatFloat(r.Value, 'f', 1, 64))
}

// String formats the score with one decimal, or "-" when unrated.
func (r Rating) String() string {
	if !r.Valid {
		return "-"
	}
	return strconv.FormatFloat(r.Value, 'f', 1, 64)
}
