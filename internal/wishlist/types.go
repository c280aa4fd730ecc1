package wishlist

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/wishboard/wishboard-backend/pkg/enums"
)

// FlexibleString decodes from either a JSON string or a JSON number. Records
// written by earlier revisions of the board stored ids and prices as raw
// numbers; everything this service writes is a string.
type FlexibleString string

func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*s = FlexibleString(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*s = FlexibleString(number.String())
	return nil
}

// String implements fmt.Stringer.
func (s FlexibleString) String() string {
	return string(s)
}

// Float returns the numeric value of the string, or zero when it does not
// parse. This is the single rule for sorting and aggregation over prices.
func (s FlexibleString) Float() float64 {
	value, err := strconv.ParseFloat(string(s), 64)
	if err != nil || value != value {
		return 0
	}
	return value
}

// Item is the sole entity of the board: one wishlist entry. The collection of
// items is the entire persisted state.
type Item struct {
	ID         FlexibleString   `json:"id"`
	Name       string           `json:"name"`
	Image      string           `json:"image"`
	Link       string           `json:"link"`
	Price      FlexibleString   `json:"price"`
	Status     enums.ItemStatus `json:"status"`
	ReservedBy string           `json:"reservedBy"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// CreateInput carries the admin-supplied fields for a new item.
type CreateInput struct {
	Name  string
	Image string
	Link  string
	Price string
}

// AdminEditInput carries the direct-edit fields; empty fields are left
// untouched. Status and reservation are out of its reach.
type AdminEditInput struct {
	Name  string
	Image string
	Link  string
}
