package model

import (
	"math"
	"strconv"
	"strings"
)

// Status is the lifecycle state of an item. The live schema stores the
// integer code, the mock schema stores the label.
type Status int

// Item statuses.
const (
	StatusLost    Status = 0
	StatusFound   Status = 1
	StatusClaimed Status = 2
)

// Statuses lists every valid item status in code order.
var Statuses = []Status{StatusLost, StatusFound, StatusClaimed}

func (s Status) String() string {
	switch s {
	case StatusLost:
		return "Lost"
	case StatusFound:
		return "Found"
	case StatusClaimed:
		return "Claimed"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the three known codes.
func (s Status) Valid() bool {
	return s >= StatusLost && s <= StatusClaimed
}

// ParseStatus converts a raw Status cell into a Status. It understands
// integer codes of any width, integral floats, numeric strings and labels.
func ParseStatus(v any) (Status, bool) {
	switch x := v.(type) {
	case Status:
		return x, x.Valid()
	case []byte:
		return ParseStatus(string(x))
	case string:
		s := strings.TrimSpace(x)
		for _, st := range Statuses {
			if strings.EqualFold(s, st.String()) {
				return st, true
			}
		}
	}

	code, ok := IntegerCode(v)
	if !ok {
		return 0, false
	}
	st := Status(code)
	if int64(st) != code || !st.Valid() {
		return 0, false
	}
	return st, true
}

// IntegerCode extracts an integer from a database cell. Drivers hand back
// different widths, and some return numbers as text.
func IntegerCode(v any) (int64, bool) {
	switch x := v.(type) {
	case Status:
		return int64(x), true
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float32:
		return IntegerCode(float64(x))
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return int64(x), true
	case []byte:
		return IntegerCode(string(x))
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Item categories used by the mock dataset. Live data may carry others.
const (
	CategoryElectronics   = "Electronics"
	CategoryClothing      = "Clothing"
	CategoryPersonal      = "Personal"
	CategoryMiscellaneous = "Miscellaneous"
	CategoryStationery    = "Stationery"
)

// Categories is the fixed category set in declaration order.
var Categories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategoryPersonal,
	CategoryMiscellaneous,
	CategoryStationery,
}

// Items table columns.
const (
	ColItemID          = "ItemId"
	ColUserID          = "UserId"
	ColTitle           = "Title"
	ColLostDescription = "LostDescription"
	ColCategory        = "Category"
	ColLocation        = "Location"
	ColDateLost        = "DateLost"
	ColStatus          = "Status"
	ColCreatedBy       = "CreatedBy"
	ColCreatedDate     = "CreatedDate"
)

// ItemColumns is the column order of the Items table.
var ItemColumns = []string{
	ColItemID, ColUserID, ColTitle, ColLostDescription, ColCategory,
	ColLocation, ColDateLost, ColStatus, ColCreatedBy, ColCreatedDate,
}
