package stats

import (
	"strings"

	"github.com/erazemk/lostfound/internal/model"
)

// StatusMapper resolves a raw Status cell into an item status.
type StatusMapper interface {
	Status(v any) (model.Status, bool)
}

// StatusMapping maps integer codes and labels onto statuses. Labels match
// case-insensitively.
type StatusMapping struct {
	Codes  map[int64]model.Status
	Labels map[string]model.Status
}

// DefaultStatusMapping covers both schema variants: 0/1/2 in the live
// database and "Lost"/"Found"/"Claimed" in the mock data.
var DefaultStatusMapping = StatusMapping{
	Codes: map[int64]model.Status{
		0: model.StatusLost,
		1: model.StatusFound,
		2: model.StatusClaimed,
	},
	Labels: map[string]model.Status{
		"lost":    model.StatusLost,
		"found":   model.StatusFound,
		"claimed": model.StatusClaimed,
	},
}

func (m StatusMapping) Status(v any) (model.Status, bool) {
	switch x := v.(type) {
	case string:
		if st, ok := m.Labels[strings.ToLower(strings.TrimSpace(x))]; ok {
			return st, true
		}
	case []byte:
		return m.Status(string(x))
	}

	code, ok := model.IntegerCode(v)
	if !ok {
		return 0, false
	}
	st, ok := m.Codes[code]
	return st, ok
}
