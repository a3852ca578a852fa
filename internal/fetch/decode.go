package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"userAnalytics/models"
)

// decodeUsers reads the users array leniently: each object is looked up by key
// and any non-null scalar is kept in its text form, the way SQLite's TEXT
// affinity would store it. Only id must be an integer, as it becomes the
// INTEGER PRIMARY KEY.
func decodeUsers(body []byte) ([]models.UserRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]models.UserRecord, len(raw))
	for i, obj := range raw {
		id, err := toID(obj["id"])
		if err != nil {
			return nil, fmt.Errorf("user #%d: %w", i, err)
		}
		out[i] = models.UserRecord{
			ID:       id,
			Name:     toText(obj["name"]),
			Username: toText(obj["username"]),
			Email:    toText(obj["email"]),
			Phone:    toText(obj["phone"]),
			Website:  toText(obj["website"]),
		}
	}
	return out, nil
}

func toText(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			s = fmt.Sprint(t)
		} else {
			s = string(b)
		}
	}
	return &s
}

// toID applies integer primary key coercion: integral numbers and numeric
// strings are accepted, 1.0 becomes 1, booleans become 0 or 1.
func toID(v any) (*int64, error) {
	var text string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if t {
			return models.Int64(1), nil
		}
		return models.Int64(0), nil
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return nil, fmt.Errorf("id %v is not an integer", v)
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return nil, fmt.Errorf("id %q is not an integer", text)
	}
	n := int64(f)
	return &n, nil
}
