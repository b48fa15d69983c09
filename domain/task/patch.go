package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Field is one member of a partial update: absent, explicitly null, or set to a value.
// Absent fields are dropped when marshalled with the omitzero option.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value returns a Field holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field that is present and explicitly null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// IsZero reports whether the field is absent.
func (f Field[T]) IsZero() bool {
	return !f.Set
}

// MarshalJSON implements json.Marshaler.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON implements json.Unmarshaler. It only runs for keys present in the input.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// Patch is a partial task update. Only present fields are written.
type Patch struct {
	Title       Field[string]    `json:"title,omitzero"`
	Description Field[string]    `json:"description,omitzero"`
	DueDate     Field[time.Time] `json:"dueDate,omitzero"`
	Priority    Field[Priority]  `json:"priority,omitzero"`
	Category    Field[string]    `json:"category,omitzero"`
	Status      Field[Status]    `json:"status,omitzero"`
}

const (
	msgReceivedNull = "Expected value, received null"
	msgInvalidEnum  = "Invalid enum value"
)

// Validate returns field-level messages for every invalid present field.
// Description and DueDate may be null; the other fields may not.
func (p Patch) Validate() map[string][]string {
	errs := make(map[string][]string)

	if p.Title.Set {
		switch {
		case p.Title.Null:
			errs["title"] = append(errs["title"], msgReceivedNull)
		case p.Title.Value == "":
			errs["title"] = append(errs["title"], "Title is required")
		}
	}
	if p.Category.Set {
		switch {
		case p.Category.Null:
			errs["category"] = append(errs["category"], msgReceivedNull)
		case p.Category.Value == "":
			errs["category"] = append(errs["category"], "Category is required")
		}
	}
	if p.Priority.Set {
		if p.Priority.Null {
			errs["priority"] = append(errs["priority"], msgReceivedNull)
		} else if !p.Priority.Value.Valid() {
			errs["priority"] = append(errs["priority"], msgInvalidEnum+". Expected 'LOW' | 'MEDIUM' | 'HIGH'")
		}
	}
	if p.Status.Set {
		if p.Status.Null {
			errs["status"] = append(errs["status"], msgReceivedNull)
		} else if !p.Status.Value.Valid() {
			errs["status"] = append(errs["status"], msgInvalidEnum+". Expected 'PENDING' | 'COMPLETED'")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Empty reports whether the patch carries no fields.
func (p Patch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.DueDate.Set &&
		!p.Priority.Set && !p.Category.Set && !p.Status.Set
}

// Columns returns the column assignments for the present fields.
// Null description or due date clears the column.
func (p Patch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Title.Set {
		cols["title"] = p.Title.Value
	}
	if p.Description.Set {
		if p.Description.Null {
			cols["description"] = nil
		} else {
			cols["description"] = p.Description.Value
		}
	}
	if p.DueDate.Set {
		if p.DueDate.Null {
			cols["due_date"] = nil
		} else {
			cols["due_date"] = p.DueDate.Value
		}
	}
	if p.Priority.Set {
		cols["priority"] = string(p.Priority.Value)
	}
	if p.Category.Set {
		cols["category"] = p.Category.Value
	}
	if p.Status.Set {
		cols["status"] = string(p.Status.Value)
	}
	return cols
}

// ErrInvalidDate is returned by ParseDate for unrecognised date strings.
var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a due date as sent by clients: a calendar date or an
// ISO-8601 timestamp. Dates without a zone are taken as UTC.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
