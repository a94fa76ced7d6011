package model

import (
	"strconv"
	"strings"
)

// ID is the set of integer widths used as primary keys.
type ID interface {
	int16 | int32 | int64
}

// Keyed is implemented by every entity and DTO served through the generic gateway.
type Keyed[K ID] interface {
	GetID() K
}

func ParseID[K ID](raw string) (K, error) {
	var zero K

	bits := 64
	switch any(zero).(type) {
	case int16:
		bits = 16
	case int32:
		bits = 32
	}

	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, bits)
	if err != nil {
		return zero, err
	}

	return K(v), nil
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
