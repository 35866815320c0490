// Package dttm содержит утилиты сериализации даты и времени в ISO-8601
// с миллисекундной точностью.
package dttm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Форматы ISO-8601 с миллисекундной точностью.
const (
	// LayoutOffset всегда содержит явное числовое смещение, включая +00:00.
	LayoutOffset = "2006-01-02T15:04:05.000-07:00"
	// LayoutUTC печатает "Z" для UTC.
	LayoutUTC = "2006-01-02T15:04:05.000Z07:00"
)

const errInvalidISO = "invalid ISO-8601 string"

// FormatLocal сериализует момент времени в локальной зоне с явным смещением.
func FormatLocal(t time.Time) string {
	return t.Local().Format(LayoutOffset)
}

// FormatUTC сериализует момент времени в UTC с суффиксом "Z".
func FormatUTC(t time.Time) string {
	return t.UTC().Format(LayoutUTC)
}

// NowLocal возвращает текущее локальное время, сериализованное через FormatLocal.
func NowLocal() string {
	return FormatLocal(time.Now())
}

// Parse разбирает строку ISO-8601, принимая и "Z", и числовое смещение.
func Parse(s string) (time.Time, error) {
	normalized := strings.Replace(s, "Z", "+00:00", 1)
	t, err := time.Parse(time.RFC3339, normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", errInvalidISO, s, err)
	}
	return t, nil
}

// Time - момент времени, сериализуемый в JSON в форме UTC "Z"
// с усечением до миллисекунд.
type Time struct {
	time.Time
}

// MarshalJSON реализует json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatUTC(t.Time))
}

// UnmarshalJSON реализует json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}
