// Package validation реализует декларативные правила проверки полей
// входящих запросов. Правила поля выполняются независимо, нарушения
// всех полей собираются целиком, без остановки на первом.
package validation

import (
	"fmt"
	"sort"
)

// Violation описывает одно нарушение правила для конкретного поля.
type Violation struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Rule проверяет значение поля и возвращает нарушение либо nil.
type Rule func(field string, value any) *Violation

// FieldRules связывает имя поля с его правилами.
type FieldRules struct {
	Field string
	Rules []Rule
}

// Required требует присутствующее непустое строковое значение.
func Required(field string, value any) *Violation {
	if length, ok := lengthOf(value); !ok || length < 1 {
		return &Violation{
			Field: field,
			Error: fmt.Sprintf("Field '%s' is required and cannot be empty.", field),
		}
	}
	return nil
}

// MinLength проверяет минимальную длину значения.
// Отсутствующее значение правило пропускает - за него отвечает Required.
func MinLength(minLength int) Rule {
	return func(field string, value any) *Violation {
		if value == nil {
			return nil
		}
		if length, ok := lengthOf(value); ok && length < minLength {
			return &Violation{
				Field: field,
				Error: fmt.Sprintf("Field '%s' must have at least %d characters.", field, minLength),
			}
		}
		return nil
	}
}

// Evaluate выполняет все правила всех полей над значениями payload
// и возвращает полный список нарушений.
func Evaluate(fields []FieldRules, payload map[string]any) []Violation {
	var violations []Violation
	for _, fr := range fields {
		value := payload[fr.Field]
		for _, rule := range fr.Rules {
			if v := rule(fr.Field, value); v != nil {
				violations = append(violations, *v)
			}
		}
	}
	return violations
}

// MissingFields возвращает отсортированный список объявленных полей,
// отсутствующих в payload. Это грубая предварительная проверка,
// отдельная от правил валидации.
func MissingFields(declared []string, payload map[string]any) []string {
	var missing []string
	for _, field := range declared {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}

func lengthOf(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return len(v), true
	case []any:
		return len(v), true
	default:
		return 0, false
	}
}
