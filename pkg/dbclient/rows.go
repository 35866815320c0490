package dbclient

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Константы для сообщений об ошибках чтения строк.
const (
	errReadRowValues = "failed to read row values"
	errIterateRows   = "error iterating rows"
)

// collectRows превращает результат запроса в список отображений
// имя колонки -> значение. Закрывает rows на всех путях выхода.
func collectRows(rows pgx.Rows) ([]Row, error) {
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errReadRowValues, err)
		}

		fields := rows.FieldDescriptions()
		row := make(Row, len(fields))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errIterateRows, err)
	}

	return out, nil
}
