package sqlite

import (
	"database/sql"
	"fmt"

	"todo-store/internal/domain"
)

// taskColumns is the select list ScanTask expects, in order
const taskColumns = "id, task_name, number, date_start, date_end, is_active"

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*domain.Task, error) {
	task := &domain.Task{}
	var (
		number    sql.NullInt64
		dateStart sql.NullString
		dateEnd   sql.NullString
		isActive  sql.NullBool
	)

	err := scanner.Scan(
		&task.ID,
		&task.TaskName,
		&number,
		&dateStart,
		&dateEnd,
		&isActive,
	)
	if err != nil {
		return nil, err
	}

	if number.Valid {
		n := int(number.Int64)
		task.Number = &n
	}
	if task.DateStart, err = ParseNullTimeFromDB(dateStart); err != nil {
		return nil, fmt.Errorf("parse date_start of task %s: %w", task.ID, err)
	}
	if task.DateEnd, err = ParseNullTimeFromDB(dateEnd); err != nil {
		return nil, fmt.Errorf("parse date_end of task %s: %w", task.ID, err)
	}
	if isActive.Valid {
		b := isActive.Bool
		task.IsActive = &b
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
