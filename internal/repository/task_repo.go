package repository

import (
	"context"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
)

// ListTasks returns all housekeeping tasks
func ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := query(ctx, `
		SELECT id, title, room_number, assigned_to, priority, status, due_date, created_at
		FROM tasks ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var task model.Task
		err := rows.Scan(
			&task.ID, &task.Title, &task.RoomNumber, &task.AssignedTo,
			&task.Priority, &task.Status, &task.DueDate, &task.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// CreateTask creates a new housekeeping task
func CreateTask(ctx context.Context, task *model.Task) error {
	return insertTask(ctx, dbExecer{}, task)
}

func insertTask(ctx context.Context, ex execer, task *model.Task) error {
	fillIdentity(&task.ID, &task.CreatedAt)
	if task.Status == "" {
		task.Status = model.TaskPending
	}

	_, err := ex.ExecContext(ctx, `
		INSERT INTO tasks (id, title, room_number, assigned_to, priority, status, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.Title, task.RoomNumber, task.AssignedTo, task.Priority, task.Status, task.DueDate, task.CreatedAt)
	return err
}

// UpdateTaskStatus updates the status of a task
func UpdateTaskStatus(ctx context.Context, taskID, status string) (bool, error) {
	result, err := exec(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, status, taskID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
