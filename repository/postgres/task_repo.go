package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskmaster/backend/domain"
	"github.com/taskmaster/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) FindPage(ctx context.Context, userID string, status *domain.Status, page domain.PageRequest) (*domain.TaskPage, error) {
	page = page.Normalized()

	statusFilter := ""
	if status != nil {
		statusFilter = string(*status)
	}

	const countQuery = `
	SELECT COUNT(*)
	FROM tasks
	WHERE user_id = $1
	  AND ($2 = '' OR status = $2)
	`
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, userID, statusFilter).Scan(&total); err != nil {
		return nil, err
	}

	query := `
	SELECT id, user_id, title, description, status, due_date, created_at, updated_at
	FROM tasks
	WHERE user_id = $1
	  AND ($2 = '' OR status = $2)
	ORDER BY ` + orderClause(page) + `
	LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, userID, statusFilter, page.Size, page.Page*page.Size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0, page.Size)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.TaskPage{
		Items:      tasks,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: total,
		TotalPages: totalPages(total, page.Size),
	}, nil
}

func (r *taskRepository) FindByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	const query = `
	SELECT id, user_id, title, description, status, due_date, created_at, updated_at
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)
	return scanTask(row)
}

func (r *taskRepository) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		return r.insert(ctx, task)
	}
	return r.update(ctx, task)
}

func (r *taskRepository) insert(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	task.ID = uuid.NewString()

	const query = `
	INSERT INTO tasks (id, user_id, title, description, status, due_date, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		nullTime(task.CreatedAt),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	// Ownership is enforced in the row predicate, not checked afterwards.
	const query = `
	UPDATE tasks
	SET title = $3,
		description = $4,
		status = $5,
		due_date = $6,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) CountByStatus(ctx context.Context, userID string) ([]domain.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM tasks
	WHERE user_id = $1
	GROUP BY status
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.StatusCount
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var due *time.Time

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&due,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.DueDate = due
	return &task, nil
}
