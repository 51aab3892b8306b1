package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-tracker/internal/logger"
	"github.com/sbilibin2017/todo-tracker/internal/models"
	"github.com/sbilibin2017/todo-tracker/internal/repositories"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=todo.go -destination=mock_todo.go -package=services

// TodoReader defines methods for reading todos.
type TodoReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.TodoDB, error)
}

// TodoWriter defines methods for mutating todos. Every method is scoped to the owner.
type TodoWriter interface {
	Save(ctx context.Context, todo *models.TodoDB) error
	Update(ctx context.Context, todoID, userID uuid.UUID, upd models.TodoUpdate) (*models.UpdatedTodo, error)
	Delete(ctx context.Context, todoID, userID uuid.UUID) (*models.TodoDB, error)
}

// CounterAdjuster atomically shifts a user's task counters.
type CounterAdjuster interface {
	AdjustCounters(ctx context.Context, userID uuid.UUID, deltaTotal, deltaCompleted int64) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// CreateTodoInput carries the fields accepted when creating a todo.
type CreateTodoInput struct {
	Title    string
	DueDate  *string // "YYYY-MM-DD" or RFC 3339; nil or empty for none
	Priority *string // nil for the default priority
}

// UpdateTodoInput carries a partial update. Nil fields are left unchanged;
// an empty DueDate clears the due date.
type UpdateTodoInput struct {
	Title       *string
	IsCompleted *bool
	DueDate     *string
	Priority    *string
}

// TodoService handles todo CRUD and keeps the owner's counters in step.
type TodoService struct {
	reader      TodoReader
	writer      TodoWriter
	counters    CounterAdjuster
	cache       CacheInvalidator
	kafkaWriter KafkaWriter
}

// NewTodoService creates a new TodoService. cache and kafkaWriter may be nil.
func NewTodoService(
	reader TodoReader,
	writer TodoWriter,
	counters CounterAdjuster,
	cache CacheInvalidator,
	kafkaWriter KafkaWriter,
) *TodoService {
	return &TodoService{
		reader:      reader,
		writer:      writer,
		counters:    counters,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// List returns all todos of the user, newest first.
func (s *TodoService) List(ctx context.Context, userID uuid.UUID) ([]models.TodoDB, error) {
	todos, err := s.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list todos", "userID", userID, "error", err)
		return nil, err
	}
	return todos, nil
}

// Create validates and stores a new todo for the user and bumps the user's total counter.
func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, in CreateTodoInput) (*models.TodoDB, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, newValidationError("title", "Todo title is required")
	}

	priority := models.DefaultPriority
	if in.Priority != nil {
		p, err := parsePriority(*in.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	var dueDate *time.Time
	if in.DueDate != nil && strings.TrimSpace(*in.DueDate) != "" {
		d, err := ParseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &d
	}

	todo := &models.TodoDB{
		TodoID:   uuid.New(),
		UserID:   userID,
		Title:    title,
		DueDate:  dueDate,
		Priority: priority,
	}
	if err := s.writer.Save(ctx, todo); err != nil {
		logger.Log.Errorw("failed to save todo", "userID", userID, "error", err)
		return nil, err
	}

	s.adjustCounters(ctx, userID, todo.TodoID, 1, 0)
	s.invalidateTodosCount(ctx)
	s.publishEvent(ctx, models.TodoCreated, todo)

	return todo, nil
}

// Update applies a partial update to a todo owned by the user. When the completion
// flag changes, the user's completed counter moves with it.
func (s *TodoService) Update(ctx context.Context, userID uuid.UUID, todoID string, in UpdateTodoInput) (*models.TodoDB, error) {
	id, err := uuid.Parse(todoID)
	if err != nil {
		return nil, ErrTodoNotFound
	}

	upd, err := buildTodoUpdate(in)
	if err != nil {
		return nil, err
	}

	updated, err := s.writer.Update(ctx, id, userID, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		logger.Log.Errorw("failed to update todo", "userID", userID, "todoID", id, "error", err)
		return nil, err
	}

	if updated.IsCompleted != updated.WasCompleted {
		delta := int64(1)
		if !updated.IsCompleted {
			delta = -1
		}
		s.adjustCounters(ctx, userID, id, 0, delta)
	}
	s.publishEvent(ctx, models.TodoUpdated, &updated.TodoDB)

	return &updated.TodoDB, nil
}

// Delete removes a todo owned by the user and decrements the user's counters.
func (s *TodoService) Delete(ctx context.Context, userID uuid.UUID, todoID string) error {
	id, err := uuid.Parse(todoID)
	if err != nil {
		return ErrTodoNotFound
	}

	deleted, err := s.writer.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTodoNotFound
		}
		logger.Log.Errorw("failed to delete todo", "userID", userID, "todoID", id, "error", err)
		return err
	}

	var deltaCompleted int64
	if deleted.IsCompleted {
		deltaCompleted = -1
	}
	s.adjustCounters(ctx, userID, id, -1, deltaCompleted)
	s.invalidateTodosCount(ctx)
	s.publishEvent(ctx, models.TodoDeleted, deleted)

	return nil
}

// adjustCounters applies a counter delta after the todo mutation already succeeded.
// A failure leaves the counters out of step until the next reconciliation, so it is
// reported but does not fail the request.
func (s *TodoService) adjustCounters(ctx context.Context, userID, todoID uuid.UUID, deltaTotal, deltaCompleted int64) {
	if err := s.counters.AdjustCounters(ctx, userID, deltaTotal, deltaCompleted); err != nil {
		logger.Log.Warnw("user counters inconsistent: adjustment failed after todo mutation",
			"userID", userID,
			"todoID", todoID,
			"deltaTotal", deltaTotal,
			"deltaCompleted", deltaCompleted,
			"error", err,
		)
	}
}

func (s *TodoService) invalidateTodosCount(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, repositories.TodosCountKey); err != nil {
		logger.Log.Warnw("failed to invalidate todos count", "error", err)
	}
}

// publishEvent publishes a todo event to Kafka, keyed by owner.
func (s *TodoService) publishEvent(ctx context.Context, eventType string, todo *models.TodoDB) {
	event := models.TodoEvent{
		EventID:     uuid.NewString(),
		Type:        eventType,
		TodoID:      todo.TodoID.String(),
		UserID:      todo.UserID.String(),
		IsCompleted: todo.IsCompleted,
		Timestamp:   time.Now().Unix(),
	}

	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", eventType)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal todo event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish todo event to Kafka", "event_id", event.EventID, "type", eventType, "error", err)
	} else {
		logger.Log.Debugw("Todo event published to Kafka", "event_id", event.EventID, "type", eventType)
	}
}

func buildTodoUpdate(in UpdateTodoInput) (models.TodoUpdate, error) {
	var upd models.TodoUpdate

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return upd, newValidationError("title", "Todo title cannot be empty")
		}
		upd.Title = &title
	}

	if in.Priority != nil {
		p, err := parsePriority(*in.Priority)
		if err != nil {
			return upd, err
		}
		upd.Priority = &p
	}

	if in.DueDate != nil {
		if strings.TrimSpace(*in.DueDate) == "" {
			upd.ClearDueDate = true
		} else {
			d, err := ParseDueDate(*in.DueDate)
			if err != nil {
				return upd, err
			}
			upd.DueDate = &d
		}
	}

	upd.IsCompleted = in.IsCompleted
	return upd, nil
}

func parsePriority(s string) (models.Priority, error) {
	p := models.Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", newValidationError("priority", "Priority must be one of low, medium, high, critical")
	}
	return p, nil
}

// ParseDueDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp and returns the calendar date in UTC.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		u := ts.UTC()
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, newValidationError("dueDate", "Due date must be YYYY-MM-DD or RFC 3339")
}
