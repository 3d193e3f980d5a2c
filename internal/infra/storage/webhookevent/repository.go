package webhookevent

import (
	"context"
	"fmt"

	"github.com/m04kA/PCS-CheckoutService/pkg/psqlbuilder"
)

// Repository журнал обработанных webhook-событий.
// Платёжный провайдер доставляет события at-least-once; журнал позволяет
// распознать повторную доставку по идентификатору события.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр журнала событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// EnsureSchema создает таблицу журнала, если её ещё нет
func (r *Repository) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS webhook_events (
			event_id     TEXT PRIMARY KEY,
			event_type   TEXT NOT NULL,
			processed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: EnsureSchema: %v", ErrExecQuery, err)
	}
	return nil
}

// MarkProcessed регистрирует событие в журнале.
// Возвращает true, если событие с таким id уже было обработано раньше.
func (r *Repository) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	query, args, err := psqlbuilder.Insert("webhook_events").
		Columns("event_id", "event_type").
		Values(eventID, eventType).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkProcessed - build insert query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkProcessed - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkProcessed - rows affected: %v", ErrExecQuery, err)
	}

	return inserted == 0, nil
}
