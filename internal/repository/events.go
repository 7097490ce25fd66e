package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

// insertEventHistory 在调用方的事务里写入一条审计记录。
// 事件历史存储的表结构由外部系统维护，这里只按约定写入。
func insertEventHistory(ctx context.Context, tx *sql.Tx, ev *domain.EventHistory) error {
	query := `
		INSERT INTO event_history (table_mnemocode, subject_id, method_name, is_new_record, platform_mnemocode, edit_body, date_utc)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	args := []any{ev.TableMnemocode, ev.SubjectID, ev.MethodName, ev.IsNewRecord, ev.PlatformMnemocode, ev.EditBody, ev.DateUtc}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

// marshalEditBody 把变化的列组装成字段级的旧/新值 JSON，只包含发生变化的列。
func marshalEditBody(changes map[string]domain.FieldChange) (json.RawMessage, error) {
	body, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func nowUtc() time.Time {
	return time.Now().UTC()
}
