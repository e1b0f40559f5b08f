package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL applied at startup.  Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS checkins (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		flight      VARCHAR(16)  NOT NULL,
		class       VARCHAR(16)  NOT NULL,
		seat_label  VARCHAR(16)  NOT NULL,
		traveler    VARCHAR(128) NOT NULL,
		minor       BOOLEAN      NOT NULL DEFAULT FALSE,
		preference  VARCHAR(8)   NOT NULL,
		penalty     DOUBLE       NOT NULL,
		created_at  DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_checkins_seat (flight, seat_label),
		KEY idx_checkins_flight (flight, id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the tables the service needs.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
