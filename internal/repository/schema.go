package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []struct{ table, ddl string }{
	{"users", `
CREATE TABLE IF NOT EXISTS users (
    id            VARCHAR(64)  NOT NULL PRIMARY KEY,
    name          VARCHAR(255) NOT NULL,
    email         VARCHAR(255) NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    role          ENUM('PATRON','ADMIN') NOT NULL DEFAULT 'PATRON',
    is_active     BOOLEAN      NOT NULL DEFAULT TRUE,
    created_at    DATETIME(6)  NOT NULL,
    UNIQUE KEY uq_users_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
    seq               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    id                VARCHAR(64)  NOT NULL,
    fixture_id        VARCHAR(32)  NOT NULL,
    total_price       BIGINT       NOT NULL,
    payment_reference VARCHAR(128) NOT NULL,
    status            ENUM('pending','approved','rejected') NOT NULL DEFAULT 'pending',
    owner_id          VARCHAR(64)  NOT NULL,
    owner_name        VARCHAR(255) NOT NULL,
    owner_email       VARCHAR(255) NOT NULL,
    created_at        DATETIME(6)  NOT NULL,
    verified_at       DATETIME(6)  NULL,
    verified_by       VARCHAR(64)  NULL,
    UNIQUE KEY uq_bookings_id (id),
    KEY idx_bookings_owner (owner_id, seq),
    KEY idx_bookings_status (status, seq)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"booking_seats", `
CREATE TABLE IF NOT EXISTS booking_seats (
    booking_id VARCHAR(64) NOT NULL,
    fixture_id VARCHAR(32) NOT NULL,
    seat_id    VARCHAR(8)  NOT NULL,
    position   INT         NOT NULL,
    PRIMARY KEY (booking_id, seat_id),
    KEY idx_booking_seats_fixture (fixture_id, seat_id),
    CONSTRAINT fk_booking_seats_booking FOREIGN KEY (booking_id) REFERENCES bookings (id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"fixture_locks", `
CREATE TABLE IF NOT EXISTS fixture_locks (
    fixture_id VARCHAR(32) NOT NULL PRIMARY KEY
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// EnsureSchema creates the service tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", s.table, err)
		}
	}
	return nil
}
