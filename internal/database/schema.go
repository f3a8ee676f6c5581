package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/greenledger/ecotrack/internal/utils"
)

// Schema statements are idempotent so the server can run them on every
// start.  Records carry both the user and action foreign keys; coefficients
// are owned 1:1 by their action and are never deleted, so no cascade rules
// are needed.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(64) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		is_admin TINYINT(1) NOT NULL DEFAULT 0,
		is_blocked TINYINT(1) NOT NULL DEFAULT 0,
		registration_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS coefficients (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		value DOUBLE NOT NULL,
		emission_unit VARCHAR(32) NOT NULL DEFAULT 'kg CO2e',
		last_updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS actions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		description TEXT,
		category VARCHAR(64) NOT NULL,
		unit_of_measure VARCHAR(32) NOT NULL,
		coefficient_id BIGINT UNSIGNED NOT NULL,
		CONSTRAINT fk_actions_coefficient FOREIGN KEY (coefficient_id) REFERENCES coefficients(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS records (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		action_id BIGINT UNSIGNED NOT NULL,
		quantity DOUBLE NOT NULL,
		record_date DATE NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_records_user_date (user_id, record_date),
		CONSTRAINT fk_records_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_records_action FOREIGN KEY (action_id) REFERENCES actions(id)
	) ENGINE=InnoDB`,
}

// EnsureSchema creates the four application tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// starterAction pairs a catalog entry with its coefficient for seeding.
type starterAction struct {
	name, description, category, unit string
	value                             float64
}

var starterCatalog = []starterAction{
	{"Waste sorting", "Handing waste over for recycling.", "Waste", "kg", 0.12},
	{"Cycling", "Riding a bicycle instead of driving.", "Transport", "km", 0.20},
	{"Energy saving", "Reducing household electricity use.", "Energy", "kWh", 0.50},
}

// SeedCatalog inserts the starter actions when the catalog is empty.  Each
// coefficient+action pair is created inside one transaction so a failure
// cannot leave an orphaned coefficient behind.
func SeedCatalog(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM actions").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, a := range starterCatalog {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO coefficients (value, emission_unit) VALUES (?, ?)", a.value, "kg CO2e")
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		coeffID, err := res.LastInsertId()
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO actions (name, description, category, unit_of_measure, coefficient_id) VALUES (?, ?, ?, ?, ?)",
			a.name, a.description, a.category, a.unit, coeffID); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	log.Printf("database: seeded %d starter actions", len(starterCatalog))
	return nil
}

// SeedAdmin creates the bootstrap administrator account when no admin row
// exists.  An empty password disables seeding entirely, which is the
// expected state for deployments that promote admins by hand.
func SeedAdmin(ctx context.Context, db *sql.DB, username, password, email string, bcryptCost int) error {
	if password == "" {
		return nil
	}
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE is_admin = 1").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email, is_admin) VALUES (?, ?, ?, 1)",
		username, hash, email); err != nil {
		return err
	}
	log.Printf("database: seeded admin account %q", username)
	return nil
}
