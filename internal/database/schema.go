package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tables lists every table in foreign key dependency order: a table only
// references tables before it.
var Tables = []string{
	"users",
	"terrains",
	"terrain_images",
	"bookings",
	"payments",
	"reviews",
	"favorites",
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		email_verified_at TIMESTAMP NULL,
		password VARCHAR(255) NOT NULL,
		remember_token VARCHAR(100) NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY users_email_unique (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS terrains (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		owner_id BIGINT UNSIGNED NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT NULL,
		location VARCHAR(255) NOT NULL,
		area_size DECIMAL(10,2) NOT NULL,
		price_per_day DECIMAL(10,2) NOT NULL,
		available_from DATE NULL,
		available_to DATE NULL,
		is_available TINYINT(1) NOT NULL DEFAULT 1,
		main_image VARCHAR(255) NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT terrains_owner_id_foreign FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT terrains_area_size_check CHECK (area_size >= 1),
		CONSTRAINT terrains_price_per_day_check CHECK (price_per_day >= 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS terrain_images (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		terrain_id BIGINT UNSIGNED NOT NULL,
		image_path VARCHAR(255) NOT NULL,
		uploaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT terrain_images_terrain_id_foreign FOREIGN KEY (terrain_id) REFERENCES terrains (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		terrain_id BIGINT UNSIGNED NOT NULL,
		renter_id BIGINT UNSIGNED NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		status ENUM('pending','approved','rejected','cancelled','completed') NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY bookings_status_index (status),
		CONSTRAINT bookings_terrain_id_foreign FOREIGN KEY (terrain_id) REFERENCES terrains (id) ON DELETE CASCADE,
		CONSTRAINT bookings_renter_id_foreign FOREIGN KEY (renter_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT bookings_dates_check CHECK (end_date >= start_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT UNSIGNED NOT NULL,
		payment_method ENUM('credit_card','debit_card','paypal','bank_transfer') NOT NULL,
		amount_paid DECIMAL(10,2) NOT NULL,
		payment_date TIMESTAMP NOT NULL,
		status ENUM('paid','failed','refunded') NOT NULL,
		transaction_id VARCHAR(64) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY payments_transaction_id_unique (transaction_id),
		CONSTRAINT payments_booking_id_foreign FOREIGN KEY (booking_id) REFERENCES bookings (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		terrain_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		rating TINYINT UNSIGNED NOT NULL,
		comment TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY reviews_rating_index (rating),
		CONSTRAINT reviews_terrain_id_foreign FOREIGN KEY (terrain_id) REFERENCES terrains (id) ON DELETE CASCADE,
		CONSTRAINT reviews_user_id_foreign FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT reviews_rating_check CHECK (rating BETWEEN 1 AND 5)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		terrain_id BIGINT UNSIGNED NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY favorites_user_id_terrain_id_unique (user_id, terrain_id),
		CONSTRAINT favorites_user_id_foreign FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT favorites_terrain_id_foreign FOREIGN KEY (terrain_id) REFERENCES terrains (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing table. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", Tables[i], err)
		}
	}
	return nil
}

// Reset empties every table so a seeding run starts from an empty store.
// Tables are truncated in reverse dependency order on a single
// connection with foreign key checks disabled.
func Reset(ctx context.Context, db *sqlx.DB) (err error) {
	conn, err := db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err = conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return err
	}
	defer func() {
		if _, restoreErr := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1"); err == nil {
			err = restoreErr
		}
	}()
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err = conn.ExecContext(ctx, "TRUNCATE TABLE "+Tables[i]); err != nil {
			return fmt.Errorf("truncate %s: %w", Tables[i], err)
		}
	}
	return nil
}
