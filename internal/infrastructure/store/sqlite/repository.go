// Package sqlite provides a SQLite implementation of the Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/infrastructure/config"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.Store using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.StoreConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Cafe listings (canonical entities)
	CREATE TABLE IF NOT EXISTS cafes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		price TEXT NOT NULL DEFAULT '$$',
		rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		amenities TEXT NOT NULL DEFAULT '[]',
		is_open INTEGER NOT NULL DEFAULT 1,
		hours TEXT NOT NULL DEFAULT '',
		distance REAL NOT NULL DEFAULT 0,
		featured INTEGER NOT NULL DEFAULT 0,
		wifi_speed REAL NOT NULL DEFAULT 0,
		crowded INTEGER NOT NULL DEFAULT 0,
		cuisine TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		events TEXT NOT NULL DEFAULT '[]',
		created_by TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_cafes_rating ON cafes(rating);
	CREATE INDEX IF NOT EXISTS idx_cafes_name ON cafes(name);

	-- Reviews (reference their cafe by id; the cafe does not own them)
	CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		cafe_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		author_name TEXT NOT NULL DEFAULT '',
		rating INTEGER NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		images TEXT NOT NULL DEFAULT '[]',
		helpful_count INTEGER NOT NULL DEFAULT 0,
		reported INTEGER NOT NULL DEFAULT 0,
		approved INTEGER NOT NULL DEFAULT 0,
		business_response TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_cafe ON reviews(cafe_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id);

	-- Favorites (user -> cafe references, no relational integrity)
	CREATE TABLE IF NOT EXISTS favorites (
		user_id TEXT NOT NULL,
		cafe_id TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, cafe_id)
	);
	CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const cafeColumns = `id, name, address, image, price, rating, review_count, amenities,
	is_open, hours, distance, featured, wifi_speed, crowded, cuisine, city, region,
	events, created_by, created_at`

// ListCafes returns all cafes.
func (r *Repository) ListCafes(ctx context.Context) ([]entities.Cafe, error) {
	query := `SELECT ` + cafeColumns + ` FROM cafes ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing cafes: %w", err)
	}
	defer rows.Close()

	var cafes []entities.Cafe
	for rows.Next() {
		cafe, err := scanCafe(rows)
		if err != nil {
			return nil, err
		}
		cafes = append(cafes, *cafe)
	}
	return cafes, rows.Err()
}

// GetCafe finds a cafe by id. Returns nil when the id does not resolve.
func (r *Repository) GetCafe(ctx context.Context, id string) (*entities.Cafe, error) {
	query := `SELECT ` + cafeColumns + ` FROM cafes WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	cafe, err := scanCafe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cafe, nil
}

// CreateCafe persists a new cafe.
func (r *Repository) CreateCafe(ctx context.Context, cafe *entities.Cafe) error {
	amenities, events, createdBy, err := marshalCafeJSON(cafe)
	if err != nil {
		return err
	}

	if cafe.CreatedAt.IsZero() {
		cafe.CreatedAt = timeNow().UTC()
	}

	query := `
		INSERT INTO cafes (` + cafeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		cafe.ID, cafe.Name, cafe.Address, cafe.Image, string(cafe.Price),
		cafe.Rating, cafe.ReviewCount, amenities, cafe.IsOpen, cafe.Hours,
		cafe.Distance, cafe.Featured, cafe.WifiSpeed, cafe.Crowded,
		cafe.Cuisine, cafe.City, cafe.Region, events, createdBy, cafe.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving cafe: %w", err)
	}
	return nil
}

// UpdateCafe overwrites an existing cafe.
func (r *Repository) UpdateCafe(ctx context.Context, cafe *entities.Cafe) error {
	amenities, events, createdBy, err := marshalCafeJSON(cafe)
	if err != nil {
		return err
	}

	query := `
		UPDATE cafes SET name = ?, address = ?, image = ?, price = ?, rating = ?,
			review_count = ?, amenities = ?, is_open = ?, hours = ?, distance = ?,
			featured = ?, wifi_speed = ?, crowded = ?, cuisine = ?, city = ?,
			region = ?, events = ?, created_by = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		cafe.Name, cafe.Address, cafe.Image, string(cafe.Price), cafe.Rating,
		cafe.ReviewCount, amenities, cafe.IsOpen, cafe.Hours, cafe.Distance,
		cafe.Featured, cafe.WifiSpeed, cafe.Crowded, cafe.Cuisine, cafe.City,
		cafe.Region, events, createdBy, cafe.ID,
	)
	if err != nil {
		return fmt.Errorf("updating cafe: %w", err)
	}
	return requireRow(result)
}

// DeleteCafe removes a cafe by id.
func (r *Repository) DeleteCafe(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cafes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting cafe: %w", err)
	}
	return requireRow(result)
}

// CountCafes returns the total number of cafes.
func (r *Repository) CountCafes(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cafes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting cafes: %w", err)
	}
	return count, nil
}

const reviewColumns = `id, cafe_id, user_id, author_name, rating, title, body, tags,
	images, helpful_count, reported, approved, business_response, created_at, updated_at`

// ListReviews returns all reviews referencing the given cafe.
func (r *Repository) ListReviews(ctx context.Context, cafeID string) ([]entities.Review, error) {
	return r.listReviewsWhere(ctx, "cafe_id", cafeID)
}

// ListReviewsByUser returns all reviews written by the given user.
func (r *Repository) ListReviewsByUser(ctx context.Context, userID string) ([]entities.Review, error) {
	return r.listReviewsWhere(ctx, "user_id", userID)
}

func (r *Repository) listReviewsWhere(ctx context.Context, column, value string) ([]entities.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE ` + column + ` = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []entities.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, rows.Err()
}

// GetReview finds a review by id. Returns nil when the id does not resolve.
func (r *Repository) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	review, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

// CreateReview persists a new review.
func (r *Repository) CreateReview(ctx context.Context, review *entities.Review) error {
	tags, images, response, err := marshalReviewJSON(review)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		review.ID, review.CafeID, review.UserID, review.AuthorName,
		review.Rating, review.Title, review.Text, tags, images,
		review.HelpfulCount, review.Reported, review.Approved, response,
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving review: %w", err)
	}
	return nil
}

// UpdateReview overwrites an existing review. The cafe and user
// references are immutable.
func (r *Repository) UpdateReview(ctx context.Context, review *entities.Review) error {
	tags, images, response, err := marshalReviewJSON(review)
	if err != nil {
		return err
	}

	query := `
		UPDATE reviews SET rating = ?, title = ?, body = ?, tags = ?, images = ?,
			helpful_count = ?, reported = ?, approved = ?, business_response = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		review.Rating, review.Title, review.Text, tags, images,
		review.HelpfulCount, review.Reported, review.Approved, response,
		review.UpdatedAt, review.ID,
	)
	if err != nil {
		return fmt.Errorf("updating review: %w", err)
	}
	return requireRow(result)
}

// DeleteReview removes a review by id.
func (r *Repository) DeleteReview(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	return requireRow(result)
}

// ListFavorites returns the cafe ids favorited by the given user.
func (r *Repository) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT cafe_id FROM favorites WHERE user_id = ? ORDER BY created_at, cafe_id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	defer rows.Close()

	var cafeIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		cafeIDs = append(cafeIDs, id)
	}
	return cafeIDs, rows.Err()
}

// ToggleFavorite flips the favorite state of a cafe for a user.
func (r *Repository) ToggleFavorite(ctx context.Context, userID, cafeID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND cafe_id = ?`, userID, cafeID)
	if err != nil {
		return false, fmt.Errorf("toggling favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggling favorite: %w", err)
	}
	if affected > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, cafe_id, created_at) VALUES (?, ?, ?)`,
		userID, cafeID, timeNow().UTC())
	if err != nil {
		return false, fmt.Errorf("toggling favorite: %w", err)
	}
	return true, nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCafe(row scanner) (*entities.Cafe, error) {
	var cafe entities.Cafe
	var price, amenities, events string
	var createdBy sql.NullString

	err := row.Scan(
		&cafe.ID, &cafe.Name, &cafe.Address, &cafe.Image, &price,
		&cafe.Rating, &cafe.ReviewCount, &amenities, &cafe.IsOpen, &cafe.Hours,
		&cafe.Distance, &cafe.Featured, &cafe.WifiSpeed, &cafe.Crowded,
		&cafe.Cuisine, &cafe.City, &cafe.Region, &events, &createdBy, &cafe.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning cafe: %w", err)
	}

	cafe.Price = entities.PriceTier(price)
	if err := json.Unmarshal([]byte(amenities), &cafe.Amenities); err != nil {
		return nil, fmt.Errorf("decoding amenities: %w", err)
	}
	if err := json.Unmarshal([]byte(events), &cafe.Events); err != nil {
		return nil, fmt.Errorf("decoding events: %w", err)
	}
	if createdBy.Valid && createdBy.String != "" {
		cafe.CreatedBy = &entities.CreatedBy{}
		if err := json.Unmarshal([]byte(createdBy.String), cafe.CreatedBy); err != nil {
			return nil, fmt.Errorf("decoding created_by: %w", err)
		}
	}
	return &cafe, nil
}

func scanReview(row scanner) (*entities.Review, error) {
	var review entities.Review
	var tags, images string
	var response sql.NullString

	err := row.Scan(
		&review.ID, &review.CafeID, &review.UserID, &review.AuthorName,
		&review.Rating, &review.Title, &review.Text, &tags, &images,
		&review.HelpfulCount, &review.Reported, &review.Approved, &response,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning review: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &review.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &review.Images); err != nil {
		return nil, fmt.Errorf("decoding images: %w", err)
	}
	if response.Valid && response.String != "" {
		review.BusinessResponse = &entities.BusinessResponse{}
		if err := json.Unmarshal([]byte(response.String), review.BusinessResponse); err != nil {
			return nil, fmt.Errorf("decoding business response: %w", err)
		}
	}
	return &review, nil
}

func marshalCafeJSON(cafe *entities.Cafe) (amenities, events string, createdBy sql.NullString, err error) {
	a, err := json.Marshal(emptyAsSlice(cafe.Amenities))
	if err != nil {
		return "", "", sql.NullString{}, fmt.Errorf("encoding amenities: %w", err)
	}
	e, err := json.Marshal(cafe.Events)
	if err != nil {
		return "", "", sql.NullString{}, fmt.Errorf("encoding events: %w", err)
	}
	if cafe.Events == nil {
		e = []byte("[]")
	}
	if cafe.CreatedBy != nil {
		c, err := json.Marshal(cafe.CreatedBy)
		if err != nil {
			return "", "", sql.NullString{}, fmt.Errorf("encoding created_by: %w", err)
		}
		createdBy = sql.NullString{String: string(c), Valid: true}
	}
	return string(a), string(e), createdBy, nil
}

func marshalReviewJSON(review *entities.Review) (tags, images string, response sql.NullString, err error) {
	t, err := json.Marshal(emptyAsSlice(review.Tags))
	if err != nil {
		return "", "", sql.NullString{}, fmt.Errorf("encoding tags: %w", err)
	}
	i, err := json.Marshal(emptyAsSlice(review.Images))
	if err != nil {
		return "", "", sql.NullString{}, fmt.Errorf("encoding images: %w", err)
	}
	if review.BusinessResponse != nil {
		b, err := json.Marshal(review.BusinessResponse)
		if err != nil {
			return "", "", sql.NullString{}, fmt.Errorf("encoding business response: %w", err)
		}
		response = sql.NullString{String: string(b), Valid: true}
	}
	return string(t), string(i), response, nil
}

// emptyAsSlice keeps nil slices encoding as [] instead of null.
func emptyAsSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
