package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"core/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository serves the read-only listing dataset the scoring
// engine consumes.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const propertyColumns = `
id, title, description, rating, price_monthly, price_security,
views, bookings_count, availability, city, area, pincode,
amenities, ai_label, created_at, updated_at`

// propertyRow is the flat scan target for the properties table; nullable
// columns map onto the model's optional fields.
type propertyRow struct {
	ID            string          `db:"id"`
	Title         string          `db:"title"`
	Description   sql.NullString  `db:"description"`
	Rating        sql.NullFloat64 `db:"rating"`
	PriceMonthly  sql.NullFloat64 `db:"price_monthly"`
	PriceSecurity sql.NullFloat64 `db:"price_security"`
	Views         int             `db:"views"`
	BookingsCount int             `db:"bookings_count"`
	Availability  sql.NullString  `db:"availability"`
	City          sql.NullString  `db:"city"`
	Area          sql.NullString  `db:"area"`
	Pincode       sql.NullString  `db:"pincode"`
	Amenities     model.JSONArray `db:"amenities"`
	AILabel       sql.NullString  `db:"ai_label"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (row propertyRow) toModel() model.Property {
	p := model.Property{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description.String,
		Views:         row.Views,
		BookingsCount: row.BookingsCount,
		Availability:  row.Availability.String,
		Address: model.Address{
			City:    row.City.String,
			Area:    row.Area.String,
			Pincode: row.Pincode.String,
		},
		Amenities: row.Amenities,
		AILabel:   row.AILabel.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Rating.Valid {
		rating := row.Rating.Float64
		p.Rating = &rating
	}
	if row.PriceMonthly.Valid {
		p.Price = &model.Price{
			Monthly:  row.PriceMonthly.Float64,
			Security: row.PriceSecurity.Float64,
		}
	}
	return p
}

// ListProperties returns one filtered, sorted page of listings plus the
// total count matching the filter.
func (r *PostgresRepository) ListProperties(ctx context.Context, f model.PropertyFilter, limit, offset int) ([]model.Property, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if strings.TrimSpace(f.City) != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("city ILIKE $%d", argIndex))
		args = append(args, "%"+strings.TrimSpace(f.City)+"%")
		argIndex++
	}
	if f.MinPrice > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("price_monthly >= $%d", argIndex))
		args = append(args, f.MinPrice)
		argIndex++
	}
	if f.MaxPrice > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("price_monthly <= $%d", argIndex))
		args = append(args, f.MaxPrice)
		argIndex++
	}

	whereSQL := strings.Join(whereClauses, " AND ")

	orderSQL := "ORDER BY id"
	switch f.Sort {
	case "price_asc":
		orderSQL = "ORDER BY price_monthly ASC NULLS LAST"
	case "price_desc":
		orderSQL = "ORDER BY price_monthly DESC NULLS LAST"
	case "recent":
		orderSQL = "ORDER BY created_at DESC"
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM properties WHERE " + whereSQL
	if err := r.db.QueryRowxContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	querySQL := fmt.Sprintf(`SELECT %s FROM properties WHERE %s %s LIMIT $%d OFFSET $%d`,
		propertyColumns, whereSQL, orderSQL, argIndex, argIndex+1)
	args = append(args, limit, offset)

	var rows []propertyRow
	if err := r.db.SelectContext(ctx, &rows, querySQL, args...); err != nil {
		return nil, 0, fmt.Errorf("select properties: %w", err)
	}

	out := make([]model.Property, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, total, nil
}

// GetPropertyByID retrieves a single listing, or nil when unknown.
func (r *PostgresRepository) GetPropertyByID(ctx context.Context, id string) (*model.Property, error) {
	var row propertyRow
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	p := row.toModel()
	return &p, nil
}

// SnapshotForRanking fetches a bounded snapshot of the freshest listings
// for a ranking pass.
func (r *PostgresRepository) SnapshotForRanking(ctx context.Context, max int) ([]model.Property, error) {
	if max <= 0 {
		max = 200
	}
	query := fmt.Sprintf("SELECT %s FROM properties ORDER BY created_at DESC LIMIT $1", propertyColumns)

	var rows []propertyRow
	if err := r.db.SelectContext(ctx, &rows, query, max); err != nil {
		return nil, fmt.Errorf("snapshot properties: %w", err)
	}

	out := make([]model.Property, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}
