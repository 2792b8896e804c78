package products

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/go-shopfront/internal/app/models"
	"github.com/FACorreiaa/go-shopfront/internal/observability/metrics"
)

const productCacheKey = "products:all"

// DB is the slice of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type AddProductParams struct {
	Name        string
	Description string
	Price       float64
	Image       string
}

var _ ProductRepo = (*PostgresProductRepo)(nil)

// ProductRepo manages the dashboard-created products.
type ProductRepo interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Add(ctx context.Context, params AddProductParams) (*models.Product, error)
}

// PostgresProductRepo reads through a short-lived cache; concurrent cache
// misses are collapsed into one query by the singleflight group.
type PostgresProductRepo struct {
	db     DB
	logger *zap.Logger
	cache  *gocache.Cache
	group  singleflight.Group
	sb     sq.StatementBuilderType
}

func NewPostgresProductRepo(db DB, logger *zap.Logger) *PostgresProductRepo {
	return &PostgresProductRepo{
		db:     db,
		logger: logger,
		cache:  gocache.New(30*time.Second, time.Minute),
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresProductRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	if cached, ok := r.cache.Get(productCacheKey); ok {
		return cached.([]models.Product), nil
	}

	result, err, _ := r.group.Do(productCacheKey, func() (any, error) {
		list, err := r.loadAll(ctx)
		if err != nil {
			return nil, err
		}
		r.cache.Set(productCacheKey, list, gocache.DefaultExpiration)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Product), nil
}

func (r *PostgresProductRepo) loadAll(ctx context.Context) ([]models.Product, error) {
	start := time.Now()

	query, args, err := r.sb.
		Select("id", "name", "description", "price", "image", "created_at").
		From("products").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building products query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Error listing products", zap.Error(err))
		return nil, fmt.Errorf("database error listing products: %w", err)
	}
	defer rows.Close()

	var list []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading product rows: %w", err)
	}

	if app := metrics.Get(); app != nil {
		app.DBQueryDuration.Record(ctx, time.Since(start).Seconds())
	}
	return list, nil
}

func (r *PostgresProductRepo) Add(ctx context.Context, params AddProductParams) (*models.Product, error) {
	query, args, err := r.sb.
		Insert("products").
		Columns("name", "description", "price", "image").
		Values(params.Name, params.Description, params.Price, params.Image).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building product insert: %w", err)
	}

	p := models.Product{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Image:       params.Image,
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		r.logger.Error("Error inserting product", zap.Error(err))
		return nil, fmt.Errorf("database error inserting product: %w", err)
	}

	r.cache.Delete(productCacheKey)
	r.logger.Info("Product added", zap.String("product_id", p.ID.String()), zap.String("name", p.Name))
	return &p, nil
}
