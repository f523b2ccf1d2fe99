// Command seed-db loads a product catalog JSON file into the database,
// upserting by product id. Without -products-file it loads the embedded
// default catalog.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/skypants/storefront/db"
	"github.com/skypants/storefront/internal/domain/product"
	"github.com/skypants/storefront/internal/storage/postgres"
)

type productJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Gender      string          `json:"gender"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	ImageURL    string          `json:"imageUrl"`
	Images      []string        `json:"images"`
	Inventory   int             `json:"inventory"`
	Rating      decimal.Decimal `json:"rating"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
		workers      int
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "", "path to products JSON file (default: embedded catalog)")
	flag.IntVar(&workers, "workers", 4, "concurrent upserts")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, workers); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile string, workers int) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	data := db.SeedProducts
	if productsFile != "" {
		data, err = os.ReadFile(productsFile)
		if err != nil {
			return errors.Wrap(err, "read products file")
		}
	}

	var products []productJSON
	if err := json.Unmarshal(data, &products); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	slog.Info("upserting products", slog.Int("count", len(products)))

	repo := postgres.NewProductRepository(pool)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, pj := range products {
		g.Go(func() error {
			p := &product.Product{
				ID:          pj.ID,
				Name:        pj.Name,
				Description: pj.Description,
				Price:       pj.Price,
				Category:    pj.Category,
				Gender:      pj.Gender,
				Sizes:       pj.Sizes,
				Colors:      pj.Colors,
				ImageURL:    pj.ImageURL,
				Images:      pj.Images,
				InStock:     true,
				Inventory:   pj.Inventory,
				Rating:      pj.Rating,
			}
			if err := repo.Upsert(ctx, p); err != nil {
				return errors.Wrapf(err, "upsert product %s", pj.ID)
			}
			slog.Info("upserted product", slog.String("id", pj.ID), slog.String("name", pj.Name))
			return nil
		})
	}
	return g.Wait()
}
