// Command catalog-seed loads product catalog files into PostgreSQL.
//
// It accepts plain JSON files or pgzip-compressed .json.gz exports, parses
// them concurrently, and upserts the products in file order so the storefront
// preserves the catalog ordering.
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/storefront/internal/domain/cart"
	"github.com/xenking/storefront/internal/domain/catalog"
	"github.com/xenking/storefront/internal/storage/postgres"
)

func main() {
	var (
		databaseURL string
		seedDir     string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&seedDir, "seed-dir", "db/seed", "directory containing catalog .json or .json.gz files")
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

	if err := run(ctx, databaseURL, seedDir); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, seedDir string) error {
	files, err := catalogFiles(seedDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("no catalog files found in %s", seedDir)
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Parse all files concurrently, then upsert sequentially so positions
	// stay deterministic across runs.
	parsed := make([][]catalog.Product, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			products, err := parseFile(file)
			if err != nil {
				return errors.Wrapf(err, "parse %s", file)
			}
			slog.Info("parsed catalog file",
				slog.String("path", file),
				slog.Int("products", len(products)),
			)
			parsed[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	repo := postgres.NewCatalogRepository(pool)
	position := 0
	for _, products := range parsed {
		for _, p := range products {
			if err := repo.Upsert(ctx, p, position); err != nil {
				return errors.Wrapf(err, "upsert product %s", p.ID)
			}
			position++
		}
	}

	slog.Info("upserted products", slog.Int("count", position))
	return nil
}

// catalogFiles lists seed files in lexical order.
func catalogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read seed dir")
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".json.gz") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func parseFile(path string) ([]catalog.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	return decodeProducts(data)
}

// decodeProducts parses a JSON array of products. Prices are accepted either
// as display strings ("$9.99") or bare decimals ("9.99").
func decodeProducts(data []byte) ([]catalog.Product, error) {
	var products []catalog.Product
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		var p catalog.Product
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "id":
				p.ID, err = d.Str()
			case "name":
				p.Name, err = d.Str()
			case "price":
				var raw string
				if raw, err = d.Str(); err == nil {
					p.Price, err = parsePrice(raw)
				}
			case "image":
				p.ImageURL, err = d.Str()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		if p.ID == "" || p.Name == "" {
			return errors.New("product requires id and name")
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, err
	}
	return products, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if strings.HasPrefix(strings.TrimSpace(raw), "$") {
		return cart.ParsePrice(raw)
	}
	return decimal.NewFromString(strings.TrimSpace(raw))
}
