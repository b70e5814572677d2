package worker

// export_worker.go
// Processes catalog export jobs from QueueExport.
// Loads the full catalog, builds the explorer tree, renders it to PDF and
// optionally enqueues an email job with the file attached.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopcat/internal/assoc"
	"shopcat/internal/explorer"
	"shopcat/internal/infra"
	"shopcat/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ExportJobPayload is the job envelope sent to QueueExport.
type ExportJobPayload struct {
	RequestedBy string  `json:"requested_by"`
	Email       *string `json:"email,omitempty"`
}

// ExportWorker renders catalog exports. Database reads and PDF generation
// are retried with exponential backoff; exhausted jobs land in the DLQ.
type ExportWorker struct {
	brands      repository.BrandRepository
	categories  repository.CategoryRepository
	products    repository.ProductRepository
	engine      *assoc.Engine
	dispatcher  *Dispatcher
	rdb         *redis.Client
	storagePath string
}

// NewExportWorker wires all dependencies for the export worker.
func NewExportWorker(
	brands repository.BrandRepository,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	engine *assoc.Engine,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	storagePath string,
) *ExportWorker {
	return &ExportWorker{
		brands:      brands,
		categories:  categories,
		products:    products,
		engine:      engine,
		dispatcher:  dispatcher,
		rdb:         rdb,
		storagePath: storagePath,
	}
}

// Process handles a single export job:
//  1. Parse ExportJobPayload from the job envelope
//  2. Load brands, categories and products
//  3. Build the explorer tree from the association map
//  4. Render the tree to a PDF under storagePath
//  5. Optionally enqueue an email job with the file attached
func (w *ExportWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ExportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("export_worker: invalid payload")
		return
	}

	var pdfPath string
	exportErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := w.render(ctx)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("requested_by", payload.RequestedBy).
				Msg("export_worker: attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})

	if exportErr != nil {
		log.Error().Err(exportErr).Str("requested_by", payload.RequestedBy).Msg("export_worker: failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueExport, "export", raw,
			fmt.Sprintf("export failed after 3 retries: %v", exportErr), 3)
		return
	}

	log.Info().Str("pdf", pdfPath).Str("requested_by", payload.RequestedBy).Msg("export_worker: catalog rendered")

	if payload.Email != nil && *payload.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.Email,
			Subject: "Catalog export",
			Body:    "Attached is the catalog structure you requested.",
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.Email).Msg("export_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.Email).Msg("export_worker: email job enqueued")
		}
	}
}

func (w *ExportWorker) render(ctx context.Context) (string, error) {
	brands, err := w.brands.List(ctx)
	if err != nil {
		return "", fmt.Errorf("load brands: %w", err)
	}
	categories, err := w.categories.List(ctx)
	if err != nil {
		return "", fmt.Errorf("load categories: %w", err)
	}
	products, err := w.products.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load products: %w", err)
	}

	tree, err := explorer.BuildTree(w.engine.Snapshot(), brands, categories, products)
	if err != nil {
		return "", fmt.Errorf("build tree: %w", err)
	}
	return infra.GenerateCatalogPDF(tree, w.storagePath)
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// 1s, 2s … (exponential backoff)
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
