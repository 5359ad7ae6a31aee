package background

import (
	"context"
	"log"
	"time"

	"gstbill/internal/repositories"
	"gstbill/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/shopspring/decimal"
)

// Pending e-invoice log rows older than this are closed as failed.
const stalePendingAge = 30 * time.Minute

// JobScheduler runs the periodic maintenance jobs: low stock alerts,
// stale e-invoice log sweeps and expired refresh token cleanup.
type JobScheduler struct {
	scheduler     gocron.Scheduler
	stockService  services.StockService
	authService   services.AuthService
	logRepo       repositories.EInvoiceLogRepository
	lowStockLevel decimal.Decimal
}

func NewJobScheduler(stockService services.StockService, authService services.AuthService, logRepo repositories.EInvoiceLogRepository, lowStockLevel decimal.Decimal) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:     scheduler,
		stockService:  stockService,
		authService:   authService,
		logRepo:       logRepo,
		lowStockLevel: lowStockLevel,
	}
	js.registerJobs()
	return js
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.scanLowStock),
		gocron.WithName("low-stock-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		log.Printf("Failed to create low stock job: %v", err)
	}

	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.sweepStaleEInvoiceLogs),
		gocron.WithName("einvoice-log-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		log.Printf("Failed to create e-invoice log sweep job: %v", err)
	}

	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(js.cleanupExpiredTokens),
		gocron.WithName("refresh-token-cleanup"),
	); err != nil {
		log.Printf("Failed to create token cleanup job: %v", err)
	}
}

func (js *JobScheduler) scanLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stocks, err := js.stockService.LowStock(ctx, js.lowStockLevel)
	if err != nil {
		log.Printf("ERROR: low stock scan failed: %v", err)
		return
	}
	for _, stock := range stocks {
		log.Printf("ALERT: low stock in godown %s: %s %s at %s", stock.GodownID, stock.ItemType, stock.ItemID, stock.Quantity)
	}
}

func (js *JobScheduler) sweepStaleEInvoiceLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := js.logRepo.MarkStalePendingFailed(ctx, time.Now().Add(-stalePendingAge))
	if err != nil {
		log.Printf("ERROR: e-invoice log sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Closed %d stale pending e-invoice log rows", count)
	}
}

func (js *JobScheduler) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := js.authService.CleanupExpiredTokens(ctx)
	if err != nil {
		log.Printf("ERROR: refresh token cleanup failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Deleted %d expired refresh tokens", count)
	}
}
