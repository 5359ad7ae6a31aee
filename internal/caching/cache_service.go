package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"gstbill/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Default TTLs. Master data and stock balances change rarely between
// invalidations; invoice listings churn more.
const (
	MasterTTL  = time.Hour
	StockTTL   = time.Hour
	InvoiceTTL = 30 * time.Minute
)

type CacheService interface {
	// Invoice caching
	GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.TaxInvoice, error)
	SetInvoice(ctx context.Context, invoice *models.TaxInvoice, ttl time.Duration) error
	DeleteInvoice(ctx context.Context, invoiceID uuid.UUID) error

	// Stock caching
	GetStock(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) (*models.GodownStock, error)
	SetStock(ctx context.Context, stock *models.GodownStock, ttl time.Duration) error
	DeleteStock(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) error
	InvalidateGodownStock(ctx context.Context, godownID uuid.UUID) error

	// HSN code caching
	GetHSNCode(ctx context.Context, hsnCodeID uuid.UUID) (*models.HSNCode, error)
	SetHSNCode(ctx context.Context, hsnCode *models.HSNCode, ttl time.Duration) error
	DeleteHSNCode(ctx context.Context, hsnCodeID uuid.UUID) error

	// Resolved capability sets keyed by user
	GetPermissions(ctx context.Context, userID uuid.UUID) ([]string, error)
	SetPermissions(ctx context.Context, userID uuid.UUID, names []string, ttl time.Duration) error
	DeletePermissions(ctx context.Context, userID uuid.UUID) error

	// Cache invalidation
	InvalidatePrefix(ctx context.Context, prefix string) error
	InvalidateAllCache(ctx context.Context) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
		parsedAddr = hostPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.TaxInvoice, error) {
	key := fmt.Sprintf("gstbill:invoice:%s", invoiceID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var invoice models.TaxInvoice
	if err := json.Unmarshal(data, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *redisCacheService) SetInvoice(ctx context.Context, invoice *models.TaxInvoice, ttl time.Duration) error {
	key := fmt.Sprintf("gstbill:invoice:%s", invoice.ID.String())
	data, err := json.Marshal(invoice)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	key := fmt.Sprintf("gstbill:invoice:%s", invoiceID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetStock(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) (*models.GodownStock, error) {
	key := fmt.Sprintf("gstbill:stock:%s:%s:%s", godownID.String(), itemType, itemID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stock models.GodownStock
	if err := json.Unmarshal(data, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *redisCacheService) SetStock(ctx context.Context, stock *models.GodownStock, ttl time.Duration) error {
	key := fmt.Sprintf("gstbill:stock:%s:%s:%s", stock.GodownID.String(), stock.ItemType, stock.ItemID.String())
	data, err := json.Marshal(stock)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteStock(ctx context.Context, godownID uuid.UUID, itemType string, itemID uuid.UUID) error {
	key := fmt.Sprintf("gstbill:stock:%s:%s:%s", godownID.String(), itemType, itemID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidateGodownStock(ctx context.Context, godownID uuid.UUID) error {
	return r.InvalidatePrefix(ctx, fmt.Sprintf("stock:%s", godownID.String()))
}

func (r *redisCacheService) GetHSNCode(ctx context.Context, hsnCodeID uuid.UUID) (*models.HSNCode, error) {
	key := fmt.Sprintf("gstbill:hsn:%s", hsnCodeID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var hsnCode models.HSNCode
	if err := json.Unmarshal(data, &hsnCode); err != nil {
		return nil, err
	}
	return &hsnCode, nil
}

func (r *redisCacheService) SetHSNCode(ctx context.Context, hsnCode *models.HSNCode, ttl time.Duration) error {
	key := fmt.Sprintf("gstbill:hsn:%s", hsnCode.ID.String())
	data, err := json.Marshal(hsnCode)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteHSNCode(ctx context.Context, hsnCodeID uuid.UUID) error {
	key := fmt.Sprintf("gstbill:hsn:%s", hsnCodeID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetPermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	key := fmt.Sprintf("gstbill:permissions:%s", userID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *redisCacheService) SetPermissions(ctx context.Context, userID uuid.UUID, names []string, ttl time.Duration) error {
	key := fmt.Sprintf("gstbill:permissions:%s", userID.String())
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeletePermissions(ctx context.Context, userID uuid.UUID) error {
	key := fmt.Sprintf("gstbill:permissions:%s", userID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidatePrefix(ctx context.Context, prefix string) error {
	pattern := fmt.Sprintf("gstbill:%s*", prefix)
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	pattern := "gstbill:*"
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
