package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartRepository keeps cart holds in redis so they expire on their own
// instead of needing a cleanup job. One key per hold, TTL = hold lifetime.
type CartRepository struct {
	client *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func NewCartRepository(cfg Config) (*CartRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &CartRepository{client: client}, nil
}

func (r *CartRepository) Close() error {
	return r.client.Close()
}

func (r *CartRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func cartKey(shop string, staff primitive.ObjectID, id string) string {
	return fmt.Sprintf("cart:%s:%s:%s", shop, staff.Hex(), id)
}

func (r *CartRepository) Create(ctx context.Context, hold *domain.CartHold, ttl time.Duration) error {
	if hold.ID == "" {
		hold.ID = uuid.NewString()
	}

	payload, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal cart hold: %w", err)
	}

	key := cartKey(hold.Shop, hold.Staff, hold.ID)
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart hold: %w", err)
	}

	return nil
}

func (r *CartRepository) GetByStaff(ctx context.Context, shop string, staff []primitive.ObjectID, start, end time.Time) ([]domain.CartHold, error) {
	var holds []domain.CartHold

	for _, staffID := range staff {
		pattern := fmt.Sprintf("cart:%s:%s:*", shop, staffID.Hex())

		iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			payload, err := r.client.Get(ctx, iter.Val()).Bytes()
			if err == redis.Nil {
				// expired between scan and get
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read cart hold: %w", err)
			}

			var hold domain.CartHold
			if err := json.Unmarshal(payload, &hold); err != nil {
				return nil, fmt.Errorf("failed to unmarshal cart hold: %w", err)
			}

			if hold.Start.Before(end) && hold.End.After(start) {
				holds = append(holds, hold)
			}
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan cart holds: %w", err)
		}
	}

	return holds, nil
}
