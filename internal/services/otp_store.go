package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPTTL bounds how long an issued code stays verifiable in Redis.
const OTPTTL = 5 * time.Minute

// ErrOTPNotFound is returned when no pending code exists for a phone number.
var ErrOTPNotFound = errors.New("no pending OTP for phone")

// OTPStore maps a phone number to the (hashed) code most recently issued for
// it. Saving overwrites any prior code for the same phone.
type OTPStore interface {
	Save(ctx context.Context, phone, codeHash string) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

// NewOTPStore returns a Redis-backed store when REDIS_URL is configured and
// reachable, and falls back to a process-local store otherwise. The fallback
// is not shared across instances; a multi-instance deployment needs Redis.
func NewOTPStore() OTPStore {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL != "" {
		store, err := NewRedisOTPStore(redisURL)
		if err == nil {
			return store
		}
		log.Printf("Redis unavailable (%v), falling back to in-memory OTP store", err)
	}
	return NewMemoryOTPStore()
}

// RedisOTPStore keeps codes in Redis with a per-entry TTL.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(redisURL string) (*RedisOTPStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisOTPStore{client: client}, nil
}

func otpKey(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}

func (s *RedisOTPStore) Save(ctx context.Context, phone, codeHash string) error {
	return s.client.Set(ctx, otpKey(phone), codeHash, OTPTTL).Err()
}

func (s *RedisOTPStore) Get(ctx context.Context, phone string) (string, error) {
	val, err := s.client.Get(ctx, otpKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	return val, err
}

func (s *RedisOTPStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, otpKey(phone)).Err()
}

// MemoryOTPStore is the process-local fallback. Entries live until consumed
// or the process restarts; there is no expiry.
type MemoryOTPStore struct {
	mu    sync.RWMutex
	codes map[string]string
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{codes: make(map[string]string)}
}

func (s *MemoryOTPStore) Save(_ context.Context, phone, codeHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = codeHash
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, phone string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codeHash, ok := s.codes[phone]
	if !ok {
		return "", ErrOTPNotFound
	}
	return codeHash, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, phone)
	return nil
}
