package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrOTPNotFound is returned when no OTP is stored for the key or it has expired.
var ErrOTPNotFound = errors.New("otp not found or expired")

// OTPStore keeps short-lived one-time passwords.
type OTPStore interface {
	Save(ctx context.Context, key, otp string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// RedisOTPStore stores OTPs in Redis with a TTL.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Save(ctx context.Context, key, otp string, ttl time.Duration) error {
	if err := s.client.Set(ctx, OTPCachePrefix+key, otp, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache OTP: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Get(ctx context.Context, key string) (string, error) {
	otp, err := s.client.Get(ctx, OTPCachePrefix+key).Result()
	if err == redis.Nil {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read OTP: %w", err)
	}
	return otp, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, OTPCachePrefix+key).Err()
}

// GenerateNumericOTP returns a cryptographically random numeric code of the given length.
func GenerateNumericOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
