package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// OtpRepositoryImpl implements domain.OtpRepository using Redis. One key
// per (purpose, phone) pair carries the pending code, which is what makes
// "at most one unconsumed code per pair" hold without any locking.
type OtpRepositoryImpl struct {
	client       *redis.Client
	ttl          time.Duration
	resendWindow time.Duration
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(client *redis.Client, ttl, resendWindow time.Duration) domain.OtpRepository {
	return &OtpRepositoryImpl{
		client:       client,
		ttl:          ttl,
		resendWindow: resendWindow,
	}
}

func (r *OtpRepositoryImpl) codeKey(phone string, purpose domain.OtpPurpose) string {
	return fmt.Sprintf("otp:%s:%s", purpose, phone)
}

func (r *OtpRepositoryImpl) attemptsKey(phone string, purpose domain.OtpPurpose) string {
	return fmt.Sprintf("otp:att:%s:%s", purpose, phone)
}

func (r *OtpRepositoryImpl) resendKey(phone string, purpose domain.OtpPurpose) string {
	return fmt.Sprintf("otp:res:%s:%s", purpose, phone)
}

// Store implements domain.OtpRepository. The SET and the attempt-counter
// reset run in one MULTI/EXEC so a concurrent verify can never pair the
// new code with the old counter.
func (r *OtpRepositoryImpl) Store(ctx context.Context, otp *domain.OtpCode) error {
	data, err := json.Marshal(otp)
	if err != nil {
		return fmt.Errorf("failed to marshal otp: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.codeKey(otp.Phone, otp.Purpose), data, r.ttl)
		pipe.Del(ctx, r.attemptsKey(otp.Phone, otp.Purpose))
		return nil
	})
	return err
}

// Find implements domain.OtpRepository. The live attempt counter is
// folded into the returned code.
func (r *OtpRepositoryImpl) Find(ctx context.Context, phone string, purpose domain.OtpPurpose) (*domain.OtpCode, error) {
	data, err := r.client.Get(ctx, r.codeKey(phone, purpose)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrOtpNotFound
		}
		return nil, err
	}

	var otp domain.OtpCode
	if err := json.Unmarshal([]byte(data), &otp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp: %w", err)
	}

	attempts, err := r.client.Get(ctx, r.attemptsKey(phone, purpose)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	otp.Attempts = attempts

	return &otp, nil
}

// IncrementAttempts implements domain.OtpRepository
func (r *OtpRepositoryImpl) IncrementAttempts(ctx context.Context, phone string, purpose domain.OtpPurpose) (int, error) {
	key := r.attemptsKey(phone, purpose)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

// Delete implements domain.OtpRepository. Consuming and invalidating a
// code are both spelled delete; a deleted pair verifies as not found.
func (r *OtpRepositoryImpl) Delete(ctx context.Context, phone string, purpose domain.OtpPurpose) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.codeKey(phone, purpose))
		pipe.Del(ctx, r.attemptsKey(phone, purpose))
		return nil
	})
	return err
}

// ThrottleSend implements domain.OtpRepository. SET NX makes the
// reservation atomic across concurrent requests.
func (r *OtpRepositoryImpl) ThrottleSend(ctx context.Context, phone string, purpose domain.OtpPurpose) (bool, time.Duration, error) {
	key := r.resendKey(phone, purpose)

	ok, err := r.client.SetNX(ctx, key, 1, r.resendWindow).Result()
	if err != nil {
		return false, 0, err
	}
	if ok {
		return true, 0, nil
	}

	retryAfter, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if retryAfter < 0 {
		retryAfter = 0
	}
	return false, retryAfter, nil
}
