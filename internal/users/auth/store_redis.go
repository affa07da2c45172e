// Copyright (c) 2026 ClaimPoint. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/claimpoint/claimpoint/internal/platform/apperr"
	"github.com/claimpoint/claimpoint/internal/platform/constants"
)

// # OTP Repository

// RedisOTPRepository implements OTPRepository using Redis.
//
// Keys expire on their own, so a code that is never redeemed leaves no
// residue to clean up.
type RedisOTPRepository struct {
	client *redis.Client
}

// NewOTPRepository creates a new Redis-backed OTPRepository.
func NewOTPRepository(client *redis.Client) *RedisOTPRepository {
	return &RedisOTPRepository{client: client}
}

/*
Set stores a verification code for the email address with a TTL.

Description: Overwrites any previous code for the same address so the most
recently emailed code is the only redeemable one.

Parameters:
  - context: context.Context
  - email: string
  - code: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisOTPRepository) Set(context context.Context, email, code string, ttl time.Duration) error {
	key := constants.RedisPrefixVerifyCode + email

	if err := repository.client.Set(context, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("redis_otp_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the active verification code for the email address.

Description: Returns apperr.NotFound if the code is absent or expired.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: The active code
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisOTPRepository) Get(context context.Context, email string) (string, error) {
	key := constants.RedisPrefixVerifyCode + email

	code, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Verification code")
		}
		return "", fmt.Errorf("redis_otp_get_failed: %w", err)
	}

	return code, nil
}

/*
Delete removes the verification code after successful use.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisOTPRepository) Delete(context context.Context, email string) error {
	key := constants.RedisPrefixVerifyCode + email

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_otp_delete_failed: %w", err)
	}

	return nil
}

/*
MarkResent sets the resend-cooldown marker for an email address.

Description: Uses SET NX so the check and the set are a single atomic
operation. Returns true when no cooldown was active.

Parameters:
  - context: context.Context
  - email: string
  - ttl: time.Duration

Returns:
  - bool: true when the marker was newly set
  - error: Execution errors
*/
func (repository *RedisOTPRepository) MarkResent(context context.Context, email string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixResendCooldown + email

	fresh, err := repository.client.SetNX(context, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_otp_mark_resent_failed: %w", err)
	}

	return fresh, nil
}
