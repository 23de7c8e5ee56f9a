package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaStaleDetection(t *testing.T) {
	updated := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	q := Quota{LastUpdated: updated}

	assert.False(t, q.IsStale(updated.Add(5*time.Minute), 10*time.Minute))
	assert.True(t, q.IsStale(updated.Add(11*time.Minute), 10*time.Minute))
}

func TestQuotaStaleDetectionNonPositiveMaxAge(t *testing.T) {
	updated := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	q := Quota{LastUpdated: updated}

	assert.False(t, q.IsStale(updated.Add(24*time.Hour), 0))
	assert.False(t, q.IsStale(updated.Add(24*time.Hour), -1*time.Minute))
}

func TestQuotaStaleDetectionZeroLastUpdated(t *testing.T) {
	assert.True(t, Quota{}.IsStale(time.Now(), time.Hour))
}

func TestQuotaMostUsed(t *testing.T) {
	q := Quota{Models: []ModelQuota{
		{Name: "gemini-3-pro", Percentage: 40},
		{Name: "claude-sonnet-4-5", Percentage: 85},
		{Name: "gemini-3-flash", Percentage: 10},
	}}

	got, ok := q.MostUsed()
	require.True(t, ok)
	assert.Equal(t, "claude-sonnet-4-5", got.Name)

	_, ok = Quota{}.MostUsed()
	assert.False(t, ok)
}

func TestModelQuotaRemainingClamps(t *testing.T) {
	tests := []struct {
		name string
		used int
		want int
	}{
		{name: "half", used: 50, want: 50},
		{name: "over", used: 130, want: 0},
		{name: "negative", used: -4, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModelQuota{Percentage: tt.used}.Remaining())
		})
	}
}

func TestAccountCloneDetachesQuota(t *testing.T) {
	original := Account{
		ID:    "acc-1",
		Email: "a@example.com",
		Quota: &Quota{Models: []ModelQuota{{Name: "m", Percentage: 10}}},
	}

	cloned := original.Clone()
	cloned.Quota.Models[0].Percentage = 99
	cloned.Quota.IsForbidden = true

	assert.Equal(t, 10, original.Quota.Models[0].Percentage)
	assert.False(t, original.Quota.IsForbidden)
	assert.Nil(t, CloneAccounts(nil))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{email: "user@example.com", valid: true},
		{email: "  user@example.com  ", valid: true},
		{email: "", valid: false},
		{email: "@example.com", valid: false},
		{email: "user@", valid: false},
		{email: "us er@example.com", valid: false},
		{email: "no-at-sign", valid: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.email), func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidEmail)
		})
	}
}

func TestAccountDisplayNameFallsBackToEmail(t *testing.T) {
	assert.Equal(t, "Work", Account{Name: " Work ", Email: "w@example.com"}.DisplayName())
	assert.Equal(t, "w@example.com", Account{Email: "w@example.com"}.DisplayName())
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsPermanent(fmt.Errorf("refresh: %w", ErrTokenRevoked)))
	assert.True(t, IsPermanent(ErrForbidden))
	assert.False(t, IsPermanent(ErrRateLimited))
	assert.True(t, IsRetryable(fmt.Errorf("fetch quota: %w", ErrRateLimited)))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestRefreshTokenSecretRef(t *testing.T) {
	assert.Equal(t, "ag/accounts/acc-1/refresh_token", RefreshTokenSecretRef("acc-1"))
	assert.Equal(t, "12345678", AccountID("1234567890").Short())
}

func TestRateLimitErrorMessage(t *testing.T) {
	err := fmt.Errorf("fetch quota: %w", &RateLimitError{RetryAfter: 90 * time.Second})

	assert.True(t, IsRetryable(err))
	assert.EqualError(t, err, "fetch quota: rate limited, retry in 1m30s")

	var limited *RateLimitError
	require.ErrorAs(t, err, &limited)
	assert.Equal(t, 90*time.Second, limited.RetryAfter)

	assert.EqualError(t, &RateLimitError{}, "rate limited")
}
