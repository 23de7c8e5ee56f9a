package chain

import (
	"context"
	"errors"
	"fmt"
	"io"

	filestore "github.com/bnema/antigravity-accounts-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/antigravity-accounts-cli/internal/adapters/secrets/pass"
	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// Store tries primary first and falls back to fallback on any error other
// than context cancellation.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   logrus.FieldLogger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback, logger: discardLogger()}, nil
}

// NewPassFirstWithFileFallback keeps tokens in pass when it works and in
// files under fileRoot otherwise. An empty passDir uses the pass default.
func NewPassFirstWithFileFallback(passDir, fileRoot string, logger logrus.FieldLogger) (*Store, error) {
	store, err := NewStoreChecked(passstore.NewStore(passstore.WithStoreDir(passDir)), filestore.NewStore(fileRoot))
	if err != nil {
		return nil, err
	}
	return store.WithLogger(logger), nil
}

func (s *Store) WithLogger(logger logrus.FieldLogger) *Store {
	if logger != nil {
		s.logger = logger.WithField("component", "secrets")
	}
	return s
}

func (s *Store) logFallback(op, key string, err error) {
	s.logger.WithError(err).WithFields(logrus.Fields{"op": op, "key": key}).Debug("primary secret backend failed, trying fallback")
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	s.logFallback("put", key, err)
	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	s.logFallback("get", key, err)
	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete removes the key from both backends, since a token written while
// pass was unavailable lives only in the fallback.
func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := ignoreMissing(s.primary.Delete(ctx, key))
	if primaryErr != nil && shouldSkipFallback(primaryErr) {
		return primaryErr
	}
	if primaryErr != nil {
		s.logFallback("delete", key, primaryErr)
	}

	fallbackErr := ignoreMissing(s.fallback.Delete(ctx, key))
	switch {
	case primaryErr == nil && fallbackErr == nil:
		return nil
	case primaryErr == nil:
		s.logger.WithError(fallbackErr).WithField("key", key).Debug("fallback secret delete failed")
		return nil
	case fallbackErr == nil:
		return nil
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", primaryErr, fallbackErr)
	}
}

func ignoreMissing(err error) error {
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil
	}
	return err
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
