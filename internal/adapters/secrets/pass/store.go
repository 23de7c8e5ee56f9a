package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/antigravity-accounts-cli/internal/domain"
	"github.com/bnema/antigravity-accounts-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const notInStore = "is not in the password store"

type runner func(ctx context.Context, env []string, stdin string, args ...string) (stdout, stderr string, err error)

// Store keeps refresh tokens in the user's pass(1) store. The token is the
// first line of the entry, following the pass convention.
type Store struct {
	run      runner
	storeDir string
}

var _ ports.SecretStore = (*Store)(nil)

type Option func(*Store)

// WithStoreDir points pass at a store other than ~/.password-store.
func WithStoreDir(dir string) Option {
	return func(s *Store) {
		s.storeDir = strings.TrimSpace(dir)
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{run: execPass}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	token := strings.TrimSpace(value)
	if token == "" || strings.ContainsAny(token, "\r\n") {
		return fmt.Errorf("pass insert %q: %w", key, domain.ErrInvalidToken)
	}

	if _, stderr, err := s.exec(ctx, token+"\n", "insert", "--multiline", "--force", key); err != nil {
		return passError("insert", key, err, stderr)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.exec(ctx, "", "show", key)
	if err != nil {
		return "", passError("show", key, err, stderr)
	}

	first, _, _ := strings.Cut(stdout, "\n")
	token := strings.TrimSpace(first)
	if token == "" {
		return "", fmt.Errorf("pass show %q: empty entry: %w", key, domain.ErrSecretNotFound)
	}
	return token, nil
}

// Delete treats a missing entry as already deleted.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.exec(ctx, "", "rm", "--force", key)
	if err != nil {
		if strings.Contains(stderr, notInStore) {
			return nil
		}
		return passError("rm", key, err, stderr)
	}
	return nil
}

func (s *Store) exec(ctx context.Context, stdin string, args ...string) (string, string, error) {
	var env []string
	if s.storeDir != "" {
		env = append(env, "PASSWORD_STORE_DIR="+s.storeDir)
	}
	return s.run(ctx, env, stdin, args...)
}

func execPass(ctx context.Context, env []string, stdin string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if errors.Is(err, exec.ErrNotFound) {
		return "", "", ErrUnavailable
	}
	if err != nil {
		return "", "", fmt.Errorf("locate pass: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func passError(op, key string, err error, stderr string) error {
	switch {
	case strings.Contains(stderr, notInStore):
		return fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
	case stderr == "":
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	default:
		return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	}
}
