package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloud-ru/finance-calculator-go/internal/config"
	"github.com/cloud-ru/finance-calculator-go/internal/metrics"
	"go.uber.org/zap"
)

// Ключи коллекций в хранилище
const (
	KeyTransactions = "@transactions"
	KeyBudgets      = "@budgets"
	KeyScenarios    = "@scenarios"
	KeySettings     = "@settings"
)

// AllKeys все ключи, которые очищаются и экспортируются вместе
var AllKeys = []string{KeyTransactions, KeyBudgets, KeyScenarios, KeySettings}

// ErrNotFound возвращается, когда запись с указанным id отсутствует
var ErrNotFound = errors.New("запись не найдена")

// Store хранит сериализованные коллекции по ключу
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Pinger реализуется хранилищами с сетевым подключением
type Pinger interface {
	Ping(ctx context.Context) error
}

// New создаёт хранилище по настройкам STORAGE_BACKEND
func New(cfg *config.Config, logger *zap.Logger) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.StorageBackend {
	case config.StorageMemory:
		store = NewMemoryStore()
	case config.StorageFile:
		store, err = NewFileStore(cfg.DataDir, cfg.StoragePassphrase)
	case config.StorageRedis:
		store, err = NewRedisStore(cfg.RedisAddr)
	default:
		err = fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("хранилище инициализировано",
		zap.String("backend", cfg.StorageBackend),
		zap.Bool("encrypted", cfg.StorageBackend == config.StorageFile && cfg.StoragePassphrase != ""),
	)
	return &instrumented{Store: store, backend: cfg.StorageBackend}, nil
}

// instrumented считает операции с хранилищем
type instrumented struct {
	Store
	backend string
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := s.Store.Get(ctx, key)
	metrics.StorageOperations.WithLabelValues(s.backend, "get", metrics.Status(err)).Inc()
	return data, ok, err
}

func (s *instrumented) Set(ctx context.Context, key string, value []byte) error {
	err := s.Store.Set(ctx, key, value)
	metrics.StorageOperations.WithLabelValues(s.backend, "set", metrics.Status(err)).Inc()
	return err
}

func (s *instrumented) Delete(ctx context.Context, key string) error {
	err := s.Store.Delete(ctx, key)
	metrics.StorageOperations.WithLabelValues(s.backend, "delete", metrics.Status(err)).Inc()
	return err
}

func (s *instrumented) Ping(ctx context.Context) error {
	p, ok := s.Store.(Pinger)
	if !ok {
		return nil
	}
	err := p.Ping(ctx)
	metrics.StorageOperations.WithLabelValues(s.backend, "ping", metrics.Status(err)).Inc()
	return err
}
