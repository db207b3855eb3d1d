// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package store contains the NATS JetStream key-value repositories for the
// notetaker service entities.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// NATS Key-Value store bucket names
const (
	KVStoreNameWebhookEvents = "webhook-events"
	KVStoreNameSessions      = "notetaker-sessions"
	KVStoreNameTranscripts   = "transcripts"
	KVStoreNameTasks         = "tasks"
	KVStoreNameInsights      = "insights"
	KVStoreNameSolutions     = "solutions"
)

// tracerName is the instrumentation name for the store package.
const tracerName = "github.com/impactops/notetaker-service/internal/infrastructure/store"

// INatsKeyValue is the NATS KV interface the repositories need. It matches
// jetstream.KeyValue and allows for mocking in tests.
type INatsKeyValue interface {
	ListKeys(context.Context, ...jetstream.WatchOpt) (jetstream.KeyLister, error)
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(context.Context, string, []byte) (uint64, error)
	Create(context.Context, string, []byte, ...jetstream.KVCreateOpt) (uint64, error)
	Update(context.Context, string, []byte, uint64) (uint64, error)
	Delete(context.Context, string, ...jetstream.KVDeleteOpt) error
}

// Real JetStream buckets must satisfy the repository interface.
var _ INatsKeyValue = (jetstream.KeyValue)(nil)

// NatsBaseRepository provides common NATS KV operations shared by all
// entity repositories.
type NatsBaseRepository[T any] struct {
	kvStore    INatsKeyValue
	entityName string // Used in error messages (e.g., "session", "transcript")
}

// NewNatsBaseRepository creates a new base repository for NATS KV operations
func NewNatsBaseRepository[T any](kvStore INatsKeyValue, entityName string) *NatsBaseRepository[T] {
	return &NatsBaseRepository[T]{
		kvStore:    kvStore,
		entityName: entityName,
	}
}

// IsReady checks if the repository is ready for use
func (r *NatsBaseRepository[T]) IsReady() bool {
	return r.kvStore != nil
}

func (r *NatsBaseRepository[T]) startSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "nats"),
		attribute.String("db.operation", operation),
		attribute.String("db.nats.entity", r.entityName),
	}
	if key != "" {
		attrs = append(attrs, attribute.String("db.nats.key", key))
	}
	return otel.Tracer(tracerName).Start(ctx, "nats.kv."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// GetRaw retrieves a raw entry from the NATS KV store
func (r *NatsBaseRepository[T]) GetRaw(ctx context.Context, key string) (jetstream.KeyValueEntry, error) {
	ctx, span := r.startSpan(ctx, "get", key)
	defer span.End()

	if !r.IsReady() {
		return nil, spanError(span, domain.NewUnavailableError(fmt.Sprintf("%s repository is not available", r.entityName)))
	}

	entry, err := r.kvStore.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, spanError(span, domain.NewNotFoundError(
				fmt.Sprintf("%s with key '%s' not found", r.entityName, key), err))
		}
		slog.ErrorContext(ctx, fmt.Sprintf("error getting %s from NATS KV", r.entityName),
			logging.ErrKey, err, "key", key)
		return nil, spanError(span, domain.NewInternalError(
			fmt.Sprintf("failed to retrieve %s from store", r.entityName), err))
	}

	span.SetStatus(codes.Ok, "")
	return entry, nil
}

// Get retrieves and unmarshals an entity from the NATS KV store
func (r *NatsBaseRepository[T]) Get(ctx context.Context, key string) (*T, error) {
	entity, _, err := r.GetWithRevision(ctx, key)
	return entity, err
}

// GetWithRevision retrieves an entity with its revision from the NATS KV store
func (r *NatsBaseRepository[T]) GetWithRevision(ctx context.Context, key string) (*T, uint64, error) {
	entry, err := r.GetRaw(ctx, key)
	if err != nil {
		return nil, 0, err
	}

	entity, err := r.Unmarshal(ctx, entry)
	if err != nil {
		return nil, 0, domain.NewInternalError(
			fmt.Sprintf("failed to unmarshal %s data", r.entityName), err)
	}

	return entity, entry.Revision(), nil
}

// Unmarshal unmarshals a NATS KV entry into the entity type
func (r *NatsBaseRepository[T]) Unmarshal(ctx context.Context, entry jetstream.KeyValueEntry) (*T, error) {
	var entity T
	if err := json.Unmarshal(entry.Value(), &entity); err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("error unmarshaling %s", r.entityName),
			logging.ErrKey, err)
		return nil, err
	}

	return &entity, nil
}

// Marshal marshals an entity to JSON bytes
func (r *NatsBaseRepository[T]) Marshal(ctx context.Context, entity *T) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("error marshaling %s", r.entityName),
			logging.ErrKey, err)
		return nil, err
	}

	return data, nil
}

// Exists checks if an entity exists in the store
func (r *NatsBaseRepository[T]) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.Get(ctx, key)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create creates a new entity in the store using Put (upsert semantics)
func (r *NatsBaseRepository[T]) Create(ctx context.Context, key string, entity *T) error {
	ctx, span := r.startSpan(ctx, "put", key)
	defer span.End()

	if !r.IsReady() {
		return spanError(span, domain.NewUnavailableError(fmt.Sprintf("%s repository is not available", r.entityName)))
	}

	data, err := r.Marshal(ctx, entity)
	if err != nil {
		return spanError(span, domain.NewInternalError(fmt.Sprintf("failed to marshal %s", r.entityName), err))
	}

	if _, err = r.kvStore.Put(ctx, key, data); err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("error creating %s in NATS KV", r.entityName),
			logging.ErrKey, err, "key", key)
		return spanError(span, domain.NewInternalError(fmt.Sprintf("failed to create %s in store", r.entityName), err))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// CreateIfAbsent creates a new entity only if the key does not already
// exist. A duplicate key yields a conflict error, which is what gives the
// webhook event store its insert-if-absent idempotency.
func (r *NatsBaseRepository[T]) CreateIfAbsent(ctx context.Context, key string, entity *T) error {
	ctx, span := r.startSpan(ctx, "create", key)
	defer span.End()

	if !r.IsReady() {
		return spanError(span, domain.NewUnavailableError(fmt.Sprintf("%s repository is not available", r.entityName)))
	}

	data, err := r.Marshal(ctx, entity)
	if err != nil {
		return spanError(span, domain.NewInternalError(fmt.Sprintf("failed to marshal %s", r.entityName), err))
	}

	if _, err = r.kvStore.Create(ctx, key, data); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return spanError(span, domain.NewConflictError(
				fmt.Sprintf("%s with key '%s' already exists", r.entityName, key), err))
		}
		slog.ErrorContext(ctx, fmt.Sprintf("error creating %s in NATS KV", r.entityName),
			logging.ErrKey, err, "key", key)
		return spanError(span, domain.NewInternalError(fmt.Sprintf("failed to create %s in store", r.entityName), err))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Update updates an existing entity in the store with optimistic concurrency control
func (r *NatsBaseRepository[T]) Update(ctx context.Context, key string, entity *T, revision uint64) error {
	ctx, span := r.startSpan(ctx, "update", key)
	span.SetAttributes(attribute.Int64("db.nats.revision", int64(revision)))
	defer span.End()

	if !r.IsReady() {
		return spanError(span, domain.NewUnavailableError(fmt.Sprintf("%s repository is not available", r.entityName)))
	}

	data, err := r.Marshal(ctx, entity)
	if err != nil {
		return spanError(span, domain.NewInternalError(fmt.Sprintf("failed to marshal %s", r.entityName), err))
	}

	if _, err = r.kvStore.Update(ctx, key, data, revision); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return spanError(span, domain.NewNotFoundError(fmt.Sprintf("%s not found", r.entityName), err))
		}
		if strings.Contains(err.Error(), "wrong last sequence") {
			return spanError(span, domain.NewConflictError(fmt.Sprintf("%s has been modified", r.entityName), err))
		}
		slog.ErrorContext(ctx, fmt.Sprintf("error updating %s in NATS KV", r.entityName),
			logging.ErrKey, err, "key", key, "revision", revision)
		return spanError(span, domain.NewInternalError(fmt.Sprintf("failed to update %s in store", r.entityName), err))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete removes an entity from the store with optimistic concurrency control
func (r *NatsBaseRepository[T]) Delete(ctx context.Context, key string, revision uint64) error {
	ctx, span := r.startSpan(ctx, "delete", key)
	span.SetAttributes(attribute.Int64("db.nats.revision", int64(revision)))
	defer span.End()

	if !r.IsReady() {
		return spanError(span, domain.NewUnavailableError(fmt.Sprintf("%s repository is not available", r.entityName)))
	}

	err := r.kvStore.Delete(ctx, key, jetstream.LastRevision(revision))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return spanError(span, domain.NewNotFoundError(fmt.Sprintf("%s not found", r.entityName), err))
		}
		if strings.Contains(err.Error(), "wrong last sequence") {
			return spanError(span, domain.NewConflictError(fmt.Sprintf("%s has been modified", r.entityName), err))
		}
		slog.ErrorContext(ctx, fmt.Sprintf("error deleting %s from NATS KV", r.entityName),
			logging.ErrKey, err, "key", key, "revision", revision)
		return spanError(span, domain.NewInternalError(fmt.Sprintf("failed to delete %s from store", r.entityName), err))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// ListKeys lists all keys in the store
func (r *NatsBaseRepository[T]) ListKeys(ctx context.Context) ([]string, error) {
	ctx, span := r.startSpan(ctx, "list_keys", "")
	defer span.End()

	if !r.IsReady() {
		return nil, spanError(span, domain.NewUnavailableError(fmt.Sprintf("%s repository is not available", r.entityName)))
	}

	lister, err := r.kvStore.ListKeys(ctx)
	if err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("error listing %s keys from NATS KV", r.entityName),
			logging.ErrKey, err)
		return nil, spanError(span, domain.NewInternalError(
			fmt.Sprintf("failed to list %s keys from store", r.entityName), err))
	}

	var keys []string
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	span.SetAttributes(attribute.Int("db.nats.keys_count", len(keys)))
	span.SetStatus(codes.Ok, "")
	return keys, nil
}

// ListEntities lists all entities in the store. Keys that disappear between
// the listing and the read are skipped rather than failing the whole list.
func (r *NatsBaseRepository[T]) ListEntities(ctx context.Context) ([]*T, error) {
	keys, err := r.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	var entities []*T
	for _, key := range keys {
		entity, err := r.Get(ctx, key)
		if err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
				continue
			}
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, nil
}
