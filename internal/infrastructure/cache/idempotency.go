package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "idem:"
	pendingValue = "__pending__"
	// pendingTTL acota cuánto puede quedar reservada una clave si el proceso muere a mitad.
	pendingTTL = 2 * time.Minute
)

// Entry respuesta guardada para una Idempotency-Key. Pending indica que la petición
// original todavía se está procesando.
type Entry struct {
	Status  int    `json:"status"`
	Body    []byte `json:"body"`
	Pending bool   `json:"-"`
}

// IdempotencyStore guarda la respuesta de la primera petición con cada clave.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Begin reserva la clave con SETNX. reserved=true significa que el caller es el primero
// y debe llamar Complete o Release; si no, se devuelve lo que ya hay guardado.
func (s *IdempotencyStore) Begin(ctx context.Context, key string) (entry *Entry, reserved bool, err error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, pendingValue, pendingTTL).Result()
	if err != nil {
		return nil, false, fmt.Errorf("idempotency: reservar: %w", err)
	}
	if ok {
		return nil, true, nil
	}
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expiró entre SETNX y GET: reintentar la reserva una vez.
		ok, err = s.client.SetNX(ctx, keyPrefix+key, pendingValue, pendingTTL).Result()
		if err != nil {
			return nil, false, fmt.Errorf("idempotency: reservar: %w", err)
		}
		if ok {
			return nil, true, nil
		}
		return &Entry{Pending: true}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("idempotency: leer: %w", err)
	}
	if string(raw) == pendingValue {
		return &Entry{Pending: true}, false, nil
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false, fmt.Errorf("idempotency: decodificar: %w", err)
	}
	return &e, false, nil
}

// Complete guarda la respuesta final con el TTL configurado.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, status int, body []byte) error {
	raw, err := json.Marshal(Entry{Status: status, Body: body})
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency: guardar: %w", err)
	}
	return nil
}

// Release libera la reserva para permitir reintentos (p. ej. tras un 5xx).
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
