package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/cache"
)

// HeaderIdempotencyKey cabecera con la que el cliente deduplica reintentos.
const HeaderIdempotencyKey = "Idempotency-Key"

// AccessLog registra cada petición con zerolog.
func AccessLog(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error().Err(err)
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	s, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return s
}

// idempotencyStore lo implementa *cache.IdempotencyStore.
type idempotencyStore interface {
	Begin(ctx context.Context, key string) (*cache.Entry, bool, error)
	Complete(ctx context.Context, key string, status int, body []byte) error
	Release(ctx context.Context, key string) error
}

// Idempotency reproduce la respuesta guardada cuando se repite un Idempotency-Key.
// Sin cabecera o sin store la petición pasa directo. Las respuestas 5xx no se guardan
// para que el cliente pueda reintentar.
func Idempotency(store idempotencyStore, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if store == nil || key == "" {
			return c.Next()
		}
		scoped := GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + key
		ctx := c.UserContext()

		entry, reserved, err := store.Begin(ctx, scoped)
		if err != nil {
			// Redis caído: mejor procesar que bloquear ventas.
			log.Warn().Err(err).Str("key", key).Msg("idempotency no disponible")
			return c.Next()
		}
		if !reserved {
			if entry.Pending {
				return fail(c, dto.CodeIdempotencyReplay, "ya hay una petición en curso con este Idempotency-Key")
			}
			c.Set("Idempotent-Replayed", "true")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Status(entry.Status).Send(entry.Body)
		}

		if err := c.Next(); err != nil {
			_ = store.Release(ctx, scoped)
			return err
		}
		status := c.Response().StatusCode()
		if status >= 500 {
			if err := store.Release(ctx, scoped); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("liberar idempotency key")
			}
			return nil
		}
		body := append([]byte(nil), c.Response().Body()...)
		if err := store.Complete(ctx, scoped, status, body); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("guardar respuesta idempotente")
		}
		return nil
	}
}
