package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
)

// respond escribe el envelope con el status que trae.
func respond[T any](c *fiber.Ctx, env dto.Envelope[T]) error {
	return c.Status(env.StatusCode).JSON(env)
}

// respondErr traduce un error de caso de uso a envelope.
func respondErr(c *fiber.Ctx, err error) error {
	return respond(c, dto.FromError[any](err))
}

// fail responde un envelope de error sin payload.
func fail(c *fiber.Ctx, code, message string) error {
	return respond(c, dto.Fail[any](code, message))
}

// success responde SUCCESS/200 con payload.
func success[T any](c *fiber.Ctx, data T, message string) error {
	return respond(c, dto.Success(data, message))
}

// created responde SUCCESS/201 con payload.
func created[T any](c *fiber.Ctx, data T, message string) error {
	return respond(c, dto.Created(data, message))
}

// pageFromQuery lee limit/offset con los valores por defecto de PageRequest.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	p.DefaultPage()
	return p
}
