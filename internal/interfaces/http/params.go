package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// param devuelve una copia del parámetro de ruta. Fiber entrega strings que apuntan al buffer
// de fasthttp, que se reutiliza en la siguiente petición; los casos de uso pueden retenerlos.
func param(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.Params(key))
}

// query igual que param, para parámetros de query string.
func query(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.Query(key))
}
