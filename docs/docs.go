// Package docs registra el documento OpenAPI de la API.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// SwaggerJSON documento OpenAPI servido en /docs.
//
//go:embed swagger.json
var SwaggerJSON []byte

// SwaggerInfo metadatos del documento para swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Warehouse API",
	Description:      "API de inventario de almacén.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(SwaggerJSON),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
