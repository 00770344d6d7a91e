package api

import "github.com/swaggo/swag"

const swaggerInstanceName = "swagger"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/vectors": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["vectors"],
                "summary": "List vectors",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["vectors"],
                "summary": "Create a vector",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/vectors/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["vectors"],
                "summary": "Inspect a vector",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["vectors"],
                "summary": "Delete a vector",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/vectors/{id}/elements": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["vectors"],
                "summary": "Insert an element at its sorted position",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Duplicate key"},
                    "413": {"description": "Capacity exceeded"}
                }
            }
        },
        "/vectors/{id}/elements/{value}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["vectors"],
                "summary": "Find an element",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/vectors/{id}/retain": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["vectors"],
                "summary": "Keep only the elements inside a range",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/vectors/{id}/grow": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["vectors"],
                "summary": "Grow the vector's buffer",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/fees/apply": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["fees"],
                "summary": "Apply a fee ratio to an amount",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/fees/compose": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["fees"],
                "summary": "Compose two fee ratios",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8090",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Brisinga REST API",
	Description:      "REST API for Brisinga, a fixed-capacity packed vector store.",
	InfoInstanceName: swaggerInstanceName,
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
