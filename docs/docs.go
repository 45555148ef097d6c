// Package docs registers the FleetSync OpenAPI document with swag.
// Regenerate with: swag init -g cmd/fleetsync/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/healthz": {"get": {"tags": ["health"], "summary": "Liveness check", "security": [], "responses": {"200": {"description": "OK"}}}},
        "/readyz": {"get": {"tags": ["health"], "summary": "Readiness check", "security": [], "responses": {"200": {"description": "OK"}, "503": {"description": "Database unreachable"}}}},
        "/version": {"get": {"tags": ["health"], "summary": "Build version", "security": [], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/sync/{entity}": {"post": {
            "tags": ["sync"], "summary": "Trigger a sync run",
            "parameters": [{"name": "entity", "in": "path", "required": true, "type": "string", "enum": ["drivers", "vehicles", "all"]}],
            "responses": {"200": {"description": "Run finished, completed or failed"}, "400": {"description": "Unknown entity"}, "409": {"description": "A run of this entity is in progress"}}
        }},
        "/api/v1/sync/status": {"get": {"tags": ["sync"], "summary": "Last completed and in-progress runs", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/sync/history": {"get": {
            "tags": ["sync"], "summary": "Recent runs, newest first",
            "parameters": [
                {"name": "entity", "in": "query", "type": "string", "enum": ["drivers", "vehicles", "all"]},
                {"name": "limit", "in": "query", "type": "integer", "default": 20, "maximum": 100}
            ],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad parameter"}}
        }},
        "/api/v1/sync/runs/{id}": {"get": {
            "tags": ["sync"], "summary": "Get a sync run",
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
        }},
        "/api/v1/wincpl/import": {"post": {
            "tags": ["wincpl"], "summary": "Import Wincpl XML",
            "consumes": ["multipart/form-data", "application/json"],
            "parameters": [{"name": "files", "in": "formData", "type": "file"}],
            "responses": {"200": {"description": "Import report with per-file errors"}, "400": {"description": "No files"}, "415": {"description": "Unsupported content type"}}
        }},
        "/api/v1/drivers": {"get": {
            "tags": ["drivers"], "summary": "List drivers",
            "parameters": [
                {"name": "status", "in": "query", "type": "string", "enum": ["disponible", "indisponible", "occupe"]},
                {"name": "team_id", "in": "query", "type": "integer"},
                {"name": "q", "in": "query", "type": "string"},
                {"name": "limit", "in": "query", "type": "integer"},
                {"name": "offset", "in": "query", "type": "integer"}
            ],
            "responses": {"200": {"description": "OK"}}
        }},
        "/api/v1/drivers/{id}": {
            "get": {"tags": ["drivers"], "summary": "Get a driver", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["drivers"], "summary": "Edit driver manual fields", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "patch", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "404": {"description": "Not found"}}}
        },
        "/api/v1/vehicles": {"get": {
            "tags": ["vehicles"], "summary": "List vehicles",
            "parameters": [
                {"name": "source", "in": "query", "type": "string", "enum": ["myrentcar", "wincpl"]},
                {"name": "status", "in": "query", "type": "string", "enum": ["disponible", "en_service", "maintenance", "hors_service"]},
                {"name": "q", "in": "query", "type": "string"},
                {"name": "limit", "in": "query", "type": "integer"},
                {"name": "offset", "in": "query", "type": "integer"}
            ],
            "responses": {"200": {"description": "OK"}}
        }},
        "/api/v1/vehicles/{id}": {
            "get": {"tags": ["vehicles"], "summary": "Get a vehicle", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["vehicles"], "summary": "Edit vehicle manual fields", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "patch", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "404": {"description": "Not found"}}}
        },
        "/api/v1/events": {"get": {
            "tags": ["events"], "summary": "Sync activity log",
            "parameters": [
                {"name": "type", "in": "query", "type": "string"},
                {"name": "run_id", "in": "query", "type": "string"},
                {"name": "limit", "in": "query", "type": "integer", "default": 50, "maximum": 500}
            ],
            "responses": {"200": {"description": "OK"}}
        }},
        "/api/v1/admin/cache/stats": {"get": {"tags": ["admin"], "summary": "Read cache stats", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FleetSync API",
	Description:      "Driver and vehicle cache synchronisation from the HR, rental and Wincpl sources.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
