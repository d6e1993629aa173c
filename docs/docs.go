// Package docs holds the OpenAPI document served under /docs. It is kept by
// hand in swag's registration format; update it with the handler annotations.
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
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/main.HealthResponse"}
                    }
                }
            }
        },
        "/project-info": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the project bound to the API key",
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Project info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/fiber.ProjectInfoResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/stats/events": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the project's events in the range, oldest first. Date-only bounds cover whole UTC days; the range applies only when both bounds are set.",
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Raw events",
                "parameters": [
                    {"type": "string", "description": "From (YYYY-MM-DD or RFC3339)", "name": "from", "in": "query"},
                    {"type": "string", "description": "To (YYYY-MM-DD or RFC3339)", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/fiber.EventResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/stats/top-events": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns count and last_seen per event name, plus the events they were computed from. Rows are unsorted.",
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Top events",
                "parameters": [
                    {"type": "string", "description": "From (YYYY-MM-DD or RFC3339)", "name": "from", "in": "query"},
                    {"type": "string", "description": "To (YYYY-MM-DD or RFC3339)", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/fiber.TopEventsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/track": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Stores an event directly (201) or queues it for the worker (202).\nA 202 only confirms the enqueue; the event is not durable in the store yet.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "Track an event",
                "parameters": [
                    {"description": "Event payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/fiber.TrackEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Stored", "schema": {"$ref": "#/definitions/fiber.TrackEventResponse"}},
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/fiber.TrackEventResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/track/batch": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Stores each event directly, in order. Every item is attempted even if an earlier one fails.\nAn item that fails validation counts as failed; the rest are still stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "Track a batch of events",
                "parameters": [
                    {"description": "Batch payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/fiber.TrackBatchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/fiber.TrackBatchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/worker-status": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Reports whether a queue worker has refreshed its heartbeat recently",
                "produces": ["application/json"],
                "tags": ["Worker"],
                "summary": "Worker liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/fiber.WorkerStatusResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "fiber.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid_event"},
                "message": {"type": "string", "example": "Event payload is invalid"}
            }
        },
        "fiber.EventResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string", "example": "2024-01-01T10:00:00.000Z"},
                "event_name": {"type": "string", "example": "signup"}
            }
        },
        "fiber.ProjectInfoResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "project_id": {"type": "string"}
            }
        },
        "fiber.TopEventResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 42},
                "event_name": {"type": "string", "example": "signup"},
                "last_seen": {"type": "string", "example": "2024-01-01T10:00:00.000Z"}
            }
        },
        "fiber.TopEventsResponse": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/fiber.EventResponse"}},
                "top": {"type": "array", "items": {"$ref": "#/definitions/fiber.TopEventResponse"}}
            }
        },
        "fiber.TrackBatchRequest": {
            "type": "object",
            "required": ["events"],
            "properties": {
                "events": {"type": "array", "maxItems": 500, "minItems": 1, "items": {"$ref": "#/definitions/fiber.TrackEventRequest"}}
            }
        },
        "fiber.TrackBatchResponse": {
            "type": "object",
            "properties": {
                "stored": {"type": "integer"},
                "success": {"type": "boolean"}
            }
        },
        "fiber.TrackEventRequest": {
            "description": "Event submission DTO. useRedis (or use_queue) routes the event through the queue.",
            "type": "object",
            "required": ["event"],
            "properties": {
                "event": {"type": "string", "maxLength": 128, "example": "signup_completed"},
                "properties": {"type": "object", "additionalProperties": {}},
                "sessionId": {"type": "string", "maxLength": 256},
                "use_queue": {"type": "boolean"},
                "useRedis": {"type": "boolean"},
                "userId": {"type": "string", "maxLength": 256}
            }
        },
        "fiber.TrackEventResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "stored"},
                "success": {"type": "boolean"}
            }
        },
        "fiber.WorkerStatusResponse": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean", "example": true},
                "last_beat_at": {"type": "integer", "example": 1700000000000},
                "ttl_remaining": {"type": "integer", "example": 17}
            }
        },
        "main.HealthResponse": {
            "type": "object",
            "properties": {
                "env": {"type": "string", "example": "development"},
                "status": {"type": "string", "example": "ok"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "x-api-key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Pulseboard API",
	Description:      "Event ingestion and stats API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
