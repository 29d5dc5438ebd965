// Package swagger registers the OpenAPI description served under /swagger.
// It mirrors the swag annotations on the HTTP handlers.
package swagger

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
        "/diff": {
            "post": {
                "description": "Computes the minimal edit script turning old into new and the surface notifications it produces.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "Diff Lists",
                "parameters": [
                    {
                        "description": "Old and new items",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/lists.DiffRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Edit Script", "schema": {"$ref": "#/definitions/lists.DiffResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/integrity": {
            "get": {
                "description": "Performs all available integrity checks (Structure, Archive, Server).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Run All Integrity Checks",
                "responses": {
                    "200": {"description": "Combined Report", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/integrity/archive": {
            "get": {
                "description": "Checks that every stored list revision has an archived snapshot. Optionally re-archives the missing ones.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Archive",
                "parameters": [
                    {"type": "boolean", "description": "Archive missing revisions", "name": "fix", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Archive Report", "schema": {"$ref": "#/definitions/checks.ArchiveReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Database Not Configured", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/integrity/server": {
            "get": {
                "description": "Checks if the database schema matches the list revision model.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Server Schema",
                "responses": {
                    "200": {"description": "Server Check Report", "schema": {"$ref": "#/definitions/checks.ServerReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Database Not Configured", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/integrity/structure": {
            "get": {
                "description": "Checks if the archive folder exists in the storage bucket. Optionally creates it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Structure",
                "parameters": [
                    {"type": "boolean", "description": "Fix missing folders", "name": "fix", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Structure Report", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/lists": {
            "get": {
                "description": "Returns the names of all stored lists.",
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "List Names",
                "responses": {
                    "200": {"description": "List Names", "schema": {"type": "array", "items": {"type": "string"}}},
                    "503": {"description": "Store Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/lists/{name}": {
            "get": {
                "description": "Returns the latest revision of a list.",
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "Get List",
                "parameters": [
                    {"type": "string", "description": "List name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Snapshot", "schema": {"$ref": "#/definitions/models.Snapshot"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "description": "Stores a new revision of a list and returns the edit script from the previous revision.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "Update List",
                "parameters": [
                    {"type": "string", "description": "List name", "name": "name", "in": "path", "required": true},
                    {
                        "description": "New items",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/lists.UpdateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Update Result", "schema": {"$ref": "#/definitions/lists.UpdateResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Revision Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Store Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/lists/{name}/archive": {
            "get": {
                "description": "Returns the revision numbers of a list present in object storage.",
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "List Archived Revisions",
                "parameters": [
                    {"type": "string", "description": "List name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Revision Numbers", "schema": {"type": "array", "items": {"type": "integer"}}},
                    "503": {"description": "Archive Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/lists/{name}/revisions": {
            "get": {
                "description": "Returns the most recent revisions of a list, newest first.",
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "List Revisions",
                "parameters": [
                    {"type": "string", "description": "List name", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "description": "Maximum number of revisions", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Revisions", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Revision"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/lists/{name}/revisions/{revision}": {
            "get": {
                "description": "Returns one revision of a list from the database or the archive.",
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "Get Revision",
                "parameters": [
                    {"type": "string", "description": "List name", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "description": "Revision number", "name": "revision", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Snapshot", "schema": {"$ref": "#/definitions/models.Snapshot"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "checks.ArchiveReport": {
            "type": "object",
            "properties": {
                "checked": {"type": "integer"},
                "matched": {"type": "boolean"},
                "missing": {"type": "array", "items": {"type": "string"}},
                "unarchived": {"type": "array", "items": {"type": "string"}}
            }
        },
        "checks.ServerReport": {
            "type": "object",
            "properties": {
                "dialect": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "matched": {"type": "boolean"},
                "tables": {"type": "object", "additionalProperties": {"$ref": "#/definitions/checks.TableReport"}}
            }
        },
        "checks.TableReport": {
            "type": "object",
            "properties": {
                "missing_columns": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "type_mismatches": {"type": "array", "items": {"type": "string"}}
            }
        },
        "lists.DiffRequest": {
            "type": "object",
            "properties": {
                "detect_moves": {"type": "boolean"},
                "new": {"type": "array", "items": {"$ref": "#/definitions/models.Item"}},
                "old": {"type": "array", "items": {"$ref": "#/definitions/models.Item"}},
                "strict": {"type": "boolean"}
            }
        },
        "lists.DiffResponse": {
            "type": "object",
            "properties": {
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Notification"}},
                "script": {"$ref": "#/definitions/reconcile.Script"}
            }
        },
        "lists.UpdateRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.Item"}}
            }
        },
        "lists.UpdateResult": {
            "type": "object",
            "properties": {
                "list": {"type": "string"},
                "previous_revision": {"type": "integer"},
                "revision": {"type": "integer"},
                "script": {"$ref": "#/definitions/reconcile.Script"},
                "unchanged": {"type": "boolean"}
            }
        },
        "models.Item": {
            "type": "object",
            "properties": {
                "data": {"type": "object", "additionalProperties": true},
                "id": {"type": "string"}
            }
        },
        "models.Revision": {
            "type": "object",
            "properties": {
                "archive_key": {"type": "string"},
                "changes": {"type": "integer"},
                "created_at": {"type": "string"},
                "inserts": {"type": "integer"},
                "list": {"type": "string"},
                "moves": {"type": "integer"},
                "removes": {"type": "integer"},
                "revision": {"type": "integer"},
                "size": {"type": "integer"}
            }
        },
        "models.Snapshot": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.Item"}},
                "list": {"type": "string"},
                "revision": {"type": "integer"},
                "summary": {"$ref": "#/definitions/reconcile.Summary"}
            }
        },
        "reconcile.Edit": {
            "type": "object",
            "properties": {
                "item": {"$ref": "#/definitions/models.Item"},
                "op": {"type": "string", "enum": ["insert", "remove", "move", "change"]},
                "position": {"type": "integer"},
                "to_position": {"type": "integer"}
            }
        },
        "reconcile.Notification": {
            "type": "object",
            "properties": {
                "op": {"type": "string"},
                "position": {"type": "integer"},
                "size": {"type": "integer"},
                "to_position": {"type": "integer"}
            }
        },
        "reconcile.Script": {
            "type": "object",
            "properties": {
                "edits": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Edit"}},
                "new_len": {"type": "integer"},
                "old_len": {"type": "integer"},
                "summary": {"$ref": "#/definitions/reconcile.Summary"}
            }
        },
        "reconcile.Summary": {
            "type": "object",
            "properties": {
                "changes": {"type": "integer"},
                "inserts": {"type": "integer"},
                "matched": {"type": "integer"},
                "moves": {"type": "integer"},
                "removes": {"type": "integer"},
                "stable": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "List Reconciler API",
	Description:      "API for diffing and storing list snapshots.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
