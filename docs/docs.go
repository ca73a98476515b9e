// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Regenerate the template with `swag init -g cmd/survey-search/main.go`.
package docs

import "github.com/swaggo/swag"

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
    "paths": {
        "/search": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Search survey documents",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.searchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SearchResult"}},
                    "400": {"description": "Invalid request or missing query", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "503": {"description": "Embedding service unavailable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/search/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Recent searches",
                "parameters": [
                    {"type": "integer", "description": "Maximum entries (default 20, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.SearchLog"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/capabilities": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Runtime capabilities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Capabilities"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/feedback": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Feedback"],
                "summary": "Submit result feedback",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.feedbackRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.FeedbackResponse"}},
                    "400": {"description": "Invalid feedback type or missing search term", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/highlights": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Highlights"],
                "summary": "Render a highlighted copy",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.HighlightRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.HighlightResponse"}},
                    "400": {"description": "Missing source or keywords", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "Render failed", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/highlights/{file}": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["Highlights"],
                "summary": "Download a highlighted copy",
                "parameters": [
                    {"type": "string", "description": "File name from highlighted_url", "name": "file", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.FacetFilters": {
            "type": "object",
            "properties": {
                "organizations": {"type": "array", "items": {"type": "string"}},
                "survey_types": {"type": "array", "items": {"type": "string"}},
                "countries": {"type": "array", "items": {"type": "string"}},
                "regions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.HighlightRequest": {
            "type": "object",
            "properties": {
                "source_url": {"type": "string"},
                "term": {"type": "string"},
                "page_keywords": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "domain.SearchLog": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "query": {"type": "string"},
                "response": {"type": "object"},
                "created_at": {"type": "string"}
            }
        },
        "domain.SearchResult": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "query": {"type": "string"},
                "documents": {"type": "array", "items": {"type": "object"}},
                "match_count": {"type": "integer"},
                "message": {"type": "string"},
                "took": {"type": "integer", "example": 1500000}
            }
        },
        "domain.Capabilities": {
            "type": "object",
            "properties": {
                "search": {"type": "boolean"},
                "embedding": {"type": "boolean"},
                "oracle": {"type": "boolean"},
                "lock_backend": {"type": "string", "example": "redis"}
            }
        },
        "http.feedbackRequest": {
            "type": "object",
            "properties": {
                "feedback_type": {"type": "string", "enum": ["like", "dislike"], "example": "like"},
                "comment": {"type": "string"},
                "search_term": {"type": "string", "example": "maternal health services"},
                "search_id": {"type": "string"}
            }
        },
        "http.FeedbackResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Feedback submitted successfully"},
                "feedback_id": {"type": "string"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "invalid request body"}}
        },
        "http.HighlightResponse": {
            "type": "object",
            "properties": {"highlighted_url": {"type": "string", "example": "/api/v1/highlights/3f2a.pdf"}}
        },
        "http.searchRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string", "example": "maternal health services"},
                "max_results": {"type": "integer", "example": 25},
                "filters": {"$ref": "#/definitions/domain.FacetFilters"},
                "highlight": {"type": "boolean", "example": true}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Account-service JWT or ssk_ API key. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Survey Search API",
	Description:      "Hybrid retrieval, relevance ranking and highlighted PDFs for survey reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
