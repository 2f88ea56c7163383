// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/auth/register": {"post": {"tags": ["Auth"], "summary": "Register a new account", "responses": {"201": {"description": "Created"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["Auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/refresh": {"post": {"tags": ["Auth"], "summary": "Rotate a refresh token", "responses": {"200": {"description": "OK"}}}},
        "/auth/logout": {"post": {"tags": ["Auth"], "summary": "Revoke the refresh token", "responses": {"200": {"description": "OK"}}}},
        "/auth/me": {"get": {"tags": ["Auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/profiles/me": {
            "get": {"tags": ["Profiles"], "summary": "My profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Profiles"], "summary": "Update my profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/users/{id}": {"get": {"tags": ["Profiles"], "summary": "Public profile", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/highlight-plans": {"get": {"tags": ["Catalog"], "summary": "List highlight plans", "responses": {"200": {"description": "OK"}}}},
        "/highlights": {"get": {"tags": ["Catalog"], "summary": "My highlight history", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/categories": {"get": {"tags": ["Catalog"], "summary": "List service categories", "responses": {"200": {"description": "OK"}}}},
        "/ads": {"get": {"tags": ["Catalog"], "summary": "Current ads for an audience", "responses": {"200": {"description": "OK"}}}},
        "/ads/mine": {"get": {"tags": ["Catalog"], "summary": "My ads", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/search": {"get": {"tags": ["Search"], "summary": "Search workers or employers", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid filters"}}}},
        "/payments/checkout": {"post": {"tags": ["Payments"], "summary": "Start a checkout", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Wrong role"}, "404": {"description": "Unknown plan"}}}},
        "/payments/webhook": {"post": {"tags": ["Payments"], "summary": "Stripe webhook", "responses": {"200": {"description": "Received"}, "400": {"description": "Invalid signature"}}}},
        "/vagas": {
            "get": {"tags": ["Vagas"], "summary": "List vagas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Vagas"], "summary": "Create a vaga", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/vagas/mine": {"get": {"tags": ["Vagas"], "summary": "My vagas", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/vagas/paid": {"post": {"tags": ["Vagas"], "summary": "Boost a vaga", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid duration"}}}},
        "/vagas/{id}": {
            "get": {"tags": ["Vagas"], "summary": "Get a vaga", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Vagas"], "summary": "Update a vaga", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/vagas/{id}/status": {"patch": {"tags": ["Vagas"], "summary": "Change vaga status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/vagas/{id}/candidaturas": {
            "get": {"tags": ["Candidaturas"], "summary": "List applications of a vaga", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Candidaturas"], "summary": "Apply to a vaga", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Already applied"}}}
        },
        "/vagas/{id}/favorita": {
            "post": {"tags": ["Favoritas"], "summary": "Favorite a vaga", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}},
            "delete": {"tags": ["Favoritas"], "summary": "Unfavorite a vaga", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/favoritas": {"get": {"tags": ["Favoritas"], "summary": "My favorite vagas", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/candidaturas/mine": {"get": {"tags": ["Candidaturas"], "summary": "My applications", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/candidaturas/{id}/status": {"patch": {"tags": ["Candidaturas"], "summary": "Change application status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/uploads": {"post": {"tags": ["Uploads"], "summary": "Upload an image", "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Created"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Trampo API",
	Description:      "Marketplace connecting service providers and employers",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
