// Package docs registers the OpenAPI description served by gin-swagger.
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
        "/teamspaces": {
            "get": {"tags": ["teamspaces"], "summary": "List team spaces", "responses": {"200": {"description": "envelope"}}},
            "post": {"tags": ["teamspaces"], "summary": "Create a team space", "responses": {"200": {"description": "envelope, status 201 with {teamSpaceID}"}}}
        },
        "/teamspaces/join": {
            "post": {"tags": ["members"], "summary": "Join a team space", "responses": {"200": {"description": "envelope, status 201 or 401 Invalid Join Code"}}}
        },
        "/teamspaces/{teamSpaceID}": {
            "get": {"tags": ["teamspaces"], "summary": "Get team space by ID", "responses": {"200": {"description": "envelope"}}},
            "put": {"tags": ["teamspaces"], "summary": "Edit a team space", "responses": {"200": {"description": "envelope, status 202"}}}
        },
        "/teamspaces/{teamSpaceID}/join-code": {
            "get": {"tags": ["teamspaces"], "summary": "Get join code", "responses": {"200": {"description": "envelope"}}},
            "post": {"tags": ["teamspaces"], "summary": "Rotate join code", "responses": {"200": {"description": "envelope"}}}
        },
        "/teamspaces/{teamSpaceID}/categories": {
            "get": {"tags": ["categories"], "summary": "List spending categories", "responses": {"200": {"description": "envelope"}}},
            "post": {"tags": ["categories"], "summary": "Create a spending category", "responses": {"200": {"description": "envelope"}}}
        },
        "/teamspaces/{teamSpaceID}/categories/{categoryID}": {
            "put": {"tags": ["categories"], "summary": "Edit a spending category", "responses": {"200": {"description": "envelope"}}},
            "delete": {"tags": ["categories"], "summary": "Delete a spending category", "responses": {"200": {"description": "envelope"}}}
        },
        "/teamspaces/{teamSpaceID}/transactions": {
            "get": {"tags": ["transactions"], "summary": "List transactions", "responses": {"200": {"description": "envelope"}}},
            "post": {"tags": ["transactions"], "summary": "Create a transaction", "responses": {"200": {"description": "envelope"}}}
        },
        "/teamspaces/{teamSpaceID}/transactions/recent": {
            "get": {"tags": ["transactions"], "summary": "Recent transactions", "responses": {"200": {"description": "envelope"}}}
        },
        "/teamspaces/{teamSpaceID}/transactions/{transactionID}": {
            "put": {"tags": ["transactions"], "summary": "Edit a transaction", "responses": {"200": {"description": "envelope"}}},
            "delete": {"tags": ["transactions"], "summary": "Delete a transaction", "responses": {"200": {"description": "envelope"}}}
        },
        "/sessions": {
            "post": {"tags": ["sessions"], "summary": "Open a session", "responses": {"200": {"description": "envelope"}}}
        },
        "/sessions/guard": {
            "get": {"tags": ["sessions"], "summary": "Routing guard", "responses": {"200": {"description": "envelope"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
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
	Schemes:          []string{},
	Title:            "Team Space API",
	Description:      "Shared budgeting workspaces: spending categories, transactions and members.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
