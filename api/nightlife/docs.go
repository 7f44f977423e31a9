// Package nightlife holds the generated Swagger document served at /swagger/.
// Regenerate with: swag init -g internal/nightlife/http/router.go -o api/nightlife
package nightlife

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/nightlife"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nightlifesdk.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/nightlifesdk.RegisterResponse"}},
                    "400": {"description": "missing username or password", "schema": {"$ref": "#/definitions/nightlifesdk.ErrorResponse"}},
                    "409": {"description": "username taken", "schema": {"$ref": "#/definitions/nightlifesdk.ErrorResponse"}}
                }
            }
        },
        "/api/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nightlifesdk.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/nightlifesdk.LoginResponse"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/nightlifesdk.LoginResponse"}}
                }
            }
        },
        "/api/logout": {
            "get": {
                "tags": ["Auth"],
                "summary": "Logout",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/nightlifesdk.SuccessResponse"}}}
            }
        },
        "/api/current-session": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current session",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/nightlifesdk.SessionResponse"}}}
            }
        },
        "/api/venues-attending": {
            "post": {
                "security": [{"SessionCookie": []}],
                "tags": ["Venues"],
                "summary": "Attend a venue",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nightlifesdk.AttendRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/nightlifesdk.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/nightlifesdk.ErrorResponse"}},
                    "403": {"description": "userId does not match the session", "schema": {"$ref": "#/definitions/nightlifesdk.ErrorResponse"}}
                }
            }
        },
        "/api/venue-remove": {
            "post": {
                "security": [{"SessionCookie": []}],
                "tags": ["Venues"],
                "summary": "Stop attending a venue",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/nightlifesdk.AttendRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/nightlifesdk.MessageResponse"}}}
            }
        },
        "/api/number-attending/{yelpId}": {
            "get": {
                "security": [{"SessionCookie": []}],
                "tags": ["Venues"],
                "summary": "Count attendees",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "yelpId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/nightlifesdk.CountResponse"}}}
            }
        },
        "/api/get-venues-attending/{venueYelpId}": {
            "get": {
                "tags": ["Directory"],
                "summary": "Venue details",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "venueYelpId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "directory business", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/nightlifesdk.ErrorResponse"}},
                    "404": {"description": "venue_not_found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/yelp-data/{location}": {
            "post": {
                "tags": ["Directory"],
                "summary": "Search venues",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "location", "in": "path", "required": true},
                    {"name": "body", "in": "body", "schema": {"$ref": "#/definitions/nightlifesdk.SearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "directory search response", "schema": {"type": "object"}},
                    "404": {"description": "location_not_found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/livez": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "produces": ["application/json"],
                "responses": {"200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/nightlifesdk.HealthResponse"}}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/nightlifesdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/nightlifesdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "nightlifesdk.ErrorResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "error": {"type": "string"}}},
        "nightlifesdk.RegisterRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "nightlifesdk.RegisterResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "userId": {"type": "string"}, "username": {"type": "string"}}},
        "nightlifesdk.LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "nightlifesdk.LoginResponse": {"type": "object", "properties": {"authenticated": {"type": "boolean"}, "userId": {"type": "string"}, "username": {"type": "string"}, "error": {"type": "string"}}},
        "nightlifesdk.SuccessResponse": {"type": "object", "properties": {"success": {"type": "boolean"}}},
        "nightlifesdk.SessionResponse": {"type": "object", "properties": {"authenticated": {"type": "boolean"}, "userId": {"type": "string"}, "username": {"type": "string"}, "venuesAttendingIds": {"type": "array", "items": {"type": "string"}}}},
        "nightlifesdk.AttendRequest": {"type": "object", "properties": {"venueYelpId": {"type": "string"}, "userId": {"type": "string"}}},
        "nightlifesdk.MessageResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}},
        "nightlifesdk.CountResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "yelpId": {"type": "string"}, "venueId": {"type": "string"}, "count": {"type": "integer"}}},
        "nightlifesdk.SearchRequest": {"type": "object", "properties": {"price": {"type": "integer"}, "openNow": {"type": "boolean"}, "sortBy": {"type": "string"}, "offset": {"type": "integer"}}},
        "nightlifesdk.HealthChecks": {"type": "object", "properties": {"database": {"type": "string"}, "sessions": {"type": "string"}}},
        "nightlifesdk.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "uptime": {"type": "string"}, "version": {"type": "string"}, "checks": {"$ref": "#/definitions/nightlifesdk.HealthChecks"}}}
    },
    "securityDefinitions": {
        "SessionCookie": {"type": "apiKey", "name": "nightlife.sid", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Nightlife API",
	Description:      "Backend for the nightlife app: venue search through the business directory, local accounts with cookie sessions, and attendance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
