// Package docs registers the OpenAPI description served under /swagger.
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
        "/api/v1/health": {
            "get": {"tags": ["System"], "summary": "Service health", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}
        },
        "/api/v1/parking/nearby": {
            "get": {
                "tags": ["Parking"], "summary": "Parking spots around a point", "produces": ["application/json"],
                "parameters": [
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "name": "radius_km", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/parking/nearby/stream": {
            "get": {
                "tags": ["Parking"], "summary": "Live parking spots around a point", "produces": ["text/event-stream"],
                "parameters": [
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "name": "radius_km", "in": "query"}
                ],
                "responses": {"200": {"description": "Event stream"}}
            }
        },
        "/api/v1/parking/{id}": {
            "get": {"tags": ["Parking"], "summary": "Parking spot with reviews and live occupancy reports", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/parking/{id}/reviews": {
            "get": {"tags": ["Parking"], "summary": "Reviews of a spot, newest first", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Parking"], "summary": "Rate a parking spot", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/parking/{id}/reviews/stream": {
            "get": {"tags": ["Parking"], "summary": "Live reviews of a spot", "produces": ["text/event-stream"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Event stream"}}}
        },
        "/api/v1/parking/{id}/occupancy": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Parking"], "summary": "Report how full a spot is", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/routes": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Routes"], "summary": "Saved routes of the signed-in user", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Routes"], "summary": "Save a calculated route", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/routes/calculate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Routes"], "summary": "Calculate a truck route", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "No route"}, "502": {"description": "Routing unavailable"}}}
        },
        "/api/v1/routes/calculate/stream": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Routes"], "summary": "Calculate a truck route with progress events", "produces": ["text/event-stream"], "responses": {"200": {"description": "Event stream"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/routes/stream": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Routes"], "summary": "Live saved routes", "produces": ["text/event-stream"], "responses": {"200": {"description": "Event stream"}}}
        },
        "/api/v1/routes/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Routes"], "summary": "One saved route", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Routes"], "summary": "Delete a saved route", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/routes/{id}/geojson": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Routes"], "summary": "Route as a GeoJSON feature", "produces": ["application/geo+json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/locations": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Locations"], "summary": "Saved locations of the signed-in user, by name", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Locations"], "summary": "Save a location (COMPANY, PRIVATE, FUEL or OTHER)", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/locations/stream": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Locations"], "summary": "Live saved locations", "produces": ["text/event-stream"], "responses": {"200": {"description": "Event stream"}}}
        },
        "/api/v1/locations/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Locations"], "summary": "Replace a saved location", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Locations"], "summary": "Delete a saved location", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/me/stats": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Parking"], "summary": "Contribution counters of the signed-in user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/countries": {
            "get": {"tags": ["Countries"], "summary": "Driving rules of all known countries", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/countries/{code}": {
            "get": {"tags": ["Countries"], "summary": "Driving rules of one country", "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/checklist": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Checklist"], "summary": "Latest departure checks of the signed-in user", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Checklist"], "summary": "Record a departure walk-around check", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/polyline/decode": {
            "get": {"tags": ["Utilities"], "summary": "Decode an encoded polyline", "parameters": [{"type": "string", "name": "points", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "TruckersHub API",
	Description:      "Truck parking with live occupancy, truck routing, saved routes, country driving rules and departure checks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
