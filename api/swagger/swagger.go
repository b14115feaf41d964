package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Fleet Admin API",
        "description": "Rental fleet administration console backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login, token refresh and password management"},
        {"name": "Agreements", "description": "Rental agreement lifecycle"},
        {"name": "Reservations", "description": "Reservation lifecycle"},
        {"name": "Customers", "description": "Customer directory"},
        {"name": "Vehicles", "description": "Fleet vehicle registry"},
        {"name": "Locations", "description": "Branch locations"},
        {"name": "Users", "description": "Operator accounts (admin only)"},
        {"name": "Dashboard", "description": "Dashboard widgets and column layouts"},
        {"name": "Reports", "description": "Parameterised reports and exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and receive a token pair",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token pair", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {
                    "200": {"description": "New token pair"},
                    "401": {"description": "Token revoked or expired"}
                }
            }
        },
        "/auth/password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Change the current user's password",
                "responses": {
                    "204": {"description": "Password changed"},
                    "401": {"description": "Old password incorrect"}
                }
            }
        },
        "/agreements": {
            "get": {
                "tags": ["Agreements"],
                "summary": "Search agreements",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "size", "in": "query", "type": "integer"},
                    {"name": "Statuses", "in": "query", "type": "string", "description": "Comma-separated status list"},
                    {"name": "CustomerId", "in": "query", "type": "string"},
                    {"name": "VehicleNo", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Paged agreements", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Agreements"],
                "summary": "Create an agreement",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/agreements/{id}": {
            "get": {
                "tags": ["Agreements"],
                "summary": "Fetch one agreement",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Agreement"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/agreements/{id}/status": {
            "patch": {
                "tags": ["Agreements"],
                "summary": "Transition an agreement's status",
                "responses": {
                    "204": {"description": "Updated"},
                    "422": {"description": "Unknown status"}
                }
            }
        },
        "/reservations": {
            "get": {
                "tags": ["Reservations"],
                "summary": "Search reservations",
                "responses": {
                    "200": {"description": "Paged reservations"}
                }
            },
            "post": {
                "tags": ["Reservations"],
                "summary": "Create a reservation",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/customers": {
            "get": {
                "tags": ["Customers"],
                "summary": "Search customers",
                "responses": {
                    "200": {"description": "Paged customers"}
                }
            },
            "post": {
                "tags": ["Customers"],
                "summary": "Create a customer",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/vehicles": {
            "get": {
                "tags": ["Vehicles"],
                "summary": "Search vehicles",
                "responses": {
                    "200": {"description": "Paged vehicles"}
                }
            },
            "post": {
                "tags": ["Vehicles"],
                "summary": "Register a vehicle",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/locations": {
            "get": {
                "tags": ["Locations"],
                "summary": "Search locations",
                "responses": {
                    "200": {"description": "Paged locations"}
                }
            },
            "post": {
                "tags": ["Locations"],
                "summary": "Create a location",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List operator accounts",
                "responses": {
                    "200": {"description": "Paged users"},
                    "403": {"description": "Admin role required"}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create an operator account",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/dashboard/widgets": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "List the caller's dashboard widgets",
                "responses": {
                    "200": {"description": "Widgets in display order"}
                }
            },
            "post": {
                "tags": ["Dashboard"],
                "summary": "Save widgets and apply a new display order",
                "responses": {
                    "200": {"description": "Reconciled widgets"}
                }
            }
        },
        "/columns": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Fetch column settings for a list type",
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Column settings"}
                }
            },
            "post": {
                "tags": ["Dashboard"],
                "summary": "Save visibility and ordering of list columns",
                "responses": {
                    "200": {"description": "Persisted ordering"}
                }
            }
        },
        "/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "List available reports",
                "responses": {
                    "200": {"description": "Report catalog"}
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Describe a report and its current criteria",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Report detail with seeded criteria"},
                    "404": {"description": "Unknown report"}
                }
            }
        },
        "/reports/{id}/criteria": {
            "put": {
                "tags": ["Reports"],
                "summary": "Set one search criterion value",
                "responses": {
                    "200": {"description": "Updated criteria"},
                    "400": {"description": "Unknown criterion"}
                }
            }
        },
        "/reports/{id}/run": {
            "post": {
                "tags": ["Reports"],
                "summary": "Execute the report with the current criteria",
                "responses": {
                    "200": {"description": "Result rows"},
                    "409": {"description": "A run is already in progress"}
                }
            }
        },
        "/reports/{id}/exports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue a CSV or PDF export",
                "responses": {
                    "202": {"description": "Export job accepted"}
                }
            }
        },
        "/exports/{jobId}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Poll an export job",
                "responses": {
                    "200": {"description": "Job status, with a signed download URL once finished"}
                }
            }
        },
        "/reports/exports/download": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a finished export via signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "401": {"description": "Token invalid or expired"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
