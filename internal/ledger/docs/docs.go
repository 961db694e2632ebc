// Package docs holds the OpenAPI description served under /swagger. Regenerate it with swag init after changing handler annotations.
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
        "/transactions/buy": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Record a buy",
                "parameters": [{"name": "trade", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BuyRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TradeResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/transactions/sell": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Record a sell",
                "parameters": [{"name": "trade", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SellRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TradeResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "name": "ticker", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.Transaction"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/positions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "List open positions",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.Position"}}}}
            }
        },
        "/portfolio": {
            "get": {
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "Portfolio report",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PortfolioReport"}}}
            }
        },
        "/performance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "Realized performance",
                "parameters": [{"type": "string", "name": "ticker", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PerformanceSummary"}}}
            }
        },
        "/prices/{ticker}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["prices"],
                "summary": "Current price",
                "parameters": [
                    {"type": "string", "name": "ticker", "in": "path", "required": true},
                    {"type": "string", "name": "market", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PriceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/reset": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["portfolio"],
                "summary": "Reset the portfolio",
                "parameters": [{"name": "confirm", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ResetRequest"}}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/alerts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "List price alerts",
                "parameters": [
                    {"type": "string", "name": "ticker", "in": "query"},
                    {"type": "boolean", "name": "active", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.PriceAlert"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "Create a price alert",
                "parameters": [{"name": "alert", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAlertRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.PriceAlert"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "Clear price alerts",
                "parameters": [{"type": "string", "name": "ticker", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}}}
            }
        },
        "/alerts/{id}": {
            "delete": {
                "tags": ["alerts"],
                "summary": "Delete a price alert",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "dto.BuyRequest": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string", "example": "FPT"},
                "quantity": {"type": "integer", "example": 100},
                "price": {"type": "number", "example": 85000},
                "market": {"type": "string", "example": "DOMESTIC"},
                "note": {"type": "string"}
            }
        },
        "dto.SellRequest": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string", "example": "FPT"},
                "quantity": {"type": "integer", "example": 50},
                "price": {"type": "number", "example": 90000},
                "market": {"type": "string", "example": "DOMESTIC"},
                "note": {"type": "string"}
            }
        },
        "dto.TradeResult": {
            "type": "object",
            "properties": {
                "transaction": {"$ref": "#/definitions/entity.Transaction"},
                "position": {"$ref": "#/definitions/entity.Position"},
                "realized": {"$ref": "#/definitions/entity.RealizedPnL"},
                "position_closed": {"type": "boolean"}
            }
        },
        "dto.ReportRow": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string"},
                "market": {"type": "string"},
                "quantity": {"type": "integer"},
                "avg_buy_price": {"type": "number"},
                "invested": {"type": "number"},
                "current_price": {"type": "number"},
                "current_value": {"type": "number"},
                "unrealized_pnl": {"type": "number"},
                "unrealized_pnl_percent": {"type": "number"},
                "pending": {"type": "boolean"},
                "notable": {"type": "string"}
            }
        },
        "dto.ReportTotals": {
            "type": "object",
            "properties": {
                "invested": {"type": "number"},
                "current_value": {"type": "number"},
                "pnl": {"type": "number"},
                "pnl_percent": {"type": "number"},
                "priced_count": {"type": "integer"},
                "pending_count": {"type": "integer"}
            }
        },
        "dto.PortfolioReport": {
            "type": "object",
            "properties": {
                "as_of": {"type": "string"},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/dto.ReportRow"}},
                "totals": {"$ref": "#/definitions/dto.ReportTotals"},
                "by_market": {"type": "object", "additionalProperties": {"$ref": "#/definitions/dto.ReportTotals"}}
            }
        },
        "dto.PerformanceSummary": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string"},
                "total_pnl": {"type": "number"},
                "total_trades": {"type": "integer"},
                "winning_trades": {"type": "integer"},
                "losing_trades": {"type": "integer"},
                "win_rate": {"type": "number"}
            }
        },
        "dto.PriceResponse": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string"},
                "market": {"type": "string"},
                "price": {"type": "number"},
                "available": {"type": "boolean"}
            }
        },
        "dto.ResetRequest": {"type": "object", "properties": {"confirm": {"type": "boolean"}}},
        "dto.CreateAlertRequest": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string", "example": "FPT"},
                "market": {"type": "string", "example": "DOMESTIC"},
                "condition": {"type": "string", "example": "ABOVE"},
                "target_price": {"type": "number", "example": 95000}
            }
        },
        "entity.Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "ticker": {"type": "string"},
                "type": {"type": "string"},
                "quantity": {"type": "integer"},
                "price": {"type": "number"},
                "market": {"type": "string"},
                "trade_date": {"type": "string"},
                "trade_time": {"type": "string"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "entity.Position": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string"},
                "quantity": {"type": "integer"},
                "avg_buy_price": {"type": "number"},
                "market": {"type": "string"},
                "last_updated": {"type": "string"}
            }
        },
        "entity.RealizedPnL": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "ticker": {"type": "string"},
                "quantity": {"type": "integer"},
                "buy_price": {"type": "number"},
                "sell_price": {"type": "number"},
                "pnl": {"type": "number"},
                "pnl_percent": {"type": "number"},
                "sell_date": {"type": "string"},
                "sell_time": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "entity.PriceAlert": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "ticker": {"type": "string"},
                "market": {"type": "string"},
                "condition": {"type": "string"},
                "target_price": {"type": "number"},
                "active": {"type": "boolean"},
                "triggered_price": {"type": "number"},
                "triggered_at": {"type": "string"},
                "created_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Stock Ledger API",
	Description:      "Portfolio ledger with average-cost accounting, price cache and realized performance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
