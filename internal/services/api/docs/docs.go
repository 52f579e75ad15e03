// Package docs registers the OpenAPI document rendered from the handler annotations
// regenerate with go generate ./cmd/ballotbox-api after changing an annotation
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "servers": [{"url": "{{.BasePath}}"}],
  "tags": [{"name": "Ballots"}, {"name": "Meta"}],
  "paths": {
    "/ballots": {
      "get": {
        "tags": ["Ballots"],
        "summary": "Published ballots",
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Snapshot"}}}}}
      },
      "delete": {
        "tags": ["Ballots"],
        "summary": "Clear ballots",
        "security": [{"bearer": []}],
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Snapshot"}}}}}
      }
    },
    "/ballots/upload": {
      "post": {
        "tags": ["Ballots"],
        "summary": "Upload a ballot workbook",
        "description": "Replaces the published ballots with the first sheet of an .xlsx or .xls workbook",
        "security": [{"bearer": []}],
        "requestBody": {"content": {"multipart/form-data": {"schema": {"type": "object", "properties": {"file": {"type": "string", "format": "binary", "description": "Workbook (.xlsx or .xls)"}}, "required": ["file"]}}}},
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Report"}}}},
          "400": {"description": "invalid structure"},
          "413": {"description": "too large"},
          "415": {"description": "unsupported file type"},
          "422": {"description": "undecodable or no valid rows"}
        }
      }
    },
    "/ballots/rows": {
      "post": {
        "tags": ["Ballots"],
        "summary": "Ingest a raw table",
        "description": "Rows are objects keyed by header name, as a spreadsheet reader would produce them",
        "security": [{"bearer": []}],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.RowsInput"}}}},
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Report"}}}},
          "400": {"description": "invalid structure"},
          "422": {"description": "no valid rows"}
        }
      }
    },
    "/ballots/reload": {
      "post": {
        "tags": ["Ballots"],
        "summary": "Reload persisted ballots",
        "security": [{"bearer": []}],
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Report"}}}}}
      }
    },
    "/ballots/stats": {
      "get": {
        "tags": ["Ballots"],
        "summary": "Aggregate statistics",
        "responses": {
          "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/tally.Stats"}}}},
          "404": {"description": "no data"}
        }
      }
    },
    "/ballots/names": {
      "get": {
        "tags": ["Ballots"],
        "summary": "Unique voter names",
        "parameters": [{"$ref": "#/components/parameters/q"}, {"$ref": "#/components/parameters/page"}, {"$ref": "#/components/parameters/pageSize"}],
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/ballots/units": {
      "get": {
        "tags": ["Ballots"],
        "summary": "Unique units",
        "parameters": [{"$ref": "#/components/parameters/q"}, {"$ref": "#/components/parameters/page"}, {"$ref": "#/components/parameters/pageSize"}],
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/ballots/votes": {
      "get": {
        "tags": ["Ballots"],
        "summary": "Every cast vote",
        "parameters": [{"$ref": "#/components/parameters/q"}, {"$ref": "#/components/parameters/page"}, {"$ref": "#/components/parameters/pageSize"}],
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/ballots/candidates/{candidate}/voters": {
      "get": {
        "tags": ["Ballots"],
        "summary": "Voters of one candidate",
        "parameters": [
          {"name": "candidate", "in": "path", "required": true, "description": "Candidate as written on the ballot", "schema": {"type": "string"}},
          {"$ref": "#/components/parameters/q"},
          {"$ref": "#/components/parameters/page"},
          {"$ref": "#/components/parameters/pageSize"}
        ],
        "responses": {"200": {"description": "ok"}, "404": {"description": "unknown candidate"}}
      }
    },
    "/ballots/template": {
      "get": {
        "tags": ["Ballots"],
        "summary": "Blank upload workbook",
        "responses": {"200": {"description": "workbook", "content": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {"schema": {"type": "string", "format": "binary"}}}}}
      }
    },
    "/meta/health": {"get": {"tags": ["Meta"], "summary": "Liveness", "responses": {"200": {"description": "OK"}}}},
    "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness with backend pings", "responses": {"200": {"description": "OK"}}}},
    "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build info", "responses": {"200": {"description": "OK"}}}},
    "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service name and uptime", "responses": {"200": {"description": "OK"}}}},
    "/meta/pipeline": {"get": {"tags": ["Meta"], "summary": "Ingestion pipeline facts", "responses": {"200": {"description": "OK"}}}}
  },
  "components": {
    "securitySchemes": {"bearer": {"type": "apiKey", "in": "header", "name": "Authorization"}},
    "parameters": {
      "q": {"name": "q", "in": "query", "schema": {"type": "string", "maxLength": 200}},
      "page": {"name": "page", "in": "query", "description": "1-based page", "schema": {"type": "integer", "minimum": 1}},
      "pageSize": {"name": "page_size", "in": "query", "description": "Page size, max 100", "schema": {"type": "integer", "minimum": 1, "maximum": 100}}
    },
    "schemas": {
      "domain.RowsInput": {
        "type": "object",
        "required": ["rows"],
        "properties": {
          "rows": {"type": "array", "items": {"type": "object", "additionalProperties": {}}},
          "date1904": {"type": "boolean"}
        }
      },
      "domain.Report": {
        "type": "object",
        "properties": {
          "batchId": {"type": "string"},
          "source": {"type": "string", "enum": ["upload", "rows", "records", "storage"]},
          "filename": {"type": "string"},
          "sheet": {"type": "string"},
          "rowsRead": {"type": "integer"},
          "rowsAccepted": {"type": "integer"},
          "rowsRejected": {"type": "integer"},
          "hasData": {"type": "boolean"}
        }
      },
      "ballot.VoterRecord": {
        "type": "object",
        "properties": {
          "timestamp": {"type": "string"},
          "nama": {"type": "string"},
          "unit": {"type": "string"},
          "suara": {"type": "array", "items": {"type": "string"}}
        }
      },
      "ballot.Voter": {
        "type": "object",
        "properties": {
          "nama": {"type": "string"},
          "unit": {"type": "string"},
          "timestamp": {"type": "string"}
        }
      },
      "tally.Tally": {
        "type": "object",
        "properties": {
          "candidate": {"type": "string"},
          "votes": {"type": "integer"},
          "percent": {"type": "number"},
          "percentLabel": {"type": "string"}
        }
      },
      "tally.Stats": {
        "type": "object",
        "properties": {
          "ballots": {"type": "integer"},
          "totalNames": {"type": "integer"},
          "totalUnits": {"type": "integer"},
          "uniqueNames": {"type": "array", "items": {"type": "string"}},
          "uniqueUnits": {"type": "array", "items": {"type": "string"}},
          "totalVotes": {"type": "integer"},
          "voteCount": {"type": "object", "additionalProperties": {"type": "integer"}},
          "votePercentages": {"type": "object", "additionalProperties": {"type": "number"}},
          "voterDetails": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/components/schemas/ballot.Voter"}}},
          "candidates": {"type": "array", "items": {"type": "string"}},
          "tallies": {"type": "array", "items": {"$ref": "#/components/schemas/tally.Tally"}}
        }
      },
      "domain.Snapshot": {
        "type": "object",
        "properties": {
          "hasData": {"type": "boolean"},
          "batchId": {"type": "string"},
          "source": {"type": "string"},
          "updatedAt": {"type": "string", "format": "date-time"},
          "records": {"type": "array", "items": {"$ref": "#/components/schemas/ballot.VoterRecord"}},
          "stats": {"$ref": "#/components/schemas/tally.Stats"}
        }
      }
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Title:            "Ballotbox API",
	Description:      "Upload ballot spreadsheets and read the aggregated vote views",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
