// Package docs registers the OpenAPI description served at /swagger.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register an organizer account",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a JWT",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tournaments": {
            "get": {
                "tags": ["tournaments"],
                "summary": "List tournaments",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["tournaments"],
                "summary": "Create a tournament",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/tournaments/{tournamentID}": {
            "get": {
                "tags": ["tournaments"],
                "summary": "Full tournament view with teams, pools, matches and brackets",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tournaments/{tournamentID}/schedule": {
            "post": {
                "tags": ["pools"],
                "summary": "Generate missing round-robin matches for every pool",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tournaments/{tournamentID}/qualifiers": {
            "get": {
                "tags": ["bracket"],
                "summary": "Preview the seeded qualifier list",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tournaments/{tournamentID}/bracket": {
            "get": {
                "tags": ["bracket"],
                "summary": "Get a bracket by kind",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["bracket"],
                "summary": "Build the seeded main bracket",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/tournaments/{tournamentID}/bracket/consolation": {
            "post": {
                "tags": ["bracket"],
                "summary": "Build the consolation bracket",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/tournaments/{tournamentID}/bracket/regenerate": {
            "post": {
                "tags": ["bracket"],
                "summary": "Delete and rebuild a bracket",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tournaments/{tournamentID}/bracket/reseed": {
            "post": {
                "tags": ["bracket"],
                "summary": "Rewrite first round slots from current standings",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pools/{poolID}/standings": {
            "get": {
                "tags": ["pools"],
                "summary": "Computed standings table of a pool",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pools/{poolID}/matches": {
            "get": {
                "tags": ["pools"],
                "summary": "List round-robin matches of a pool",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/matches/pool/{matchID}/result": {
            "post": {
                "tags": ["matches"],
                "summary": "Record a pool match result",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/matches/bracket/{matchID}/result": {
            "post": {
                "tags": ["matches"],
                "summary": "Record a bracket match result and advance the winner",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/matches/bracket/{matchID}/slot": {
            "post": {
                "tags": ["matches"],
                "summary": "Override one slot of an undecided bracket match",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PadelGrid Tournament System API",
	Description:      "Pool standings, seeding and knockout brackets for padel tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
