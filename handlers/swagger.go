package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>center-believer backend — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document covering the public API surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "center-believer backend", "version": "v1.0.0" },
  "paths": {
    "/api/health": {
      "get": { "summary": "Liveness check", "responses": { "200": { "description": "service is up" } } }
    },
    "/api/scientists": {
      "get": { "summary": "List scientists, newest first", "responses": { "200": { "description": "array of scientists" } } },
      "post": {
        "summary": "Create a scientist (JSON with image URL, or multipart with an image file)",
        "requestBody": { "content": {
          "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"title":{"type":"string"},"description":{"type":"string"},"achievements":{"type":"array","items":{"type":"string"}},"birthYear":{"type":"integer"},"deathYear":{"type":"integer"},"subject":{"type":"string"},"color":{"type":"string"},"image":{"type":"string"}}}},
          "multipart/form-data": { "schema": {"type":"object","properties":{"name":{"type":"string"},"subject":{"type":"string"},"image":{"type":"string","format":"binary"}}}}
        }},
        "responses": { "201": { "description": "created" }, "400": { "description": "validation failed" } }
      }
    },
    "/api/scientists/{id}": {
      "get": { "summary": "Get one scientist", "responses": { "200": { "description": "scientist" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Partially update a scientist", "responses": { "200": { "description": "updated scientist" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a scientist and its stored images", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/messages": {
      "get": { "summary": "Latest guestbook messages", "responses": { "200": { "description": "array of messages" } } },
      "post": {
        "summary": "Submit a guestbook message (captcha-gated)",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"content":{"type":"string"},"author":{"type":"string"},"isAnonymous":{"type":"boolean"},"recaptchaToken":{"type":"string"}}}}}},
        "responses": { "201": { "description": "created" }, "400": { "description": "validation or captcha failed" } }
      }
    },
    "/api/messages/history": {
      "get": { "summary": "Messages before a millisecond timestamp cursor", "responses": { "200": { "description": "array of messages" } } }
    },
    "/api/wordpress/pages/{slug}": {
      "get": { "summary": "Fetch and optimize a CMS page by slug", "responses": { "200": { "description": "normalized page" }, "404": { "description": "not found" }, "500": { "description": "upstream failure" } } }
    },
    "/api/wordpress/posts": {
      "get": { "summary": "List CMS posts", "responses": { "200": { "description": "normalized posts" }, "500": { "description": "upstream failure" } } }
    },
    "/api/wordpress/posts/{id}": {
      "get": { "summary": "Fetch one CMS post", "responses": { "200": { "description": "normalized post" }, "404": { "description": "not found" }, "500": { "description": "upstream failure" } } }
    }
  }
}`
