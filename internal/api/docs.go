package api

import (
	"net/http"
	"strconv"

	"github.com/phrazzld/book-api/internal/api/shared"
	"github.com/phrazzld/book-api/internal/domain"
)

// SwaggerJSONPath is where the OpenAPI document is served.
const SwaggerJSONPath = "/swagger/v1/swagger.json"

type operation struct {
	method    string
	path      string
	summary   string
	tag       string
	auth      bool
	body      string
	responses map[string]string
	params    []map[string]interface{}
}

var (
	idParam = map[string]interface{}{
		"name": "id", "in": "path", "required": true,
		"schema": map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 1000},
	}
	pageParams = []map[string]interface{}{
		{"name": "page", "in": "query", "schema": map[string]interface{}{"type": "integer", "default": 1}},
		{"name": "page_size", "in": "query", "schema": map[string]interface{}{"type": "integer", "default": 10, "maximum": 50}},
	}
	titleParam = map[string]interface{}{
		"name": "title", "in": "query", "schema": map[string]interface{}{"type": "string"},
	}
)

// operations lists the documented routes. /api/error is left out.
var operations = []operation{
	{"get", "/api/books", "List a page of books", "Books", true, "",
		map[string]string{"200": "BookList", "204": "", "401": "Error", "403": "Error"}, pageParams},
	{"post", "/api/books", "Create a book", "Books", true, "BookRequest",
		map[string]string{"201": "Book", "400": "Error", "401": "Error", "403": "Error", "422": "Error"}, nil},
	{"get", "/api/books/search", "Search books by title", "Books", false, "",
		map[string]string{"200": "BookList", "204": ""}, []map[string]interface{}{titleParam}},
	{"get", "/api/books/{id}", "Get a book", "Books", false, "",
		map[string]string{"200": "Book", "400": "Error", "404": "Error"}, []map[string]interface{}{idParam}},
	{"put", "/api/books/{id}", "Update a book", "Books", true, "BookRequest",
		map[string]string{"200": "Book", "400": "Error", "401": "Error", "403": "Error", "404": "Error", "422": "Error"},
		[]map[string]interface{}{idParam}},
	{"delete", "/api/books/{id}", "Delete a book", "Books", true, "",
		map[string]string{"204": "", "400": "Error", "401": "Error", "403": "Error", "404": "Error"},
		[]map[string]interface{}{idParam}},
	{"get", "/api/categories", "List categories", "Categories", false, "",
		map[string]string{"200": "CategoryList", "204": ""}, nil},
	{"get", "/api/categories/{id}", "Get a category", "Categories", false, "",
		map[string]string{"200": "Category", "400": "Error", "404": "Error"}, []map[string]interface{}{idParam}},
	{"post", "/api/auth", "Register a user", "Authentication", false, "RegisterRequest",
		map[string]string{"201": "RegisterResponse", "400": "IdentityErrorList"}, nil},
	{"post", "/api/login", "Log in", "Authentication", false, "LoginRequest",
		map[string]string{"200": "TokenResponse", "401": "Error"}, nil},
	{"post", "/api/refresh", "Refresh a token pair", "Authentication", false, "TokenRequest",
		map[string]string{"200": "TokenResponse", "401": "Error"}, nil},
}

func schemaRef(name string) map[string]interface{} {
	return map[string]interface{}{"$ref": "#/components/schemas/" + name}
}

func jsonContent(schema string) map[string]interface{} {
	return map[string]interface{}{
		"application/json": map[string]interface{}{"schema": schemaRef(schema)},
	}
}

func object(props map[string]interface{}, required ...string) map[string]interface{} {
	obj := map[string]interface{}{"type": "object", "properties": props}
	if len(required) > 0 {
		obj["required"] = required
	}
	return obj
}

func arrayOf(name string) map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": schemaRef(name)}
}

var (
	str     = map[string]interface{}{"type": "string"}
	num     = map[string]interface{}{"type": "number"}
	intg    = map[string]interface{}{"type": "integer"}
	boolean = map[string]interface{}{"type": "boolean"}
)

func schemas() map[string]interface{} {
	return map[string]interface{}{
		"Category":     object(map[string]interface{}{"id": intg, "name": str}),
		"CategoryList": arrayOf("Category"),
		"Book": object(map[string]interface{}{
			"id": intg, "title": str, "price": num, "url": str, "category": schemaRef("Category"),
		}),
		"BookList": arrayOf("Book"),
		"BookRequest": object(map[string]interface{}{
			"title":       map[string]interface{}{"type": "string", "minLength": 2, "maxLength": 25},
			"price":       map[string]interface{}{"type": "number", "minimum": 1, "maximum": 100},
			"url":         map[string]interface{}{"type": "string", "maxLength": 255, "default": domain.DefaultBookURL},
			"category_id": map[string]interface{}{"type": "integer", "minimum": 1},
		}, "title", "price", "category_id"),
		"RegisterRequest": object(map[string]interface{}{
			"first_name": str, "last_name": str, "user_name": str, "email": str,
			"password": str, "phone_number": str,
			"roles": map[string]interface{}{"type": "array", "items": str},
		}, "user_name", "email", "password"),
		"RegisterResponse": object(map[string]interface{}{
			"succeeded": boolean, "errors": arrayOf("IdentityError"),
		}),
		"IdentityError":     object(map[string]interface{}{"code": str, "description": str}),
		"IdentityErrorList": arrayOf("IdentityError"),
		"LoginRequest":      object(map[string]interface{}{"user_name": str, "password": str}, "user_name", "password"),
		"TokenRequest": object(map[string]interface{}{
			"access_token": str, "refresh_token": str,
		}, "access_token", "refresh_token"),
		"TokenResponse": object(map[string]interface{}{
			"access_token": str, "refresh_token": str,
			"expires_at": map[string]interface{}{"type": "string", "format": "date-time"},
		}),
		"Error": object(map[string]interface{}{
			"status_code": intg, "message": str,
			"occurred_at": map[string]interface{}{"type": "string", "format": "date-time"},
			"trace_id":    str,
		}),
	}
}

// OpenAPISpec builds the OpenAPI 3.0 document for the API.
func OpenAPISpec() map[string]interface{} {
	paths := map[string]interface{}{}
	for _, op := range operations {
		item, ok := paths[op.path].(map[string]interface{})
		if !ok {
			item = map[string]interface{}{}
			paths[op.path] = item
		}

		responses := map[string]interface{}{}
		for code, schema := range op.responses {
			resp := map[string]interface{}{"description": statusText(code)}
			if schema != "" {
				resp["content"] = jsonContent(schema)
			}
			responses[code] = resp
		}

		spec := map[string]interface{}{
			"summary":   op.summary,
			"tags":      []string{op.tag},
			"responses": responses,
		}
		if len(op.params) > 0 {
			spec["parameters"] = op.params
		}
		if op.body != "" {
			spec["requestBody"] = map[string]interface{}{"required": true, "content": jsonContent(op.body)}
		}
		if op.auth {
			spec["security"] = []map[string]interface{}{{"Bearer": []string{}}}
		}
		item[op.method] = spec
	}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "Book API",
			"version":     "v1",
			"description": "Books, categories and identity endpoints.",
		},
		"paths": paths,
		"components": map[string]interface{}{
			"schemas": schemas(),
			"securitySchemes": map[string]interface{}{
				"Bearer": map[string]interface{}{
					"type": "http", "scheme": "bearer", "bearerFormat": "JWT",
				},
			},
		},
	}
}

func statusText(code string) string {
	n, err := strconv.Atoi(code)
	if err != nil {
		return code
	}
	return http.StatusText(n)
}

// SwaggerJSON serves the OpenAPI document.
func SwaggerJSON(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, OpenAPISpec())
}
