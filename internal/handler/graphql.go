// Package handler contains the HTTP handlers mounted by the server: the
// GraphQL endpoint, the optional GraphiQL page and the health check.
//
// Handlers are glue between HTTP and the rest of the app. They parse the
// request, call into the schema or store and write the response. Business
// rules live in the service package.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/sakif/event-booking/internal/apperror"
)

// MaxRequestBytes caps the size of a GraphQL request body.
const MaxRequestBytes = 1 << 20

// Executor runs a GraphQL request. *graphql.Schema satisfies it.
type Executor interface {
	Exec(ctx context.Context, queryString string, operationName string, variables map[string]interface{}) *graphql.Response
}

// GraphQLRequest is the standard GraphQL-over-HTTP request body.
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type GraphQLHandler struct {
	schema Executor
	logger *slog.Logger
}

func NewGraphQLHandler(schema Executor, logger *slog.Logger) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, logger: logger}
}

// ServeHTTP handles POST (JSON body) and GET (query string) requests.
// GET only runs queries; a mutation sent over GET is refused with 405 before
// it reaches the schema.
//
// A request the server can parse always gets 200, even when the GraphQL
// response carries errors: per-field failures are reported in "errors" with
// their code in extensions. Only requests that never reach the schema get a
// 4xx status.
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.Method == http.MethodGet && !isReadOnly(req.Query, req.OperationName) {
		w.Header().Set("Allow", http.MethodPost)
		writeErrorStatus(w, http.StatusMethodNotAllowed,
			apperror.ValidationFailed("query", "mutations must be sent with POST"))
		return
	}

	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	h.logger.DebugContext(r.Context(), "graphql request",
		slog.String("operation", req.OperationName),
		slog.Int("errors", len(resp.Errors)),
	)

	writeJSON(w, http.StatusOK, resp)
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*GraphQLRequest, error) {
	var req GraphQLRequest

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if vars := q.Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				return nil, apperror.ValidationFailed("variables", "variables must be a JSON object")
			}
		}

	case http.MethodPost:
		body := http.MaxBytesReader(w, r.Body, MaxRequestBytes)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			if err == io.EOF {
				return nil, apperror.ValidationFailed("query", "request body is empty")
			}
			return nil, apperror.ValidationFailed("", "request body must be a JSON GraphQL request")
		}

	default:
		return nil, apperror.ValidationFailed("", "method must be GET or POST")
	}

	if req.Query == "" {
		return nil, apperror.ValidationFailed("query", "query is required")
	}
	return &req, nil
}

// isReadOnly reports whether the operation a request selects is a query.
// A document that does not parse is left for the schema to reject. When the
// selected operation is ambiguous every operation in the document must be a
// query.
func isReadOnly(query, operationName string) bool {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return true
	}
	if op := doc.Operations.ForName(operationName); op != nil {
		return op.Operation == ast.Query
	}
	for _, op := range doc.Operations {
		if op.Operation != ast.Query {
			return false
		}
	}
	return true
}
