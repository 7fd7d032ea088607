package graph

import (
	"encoding/json"
	"net/http"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"
)

// Handler serves GraphQL over HTTP: POST with a JSON body, or GET with
// query, operationName and variables in the URL.
type Handler struct {
	schema *Schema
}

func NewHandler(schema *Schema) *Handler {
	return &Handler{schema: schema}
}

type errorResponse struct {
	Errors []*gqlerrors.QueryError `json:"errors"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request

	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeRequestError(w, http.StatusBadRequest, "request body must be a JSON object")
			return
		}
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if v := q.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				writeRequestError(w, http.StatusBadRequest, "variables must be a JSON object")
				return
			}
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeRequestError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if req.Query == "" {
		writeRequestError(w, http.StatusBadRequest, "query is required")
		return
	}

	resp := h.schema.Exec(r.Context(), req)
	body, err := json.Marshal(resp)
	if err != nil {
		writeRequestError(w, http.StatusInternalServerError, "cannot encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeRequestError(w http.ResponseWriter, status int, message string) {
	qerr := gqlerrors.Errorf("%s", message)
	qerr.Extensions = map[string]interface{}{"code": CodeBadRequest}
	if status == http.StatusInternalServerError {
		qerr.Extensions["code"] = CodeInternal
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Errors: []*gqlerrors.QueryError{qerr}})
}
