package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// ErrIncomplete is returned when the body has no documents array.
var ErrIncomplete = errors.New("Incomplete Information")

// Request is a validated batch request.
type Request struct {
	Documents  []Unit
	Dictionary json.RawMessage
	Options    Options
}

// Parse validates the request body. The body must be a JSON object whose
// documents field is an array; anything else yields ErrIncomplete.
func Parse(body []byte) (*Request, error) {
	var raw struct {
		Documents  json.RawMessage `json:"documents"`
		Dictionary json.RawMessage `json:"dictionary"`
		Options    json.RawMessage `json:"options"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrIncomplete
	}
	docs := bytes.TrimSpace(raw.Documents)
	if len(docs) == 0 || docs[0] != '[' {
		return nil, ErrIncomplete
	}

	req := &Request{Dictionary: raw.Dictionary}
	if err := json.Unmarshal(docs, &req.Documents); err != nil {
		return nil, ErrIncomplete
	}
	if req.Documents == nil {
		req.Documents = []Unit{}
	}
	if len(raw.Options) > 0 {
		if err := json.Unmarshal(raw.Options, &req.Options); err != nil {
			// options are best-effort; a broken options object is ignored
			req.Options = Options{}
		}
	}
	return req, nil
}

// Pipeline runs an analysis over a validated request.
type Pipeline func(ctx context.Context, req *Request) (Payload, error)

// Response is a status code with the JSON payload to render.
type Response struct {
	Status  int
	Payload any
}

// ErrorResponse is the payload for requests that never reach analysis.
type ErrorResponse struct {
	Errors string `json:"errors"`
}

// Failed is the batch verdict: a batch fails when the error count reaches
// the number of documents submitted, derived sentences not counted.
func Failed(errorCount, originalDocuments int) bool {
	return errorCount >= originalDocuments
}

// Handle validates body, applies the query keyword and runs pipeline.
func Handle(ctx context.Context, body []byte, keyword string, pipeline Pipeline) Response {
	req, err := Parse(body)
	if err != nil {
		return Response{Status: http.StatusBadRequest, Payload: ErrorResponse{Errors: err.Error()}}
	}
	if keyword != "" {
		req.Options.Search = Keyword(keyword)
	}

	originals := len(req.Documents)
	payload, err := pipeline(ctx, req)
	if err != nil {
		return Response{Status: http.StatusInternalServerError, Payload: ErrorResponse{Errors: err.Error()}}
	}
	if Failed(payload.FailureCount(), originals) {
		return Response{Status: http.StatusBadRequest, Payload: payload}
	}
	return Response{Status: http.StatusOK, Payload: payload}
}
