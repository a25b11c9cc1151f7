package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/foldnote/foldnote-server/internal/errors"
	"github.com/foldnote/foldnote-server/internal/http/response"
)

// EnvelopeTransformer wraps every JSON body in response.Envelope. Raw byte
// bodies (note exports) pass through untouched.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case nil, []byte, response.Envelope, *response.Envelope:
		return v, nil
	case *APIError:
		return response.Fail(domainerrors.Code(body.Code), body.Message, body.Details), nil
	case huma.StatusError:
		return response.Fail(domainerrors.Code(statusToCode(body.GetStatus())), body.Error(), nil), nil
	}

	if strings.HasPrefix(status, "2") {
		return response.OK(v), nil
	}
	return response.Envelope{V: response.Version, Success: false, Data: v}, nil
}
