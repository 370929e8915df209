package logbook

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "logs-list",
		Method:      http.MethodGet,
		Path:        "/logs",
		Summary:     "List the caller's log entries",
		Tags:        []string{"logs"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "logs-get",
		Method:      http.MethodGet,
		Path:        "/logs/{id}",
		Summary:     "Get a log entry",
		Tags:        []string{"logs"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID: "logs-save",
		Method:      http.MethodPost,
		Path:        "/logs",
		Summary:     "Create or replace a log entry by id",
		Tags:        []string{"logs"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "logs-delete",
		Method:        http.MethodDelete,
		Path:          "/logs/{id}",
		Summary:       "Delete a log entry",
		Tags:          []string{"logs"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}
