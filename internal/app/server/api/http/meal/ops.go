package meal

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) op(id, method, path, summary string) huma.Operation {
	return huma.Operation{
		OperationID: id,
		Method:      method,
		Path:        path,
		Summary:     summary,
		Tags:        []string{"customMeals"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return h.op("meals-list", http.MethodGet, "/customMeals", "List the caller's custom meals")
}

func (h *Handler) getOp() huma.Operation {
	return h.op("meals-get", http.MethodGet, "/customMeals/{id}", "Get a custom meal")
}

func (h *Handler) saveOp() huma.Operation {
	return h.op("meals-save", http.MethodPost, "/customMeals", "Create or replace a custom meal by id")
}

func (h *Handler) deleteOp() huma.Operation {
	op := h.op("meals-delete", http.MethodDelete, "/customMeals/{id}", "Delete a custom meal")
	op.DefaultStatus = http.StatusNoContent
	return op
}

func (h *Handler) logPortionOp() huma.Operation {
	op := h.op("meals-log-portion", http.MethodPost, "/customMeals/{id}/portions", "Log servings of a custom meal")
	op.DefaultStatus = http.StatusCreated
	return op
}
