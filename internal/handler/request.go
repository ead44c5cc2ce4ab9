package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
	// keeps (page-1)*limit inside int for any allowed limit
	maxPage = math.MaxInt32 / maxLimit
)

// decodeJSON reads the body into dst and runs the struct validator on it.
// Both failures are reported as 422.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusUnprocessableEntity)
		return false
	}

	return h.validate(w, dst)
}

func (h *Handlers) validate(w http.ResponseWriter, v interface{}) bool {
	if err := h.Validate.Struct(v); err != nil {
		WriteError(w, validationMessage(err), http.StatusUnprocessableEntity)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return "Неверные данные"
	}

	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}

	return "Неверные данные: " + strings.Join(fields, ", ")
}

// parsePagination reads page and limit from the query. Missing values fall
// back to page 1 and 10 items; limit is capped at 50.
func parsePagination(r *http.Request) (int, int, error) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	if page > maxPage {
		return 0, 0, fmt.Errorf("page не может быть больше %d", maxPage)
	}

	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit > maxLimit {
		return 0, 0, fmt.Errorf("limit не может быть больше %d", maxLimit)
	}

	return page, limit, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%s должен быть положительным числом", name)
	}

	return value, nil
}

// pagination writes 422 when the query is invalid.
func pagination(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	page, limit, err := parsePagination(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnprocessableEntity)
		return 0, 0, false
	}
	return page, limit, true
}

func pathParam(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
