package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloud-ru/finance-calculator-go/internal/calculations"
	"github.com/cloud-ru/finance-calculator-go/internal/storage"
	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// statusFor сопоставляет ошибку с HTTP статусом
func statusFor(err error) int {
	switch {
	case errors.Is(err, validators.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, calculations.ErrOverflow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("ошибка обработки запроса", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeJSON читает тело запроса с ограничением размера
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", validators.ErrInvalidInput, err)
	}
	return nil
}

// displayValues форматирует числовые поля результата для отображения
func displayValues(result interface{}) map[string]string {
	data, err := json.Marshal(result)
	if err != nil {
		return nil
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	out := make(map[string]string, len(fields))
	for name, value := range fields {
		v, ok := value.(float64)
		if !ok {
			continue
		}
		switch {
		case name == "months_lasted":
			out[name] = utils.FormatTenure(int(v))
		case strings.HasSuffix(name, "_percent"):
			out[name] = fmt.Sprintf("%.2f%%", v)
		default:
			out[name] = utils.FormatLargeNumber(v)
		}
	}
	return out
}
