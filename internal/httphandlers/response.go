package httphandlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"resale/internal/backup"
)

const (
	authorizationHeader    = "X-Access-Token"
	scheduledTriggerHeader = "X-Scheduled-Trigger"
	triggerSecretHeader    = "X-Trigger-Secret"
)

type (
	response struct {
		Error   bool        `json:"error"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}

	// outcome is the trigger response shape: success and skipped let an
	// automated caller tell "nothing needed to happen" from "something broke"
	// without parsing the message.
	outcome struct {
		Success  bool   `json:"success"`
		Skipped  bool   `json:"skipped"`
		Message  string `json:"message"`
		BackupID string `json:"backup_id,omitempty"`
		Type     string `json:"type,omitempty"`
	}
)

func badRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, err)
}

func notFound(w http.ResponseWriter, err error) {
	writeError(w, http.StatusNotFound, err)
}

func conflict(w http.ResponseWriter, err error) {
	writeError(w, http.StatusConflict, err)
}

func serverError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, err)
}

func unauthorized(w http.ResponseWriter, err error) {
	writeError(w, http.StatusUnauthorized, err)
}

func forbidden(w http.ResponseWriter, err error) {
	writeError(w, http.StatusForbidden, err)
}

func ok(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	r := response{
		Error:   false,
		Message: message,
		Data:    data,
	}
	b, _ := json.Marshal(r)
	w.Write(b)
}

func writeError(w http.ResponseWriter, errorCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errorCode)
	errmsg := ""
	if err != nil {
		errmsg = err.Error()
	}

	r := response{
		Error:   true,
		Message: errmsg,
	}
	data, _ := json.Marshal(r)
	w.Write(data)
}

func writeOutcome(w http.ResponseWriter, tick backup.TickOutcome) {
	payload := outcome{
		Success: tick.Status != backup.TickError,
		Skipped: tick.Status == backup.TickSkipped,
		Message: tick.Message,
		Type:    string(tick.Type),
	}
	if tick.BackupID != uuid.Nil {
		payload.BackupID = tick.BackupID.String()
	}

	code := http.StatusOK
	if tick.Status == backup.TickError {
		code = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	b, _ := json.Marshal(payload)
	w.Write(b)
}
