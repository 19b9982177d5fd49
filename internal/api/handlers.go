package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fitflow/fitflow/internal/models"
)

// fallbackErrorResponse is pre-marshaled so a reply can always be written
// even when encoding the real payload fails at runtime.
var fallbackErrorResponse []byte

func init() {
	var err error
	fallbackErrorResponse, err = json.Marshal(models.Error("Internal server error"))
	if err != nil {
		panic(fmt.Sprintf("Failed to marshal fallback error response at startup: %v", err))
	}
}

// writeJSONResponse writes a JSON response with the given status code.
// Marshaling happens before any header is written so encoding failures can
// still downgrade to the fallback body and a 500.
func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal JSON response", "error", err)
		jsonData = fallbackErrorResponse
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(jsonData); writeErr != nil {
		slog.Error("Server.writeJSONResponse: failed to write JSON response", "error", writeErr)
	}
}

// turnRequest is the body of POST /turns.
type turnRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// turnResult is the payload of a successful POST /turns.
type turnResult struct {
	Reply string `json:"reply"`
}

func (s *Server) turnsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.turnsHandler: processing turn request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.turnsHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if req.UserID == 0 || req.Text == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("user_id and text are required"))
		return
	}

	reply, err := s.turns(r.Context(), req.UserID, req.Text)
	if err != nil {
		slog.Error("Server.turnsHandler: turn handler failed", "error", err, "userID", req.UserID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to process turn"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(turnResult{Reply: reply}))
}

// parseUserID reads the user_id query parameter.
func parseUserID(r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("user_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) progressHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.progressHandler: processing progress request", "method", r.Method)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ok := parseUserID(r)
	if !ok {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("user_id query parameter is required"))
		return
	}

	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("date must be formatted YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	snapshot, err := s.progress.Daily(userID, day)
	if errors.Is(err, models.ErrProfileNotFound) {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Profile not found"))
		return
	}
	if err != nil {
		slog.Error("Server.progressHandler: aggregation failed", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to compute progress"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(snapshot))
}

func (s *Server) weeklyProgressHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.weeklyProgressHandler: processing weekly request", "method", r.Method)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ok := parseUserID(r)
	if !ok {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("user_id query parameter is required"))
		return
	}

	week, err := s.progress.Weekly(userID, time.Now())
	if errors.Is(err, models.ErrProfileNotFound) {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Profile not found"))
		return
	}
	if err != nil {
		slog.Error("Server.weeklyProgressHandler: aggregation failed", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to compute progress"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(week))
}

func (s *Server) profilesHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.profilesHandler: processing profile request", "method", r.Method)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ok := parseUserID(r)
	if !ok {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("user_id query parameter is required"))
		return
	}

	profile, err := s.store.GetProfile(userID)
	if err != nil {
		slog.Error("Server.profilesHandler: profile lookup failed", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load profile"))
		return
	}
	if profile == nil {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Profile not found"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(profile))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("ok", nil))
}
