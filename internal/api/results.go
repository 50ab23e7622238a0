package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dhanvarsha/backend/internal/database"
	"github.com/dhanvarsha/backend/internal/realtime"
)

// dateLayout is the ISO calendar date format used for result dates on the
// wire and in the store.
const dateLayout = "2006-01-02"

// resultPayload is the JSON body for posting a draw result. The numbers are
// pointers so that a missing or null field is distinguishable from zero.
type resultPayload struct {
	ResultDate string `json:"result_date"`
	TimeSlot   string `json:"time_slot"`
	Number1    *int   `json:"number_1"`
	Number2    *int   `json:"number_2"`
}

// handleUpsertResult writes a draw result for one game. Posting the same
// (date, slot) twice replaces the numbers in place; the response is 201
// either way, with the single resulting row.
func (s *Server) handleUpsertResult(table database.GameTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload resultPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			s.errorJSON(w, errors.New("bad request: could not decode JSON"), http.StatusBadRequest)
			return
		}

		if payload.ResultDate == "" || payload.TimeSlot == "" || payload.Number1 == nil || payload.Number2 == nil {
			s.errorJSON(w, errors.New("all fields are required"), http.StatusBadRequest)
			return
		}

		result, err := s.db.UpsertResult(table, payload.ResultDate, payload.TimeSlot, *payload.Number1, *payload.Number2)
		if err != nil {
			s.errorJSON(w, errors.New("failed to save result"), http.StatusInternalServerError)
			return
		}

		// Announce the new numbers to any browser on the live stream.
		s.broker.Publish(realtime.Message{Type: streamEventType(table), Payload: result})

		s.writeJSON(w, http.StatusCreated, result)
	}
}

// handleListToday returns all of today's rows for one game, ordered by slot.
func (s *Server) handleListToday(table database.GameTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := time.Now().Format(dateLayout)
		results, err := s.db.ListResultsForDate(table, today)
		if err != nil {
			s.errorJSON(w, errors.New("failed to fetch results"), http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, results)
	}
}

// handleListPrevious returns rows before today, newest first, capped at 120.
func (s *Server) handleListPrevious(table database.GameTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := time.Now().Format(dateLayout)
		results, err := s.db.ListPreviousResults(table, today)
		if err != nil {
			s.errorJSON(w, errors.New("failed to fetch results"), http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, results)
	}
}

// handleListRecent returns the last ten days of rows, today included.
func (s *Server) handleListRecent(table database.GameTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		since := time.Now().AddDate(0, 0, -9).Format(dateLayout)
		results, err := s.db.ListRecentResults(table, since)
		if err != nil {
			s.errorJSON(w, errors.New("failed to fetch results"), http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, results)
	}
}

// handleSearchResults filters by exact date and/or a number matching either
// position. With no filters it lists everything, newest first.
func (s *Server) handleSearchResults(table database.GameTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")

		var number *int
		if raw := r.URL.Query().Get("number"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				s.errorJSON(w, errors.New("number must be an integer"), http.StatusBadRequest)
				return
			}
			number = &n
		}

		results, err := s.db.SearchResults(table, date, number)
		if err != nil {
			s.errorJSON(w, errors.New("failed to search results"), http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, http.StatusOK, results)
	}
}

// handleDeleteResult removes one row by id.
func (s *Server) handleDeleteResult(table database.GameTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			s.errorJSON(w, errors.New("invalid result id"), http.StatusBadRequest)
			return
		}

		if err := s.db.DeleteResult(table, id); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				s.errorJSON(w, errors.New("result not found"), http.StatusNotFound)
				return
			}
			s.errorJSON(w, errors.New("failed to delete result"), http.StatusInternalServerError)
			return
		}

		s.writeJSON(w, http.StatusOK, envelope{"message": "Result deleted successfully"})
	}
}

// streamEventType names the SSE event emitted when a game's ledger changes.
func streamEventType(table database.GameTable) string {
	if table == database.SuperGameResults {
		return "super_game_result"
	}
	return "result"
}
