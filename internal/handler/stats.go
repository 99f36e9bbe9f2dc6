package handler

import "net/http"

// GetStats handles GET /api/stats.
// The ?range= parameter is "7days", "30days", "thisMonth", or "all"
// (default "all"). An empty window returns {"data": null}; the client renders
// its empty state.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.stats.Summary(r.URL.Query().Get("range"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"data": summary})
}
