// Package monitor exposes a read-only HTTP introspection endpoint over a
// running Device, routed with gorilla/mux.
package monitor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/akita/rvgpusim/core"
)

// CoreStatus is the JSON-serializable snapshot of one core's scheduler
// state returned by GET /cores/{id}.
type CoreStatus struct {
	ID           int  `json:"id"`
	Cycle        uint64 `json:"cycle"`
	ActiveWarps  int  `json:"active_warps"`
	StalledWarps int  `json:"stalled_warps"`
	Committed    int  `json:"committed"`
}

// Server serves introspection endpoints over a fixed set of cores.
type Server struct {
	cores  []*core.Core
	cycle  func() uint64
	router *mux.Router
}

// NewServer creates a Server over cores, using cycleFn to report the
// engine's current cycle.
func NewServer(cores []*core.Core, cycleFn func() uint64) *Server {
	s := &Server{cores: cores, cycle: cycleFn, router: mux.NewRouter()}
	s.router.HandleFunc("/cores", s.handleList).Methods(http.MethodGet)
	s.router.HandleFunc("/cores/{id:[0-9]+}", s.handleOne).Methods(http.MethodGet)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) statusOf(c *core.Core) CoreStatus {
	st := CoreStatus{ID: c.ID, Cycle: s.cycle(), Committed: len(c.Commit)}
	for _, warp := range c.Warps {
		if warp.Active {
			st.ActiveWarps++
		}
		if warp.Stalled {
			st.StalledWarps++
		}
	}
	return st
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	statuses := make([]CoreStatus, len(s.cores))
	for i, c := range s.cores {
		statuses[i] = s.statusOf(c)
	}
	json.NewEncoder(w).Encode(statuses)
}

func (s *Server) handleOne(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	for _, c := range s.cores {
		if vars["id"] == strconv.Itoa(c.ID) {
			json.NewEncoder(w).Encode(s.statusOf(c))
			return
		}
	}
	http.NotFound(w, r)
}
