// Package httpapi exposes the registry's inspection interface over HTTP: the
// concrete realization of an external collaborator referenced only by
// interface from the core. It touches the registry only through
// [promreg.Directory.ForEach] and [promreg.ThreadRegistry.ForEach].
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/joeycumines/go-catrate"

	"github.com/windtunnel-io/promreg"
	"github.com/windtunnel-io/promreg/wire"
)

// Server is the diagnostic HTTP API over a [promreg.Directory].
type Server struct {
	dir     *promreg.Directory
	limiter *catrate.Limiter
}

// NewServer builds a Server backed by dir. The inspection endpoints are
// rate-limited per remote address using a multi-window limiter (catrate);
// passing nil selects the default limiter of 5 walks/second and 60/minute.
func NewServer(dir *promreg.Directory, limiter *catrate.Limiter) *Server {
	if limiter == nil {
		limiter = catrate.NewLimiter(map[time.Duration]int{
			time.Second: 5,
			time.Minute: 60,
		})
	}
	return &Server{dir: dir, limiter: limiter}
}

// Router builds a *mux.Router wired up with the inspection endpoints.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/debug/promises", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/debug/promises/{id}", s.handleGet).Methods(http.MethodGet)
	return r
}

func (s *Server) allow(r *http.Request) bool {
	if s.limiter == nil {
		return true
	}
	_, ok := s.limiter.Allow(r.RemoteAddr)
	return ok
}

// snapshotAll walks every registry in the directory and collects every live
// promise's snapshot. It only calls the same ForEach methods any external
// inspector would.
func (s *Server) snapshotAll() []promreg.Snapshot {
	var out []promreg.Snapshot
	s.dir.ForEach(func(tr *promreg.ThreadRegistry) {
		tr.ForEach(func(rec *promreg.Record) {
			out = append(out, rec.Snapshot())
		})
	})
	return out
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if !s.allow(r) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	body, err := wire.MarshalJSON(s.snapshotAll())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !s.allow(r) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	for _, snap := range s.snapshotAll() {
		if snap.ID == id {
			body, err := wire.MarshalJSON([]promreg.Snapshot{snap})
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
			return
		}
	}

	http.NotFound(w, r)
}
