package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/frudas24/convertible-couch/internal/config"
)

// RegisterRoutes wires API and websocket handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/computer", a.handleComputer)
	mux.HandleFunc("/ws/computers", a.handleComputerStream)
	mux.HandleFunc("/favicon.ico", handleFavicon)
}

// handleComputer returns one generated computer as JSON.
// Query parameters override the served profile: seed, monitors, min, max, internal.
func (a *App) handleComputer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	seed, profile, err := a.queryProfile(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := a.Build(seed, profile)
	if err != nil {
		a.logger.Warn("build failed", "seed", seed, "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// queryProfile resolves the seed and profile for a request.
func (a *App) queryProfile(q url.Values) (uint64, config.Profile, error) {
	seed := a.cfg.Seed
	if raw := q.Get("seed"); raw != "" {
		v, err := strconv.ParseUint(raw, 0, 64)
		if err != nil {
			return 0, config.Profile{}, fmt.Errorf("seed must be an unsigned integer")
		}
		seed = v
	}

	profile := a.profile
	exact, err := queryInt(q, "monitors")
	if err != nil {
		return 0, config.Profile{}, err
	}
	lo, err := queryInt(q, "min")
	if err != nil {
		return 0, config.Profile{}, err
	}
	hi, err := queryInt(q, "max")
	if err != nil {
		return 0, config.Profile{}, err
	}
	if exact != nil || lo != nil || hi != nil {
		profile.Monitors.Exact, profile.Monitors.Min, profile.Monitors.Max = exact, lo, hi
	}
	if raw := q.Get("internal"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return 0, config.Profile{}, fmt.Errorf("internal must be a boolean")
		}
		profile.Monitors.InternalDisplay = v
	}
	return seed, profile, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
