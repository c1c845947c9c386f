// Package songsfeature serves the track catalog and its engagement
// counters.
package songsfeature

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	songstore "github.com/emeraldorbit/emeraldhub/internal/app/store/songs"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/sanitize"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Songs *songstore.Store
	Log   *zap.Logger
}

func NewHandler(songs *songstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Songs: songs, Log: logger}
}

type songRequest struct {
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	AudioURL    string   `json:"audio_url"`
	Genre       string   `json:"genre"`
	BPM         int      `json:"bpm"`
	Key         string   `json:"key"`
	Tags        []string `json:"tags"`
	ForSale     bool     `json:"for_sale"`
	PriceUSD    float64  `json:"price_usd"`
	LicenseType string   `json:"license_type"`
}

func (req *songRequest) toModel(ownerEmail string) (models.Song, string) {
	title := sanitize.Text(req.Title)
	artist := sanitize.Text(req.Artist)
	switch {
	case title == "":
		return models.Song{}, "Title is required"
	case artist == "":
		return models.Song{}, "Artist is required"
	case req.PriceUSD < 0:
		return models.Song{}, "price_usd must be non-negative"
	case req.ForSale && req.PriceUSD == 0:
		return models.Song{}, "A for-sale song needs a price"
	}
	return models.Song{
		UserEmail:   ownerEmail,
		Title:       title,
		Artist:      artist,
		AudioURL:    req.AudioURL,
		Genre:       sanitize.Text(req.Genre),
		BPM:         req.BPM,
		Key:         sanitize.Text(req.Key),
		Tags:        sanitize.Slice(req.Tags),
		ForSale:     req.ForSale,
		PriceUSD:    req.PriceUSD,
		LicenseType: req.LicenseType,
	}, ""
}

// List handles GET /api/songs with an optional ?q= title filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	list, err := h.Songs.ListByOwner(r.Context(), u.Email, query.Get(r, "q"))
	if err != nil {
		h.Log.Error("list songs", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, list)
}

// Market handles GET /api/songs/market: every for-sale track.
func (h *Handler) Market(w http.ResponseWriter, r *http.Request) {
	list, err := h.Songs.ListForSale(r.Context())
	if err != nil {
		h.Log.Error("list market", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, list)
}

// Create handles POST /api/songs.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req songRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	song, problem := req.toModel(u.Email)
	if problem != "" {
		apierr.BadRequest(w, problem)
		return
	}

	if err := h.Songs.Create(r.Context(), &song); err != nil {
		h.Log.Error("create song", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, song)
}

// Get handles GET /api/songs/{id}. Tracks are publicly listable inside
// the platform, so there is no owner filter.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	song, found, err := h.Songs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("get song", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Song not found")
		return
	}
	httpjson.OK(w, song)
}

// Update handles PUT /api/songs/{id}; only the owner's filter matches.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req songRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	song, problem := req.toModel(u.Email)
	if problem != "" {
		apierr.BadRequest(w, problem)
		return
	}

	id := chi.URLParam(r, "id")
	found, err := h.Songs.Update(r.Context(), u.Email, id, song)
	if err != nil {
		h.Log.Error("update song", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Song not found")
		return
	}
	updated, _, err := h.Songs.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload song", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, updated)
}

// Increment handles the POST /{id}/play, /{id}/like and /{id}/download
// counter bumps.
func (h *Handler) Increment(counter string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := h.Songs.Increment(r.Context(), chi.URLParam(r, "id"), counter)
		if err != nil {
			h.Log.Error("increment "+counter, zap.Error(err))
			apierr.Internal(w)
			return
		}
		if !found {
			apierr.NotFound(w, "Song not found")
			return
		}
		httpjson.OK(w, map[string]string{"message": "Recorded"})
	}
}

// Delete handles DELETE /api/songs/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	found, err := h.Songs.Delete(r.Context(), u.Email, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("delete song", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Song not found")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Song deleted"})
}
