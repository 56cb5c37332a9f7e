package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"staybook/internal/adapters/identity"
	"staybook/internal/adapters/observability"
	"staybook/internal/app"
	"staybook/internal/domain"
)

var validate = validator.New()

type Handlers struct {
	Q         *app.QueryService
	Bookings  *app.BookingService
	Favorites *app.FavoriteService
	Profile   *app.ProfileService
	History   domain.HistoryStore
	Identity  domain.IdentityProvider
	Sessions  *identity.Events
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers, verifier SessionVerifier) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.With(OptionalSession(verifier)).Get("/hotels", h.searchHotels)
		r.Get("/hotels/{id}", h.getHotel)

		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Post("/auth/login/provider", h.loginWithProvider)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession(verifier))
			r.Post("/auth/logout", h.logout)
			r.Get("/me", h.profile)

			r.Post("/bookings", h.createBooking)
			r.Get("/bookings", h.listBookings)
			r.Get("/bookings/{id}", h.getBooking)
			r.Post("/bookings/{id}/cancel", h.cancelBooking)

			r.Post("/favorites", h.addFavorite)
			r.Get("/favorites", h.listFavorites)
			r.Delete("/favorites/{id}", h.removeFavorite)

			r.Get("/history", h.listHistory)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain sentinels to problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCriteria):
		writeProblem(w, http.StatusBadRequest, "Invalid Criteria", err.Error())
	case errors.Is(err, domain.ErrInvalidRange):
		writeProblem(w, http.StatusBadRequest, "Invalid Range", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrAuthRequired):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, domain.ErrPersistence):
		log.Error().Err(err).Msg("persistence failure")
		writeProblem(w, http.StatusBadGateway, "Persistence Failure", "the document store rejected the operation")
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeProblem(w, http.StatusBadRequest, "Invalid Credentials", "email or password is incorrect")
	case errors.Is(err, identity.ErrEmailTaken):
		writeProblem(w, http.StatusConflict, "Email Taken", "an account with this email already exists")
	case errors.Is(err, identity.ErrSessionExpired):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "session expired")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- catalog ----

func parseCriteria(r *http.Request) (domain.SearchCriteria, error) {
	q := r.URL.Query()
	cr := domain.SearchCriteria{Location: q.Get("location")}

	if v := q.Get("guests"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cr, domain.ErrInvalidCriteria
		}
		cr.Guests = n
	}
	for _, p := range []struct {
		key string
		dst **float64
	}{
		{"min_price", &cr.MinPrice},
		{"max_price", &cr.MaxPrice},
		{"min_rating", &cr.MinRating},
	} {
		if v := q.Get(p.key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return cr, domain.ErrInvalidCriteria
			}
			*p.dst = &f
		}
	}
	for _, d := range []struct {
		key string
		dst *time.Time
	}{
		{"check_in", &cr.CheckIn},
		{"check_out", &cr.CheckOut},
	} {
		if v := q.Get(d.key); v != "" {
			t, err := time.Parse(dateLayout, v)
			if err != nil {
				return cr, domain.ErrInvalidCriteria
			}
			*d.dst = t
		}
	}
	// Both dates present means a stay range; enforce the ordering invariant up
	// front rather than on booking only.
	if !cr.CheckIn.IsZero() && !cr.CheckOut.IsZero() && !cr.CheckOut.After(cr.CheckIn) {
		return cr, domain.ErrInvalidRange
	}
	return cr, nil
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	cr, err := parseCriteria(r)
	if err != nil {
		writeError(w, err)
		return
	}
	uid := ""
	if sess, ok := SessionFrom(r.Context()); ok {
		uid = sess.UID
	}
	hotels, err := h.Q.Search(r.Context(), cr, uid)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]hotelResponse, 0, len(hotels))
	for _, hotel := range hotels {
		out = append(out, toHotelResponse(hotel))
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": out})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	hd, err := h.Q.HotelDetails(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	etag, body := calcETagAndBody(toHotelDetailsResponse(hd))
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write hotel detail body")
	}
}

// ---- auth ----

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	sess, token, err := h.Identity.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		// A persistence error here means the account exists but the profile
		// mirror failed; the session is still valid.
		writeError(w, err)
		return
	}
	observability.ObserveSession("register")
	h.Sessions.Publish(identity.Event{Kind: identity.EventRegister, Session: sess})
	writeJSON(w, http.StatusCreated, toSessionResponse(sess, token))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	sess, token, err := h.Identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	observability.ObserveSession("login")
	h.Sessions.Publish(identity.Event{Kind: identity.EventLogin, Session: sess})
	writeJSON(w, http.StatusOK, toSessionResponse(sess, token))
}

func (h *Handlers) loginWithProvider(w http.ResponseWriter, r *http.Request) {
	var req providerLoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	sess, token, err := h.Identity.LoginWithProvider(r.Context(), req.Provider, req.IDToken)
	if err != nil {
		writeError(w, err)
		return
	}
	observability.ObserveSession("login")
	h.Sessions.Publish(identity.Event{Kind: identity.EventLogin, Session: sess})
	writeJSON(w, http.StatusOK, toSessionResponse(sess, token))
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	if err := h.Identity.Logout(r.Context(), bearerToken(r)); err != nil {
		writeError(w, err)
		return
	}
	observability.ObserveSession("logout")
	h.Sessions.Publish(identity.Event{Kind: identity.EventLogout, Session: sess})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	ov, err := h.Profile.Overview(r.Context(), sess)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(ov))
}

// ---- bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	checkIn, _ := time.Parse(dateLayout, req.CheckIn)
	checkOut, _ := time.Parse(dateLayout, req.CheckOut)

	sess, _ := SessionFrom(r.Context())
	b, err := h.Bookings.Create(r.Context(), sess.UID, app.CreateInput{
		HotelID:    req.HotelID,
		RoomTypeID: req.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(b))
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	bs, err := h.Bookings.List(r.Context(), sess.UID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]bookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResponse(b))
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": out})
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	b, err := h.Bookings.Get(r.Context(), sess.UID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(b))
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	if err := h.Bookings.Cancel(r.Context(), sess.UID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.StatusCancelled)})
}

// ---- favorites & history ----

func (h *Handlers) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	sess, _ := SessionFrom(r.Context())
	f, err := h.Favorites.Add(r.Context(), sess.UID, req.HotelID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFavoriteResponse(f))
}

func (h *Handlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	fs, err := h.Favorites.List(r.Context(), sess.UID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]favoriteResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, toFavoriteResponse(f))
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": out})
}

func (h *Handlers) removeFavorite(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	if err := h.Favorites.Remove(r.Context(), sess.UID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listHistory(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	recs, err := h.History.ListByUser(r.Context(), sess.UID)
	if err != nil {
		writeError(w, fmt.Errorf("%w: list history: %w", domain.ErrPersistence, err))
		return
	}
	out := make([]searchRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toSearchRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": out})
}
