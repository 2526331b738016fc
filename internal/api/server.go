// Package api provides REST and websocket access to decoded binary
// messages: recent traffic, per-authority queries, decode-on-demand
// and a live stream.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ais_watch/internal/ais"
	"ais_watch/internal/bits"
	"ais_watch/internal/decoders"
	"ais_watch/internal/registry"
	"ais_watch/internal/storage"
)

// Server provides REST API access to the local message store and a
// websocket stream of live decodes.
type Server struct {
	local *storage.Local
	pg    *storage.PostgresDB // optional, nil when not configured
	hub   *Hub
	port  int
}

// Config holds configuration for the API server.
type Config struct {
	Port int
}

// NewServer creates a new API server. pg may be nil.
func NewServer(local *storage.Local, pg *storage.PostgresDB, cfg Config) *Server {
	return &Server{
		local: local,
		pg:    pg,
		hub:   NewHub(),
		port:  cfg.Port,
	}
}

// Hub returns the websocket hub so the decode pipeline can broadcast.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	r := chi.NewRouter()

	// Standard middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/supported", s.handleSupported)
		r.Get("/messages", s.handleMessages)
		r.Get("/messages/{id}", s.handleMessageByID)
		r.Get("/messages/dac/{dac}", s.handleMessagesByDAC)
		r.Get("/messages/dac/{dac}/fid/{fid}", s.handleMessagesByDAC)
		r.Get("/stats", s.handleStats)
		r.Post("/decode", s.handleDecode)

		if s.pg != nil {
			r.Get("/vessels", s.handleVessels)
			r.Get("/sensors", s.handleSensorSites)
		}
	})

	r.Get("/ws", s.hub.HandleWS)

	addr := ":" + strconv.Itoa(s.port)
	log.Printf("API starting at http://localhost%s", addr)
	return http.ListenAndServe(addr, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// SupportedEntry describes one decoder table entry.
type SupportedEntry struct {
	DAC        int    `json:"dac"`
	FID        int    `json:"fid"`
	Name       string `json:"name"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

func (s *Server) handleSupported(w http.ResponseWriter, r *http.Request) {
	var out []SupportedEntry
	for _, e := range decoders.Supported() {
		out = append(out, SupportedEntry{DAC: e.DAC, FID: e.FID, Name: e.Name, Deprecated: e.Deprecated})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	p := storage.QueryParams{
		Limit:     queryInt(r, "limit", 100),
		Offset:    queryInt(r, "offset", 0),
		MMSI:      queryInt(r, "mmsi", 0),
		Name:      r.URL.Query().Get("name"),
		HasError:  r.URL.Query().Get("failed") == "true",
		OrderDesc: true,
	}
	messages, err := s.local.Query(p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toResponses(messages))
}

func (s *Server) handleMessageByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}
	m, err := s.local.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(*m))
}

func (s *Server) handleMessagesByDAC(w http.ResponseWriter, r *http.Request) {
	dac, err := strconv.Atoi(chi.URLParam(r, "dac"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dac")
		return
	}
	fid := 0
	if f := chi.URLParam(r, "fid"); f != "" {
		fid, err = strconv.Atoi(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid fid")
			return
		}
	}
	messages, err := s.local.Query(storage.QueryParams{
		DAC:       dac,
		FID:       fid,
		Limit:     queryInt(r, "limit", 100),
		Offset:    queryInt(r, "offset", 0),
		OrderDesc: true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toResponses(messages))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.local.GetStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// DecodeRequest is a decode-on-demand request: either a full NMEA
// sentence, or an armored payload with its fill bit count.
type DecodeRequest struct {
	Sentence string `json:"sentence,omitempty"`
	Payload  string `json:"payload,omitempty"`
	FillBits int    `json:"fill_bits,omitempty"`
}

// DecodeResponse carries the envelope and the decode outcome.
type DecodeResponse struct {
	Envelope *ais.Binary      `json:"envelope"`
	Decoded  registry.Message `json:"decoded,omitempty"`
	Error    string           `json:"error,omitempty"`
	Kind     string           `json:"error_kind,omitempty"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	payload, fill := req.Payload, req.FillBits
	if req.Sentence != "" {
		sent, err := ais.ParseSentence(req.Sentence)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if sent.TotalFragments != 1 {
			writeError(w, http.StatusBadRequest, "multi-part sentences not supported here; pass the joined payload")
			return
		}
		payload, fill = sent.Payload, sent.FillBits
	}
	if payload == "" {
		writeError(w, http.StatusBadRequest, "sentence or payload is required")
		return
	}

	data, nbits := bits.Dearmor(payload, fill)
	env, err := ais.DecodeFrame(data, nbits)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := DecodeResponse{Envelope: env}
	msg, err := decoders.Decode(env.DAC, env.FID, env.Data, env.BitLength)
	if err != nil {
		resp.Error = err.Error()
		var de *registry.DecodeError
		if errors.As(err, &de) {
			resp.Kind = de.Kind.String()
		}
	} else {
		resp.Decoded = msg
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVessels(w http.ResponseWriter, r *http.Request) {
	hours := queryInt(r, "hours", 24)
	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	vessels, err := s.pg.ListVessels(context.Background(), since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, vessels)
}

func (s *Server) handleSensorSites(w http.ResponseWriter, r *http.Request) {
	sites, err := s.pg.ListSensorSites(context.Background())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

// MessageResponse is the JSON shape of a stored message.
type MessageResponse struct {
	ID         int64           `json:"id"`
	ReceivedAt string          `json:"received_at"`
	Channel    string          `json:"channel,omitempty"`
	MMSI       int             `json:"mmsi"`
	MsgType    int             `json:"msg_type"`
	DAC        int             `json:"dac"`
	FID        int             `json:"fid"`
	Name       string          `json:"name"`
	Decoded    json.RawMessage `json:"decoded,omitempty"`
	ErrorKind  string          `json:"error_kind,omitempty"`
	ErrorText  string          `json:"error_text,omitempty"`
}

func toResponse(m storage.StoredMessage) MessageResponse {
	resp := MessageResponse{
		ID:         m.ID,
		ReceivedAt: m.ReceivedAt.UTC().Format(time.RFC3339Nano),
		Channel:    m.Channel,
		MMSI:       m.MMSI,
		MsgType:    m.MsgType,
		DAC:        m.DAC,
		FID:        m.FID,
		Name:       m.Name,
		ErrorKind:  m.ErrorKind,
		ErrorText:  m.ErrorText,
	}
	if m.DecodedJSON != "" {
		resp.Decoded = json.RawMessage(m.DecodedJSON)
	}
	return resp
}

func toResponses(messages []storage.StoredMessage) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toResponse(m))
	}
	return out
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
