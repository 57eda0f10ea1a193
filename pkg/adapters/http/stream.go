package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

// StreamManager fans trace updates out to the SSE subscribers of each campaign.
type StreamManager struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	subscribers map[string]map[chan<- string]struct{} // CampaignID -> Set of Channels
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		logger:      logger,
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

// Subscribe registers a buffered channel for campaignID. The returned func
// unregisters and closes it.
func (sm *StreamManager) Subscribe(campaignID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[campaignID]; !ok {
		sm.subscribers[campaignID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[campaignID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[campaignID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, campaignID)
			}
		}
	}
}

// Subscribers returns the number of live subscriptions of campaignID.
func (sm *StreamManager) Subscribers(campaignID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[campaignID])
}

func (sm *StreamManager) Broadcast(campaignID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	subs, ok := sm.subscribers[campaignID]
	if !ok {
		return
	}
	sm.logger.Debug("broadcasting trace", "campaign_id", campaignID, "subscribers", len(subs), "payload_size", len(msg))
	for ch := range subs {
		select {
		case ch <- msg:
		default:
			// Slow client.
			sm.logger.Warn("SSE: Client buffer full, dropping message", "campaign_id", campaignID)
		}
	}
}

// SubscribeEvents handles the GET /campaigns/{id}/events request (SSE).
// Each event carries the full trace after a recorded decision or an undo.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	campaignID := chi.URLParam(r, "campaignID")
	ch, cancel := s.Streams.Subscribe(campaignID)
	defer cancel()
	s.Logger.Info("SSE: Subscribing to campaign updates", "campaign_id", campaignID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE: Client disconnected", "campaign_id", campaignID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: trace\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
