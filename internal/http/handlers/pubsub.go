package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/booking"
	"github.com/mauv0809/pitchside/internal/pubsub"
)

// PushHandler receives a Google Pub/Sub push delivery for topic and passes
// the decoded payload to the event handler.
func PushHandler(events *booking.EventHandler, topic pubsub.EventType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received push message", "topic", topic, "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		// Failures are acknowledged so Pub/Sub does not redeliver a payload
		// that will never succeed.
		if err := events.HandleDryRun(topic, rawData, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to handle push message", "topic", topic, "subscription", pubsubMsg.Subscription, "error", err)
		}
		w.Write([]byte("OK"))
	}
}
