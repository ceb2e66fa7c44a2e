package waitlist

import (
	"github.com/mauv0809/pitchside/internal/storage"
)

// Membership maps reservation ids (as decimal strings) to whether the user is
// waiting for them.
type Membership map[string]bool

type syncer struct {
	store storage.Store
}
