package pitch

import (
	"maps"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var _ Catalog = (*catalog)(nil)

// New creates an empty Catalog.
func New() Catalog {
	return &catalog{pitches: []Pitch{}}
}

// AddPitch appends p, generating an id when it has none.
func (c *catalog) AddPitch(p Pitch) Pitch {
	c.mu.Lock()
	defer c.mu.Unlock()

	p = clone(p)
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	c.pitches = append(c.pitches, p)
	log.Info("Added pitch", "pitchID", p.ID, "name", p.Name)
	return clone(p)
}

func (c *catalog) UpdatePitch(id string, update PitchUpdate) (Pitch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return Pitch{}, false
	}
	next := clone(c.pitches[i])
	applyUpdate(&next, update)
	c.pitches[i] = next
	return clone(next), true
}

// DeletePitch removes the pitch with the given id.
func (c *catalog) DeletePitch(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.pitches = append(c.pitches[:i:i], c.pitches[i+1:]...)
	log.Info("Deleted pitch", "pitchID", id)
	return true
}

func (c *catalog) GetPitches() []Pitch {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Pitch, len(c.pitches))
	for i, p := range c.pitches {
		out[i] = clone(p)
	}
	return out
}

func (c *catalog) GetPitch(id string) (Pitch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return Pitch{}, false
	}
	return clone(c.pitches[i]), true
}

// ReplaceAll swaps the catalog for a backend snapshot.
func (c *catalog) ReplaceAll(pitches []Pitch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pitches = make([]Pitch, 0, len(pitches))
	for _, p := range pitches {
		c.pitches = append(c.pitches, clone(p))
	}
	log.Info("Replaced pitch catalog", "count", len(c.pitches))
}

func (c *catalog) indexOf(id string) int {
	for i := range c.pitches {
		if c.pitches[i].ID == id {
			return i
		}
	}
	return -1
}

func applyUpdate(p *Pitch, u PitchUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.BackgroundImage != nil {
		p.BackgroundImage = *u.BackgroundImage
	}
	if u.Gallery != nil {
		p.Gallery = append([]string{}, (*u.Gallery)...)
	}
	if u.PlayersPerSide != nil {
		p.PlayersPerSide = *u.PlayersPerSide
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Services != nil {
		p.Services = cloneServices(*u.Services)
	}
}

func clone(p Pitch) Pitch {
	out := p
	if p.Gallery != nil {
		out.Gallery = append([]string{}, p.Gallery...)
	}
	out.Services = cloneServices(p.Services)
	return out
}

func cloneServices(s Services) Services {
	return Services{Type: s.Type, Facilities: maps.Clone(s.Facilities)}
}
