package pitch

// Catalog defines the operations over the pitch collection.
type Catalog interface {
	AddPitch(p Pitch) Pitch
	UpdatePitch(id string, update PitchUpdate) (Pitch, bool)
	DeletePitch(id string) bool
	GetPitches() []Pitch
	GetPitch(id string) (Pitch, bool)
	ReplaceAll(pitches []Pitch)
}
