package pitch

import (
	"encoding/json"
	"fmt"
)

func (s Services) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Facilities)+1)
	for name, enabled := range s.Facilities {
		out[name] = enabled
	}
	if s.Type != "" {
		out["type"] = s.Type
	}
	return json.Marshal(out)
}

func (s *Services) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Services{Facilities: make(map[string]bool, len(raw))}
	for name, value := range raw {
		if name == "type" {
			if err := json.Unmarshal(value, &s.Type); err != nil {
				return fmt.Errorf("services.type: %w", err)
			}
			continue
		}
		var enabled bool
		if err := json.Unmarshal(value, &enabled); err != nil {
			return fmt.Errorf("services.%s: %w", name, err)
		}
		s.Facilities[name] = enabled
	}
	return nil
}
