package core

import "encoding/json"

type SourceParams struct {
	ID       SourceID
	Name     string
	Type     string
	Location string
	// DataKey is variant specific: the JSON key holding the record list,
	// a table, a collection or a key pattern.
	DataKey     string
	Query       string
	Credentials map[string]string
}

// Expand returns a copy of the original parameters with expanded fields
func (p *SourceParams) Expand() *SourceParams {
	var creds map[string]string
	if p.Credentials != nil {
		creds = make(map[string]string, len(p.Credentials))
		for k, v := range p.Credentials {
			creds[k] = expandOrDefault(v)
		}
	}

	return &SourceParams{
		ID:          SourceID(expandOrDefault(string(p.ID))),
		Name:        expandOrDefault(p.Name),
		Type:        expandOrDefault(p.Type),
		Location:    expandOrDefault(p.Location),
		DataKey:     expandOrDefault(p.DataKey),
		Query:       expandOrDefault(p.Query),
		Credentials: creds,
	}
}

// MarshalJSON leaves credentials out.
func (p *SourceParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		Location string `json:"location"`
		DataKey  string `json:"data_key,omitempty"`
		Query    string `json:"query,omitempty"`
	}{
		ID:       string(p.ID),
		Name:     p.Name,
		Type:     p.Type,
		Location: p.Location,
		DataKey:  p.DataKey,
		Query:    p.Query,
	})
}
