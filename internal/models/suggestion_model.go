package models

// Suggestion statuses. Approved and rejected are terminal.
const (
	SuggestionPending  = "pending"
	SuggestionApproved = "approved"
	SuggestionRejected = "rejected"
)

// Suggestion is a user-submitted proposal for a new CollectionPoint.
type Suggestion struct {
	UserID     string  `json:"usuarioId"`
	Name       string  `json:"nome"`
	Address    string  `json:"endereco"`
	PostalCode string  `json:"cep"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  string  `json:"data"`
	Status     string  `json:"status"`

	// Set when the suggestion reaches a terminal status.
	CollectionPointID string `json:"ecopontoId,omitempty"`
	ResolvedAt        string `json:"resolvidoEm,omitempty"`
}

// IsTerminal reports whether the suggestion was already approved or rejected.
func (s *Suggestion) IsTerminal() bool {
	return s.Status == SuggestionApproved || s.Status == SuggestionRejected
}

// SuggestionFromRecord reads a stored suggestion field by field. Fields of an unexpected
// type are left empty instead of failing the whole record.
func SuggestionFromRecord(r Record) Suggestion {
	s := Suggestion{
		UserID:            r.String("usuarioId"),
		Name:              r.String("nome"),
		Address:           r.String("endereco"),
		PostalCode:        r.String("cep"),
		Timestamp:         r.String("data"),
		Status:            r.String("status"),
		CollectionPointID: r.String("ecopontoId"),
		ResolvedAt:        r.String("resolvidoEm"),
	}
	s.Latitude, _ = r.Float("latitude")
	s.Longitude, _ = r.Float("longitude")
	return s
}
