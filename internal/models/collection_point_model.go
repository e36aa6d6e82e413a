package models

import "time"

// CollectionPoint statuses. Points created through the API or spawned by an approved
// suggestion start as StatusActive; any other value is accepted on update.
const (
	StatusActive = "active"
)

// TimestampLayout is the UTC ISO-8601 layout used for every stored timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC with a Z suffix.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// CollectionPoint ("ecoponto") is a site accepting recyclable waste.
// It is stored at ecopontos/<id>; ratings live in the avaliacoes subtree.
type CollectionPoint struct {
	Name       string            `json:"nome"`
	Address    string            `json:"endereco"`
	PostalCode string            `json:"cep"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	CreatedBy  string            `json:"criadoPor"`
	CreatedAt  string            `json:"criadoEm"`
	Status     string            `json:"status"`
	Ratings    map[string]Rating `json:"avaliacoes,omitempty"`
}
