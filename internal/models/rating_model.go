package models

// Rating is a user's score and comment on a CollectionPoint.
// Ratings are append-only.
type Rating struct {
	UserID    string `json:"usuarioId"`
	Score     int    `json:"nota"`
	Comment   string `json:"comentario,omitempty"`
	Timestamp string `json:"data"`
}
