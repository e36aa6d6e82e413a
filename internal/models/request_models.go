package models

// CreateCollectionPointRequest represents the request body for creating a collection point.
// Coordinates are pointers so that 0 is distinguishable from a missing field.
type CreateCollectionPointRequest struct {
	Name       string   `json:"nome" binding:"required"`
	Address    string   `json:"endereco" binding:"required"`
	PostalCode string   `json:"cep" binding:"required"`
	Latitude   *float64 `json:"latitude" binding:"required"`
	Longitude  *float64 `json:"longitude" binding:"required"`
	CreatedBy  string   `json:"criadoPor" binding:"required"`
	Status     string   `json:"status,omitempty"`
}

// UpdateCollectionPointRequest represents a partial update. Nil fields are left untouched.
type UpdateCollectionPointRequest struct {
	Name       *string  `json:"nome,omitempty"`
	Address    *string  `json:"endereco,omitempty"`
	PostalCode *string  `json:"cep,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	CreatedBy  *string  `json:"criadoPor,omitempty"`
	Status     *string  `json:"status,omitempty"`
}

// Fields returns the provided fields keyed by their stored name.
func (r UpdateCollectionPointRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Name != nil {
		fields["nome"] = *r.Name
	}
	if r.Address != nil {
		fields["endereco"] = *r.Address
	}
	if r.PostalCode != nil {
		fields["cep"] = *r.PostalCode
	}
	if r.Latitude != nil {
		fields["latitude"] = *r.Latitude
	}
	if r.Longitude != nil {
		fields["longitude"] = *r.Longitude
	}
	if r.CreatedBy != nil {
		fields["criadoPor"] = *r.CreatedBy
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	return fields
}

// CreateRatingRequest represents the request body for rating a collection point.
type CreateRatingRequest struct {
	UserID  string `json:"usuarioId" binding:"required"`
	Score   *int   `json:"nota" binding:"required"`
	Comment string `json:"comentario,omitempty"`
}

// CreateSuggestionRequest represents the request body for suggesting a new collection point.
type CreateSuggestionRequest struct {
	UserID     string   `json:"usuarioId" binding:"required"`
	Name       string   `json:"nome" binding:"required"`
	Address    string   `json:"endereco" binding:"required"`
	PostalCode string   `json:"cep" binding:"required"`
	Latitude   *float64 `json:"latitude" binding:"required"`
	Longitude  *float64 `json:"longitude" binding:"required"`
}

// RegisterRequest represents the request body for POST /register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"senha" binding:"required,min=6"`
	Name     string `json:"nome" binding:"required"`
	Handle   string `json:"usuario" binding:"required"`
}
