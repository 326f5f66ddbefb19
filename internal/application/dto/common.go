package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListMeta metadatos de listados (el libro completo cabe en memoria; no hay
// paginación, solo el total devuelto).
type ListMeta struct {
	Total int `json:"total"`
}
