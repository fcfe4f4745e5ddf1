package dto

// SortInfo metadatos de ordenamiento de una página.
type SortInfo struct {
	Empty    bool `json:"empty"`
	Sorted   bool `json:"sorted"`
	Unsorted bool `json:"unsorted"`
}

// Pageable metadatos de la petición paginada tal como los devuelve el backend.
type Pageable struct {
	PageNumber int      `json:"pageNumber"`
	PageSize   int      `json:"pageSize"`
	Sort       SortInfo `json:"sort"`
	Offset     int      `json:"offset"`
	Paged      bool     `json:"paged"`
	Unpaged    bool     `json:"unpaged"`
}

// Page sobre de respuesta paginada (content + metadatos de página y orden).
type Page[T any] struct {
	Content          []T      `json:"content"`
	Pageable         Pageable `json:"pageable"`
	Last             bool     `json:"last"`
	TotalPages       int      `json:"totalPages"`
	TotalElements    int64    `json:"totalElements"`
	Size             int      `json:"size"`
	Number           int      `json:"number"`
	Sort             SortInfo `json:"sort"`
	First            bool     `json:"first"`
	NumberOfElements int      `json:"numberOfElements"`
	Empty            bool     `json:"empty"`
}

// NewPage arma una página a partir de un slice ya recortado y el total de elementos.
func NewPage[T any](items []T, number, size int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	sort := SortInfo{Empty: true, Unsorted: true}
	return Page[T]{
		Content: items,
		Pageable: Pageable{
			PageNumber: number,
			PageSize:   size,
			Sort:       sort,
			Offset:     number * size,
			Paged:      true,
		},
		Last:             number >= totalPages-1,
		TotalPages:       totalPages,
		TotalElements:    total,
		Size:             size,
		Number:           number,
		Sort:             sort,
		First:            number == 0,
		NumberOfElements: len(items),
		Empty:            len(items) == 0,
	}
}

// FieldError detalle de un campo rechazado por la validación del backend.
type FieldError struct {
	Field         string `json:"field"`
	RejectedValue any    `json:"rejectedValue"`
	Message       string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP. FieldErrors solo viene en errores de validación.
type ErrorResponse struct {
	Timestamp   Timestamp    `json:"timestamp"`
	Status      int          `json:"status"`
	Error       string       `json:"error"`
	Message     string       `json:"message"`
	Path        string       `json:"path"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}
