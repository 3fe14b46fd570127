package store

import "strings"

// paginationLinks carries the cursor indicators of a listing page. A
// non-empty Next means more pages follow.
type paginationLinks struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
	Next     string `json:"next"`
}

// pagination is the pagination metadata block of a listing response.
type pagination struct {
	Total       int             `json:"total"`
	Count       int             `json:"count"`
	PerPage     int             `json:"per_page"`
	CurrentPage int             `json:"current_page"`
	TotalPages  int             `json:"total_pages"`
	Links       paginationLinks `json:"links"`
}

// listMeta is the metadata envelope of a listing response.
type listMeta struct {
	Pagination pagination `json:"pagination"`
}

// createdResource is the data envelope of a creation response; only the
// destination-assigned identifier is consumed.
type createdResource struct {
	Data struct {
		ID int `json:"id"`
	} `json:"data"`
}

// apiError is the error body the catalog API returns on a rejected request.
type apiError struct {
	Status int               `json:"status"`
	Title  string            `json:"title"`
	Errors map[string]string `json:"errors"`
}

// detail flattens the error body into a single human-readable line.
func (e apiError) detail() string {
	parts := make([]string, 0, 1+len(e.Errors))
	if e.Title != "" {
		parts = append(parts, e.Title)
	}
	for _, msg := range e.Errors {
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}
