package model

// PaginatedResponse is the fixed listing envelope. Total counts all rows
// matching the filter, independent of the page slice.
type PaginatedResponse struct {
	Items    any `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// DatasetStats backs the /stats endpoint.
type DatasetStats struct {
	BooksTotal   int `json:"books_total"`
	RatingsTotal int `json:"ratings_total"`
	UsersTotal   int `json:"users_total"`
}
