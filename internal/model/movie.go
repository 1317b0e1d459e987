package model

// Movie is a catalog record. Year, Type and Poster are optional and
// serialize as JSON null when absent; records created through the add
// endpoint carry only an id and a title.
type Movie struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Year   *int    `json:"year"`
	Type   *string `json:"type"`
	Poster *string `json:"poster"`
}
