package order

// QueryOrdersModel represents filter parameters for listing orders.
// Empty slices match everything.
type QueryOrdersModel struct {
	Tables   []int    `json:"tables,omitempty"`
	Statuses []Status `json:"statuses,omitempty"`
}
