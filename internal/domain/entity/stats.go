package entity

// Stats is the dashboard summary computed by the API.
type Stats struct {
	TotalNews       int64
	TotalUsers      int64
	TotalComments   int64
	TotalCategories int64
}
