package models

// StatusCount is the number of persisted analyses with a given status.
type StatusCount struct {
	Status string
	Count  int64
}
