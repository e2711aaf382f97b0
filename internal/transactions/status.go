package transactions

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus: membership check saja. Transisi bebas any-to-any (field
// overwrite), tidak ada state machine yang membatasi.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
