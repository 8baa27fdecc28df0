package salt

var _ error = Error("")

type Error string

func (err Error) Error() string {
	return string(err)
}

const (
	ErrInvalidSalt     = Error("invalid salt string")
	ErrInvalidRevision = Error("invalid revision")
	ErrCostOutOfRange  = Error("cost out of range")
	ErrEntropyFailure  = Error("entropy source failure")
)
