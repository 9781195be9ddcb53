package domain

// Sentinel texts returned to HTTP clients for a delete request. A failed
// delete is reported through the body, never through the status code.
const (
	DeleteSucceededMessage = "Success"
	DeleteFailedMessage    = "Failure occurred, check error logs for more details"
)

// DeleteOutcome is the result of a delete attempt. Delete failures are
// swallowed by the service and surface only as a failed outcome.
type DeleteOutcome struct {
	deleted bool
}

func DeleteSucceeded() DeleteOutcome {
	return DeleteOutcome{deleted: true}
}

func DeleteFailed() DeleteOutcome {
	return DeleteOutcome{}
}

// Succeeded reports whether the row was removed.
func (o DeleteOutcome) Succeeded() bool {
	return o.deleted
}

// String returns the sentinel text sent to clients.
func (o DeleteOutcome) String() string {
	if o.deleted {
		return DeleteSucceededMessage
	}
	return DeleteFailedMessage
}
