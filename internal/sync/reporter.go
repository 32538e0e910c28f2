package sync

// Reporter receives the human-readable progress of a session.
//
// Info and Success describe progress and belong on stdout. Warning and
// Error describe failures and belong on stderr. Conflict is reported on
// stdout: it asks the operator to act rather than describing a fault.
// A non-empty hint is printed on its own line after the message.
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Error(msg, hint string)
	Conflict(msg, hint string)
}

type nopReporter struct{}

func (nopReporter) Info(string)             {}
func (nopReporter) Success(string)          {}
func (nopReporter) Warning(string)          {}
func (nopReporter) Error(string, string)    {}
func (nopReporter) Conflict(string, string) {}

var _ Reporter = nopReporter{}
