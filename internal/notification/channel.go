package notification

// Channel abstracts one delivery mechanism (email, push, ...)
type Channel interface {
	Send(recipients []string, subject, body string) error
}
