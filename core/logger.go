package core

// Logger is any service that can log app messages; args may include an error,
// a map[string]interface{} of extra data or a user.User to attach to the entry.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
