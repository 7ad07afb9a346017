package types

// Notification is the transient, auto-dismissing message the shell shows
// after a mutation. Success messages linger 3 seconds, errors 5.
type Notification struct {
	Level        string `json:"level"` // success | error
	Message      string `json:"message"`
	DurationSecs int    `json:"durationSecs"`
}

func SuccessNotice(message string) Notification {
	return Notification{Level: "success", Message: message, DurationSecs: 3}
}

func ErrorNotice(message string) Notification {
	return Notification{Level: "error", Message: message, DurationSecs: 5}
}

// NoticeFor maps a mutation envelope onto the right notification style.
func NoticeFor(success bool, message string) Notification {
	if success {
		return SuccessNotice(message)
	}
	return ErrorNotice(message)
}
