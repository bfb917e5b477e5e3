package domain

// Severity levels assigned to log entries. Level is never empty on a
// constructed LogEntry; the classifier defaults to LevelInfo.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogEntry is one normalized operational log record produced from a raw
// queue message. Exactly one LogEntry exists per received message, parse
// failures included.
type LogEntry struct {
	ID             string `json:"id"`
	Timestamp      string `json:"timestamp"`
	Level          string `json:"level"`
	Message        string `json:"message"`
	LambdaFunction string `json:"lambdaFunction"`
	RequestID      string `json:"requestId"`
}

// FileInfo describes one stored object as presented to the console,
// including a temporary download URL.
type FileInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified"`
	URL          string `json:"url"`
}

// StoredFile reports the outcome of a single uploaded file.
type StoredFile struct {
	FileName string `json:"fileName"`
	Key      string `json:"key"`
}
