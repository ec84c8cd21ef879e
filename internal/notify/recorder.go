package notify

import "sync"

// Kind classifies a recorded notification
type Kind string

// Notification kinds
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Record is a single captured notification
type Record struct {
	Kind    Kind
	Message string
}

// Recorder captures notifications for assertions in tests
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(kind Kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record{Kind: kind, Message: message})
}

func (r *Recorder) Success(message string) { r.add(KindSuccess, message) }
func (r *Recorder) Error(message string)   { r.add(KindError, message) }
func (r *Recorder) Info(message string)    { r.add(KindInfo, message) }

// Records returns a copy of all captured notifications
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Errors returns the messages of all error notifications
func (r *Recorder) Errors() []string {
	return r.messages(KindError)
}

// Successes returns the messages of all success notifications
func (r *Recorder) Successes() []string {
	return r.messages(KindSuccess)
}

func (r *Recorder) messages(kind Kind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, rec := range r.records {
		if rec.Kind == kind {
			out = append(out, rec.Message)
		}
	}
	return out
}

// Reset discards all captured notifications
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}
