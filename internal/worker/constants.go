package worker

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerStopped   = "Worker pool stopped"
)

// Log keys
const (
	LogKeyJob   = "job"
	LogKeyError = "error"
)
