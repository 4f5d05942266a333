package worker

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgQueueFull         = "Worker queue full, job dropped"
)
