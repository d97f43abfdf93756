package queue

type TaskType string

const (
	// TaskTypeBlobCleanup removes stored attachment bytes after their claim was deleted.
	TaskTypeBlobCleanup TaskType = "blob_cleanup"
)

type Task struct {
	TaskType    TaskType
	ClaimID     int64
	StorageKeys []string
	TraceID     *string
	Attempt     int
}
