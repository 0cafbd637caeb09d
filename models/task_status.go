package models

// TaskStatus - локальный статус задачи отдела
type TaskStatus string

const (
	TStatusNew        TaskStatus = "Новая"
	TStatusInProgress TaskStatus = "В работе"
	TStatusPaused     TaskStatus = "На паузе"
	TStatusDone       TaskStatus = "Выполнена"
)

func (s TaskStatus) AllowAssign() bool {
	return s == TStatusNew || s == TStatusInProgress || s == TStatusPaused
}

func (s TaskStatus) AllowPause() bool {
	return s == TStatusInProgress
}

func (s TaskStatus) AllowResume() bool {
	return s == TStatusPaused
}

func (s TaskStatus) AllowComplete() bool {
	return s == TStatusInProgress || s == TStatusPaused
}
