package models

type Priority string

const (
	PriorityLow      Priority = "Низкий"
	PriorityNormal   Priority = "Средний"
	PriorityHigh     Priority = "Высокий"
	PriorityCritical Priority = "Критичный"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

const SystemUser = "Система"
