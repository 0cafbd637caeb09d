package models

// RequestStatus - глобальный статус заявки
type RequestStatus string

const (
	RStatusNew             RequestStatus = "Новая"
	RStatusPendingApproval RequestStatus = "Ожидает согласования"
	RStatusClarification   RequestStatus = "На уточнении"
	RStatusInProgress      RequestStatus = "В работе"
	RStatusRejected        RequestStatus = "Отклонена"
	RStatusCanceled        RequestStatus = "Отменена"
	RStatusCompleted       RequestStatus = "Завершена"
)

func (s RequestStatus) IsTerminal() bool {
	return s == RStatusRejected || s == RStatusCanceled || s == RStatusCompleted
}

// AllowApprove - согласование доступно только до запуска в работу
func (s RequestStatus) AllowApprove() bool {
	return s == RStatusPendingApproval || s == RStatusClarification
}

func (s RequestStatus) AllowReject() bool {
	return s == RStatusPendingApproval || s == RStatusClarification
}

// AllowDiscussion - на уточнение можно отправить из любого нетерминального статуса
func (s RequestStatus) AllowDiscussion() bool {
	return !s.IsTerminal() && s != RStatusClarification
}

func (s RequestStatus) AllowCancel() bool {
	return !s.IsTerminal()
}

// AllowDelete - физическое удаление только пока заявка не согласована
func (s RequestStatus) AllowDelete() bool {
	return s == RStatusPendingApproval
}

// AllowFullEdit - до согласования автору доступны все поля
func (s RequestStatus) AllowFullEdit() bool {
	return s == RStatusPendingApproval
}

func (s RequestStatus) AllowEdit() bool {
	return !s.IsTerminal()
}

// ApproveTargets - допустимые целевые статусы при согласовании
func (s RequestStatus) ApproveTargets() []RequestStatus {
	return []RequestStatus{RStatusNew, RStatusInProgress}
}
