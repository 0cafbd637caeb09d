package requesthandler

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"request-tools-backend/db"
	audithandler "request-tools-backend/lib/audit"
	depttaskstore "request-tools-backend/lib/dept-task/store"
	categorystore "request-tools-backend/lib/dicts/category/store"
	departmentstore "request-tools-backend/lib/dicts/department/store"
	xlsexport "request-tools-backend/lib/export/xls"
	filestorage "request-tools-backend/lib/file-storage"
	notifyhandler "request-tools-backend/lib/notify"
	personstore "request-tools-backend/lib/person/store"
	requeststore "request-tools-backend/lib/request/store"
	serviceerrors "request-tools-backend/lib/service-errors"
	"request-tools-backend/models"
	requestapimodels "request-tools-backend/models/api/request"
	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	Create(authorID string, data requestapimodels.RequestCreateData) (id string, err error)
	Update(id, actorID string, data requestapimodels.RequestEditData) error
	Approve(id, actorID string, data requestapimodels.ApproveData) error
	Reject(id, actorID string, data requestapimodels.ReasonData) error
	ToDiscussion(id, actorID string, data requestapimodels.ReasonData) error
	Cancel(id, actorID string) error
	Delete(id, actorID string) error
	GetByID(id string) (requestapimodels.RequestView, error)
	List(filter requestapimodels.RequestFilter) ([]requestapimodels.RequestView, int64, error)
	ListPendingForDepartment(departmentID string) ([]requestapimodels.RequestView, error)
	ListInDiscussion() ([]requestapimodels.RequestView, error)
	Stats() ([]requestapimodels.StatsView, error)
	AddComment(id, actorID string, data requestapimodels.CommentData) error
	AddAttachment(ctx context.Context, id, actorID, fileName, contentType string, file []byte) (attachmentID string, err error)
	GetAttachment(ctx context.Context, id, attachmentID string) (rec dbmodels.RequestAttachment, body []byte, err error)
	Export(filter requestapimodels.RequestFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           requeststore.NewInstance(db.DB),
		taskStore:       depttaskstore.NewInstance(db.DB),
		personStore:     personstore.NewInstance(db.DB),
		categoryStore:   categorystore.NewInstance(db.DB),
		departmentStore: departmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           requeststore.Provider
	taskStore       depttaskstore.Provider
	personStore     personstore.Provider
	categoryStore   categorystore.Provider
	departmentStore departmentstore.Provider
}

func (i impl) GetLogger(id string) *log.Entry {
	return log.WithField("request_id", id)
}

// RouteInitialStatus заявка руководителя или админа не требует
// согласования
func RouteInitialStatus(author dbmodels.Person) models.RequestStatus {
	if author.IsAutoApproved() {
		return models.RStatusNew
	}
	return models.RStatusPendingApproval
}

// FanOutDepartments отделы без задачи в заявке, без дублей
func FanOutDepartments(rec dbmodels.Request, targetIDs []string) []string {
	seen := make(map[string]bool, len(targetIDs))
	result := make([]string, 0, len(targetIDs))
	for _, depID := range targetIDs {
		if depID == "" || seen[depID] || rec.HasDepartment(depID) {
			continue
		}
		seen[depID] = true
		result = append(result, depID)
	}
	return result
}

func (i impl) Create(authorID string, data requestapimodels.RequestCreateData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	author, err := i.personStore.GetByID(authorID)
	if err != nil {
		return "", err
	}
	if author == nil || !author.IsActive {
		return "", serviceerrors.New(serviceerrors.NotFound, "автор заявки не найден")
	}
	category, err := i.categoryStore.GetByID(data.CategoryID)
	if err != nil {
		return "", err
	}
	if category == nil {
		return "", serviceerrors.New(serviceerrors.NotFound, "категория не найдена")
	}
	for _, depID := range data.TargetDepartmentIDs {
		dept, err := i.departmentStore.GetByID(depID)
		if err != nil {
			return "", err
		}
		if dept == nil {
			return "", serviceerrors.New(serviceerrors.NotFound, "отдел-исполнитель не найден")
		}
	}
	if data.IsStrategic && !author.Rank.IsDirectorate() {
		return "", serviceerrors.New(serviceerrors.AuthorizationDenied, "стратегические заявки создает только дирекция")
	}
	status := RouteInitialStatus(*author)
	priority := data.Priority
	if data.IsStrategic {
		// стратегические заявки дирекции всегда критичные
		priority = models.PriorityCritical
	}
	rec := dbmodels.Request{
		Title:       data.Title,
		Description: data.Description,
		Deadline:    data.Deadline,
		IsStrategic: data.IsStrategic,
		Status:      status,
		Priority:    priority,
		CategoryID:  data.CategoryID,
		AuthorID:    authorID,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		if err = i.fanOut(tx, id, status, data.TargetDepartmentIDs, nil); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&authorID, &id,
			fmt.Sprintf("Создана заявка \"%v\" со статусом \"%v\"", rec.Title, status))
		return nil
	})
	if err != nil {
		i.GetLogger(id).WithError(err).Error("ошибка создания заявки")
		return "", err
	}
	i.GetLogger(id).Info("создана заявка")
	if status == models.RStatusPendingApproval && notifyhandler.Instance != nil {
		notifyhandler.Instance.RequestPendingApproval(id, rec.Title, author.GetFullName(), author.DepartmentID)
	}
	return id, nil
}

// fanOut по задаче на отдел, повторные отделы пропускаются. Дата
// назначения ставится сразу, только когда заявка уже в активном статусе.
func (i impl) fanOut(tx *gorm.DB, requestID string, status models.RequestStatus, targetIDs []string, existing []dbmodels.DepartmentTask) error {
	taskStore := depttaskstore.NewInstance(tx)
	now := time.Now()
	for _, depID := range FanOutDepartments(dbmodels.Request{Tasks: existing}, targetIDs) {
		task := dbmodels.DepartmentTask{
			RequestID:    requestID,
			DepartmentID: depID,
			Status:       models.TStatusNew,
		}
		if status == models.RStatusNew || status == models.RStatusInProgress {
			task.AssignedAt = &now
		}
		if _, err := taskStore.Create(task); err != nil {
			return err
		}
	}
	return nil
}

func (i impl) Update(id, actorID string, data requestapimodels.RequestEditData) error {
	logger := i.GetLogger(id)
	if err := data.Validate(); err != nil {
		return err
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
		}
		if err = i.checkEditAccess(tx, *rec, actorID); err != nil {
			return err
		}
		if !rec.Status.AllowEdit() {
			return serviceerrors.Errorf(serviceerrors.InvalidState, "заявку в статусе \"%v\" нельзя изменить", rec.Status)
		}
		updMap := map[string]interface{}{
			"description": data.Description,
			"deadline":    data.Deadline,
		}
		// до согласования автор правит все поля, после только
		// описание и срок
		if rec.Status.AllowFullEdit() {
			updMap["title"] = data.Title
			if data.Priority != "" && !rec.IsStrategic {
				updMap["priority"] = data.Priority
			}
			if data.CategoryID != "" {
				category, err := categorystore.NewInstance(tx).GetByID(data.CategoryID)
				if err != nil {
					return err
				}
				if category == nil {
					return serviceerrors.New(serviceerrors.NotFound, "категория не найдена")
				}
				updMap["category_id"] = data.CategoryID
			}
		}
		if err = store.Update(id, updMap); err != nil {
			return err
		}
		if len(data.TargetDepartmentIDs) != 0 {
			for _, depID := range data.TargetDepartmentIDs {
				dept, err := departmentstore.NewInstance(tx).GetByID(depID)
				if err != nil {
					return err
				}
				if dept == nil {
					return serviceerrors.New(serviceerrors.NotFound, "отдел-исполнитель не найден")
				}
			}
			existing, err := depttaskstore.NewInstance(tx).ListByRequest(id)
			if err != nil {
				return err
			}
			if err = i.fanOut(tx, id, rec.Status, data.TargetDepartmentIDs, existing); err != nil {
				return err
			}
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, &id, fmt.Sprintf("Изменена заявка \"%v\"", rec.Title))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка изменения заявки")
		return err
	}
	logger.Info("заявка изменена")
	return nil
}

func (i impl) checkEditAccess(tx *gorm.DB, rec dbmodels.Request, actorID string) error {
	if rec.AuthorID == actorID {
		return nil
	}
	actor, err := personstore.NewInstance(tx).GetByID(actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return serviceerrors.New(serviceerrors.NotFound, "сотрудник не найден")
	}
	author, err := personstore.NewInstance(tx).GetByID(rec.AuthorID)
	if err != nil {
		return err
	}
	if author != nil && actor.CanManageTask(author.DepartmentID) {
		return nil
	}
	return serviceerrors.New(serviceerrors.AuthorizationDenied, "нет прав на изменение заявки")
}

func (i impl) checkApprover(tx *gorm.DB, rec dbmodels.Request, actorID string) (*dbmodels.Person, error) {
	actor, err := personstore.NewInstance(tx).GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, serviceerrors.New(serviceerrors.NotFound, "сотрудник не найден")
	}
	author, err := personstore.NewInstance(tx).GetByID(rec.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, serviceerrors.New(serviceerrors.NotFound, "автор заявки не найден")
	}
	if !actor.CanManageTask(author.DepartmentID) {
		return nil, serviceerrors.New(serviceerrors.AuthorizationDenied, "согласование доступно только руководству")
	}
	return actor, nil
}

func (i impl) Approve(id, actorID string, data requestapimodels.ApproveData) error {
	logger := i.GetLogger(id)
	if err := data.Validate(); err != nil {
		return err
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
		}
		if _, err = i.checkApprover(tx, *rec, actorID); err != nil {
			return err
		}
		if !rec.Status.AllowApprove() {
			return serviceerrors.Errorf(serviceerrors.InvalidState, "заявку в статусе \"%v\" нельзя согласовать", rec.Status)
		}
		targetStatus := models.RStatusNew
		if data.TargetStatus != nil {
			targetStatus = *data.TargetStatus
		}
		updMap := map[string]interface{}{
			"status": targetStatus,
		}
		if data.Title != "" {
			updMap["title"] = data.Title
		}
		if data.Description != "" {
			updMap["description"] = data.Description
		}
		if data.Priority != "" && !rec.IsStrategic {
			updMap["priority"] = data.Priority
		}
		if data.Deadline != nil {
			updMap["deadline"] = data.Deadline
		}
		if data.CategoryID != "" {
			category, err := categorystore.NewInstance(tx).GetByID(data.CategoryID)
			if err != nil {
				return err
			}
			if category == nil {
				return serviceerrors.New(serviceerrors.NotFound, "категория не найдена")
			}
			updMap["category_id"] = data.CategoryID
		}
		if err = store.Update(id, updMap); err != nil {
			return err
		}
		// согласование вводит заявку в работу, непринятым задачам
		// проставляется дата назначения
		taskStore := depttaskstore.NewInstance(tx)
		tasks, err := taskStore.ListByRequest(id)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, task := range tasks {
			if task.AssignedAt == nil {
				if err = taskStore.Update(task.ID, map[string]interface{}{"assigned_at": now}); err != nil {
					return err
				}
			}
		}
		if data.Conclusion != "" {
			if err = i.systemComment(tx, id, fmt.Sprintf("Заключение согласующего: %v", data.Conclusion)); err != nil {
				return err
			}
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, &id,
			fmt.Sprintf("Заявка \"%v\" согласована, статус \"%v\"", rec.Title, targetStatus))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка согласования заявки")
		return err
	}
	logger.Info("заявка согласована")
	return nil
}

func (i impl) Reject(id, actorID string, data requestapimodels.ReasonData) error {
	logger := i.GetLogger(id)
	if err := data.Validate(); err != nil {
		return err
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
		}
		if _, err = i.checkApprover(tx, *rec, actorID); err != nil {
			return err
		}
		if !rec.Status.AllowReject() {
			return serviceerrors.Errorf(serviceerrors.InvalidState, "заявку в статусе \"%v\" нельзя отклонить", rec.Status)
		}
		now := time.Now()
		updMap := map[string]interface{}{
			"status":       models.RStatusRejected,
			"completed_at": now,
		}
		if err = store.Update(id, updMap); err != nil {
			return err
		}
		if err = i.systemComment(tx, id, fmt.Sprintf("Заявка отклонена. Причина: %v", data.Reason)); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, &id, fmt.Sprintf("Заявка \"%v\" отклонена", rec.Title))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отклонения заявки")
		return err
	}
	logger.Info("заявка отклонена")
	return nil
}

func (i impl) ToDiscussion(id, actorID string, data requestapimodels.ReasonData) error {
	logger := i.GetLogger(id)
	if err := data.Validate(); err != nil {
		return err
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
		}
		if _, err = i.checkApprover(tx, *rec, actorID); err != nil {
			return err
		}
		if !rec.Status.AllowDiscussion() {
			return serviceerrors.Errorf(serviceerrors.InvalidState, "заявку в статусе \"%v\" нельзя отправить на уточнение", rec.Status)
		}
		if err = store.Update(id, map[string]interface{}{"status": models.RStatusClarification}); err != nil {
			return err
		}
		if err = i.systemComment(tx, id, fmt.Sprintf("Заявка отправлена на уточнение. Причина: %v", data.Reason)); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, &id, fmt.Sprintf("Заявка \"%v\" отправлена на уточнение", rec.Title))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отправки заявки на уточнение")
		return err
	}
	logger.Info("заявка отправлена на уточнение")
	return nil
}

func (i impl) Cancel(id, actorID string) error {
	logger := i.GetLogger(id)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
		}
		if rec.AuthorID != actorID {
			return serviceerrors.New(serviceerrors.AuthorizationDenied, "отменить заявку может только автор")
		}
		if !rec.Status.AllowCancel() {
			return serviceerrors.Errorf(serviceerrors.InvalidState, "заявку в статусе \"%v\" нельзя отменить", rec.Status)
		}
		now := time.Now()
		updMap := map[string]interface{}{
			"status":       models.RStatusCanceled,
			"completed_at": now,
		}
		if err = store.Update(id, updMap); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, &id, fmt.Sprintf("Заявка \"%v\" отменена автором", rec.Title))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отмены заявки")
		return err
	}
	logger.Info("заявка отменена")
	return nil
}

// Delete физическое удаление, доступно автору до согласования
func (i impl) Delete(id, actorID string) error {
	logger := i.GetLogger(id)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
		}
		if rec.AuthorID != actorID {
			return serviceerrors.New(serviceerrors.AuthorizationDenied, "удалить заявку может только автор")
		}
		if !rec.Status.AllowDelete() {
			return serviceerrors.Errorf(serviceerrors.InvalidState, "заявку в статусе \"%v\" нельзя удалить", rec.Status)
		}
		if err = store.Delete(id); err != nil {
			return err
		}
		audithandler.NewHandlerWithTx(tx).Log(&actorID, nil,
			fmt.Sprintf("Удалена несогласованная заявка \"%v\"", rec.Title))
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка удаления заявки")
		return err
	}
	logger.Info("заявка удалена")
	return nil
}

func (i impl) systemComment(tx *gorm.DB, requestID, text string) error {
	return requeststore.NewInstance(tx).CreateComment(dbmodels.RequestComment{
		RequestID: requestID,
		Comment:   text,
		IsSystem:  true,
	})
}

func (i impl) GetByID(id string) (requestapimodels.RequestView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		i.GetLogger(id).WithError(err).Error("ошибка поиска заявки")
		return requestapimodels.RequestView{}, err
	}
	if rec == nil {
		return requestapimodels.RequestView{}, serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
	}
	return requestapimodels.RequestConvert(*rec), nil
}

func (i impl) List(filter requestapimodels.RequestFilter) ([]requestapimodels.RequestView, int64, error) {
	list, err := i.store.List(filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка заявок")
		return nil, 0, err
	}
	count, err := i.store.ListCount(filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения количества заявок")
		return nil, 0, err
	}
	result := make([]requestapimodels.RequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, requestapimodels.RequestConvert(rec))
	}
	return result, count, nil
}

func (i impl) ListPendingForDepartment(departmentID string) ([]requestapimodels.RequestView, error) {
	list, err := i.store.ListPendingForDepartment(departmentID)
	if err != nil {
		log.WithField("department_id", departmentID).
			WithError(err).
			Error("ошибка получения заявок на согласование")
		return nil, err
	}
	result := make([]requestapimodels.RequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, requestapimodels.RequestConvert(rec))
	}
	return result, nil
}

func (i impl) ListInDiscussion() ([]requestapimodels.RequestView, error) {
	list, err := i.store.ListByStatus(models.RStatusClarification)
	if err != nil {
		log.WithError(err).Error("ошибка получения заявок на уточнении")
		return nil, err
	}
	result := make([]requestapimodels.RequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, requestapimodels.RequestConvert(rec))
	}
	return result, nil
}

func (i impl) Stats() ([]requestapimodels.StatsView, error) {
	stats, err := i.store.StatsByStatus()
	if err != nil {
		log.WithError(err).Error("ошибка получения статистики по заявкам")
		return nil, err
	}
	return stats, nil
}

func (i impl) AddComment(id, actorID string, data requestapimodels.CommentData) error {
	logger := i.GetLogger(id)
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
	}
	err = i.store.CreateComment(dbmodels.RequestComment{
		RequestID: id,
		AuthorID:  &actorID,
		Comment:   data.Comment,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка добавления комментария")
		return err
	}
	return nil
}

func (i impl) AddAttachment(ctx context.Context, id, actorID, fileName, contentType string, file []byte) (attachmentID string, err error) {
	logger := i.GetLogger(id)
	if fileName == "" || len(file) == 0 {
		return "", serviceerrors.New(serviceerrors.ValidationError, "пустой файл")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", serviceerrors.New(serviceerrors.NotFound, "заявка не найдена")
	}
	fileKey := uuid.NewString()
	err = filestorage.Instance.Upload(ctx, fileKey, bytes.NewReader(file), int64(len(file)), contentType)
	if err != nil {
		logger.WithError(err).Error("ошибка загрузки вложения")
		return "", err
	}
	attachmentID, err = i.store.CreateAttachment(dbmodels.RequestAttachment{
		RequestID:    id,
		FileName:     fileName,
		FileKey:      fileKey,
		FileSize:     int64(len(file)),
		UploadedByID: actorID,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения вложения")
		return "", err
	}
	audithandler.Instance.Log(&actorID, &id, fmt.Sprintf("К заявке \"%v\" приложен файл %v", rec.Title, fileName))
	return attachmentID, nil
}

func (i impl) GetAttachment(ctx context.Context, id, attachmentID string) (rec dbmodels.RequestAttachment, body []byte, err error) {
	attachment, err := i.store.GetAttachment(attachmentID)
	if err != nil {
		return rec, nil, err
	}
	if attachment == nil || attachment.RequestID != id {
		return rec, nil, serviceerrors.New(serviceerrors.NotFound, "вложение не найдено")
	}
	body, err = filestorage.Instance.Download(ctx, attachment.FileKey)
	if err != nil {
		i.GetLogger(id).WithError(err).Error("ошибка получения вложения")
		return rec, nil, err
	}
	return *attachment, body, nil
}

func (i impl) Export(filter requestapimodels.RequestFilter) (*bytes.Buffer, error) {
	list, err := i.store.ListAll(filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка заявок для выгрузки")
		return nil, err
	}
	return xlsexport.Instance.ExportRequestList(list)
}
