package requestapimodels

import (
	"time"

	serviceerrors "request-tools-backend/lib/service-errors"
	"request-tools-backend/models"
	apimodels "request-tools-backend/models/api"
	dbmodels "request-tools-backend/models/db"
)

type RequestData struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	Priority    models.Priority `json:"priority"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
}

type RequestCreateData struct {
	RequestData
	IsStrategic         bool     `json:"is_strategic"`
	TargetDepartmentIDs []string `json:"target_department_ids"`
}

func (r RequestCreateData) Validate() error {
	if r.Title == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указана тема заявки")
	}
	if r.CategoryID == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указана категория")
	}
	if !r.Priority.IsValid() {
		return serviceerrors.New(serviceerrors.ValidationError, "недопустимый приоритет")
	}
	if len(r.TargetDepartmentIDs) == 0 {
		return serviceerrors.New(serviceerrors.ValidationError, "не выбран ни один отдел-исполнитель")
	}
	return nil
}

type RequestEditData struct {
	RequestData
	TargetDepartmentIDs []string `json:"target_department_ids,omitempty"`
}

func (r RequestEditData) Validate() error {
	if r.Title == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указана тема заявки")
	}
	if r.Priority != "" && !r.Priority.IsValid() {
		return serviceerrors.New(serviceerrors.ValidationError, "недопустимый приоритет")
	}
	return nil
}

// ApproveData правки согласующего; целевой статус по умолчанию "Новая"
type ApproveData struct {
	Title        string                `json:"title,omitempty"`
	Description  string                `json:"description,omitempty"`
	CategoryID   string                `json:"category_id,omitempty"`
	Priority     models.Priority       `json:"priority,omitempty"`
	Deadline     *time.Time            `json:"deadline,omitempty"`
	TargetStatus *models.RequestStatus `json:"target_status,omitempty"`
	Conclusion   string                `json:"conclusion,omitempty"`
}

func (r ApproveData) Validate() error {
	if r.Priority != "" && !r.Priority.IsValid() {
		return serviceerrors.New(serviceerrors.ValidationError, "недопустимый приоритет")
	}
	if r.TargetStatus != nil {
		allowed := false
		for _, target := range r.TargetStatus.ApproveTargets() {
			if *r.TargetStatus == target {
				allowed = true
				break
			}
		}
		if !allowed {
			return serviceerrors.New(serviceerrors.ValidationError, "недопустимый целевой статус согласования")
		}
	}
	return nil
}

type ReasonData struct {
	Reason string `json:"reason"`
}

func (r ReasonData) Validate() error {
	if r.Reason == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указана причина")
	}
	return nil
}

type CommentData struct {
	Comment string `json:"comment"`
}

func (r CommentData) Validate() error {
	if r.Comment == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "пустой комментарий")
	}
	return nil
}

type AssignExecutorData struct {
	PersonID string `json:"person_id"`
}

func (r AssignExecutorData) Validate() error {
	if r.PersonID == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан исполнитель")
	}
	return nil
}

type ForwardData struct {
	DepartmentID string `json:"department_id"`
}

func (r ForwardData) Validate() error {
	if r.DepartmentID == "" {
		return serviceerrors.New(serviceerrors.ValidationError, "не указан отдел")
	}
	return nil
}

type RequestFilter struct {
	apimodels.Pagination
	Status       models.RequestStatus `json:"status,omitempty"`
	AuthorID     string               `json:"author_id,omitempty"`
	DepartmentID string               `json:"department_id,omitempty"`
	Search       string               `json:"search,omitempty"`
}

type RequestView struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	Deadline    *time.Time           `json:"deadline,omitempty"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	IsStrategic bool                 `json:"is_strategic"`
	Status      models.RequestStatus `json:"status"`
	Priority    models.Priority      `json:"priority"`
	CategoryID  string               `json:"category_id"`
	Category    string               `json:"category,omitempty"`
	AuthorID    string               `json:"author_id"`
	AuthorName  string               `json:"author_name,omitempty"`
	Tasks       []TaskView           `json:"tasks,omitempty"`
	Comments    []CommentView        `json:"comments,omitempty"`
	Attachments []AttachmentView     `json:"attachments,omitempty"`
}

type TaskView struct {
	ID             string            `json:"id"`
	RequestID      string            `json:"request_id"`
	RequestTitle   string            `json:"request_title,omitempty"`
	DepartmentID   string            `json:"department_id"`
	DepartmentName string            `json:"department_name,omitempty"`
	Status         models.TaskStatus `json:"status"`
	AssignedAt     *time.Time        `json:"assigned_at,omitempty"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	LeadName       string            `json:"lead_name,omitempty"`
	Executors      []ExecutorView    `json:"executors,omitempty"`
}

type ExecutorView struct {
	PersonID   string    `json:"person_id"`
	PersonName string    `json:"person_name,omitempty"`
	IsLead     bool      `json:"is_lead"`
	AssignedAt time.Time `json:"assigned_at"`
}

type CommentView struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	Comment    string    `json:"comment"`
	IsSystem   bool      `json:"is_system"`
	CreatedAt  time.Time `json:"created_at"`
}

type AttachmentView struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type StatsView struct {
	Status models.RequestStatus `json:"status"`
	Count  int64                `json:"count"`
}

func RequestConvert(rec dbmodels.Request) RequestView {
	view := RequestView{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
		Deadline:    rec.Deadline,
		CompletedAt: rec.CompletedAt,
		IsStrategic: rec.IsStrategic,
		Status:      rec.Status,
		Priority:    rec.Priority,
		CategoryID:  rec.CategoryID,
		AuthorID:    rec.AuthorID,
	}
	if rec.Category != nil {
		view.Category = rec.Category.Name
	}
	if rec.Author != nil {
		view.AuthorName = rec.Author.GetFullName()
	}
	for _, task := range rec.Tasks {
		view.Tasks = append(view.Tasks, TaskConvert(task))
	}
	for _, comment := range rec.Comments {
		view.Comments = append(view.Comments, CommentConvert(comment))
	}
	for _, attachment := range rec.Attachments {
		view.Attachments = append(view.Attachments, AttachmentConvert(attachment))
	}
	return view
}

func TaskConvert(rec dbmodels.DepartmentTask) TaskView {
	view := TaskView{
		ID:           rec.ID,
		RequestID:    rec.RequestID,
		DepartmentID: rec.DepartmentID,
		Status:       rec.Status,
		AssignedAt:   rec.AssignedAt,
		CompletedAt:  rec.CompletedAt,
	}
	if rec.Request != nil {
		view.RequestTitle = rec.Request.Title
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	if lead := rec.GetLead(); lead != nil && lead.Person != nil {
		view.LeadName = lead.Person.GetFullName()
	}
	for _, executor := range rec.Executors {
		executorView := ExecutorView{
			PersonID:   executor.PersonID,
			IsLead:     executor.IsLead,
			AssignedAt: executor.AssignedAt,
		}
		if executor.Person != nil {
			executorView.PersonName = executor.Person.GetFullName()
		}
		view.Executors = append(view.Executors, executorView)
	}
	return view
}

func CommentConvert(rec dbmodels.RequestComment) CommentView {
	view := CommentView{
		ID:        rec.ID,
		Comment:   rec.Comment,
		IsSystem:  rec.IsSystem,
		CreatedAt: rec.CreatedAt,
	}
	if rec.AuthorID != nil {
		view.AuthorID = *rec.AuthorID
	}
	if rec.Author != nil {
		view.AuthorName = rec.Author.GetFullName()
	}
	return view
}

func AttachmentConvert(rec dbmodels.RequestAttachment) AttachmentView {
	return AttachmentView{
		ID:         rec.ID,
		FileName:   rec.FileName,
		FileSize:   rec.FileSize,
		UploadedAt: rec.CreatedAt,
	}
}
