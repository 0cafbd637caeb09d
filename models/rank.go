package models

// Rank - должность сотрудника, определяет маршрутизацию заявок
// и проверки оргструктуры при кадровых изменениях
type Rank string

const (
	RankDirector       Rank = "Директор"
	RankDeputyDirector Rank = "Заместитель директора"
	RankHead           Rank = "Руководитель отдела"
	RankDeputyHead     Rank = "Заместитель руководителя"
	RankEmployee       Rank = "Сотрудник"
)

// IsDirectorate директорский уровень, действует на всю организацию
func (r Rank) IsDirectorate() bool {
	return r == RankDirector || r == RankDeputyDirector
}

// IsDepartmentManager руководство в рамках своего отдела
func (r Rank) IsDepartmentManager() bool {
	return r == RankHead || r == RankDeputyHead
}

func (r Rank) IsManager() bool {
	return r.IsDirectorate() || r.IsDepartmentManager()
}

func (r Rank) IsValid() bool {
	switch r {
	case RankDirector, RankDeputyDirector, RankHead, RankDeputyHead, RankEmployee:
		return true
	}
	return false
}
