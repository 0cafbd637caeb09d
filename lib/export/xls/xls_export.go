package xlsexport

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "request-tools-backend/models/db"
)

type Provider interface {
	ExportRequestList(list []dbmodels.Request) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var requestHeaders = []string{"Тема", "Категория", "Автор", "Статус", "Приоритет", "Стратегическая", "Создана", "Срок", "Завершена", "Отделы-исполнители"}

func (i impl) ExportRequestList(list []dbmodels.Request) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, requestHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeRequestData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Заявки")
	return f.WriteToBuffer()
}

func writeRequestData(f *excelize.File, sheet string, list []dbmodels.Request, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(requestHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Тема"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Title); err != nil {
			return row, err
		}

		// "Категория"
		col++
		if item.Category != nil {
			if err := writeColumn(f, sheet, col, row, item.Category.Name); err != nil {
				return row, err
			}
		}

		// "Автор"
		col++
		if item.Author != nil {
			if err := writeColumn(f, sheet, col, row, item.Author.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Приоритет"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Priority)); err != nil {
			return row, err
		}

		// "Стратегическая"
		col++
		strategic := ""
		if item.IsStrategic {
			strategic = "Да"
		}
		if err := writeColumn(f, sheet, col, row, strategic); err != nil {
			return row, err
		}

		// "Создана"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
			return row, err
		}

		// "Срок"
		col++
		if item.Deadline != nil {
			if err := writeColumn(f, sheet, col, row, item.Deadline.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Завершена"
		col++
		if item.CompletedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.CompletedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Отделы-исполнители"
		col++
		names := make([]string, 0, len(item.Tasks))
		for _, task := range item.Tasks {
			if task.Department != nil {
				names = append(names, task.Department.Name)
			}
		}
		if err := writeColumn(f, sheet, col, row, strings.Join(names, ", ")); err != nil {
			return row, err
		}
	}
	return row, nil
}
