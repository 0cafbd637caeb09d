package initializers

import (
	"context"

	"request-tools-backend/config"
	"request-tools-backend/fiberlog"
	audithandler "request-tools-backend/lib/audit"
	authhandler "request-tools-backend/lib/auth"
	depttaskhandler "request-tools-backend/lib/dept-task"
	categoryhandler "request-tools-backend/lib/dicts/category"
	departmenthandler "request-tools-backend/lib/dicts/department"
	xlsexport "request-tools-backend/lib/export/xls"
	notifyhandler "request-tools-backend/lib/notify"
	personhandler "request-tools-backend/lib/person"
	requesthandler "request-tools-backend/lib/request"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	audithandler.NewHandler()
	notifyhandler.NewHandler()
	xlsexport.NewHandler()
	authhandler.NewHandler()
	personhandler.NewHandler()
	departmenthandler.NewHandler()
	categoryhandler.NewHandler()
	requesthandler.NewHandler()
	depttaskhandler.NewHandler()
}
