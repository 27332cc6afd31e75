package handler

import (
	"net/http"

	dashboarddomain "bookkeeping-app-go/internal/domain/dashboard"
	documentsdomain "bookkeeping-app-go/internal/domain/documents"
	duedatesdomain "bookkeeping-app-go/internal/domain/duedates"
	grossdomain "bookkeeping-app-go/internal/domain/grossrecords"
	messagesdomain "bookkeeping-app-go/internal/domain/messages"
	personalinfodomain "bookkeeping-app-go/internal/domain/personalinfo"
	userdomain "bookkeeping-app-go/internal/domain/user"
	"bookkeeping-app-go/pkg/logger"
)

type Services struct {
	Users        *userdomain.Service
	PersonalInfo *personalinfodomain.Service
	Documents    *documentsdomain.Service
	GrossRecords *grossdomain.Service
	Messages     *messagesdomain.Service
	Dashboard    *dashboarddomain.Service
	DueDates     *duedatesdomain.Service
}

type Handlers struct {
	Services
	log logger.Logger
}

func New(services Services, log logger.Logger) *Handlers {
	return &Handlers{Services: services, log: log}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
