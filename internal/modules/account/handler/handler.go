package handler

import (
	accountservice "livewall-server/internal/modules/account/service"
)

type Handler struct {
	accountService *accountservice.Service
}

func New(accountService *accountservice.Service) *Handler {
	return &Handler{accountService: accountService}
}
