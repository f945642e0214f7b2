package handler

import (
	submissionservice "livewall-server/internal/modules/submission/service"
)

type Handler struct {
	submissionService *submissionservice.Service
}

func New(submissionService *submissionservice.Service) *Handler {
	return &Handler{submissionService: submissionService}
}
