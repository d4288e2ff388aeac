package controllers

import (
	"context"
	"errors"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
