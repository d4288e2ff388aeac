package backend

import (
	"context"
	"esperanza-kiosk/internal/app/services/shared/metrics"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func newRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader(constvars.HeaderContentType, constvars.MIMEApplicationJSON).
		SetHeader(constvars.HeaderAccept, constvars.MIMEApplicationJSON).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
}

// call executes one request. route is the path template used as the metrics
// label; args fill it in.
func call(ctx context.Context, client *resty.Client, log *zap.Logger, method, route string, body interface{}, query map[string]string, args ...interface{}) (*resty.Response, error) {
	path := route
	if len(args) > 0 {
		path = fmt.Sprintf(route, args...)
	}

	request := client.R().SetContext(ctx)
	if requestID := utils.GetRequestID(ctx); requestID != "" {
		request.SetHeader(constvars.HeaderXRequestID, requestID)
	}
	if body != nil {
		request.SetBody(body)
	}
	if len(query) > 0 {
		request.SetQueryParams(query)
	}

	start := time.Now()
	response, err := request.Execute(method, path)
	duration := time.Since(start)

	statusCode := 0
	if response != nil {
		statusCode = response.StatusCode()
	}
	metrics.ObserveBackendRequest(method, route, statusCode, duration)

	log.Debug("backend call finished",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingMethodKey, method),
		zap.String(constvars.LoggingBackendPathKey, path),
		zap.Int(constvars.LoggingStatusCodeKey, statusCode),
		zap.Duration(constvars.LoggingDurationKey, duration),
	)
	return response, err
}

func isSuccess(response *resty.Response) bool {
	return response.StatusCode() >= 200 && response.StatusCode() < 300
}

func isClientError(response *resty.Response) bool {
	return response.StatusCode() >= 400 && response.StatusCode() < 500
}
