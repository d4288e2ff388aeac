package backend

import (
	"bytes"
	"context"
	"errors"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	backendClientInstance contracts.BackendClient
	onceBackendClient     sync.Once
)

type backendClient struct {
	client *resty.Client
	Log    *zap.Logger
}

func NewBackendClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.BackendClient {
	onceBackendClient.Do(func() {
		timeout := time.Duration(internalConfig.Backend.RequestTimeoutInSecs) * time.Second
		backendClientInstance = newBackendClient(internalConfig.Backend.BaseUrl, timeout, logger)
	})
	return backendClientInstance
}

func newBackendClient(baseURL string, timeout time.Duration, logger *zap.Logger) *backendClient {
	return &backendClient{
		client: newRestyClient(baseURL, timeout),
		Log:    logger,
	}
}

func responseError(response *resty.Response, route string) *exceptions.CustomError {
	message := extractErrorMessage(response.Body())
	cause := fmt.Errorf("status %d: %s", response.StatusCode(), message)
	clientMessage := ""
	if isClientError(response) {
		clientMessage = message
	}
	return exceptions.ErrBackendResponse(cause, route, response.StatusCode(), clientMessage)
}

// decodeList accepts a bare array or a paginated {"results": [...]} body.
func decodeList[T any](body []byte, dst *[]T) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		var page struct {
			Results []T `json:"results"`
			Data    []T `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return err
		}
		if page.Results != nil {
			*dst = page.Results
		} else {
			*dst = page.Data
		}
		return nil
	}
	return json.Unmarshal(trimmed, dst)
}

func (c *backendClient) Login(ctx context.Context, credentials *models.LoginCredentials) (*models.LoginResult, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, credentials.LoginType),
	)

	body := loginRequest{
		Pin:       credentials.Pin,
		LoginType: credentials.LoginType,
		Username:  credentials.Username,
	}
	response, err := call(ctx, c.client, c.Log, constvars.MethodPost, constvars.BackendLogin, body, nil)
	if err != nil {
		c.Log.Error("backendClient.Login error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrBackendRequest(err, constvars.BackendLogin)
	}

	if isClientError(response) {
		message := extractErrorMessage(response.Body())
		c.Log.Info("backendClient.Login rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode()),
			zap.String(constvars.LoggingErrorMessageKey, message),
		)
		return nil, exceptions.ErrInvalidCredentials(errors.New(message), message)
	}
	if !isSuccess(response) {
		return nil, responseError(response, constvars.BackendLogin)
	}

	var result loginResponse
	if err := json.Unmarshal(response.Body(), &result); err != nil {
		c.Log.Error("backendClient.Login error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrBackendDecode(err, constvars.BackendLogin)
	}

	login := result.toModel()
	c.Log.Info("backendClient.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, login.Role),
		zap.String(constvars.LoggingPatientIDKey, login.PatientID),
	)
	return login, nil
}

func (c *backendClient) Logout(ctx context.Context) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodPost, constvars.BackendLogout, nil, nil)
	if err != nil {
		return exceptions.ErrBackendRequest(err, constvars.BackendLogout)
	}
	if !isSuccess(response) {
		return responseError(response, constvars.BackendLogout)
	}
	return nil
}

func (c *backendClient) RegisterPatient(ctx context.Context, registration *models.PatientRegistration) (*models.PatientProfile, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.RegisterPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodPost, constvars.BackendPatients, newRegisterPatientRequest(registration), nil)
	if err != nil {
		c.Log.Error("backendClient.RegisterPatient error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrBackendRequest(err, constvars.BackendPatients)
	}

	if isClientError(response) {
		message := extractErrorMessage(response.Body())
		c.Log.Info("backendClient.RegisterPatient rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode()),
			zap.String(constvars.LoggingErrorMessageKey, message),
		)
		return nil, exceptions.ErrRegistrationRejected(errors.New(message), message)
	}
	if !isSuccess(response) {
		return nil, responseError(response, constvars.BackendPatients)
	}

	var patient patientDTO
	if err := json.Unmarshal(response.Body(), &patient); err != nil {
		return nil, exceptions.ErrBackendDecode(err, constvars.BackendPatients)
	}

	profile := patient.toModel()
	c.Log.Info("backendClient.RegisterPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, profile.PatientID),
	)
	return &profile, nil
}

func (c *backendClient) GetPatient(ctx context.Context, patientID string) (*models.PatientProfile, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.GetPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodGet, constvars.BackendPatientDetail, nil, nil, patientID)
	if err != nil {
		return nil, exceptions.ErrBackendRequest(err, constvars.BackendPatientDetail)
	}
	if !isSuccess(response) {
		return nil, responseError(response, constvars.BackendPatientDetail)
	}

	var patient patientDTO
	if err := json.Unmarshal(response.Body(), &patient); err != nil {
		return nil, exceptions.ErrBackendDecode(err, constvars.BackendPatientDetail)
	}
	profile := patient.toModel()
	if profile.PatientID == "" {
		profile.PatientID = patientID
	}
	return &profile, nil
}

// UpdatePatient applies a partial profile edit. Field errors in a 4xx body
// are flattened into the client message.
func (c *backendClient) UpdatePatient(ctx context.Context, patientID string, update *models.PatientUpdate) (*models.PatientProfile, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodPatch, constvars.BackendPatientDetail, newUpdatePatientRequest(update), nil, patientID)
	if err != nil {
		c.Log.Error("backendClient.UpdatePatient error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrBackendRequest(err, constvars.BackendPatientDetail)
	}

	if isClientError(response) {
		message := extractErrorMessage(response.Body())
		c.Log.Info("backendClient.UpdatePatient rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode()),
			zap.String(constvars.LoggingErrorMessageKey, message),
		)
		return nil, exceptions.ErrPatientUpdateRejected(errors.New(message), message)
	}
	if !isSuccess(response) {
		return nil, responseError(response, constvars.BackendPatientDetail)
	}

	var patient patientDTO
	if err := json.Unmarshal(response.Body(), &patient); err != nil {
		return nil, exceptions.ErrBackendDecode(err, constvars.BackendPatientDetail)
	}
	profile := patient.toModel()
	if profile.PatientID == "" {
		profile.PatientID = patientID
	}

	c.Log.Info("backendClient.UpdatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, profile.PatientID),
	)
	return &profile, nil
}

func (c *backendClient) SearchPatients(ctx context.Context, search string) ([]models.PatientProfile, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.SearchPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, search),
	)

	var query map[string]string
	if search != "" {
		query = map[string]string{"search": search}
	}
	response, err := call(ctx, c.client, c.Log, constvars.MethodGet, constvars.BackendPatients, nil, query)
	if err != nil {
		return nil, exceptions.ErrBackendRequest(err, constvars.BackendPatients)
	}
	if !isSuccess(response) {
		return nil, responseError(response, constvars.BackendPatients)
	}

	var patients []patientDTO
	if err := decodeList(response.Body(), &patients); err != nil {
		return nil, exceptions.ErrBackendDecode(err, constvars.BackendPatients)
	}

	profiles := make([]models.PatientProfile, 0, len(patients))
	for _, patient := range patients {
		profiles = append(profiles, patient.toModel())
	}

	c.Log.Info("backendClient.SearchPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(profiles)),
	)
	return profiles, nil
}

func (c *backendClient) GetPatientVitals(ctx context.Context, patientID string) (*models.PatientVitals, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.GetPatientVitals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodGet, constvars.BackendPatientVitals, nil, nil, patientID)
	if err != nil {
		return nil, exceptions.ErrBackendRequest(err, constvars.BackendPatientVitals)
	}
	if !isSuccess(response) {
		return nil, responseError(response, constvars.BackendPatientVitals)
	}

	var body patientVitalsResponse
	if err := json.Unmarshal(response.Body(), &body); err != nil {
		return nil, exceptions.ErrBackendDecode(err, constvars.BackendPatientVitals)
	}

	vitals := &models.PatientVitals{History: make([]models.VitalsRecord, 0, len(body.History))}
	if body.Latest != nil {
		latest := body.Latest.toModel(patientID)
		vitals.Latest = &latest
	}
	for _, row := range body.History {
		vitals.History = append(vitals.History, row.toModel(patientID))
	}
	return vitals, nil
}

// AddPatientVitals stores a staff-entered reading as a new vitals row and
// returns the backend's record id when it sends one.
func (c *backendClient) AddPatientVitals(ctx context.Context, entry *models.StaffVitalsEntry) (string, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.AddPatientVitals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, entry.PatientID),
	)

	body := staffVitalsRequest{BloodPressure: entry.BloodPressure, Date: entry.Date}
	response, err := call(ctx, c.client, c.Log, constvars.MethodPost, constvars.BackendPatientAddVitals, body, nil, entry.PatientID)
	if err != nil {
		c.Log.Error("backendClient.AddPatientVitals error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrBackendRequest(err, constvars.BackendPatientAddVitals)
	}

	if isClientError(response) {
		message := extractErrorMessage(response.Body())
		c.Log.Info("backendClient.AddPatientVitals rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode()),
			zap.String(constvars.LoggingErrorMessageKey, message),
		)
		return "", exceptions.ErrStaffVitalsRejected(errors.New(message), message)
	}
	if !isSuccess(response) {
		return "", responseError(response, constvars.BackendPatientAddVitals)
	}

	var result receiveVitalsResponse
	if len(bytes.TrimSpace(response.Body())) > 0 {
		if err := json.Unmarshal(response.Body(), &result); err != nil {
			return "", exceptions.ErrBackendDecode(err, constvars.BackendPatientAddVitals)
		}
	}

	recordID := result.recordID()
	c.Log.Info("backendClient.AddPatientVitals succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVitalIDKey, recordID),
	)
	return recordID, nil
}

func (c *backendClient) SaveVitals(ctx context.Context, upsert *models.VitalsUpsert) (string, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.SaveVitals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, upsert.PatientID),
		zap.String(constvars.LoggingVitalIDKey, upsert.ID),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodPost, constvars.BackendReceiveVitals, newReceiveVitalsRequest(upsert), nil)
	if err != nil {
		c.Log.Error("backendClient.SaveVitals error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrBackendRequest(err, constvars.BackendReceiveVitals)
	}
	if !isSuccess(response) {
		return "", responseError(response, constvars.BackendReceiveVitals)
	}

	var body receiveVitalsResponse
	if err := json.Unmarshal(response.Body(), &body); err != nil {
		return "", exceptions.ErrBackendDecode(err, constvars.BackendReceiveVitals)
	}

	recordID := body.recordID()
	c.Log.Info("backendClient.SaveVitals succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVitalIDKey, recordID),
	)
	return recordID, nil
}

func (c *backendClient) AddOrUpdateQueue(ctx context.Context, submission *models.QueueSubmission) (*models.QueueAssignment, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.AddOrUpdateQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, submission.PatientID),
		zap.String(constvars.LoggingPriorityKey, submission.Priority),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodPost, constvars.BackendQueueAddOrUpdate, newQueueSubmissionRequest(submission), nil)
	if err != nil {
		return nil, exceptions.ErrBackendRequest(err, constvars.BackendQueueAddOrUpdate)
	}
	if !isSuccess(response) {
		return nil, responseError(response, constvars.BackendQueueAddOrUpdate)
	}

	var entry queueEntryDTO
	if len(bytes.TrimSpace(response.Body())) > 0 {
		if err := json.Unmarshal(response.Body(), &entry); err != nil {
			c.Log.Warn("backendClient.AddOrUpdateQueue response not decodable",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, nil
		}
	}
	return entry.toAssignment(), nil
}

func (c *backendClient) CurrentQueue(ctx context.Context) ([]models.QueueEntry, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Debug("backendClient.CurrentQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodGet, constvars.BackendQueueCurrent, nil, nil)
	if err != nil {
		return nil, exceptions.ErrBackendRequest(err, constvars.BackendQueueCurrent)
	}
	if !isSuccess(response) {
		return nil, responseError(response, constvars.BackendQueueCurrent)
	}

	var rows []queueEntryDTO
	if err := decodeList(response.Body(), &rows); err != nil {
		return nil, exceptions.ErrBackendDecode(err, constvars.BackendQueueCurrent)
	}

	entries := make([]models.QueueEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toModel())
	}
	return entries, nil
}

func (c *backendClient) MarkQueueComplete(ctx context.Context, queueID string) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.MarkQueueComplete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueIDKey, queueID),
	)

	response, err := call(ctx, c.client, c.Log, constvars.MethodPost, constvars.BackendQueueMarkComplete, nil, nil, queueID)
	if err != nil {
		return exceptions.ErrBackendRequest(err, constvars.BackendQueueMarkComplete)
	}
	if response.StatusCode() == constvars.StatusNotFound {
		return exceptions.ErrQueueEntryNotFound(errors.New(extractErrorMessage(response.Body())), queueID)
	}
	if !isSuccess(response) {
		return responseError(response, constvars.BackendQueueMarkComplete)
	}
	return nil
}

func (c *backendClient) PrintReceipt(ctx context.Context, receipt *models.PrintReceipt) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("backendClient.PrintReceipt called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, receipt.PatientID),
		zap.String(constvars.LoggingQueueNumberKey, receipt.QueueNumber),
	)

	reasons := receipt.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	bloodPressure := receipt.Vitals.BloodPressure
	if bloodPressure == "" {
		bloodPressure = constvars.PlaceholderMissingValue
	}
	body := printRequest{
		PatientID:       receipt.PatientID,
		PatientName:     receipt.PatientName,
		QueueNumber:     receipt.QueueNumber,
		Priority:        receipt.Priority,
		PriorityCode:    receipt.PriorityCode,
		PriorityReasons: reasons,
		Vitals: printVitalsPayload{
			Weight:        utils.FormatMeasurement(receipt.Vitals.WeightKg, 1, "kg"),
			Height:        utils.FormatMeasurement(receipt.Vitals.HeightCm, 1, "cm"),
			HeartRate:     utils.FormatMeasurement(receipt.Vitals.HeartRate, 0, "bpm"),
			SpO2:          utils.FormatMeasurement(receipt.Vitals.SpO2, 0, "%"),
			Temperature:   utils.FormatMeasurement(receipt.Vitals.Temperature, 1, "°C"),
			BloodPressure: bloodPressure,
			BMI:           utils.FormatMeasurement(receipt.Vitals.BMI, 1, ""),
		},
		PrintedAt: receipt.PrintedAt.Format(time.RFC3339),
	}

	response, err := call(ctx, c.client, c.Log, constvars.MethodPost, constvars.BackendPrintVitalsAndQueue, body, nil)
	if err != nil {
		return exceptions.ErrBackendRequest(err, constvars.BackendPrintVitalsAndQueue)
	}

	var result errorBody
	_ = json.Unmarshal(response.Body(), &result)
	if !isSuccess(response) || result.Error != "" {
		message := extractErrorMessage(response.Body())
		c.Log.Error("backendClient.PrintReceipt rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode()),
			zap.String(constvars.LoggingErrorMessageKey, message),
		)
		return exceptions.ErrPrintRejected(fmt.Errorf("status %d: %s", response.StatusCode(), message), message)
	}
	return nil
}
