package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cricket-club/internal/platform/logging"
	"github.com/riskibarqy/cricket-club/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// Services groups the use cases the HTTP surface exposes.
type Services struct {
	Recommendation  *usecase.RecommendationService
	Lifecycle       *usecase.LifecycleService
	SelectionConfig *usecase.SelectionConfigService
	Selection       *usecase.SelectionService
	Withdrawal      *usecase.WithdrawalService
	Availability    *usecase.AvailabilityService
	Attendance      *usecase.AttendanceService
}

type Handler struct {
	recommendationService  *usecase.RecommendationService
	lifecycleService       *usecase.LifecycleService
	selectionConfigService *usecase.SelectionConfigService
	selectionService       *usecase.SelectionService
	withdrawalService      *usecase.WithdrawalService
	availabilityService    *usecase.AvailabilityService
	attendanceService      *usecase.AttendanceService
	logger                 *logging.Logger
	validator              *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		recommendationService:  services.Recommendation,
		lifecycleService:       services.Lifecycle,
		selectionConfigService: services.SelectionConfig,
		selectionService:       services.Selection,
		withdrawalService:      services.Withdrawal,
		availabilityService:    services.Availability,
		attendanceService:      services.Attendance,
		logger:                 logger,
		validator:              validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a strict JSON body into dst and validates it. An empty body leaves dst
// untouched when allowEmpty is set.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, maxRequestBodyBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if allowEmpty {
			return h.validateRequest(ctx, dst)
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := strictJSON.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// fail logs client errors at warn and everything else at error before writing the envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

// parseDateOrTime accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func parseDateOrTime(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be RFC3339 or YYYY-MM-DD", usecase.ErrInvalidInput, field)
}
