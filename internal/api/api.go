package api

import (
	"context"
	"net/http"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Api struct {
	handler  http.Handler
	logger   *zap.SugaredLogger
	schedule scheduleService
}

type scheduleService interface {
	Consolidate(ctx context.Context, firmID uuid.UUID, filter model.OccurrencesFilter) ([]*model.Occurrence, []*model.RuleIssue, error)
	CreateRule(ctx context.Context, info *model.RuleCreate) (*model.RecurrenceRule, error)
	GetRule(ctx context.Context, firmID uuid.UUID, id int64) (*model.RecurrenceRule, error)
	UpdateRule(ctx context.Context, firmID uuid.UUID, id int64, info *model.RuleCreate, active bool) (*model.RecurrenceRule, error)
	Materialize(ctx context.Context, firmID uuid.UUID, ruleID int64, date time.Time) (*model.Occurrence, []*model.RuleIssue, error)
	ExcludeOccurrence(ctx context.Context, firmID uuid.UUID, ruleID int64, date time.Time) error
}

func NewApi(logger *zap.SugaredLogger, schedule scheduleService) *Api {
	a := &Api{
		logger:   logger,
		schedule: schedule,
	}
	a.setupHandler()

	return a
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.With(a.firmCtx).Route("/", func(r chi.Router) {
		r.Get("/calendar", a.getCalendarHandler)

		r.Route("/rules", func(r chi.Router) {
			r.Post("/", a.createRuleHandler)
			r.Get("/{id}", a.getRuleHandler)
			r.Patch("/{id}", a.updateRuleHandler)
			r.Post("/{id}/materialize", a.materializeHandler)
			r.Post("/{id}/exclusions", a.excludeOccurrenceHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

type contextKey string

const contextKeyFirmID = contextKey("firm_id")

// firmCtx reads the firm scope set by the upstream gateway. The gateway
// owns authentication; this service only trusts its header.
func (a *Api) firmCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firmID, err := uuid.Parse(r.Header.Get("X-Firm-ID"))
		if err != nil {
			a.unauthorizedResponse(w, r, errMissingFirm)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyFirmID, firmID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
