// Package gateway validates and authorizes every client request before it
// reaches a domain component, and shapes every reply into an Envelope.
//
// Checks run in a fixed order: required input first, then the caller's role,
// then existence of every referenced entity. Only a request that passes all
// three is delegated.
package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/BillPlatform/internal/auth"
	"github.com/sebuszqo/BillPlatform/internal/finance/domain"
	"github.com/sebuszqo/BillPlatform/internal/region"
	"github.com/sebuszqo/BillPlatform/internal/user"
)

type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, userID, name, icon string) (*domain.BillCategory, error)
	CategoryExists(ctx context.Context, categoryID string) (bool, error)
	UserCategories(ctx context.Context, userID string) ([]domain.BillCategory, error)
}

type BillServiceInterface interface {
	AddBill(ctx context.Context, bill *domain.Bill) error
	AllBillsForUser(ctx context.Context, userID string) ([]domain.Bill, error)
	AllBillsForUserAndCategory(ctx context.Context, userID, categoryID string) ([]domain.Bill, error)
}

// Services are the domain components the gateway delegates to.
type Services struct {
	Users      user.Service
	Limits     user.LimitService
	Categories CategoryServiceInterface
	Bills      BillServiceInterface
	Regions    region.Service
}

type Options struct {
	// VerifyBillReferences checks the user and bill type of a new bill
	// before it is stored.
	VerifyBillReferences bool
	// Metrics may be nil.
	Metrics *Metrics
	Logger  *slog.Logger
}

type Handler struct {
	users      user.Service
	limits     user.LimitService
	categories CategoryServiceInterface
	bills      BillServiceInterface
	regions    region.Service

	verifyBillReferences bool
	metrics              *Metrics
	logger               *slog.Logger
}

func NewHandler(services Services, opts Options) *Handler {
	if services.Users == nil || services.Limits == nil || services.Categories == nil ||
		services.Bills == nil || services.Regions == nil {
		panic("Gateway services must not be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		users:                services.Users,
		limits:               services.Limits,
		categories:           services.Categories,
		bills:                services.Bills,
		regions:              services.Regions,
		verifyBillReferences: opts.VerifyBillReferences,
		metrics:              opts.Metrics,
		logger:               logger,
	}
}

type refKind int

const (
	refUser refKind = iota
	refEmail
	refCategory
	refProvince
)

// reference is an entity a request names and which must already exist.
type reference struct {
	kind refKind
	key  string
	num  int
}

func userRef(userID string) reference        { return reference{kind: refUser, key: userID} }
func emailRef(email string) reference        { return reference{kind: refEmail, key: email} }
func categoryRef(categoryID string) reference { return reference{kind: refCategory, key: categoryID} }
func provinceRef(provinceID int) reference   { return reference{kind: refProvince, num: provinceID} }

// request describes one pass through the pipeline.
type request struct {
	op operation
	// validate reports missing or malformed input; nil means none required.
	validate func() *Failure
	refs     []reference
	call     func(ctx context.Context) (interface{}, error)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, req request) {
	env := h.process(r.Context(), req)
	h.metrics.observe(req.op.name, env.Code)
	WriteEnvelope(w, env)
}

func (h *Handler) process(ctx context.Context, req request) Envelope {
	if req.validate != nil {
		if f := req.validate(); f != nil {
			return h.reject(req.op, f)
		}
	}

	if req.op.role != "" {
		if err := auth.Authorize(ctx, req.op.role); err != nil {
			return h.reject(req.op, &Failure{Kind: KindUnauthorized, Msg: msgUnauthorized, Err: err})
		}
	}

	if err := h.verifyReferences(ctx, req.refs); err != nil {
		return h.reject(req.op, classify(req.op, err))
	}

	data, err := req.call(ctx)
	if err != nil {
		return h.reject(req.op, classify(req.op, err))
	}
	return Envelope{Code: http.StatusOK, Msg: req.op.success, Data: data}
}

func (h *Handler) reject(op operation, f *Failure) Envelope {
	code := op.code(f.Kind)
	switch f.Kind {
	case KindInternal, KindOperationFailed:
		if f.Err != nil {
			h.logger.Error("Operation failed", "operation", op.name, "code", code, "error", f.Err)
		}
	case KindUnauthorized:
		h.logger.Debug("Request not authorized", "operation", op.name, "error", f.Err)
	}
	return Envelope{Code: code, Msg: f.Msg}
}

func (h *Handler) verifyReferences(ctx context.Context, refs []reference) error {
	for _, ref := range refs {
		var (
			exists bool
			err    error
			msg    string
		)
		switch ref.kind {
		case refUser:
			exists, err = h.users.UserExists(ctx, ref.key)
			msg = msgUserNotFound
		case refEmail:
			exists, err = h.users.EmailExists(ctx, ref.key)
			msg = msgEmailNotFound
		case refCategory:
			exists, err = h.categories.CategoryExists(ctx, ref.key)
			msg = msgCategoryNotFound
		case refProvince:
			exists, err = h.regions.ProvinceExists(ctx, ref.num)
			msg = msgProvinceNotFound
		}
		if err != nil {
			return err
		}
		if !exists {
			return fail(KindNotFound, msg)
		}
	}
	return nil
}

// required fails with EmptyInput when any value is empty.
func required(values ...string) *Failure {
	for _, v := range values {
		if v == "" {
			return fail(KindEmptyInput, msgEmptyInput)
		}
	}
	return nil
}
