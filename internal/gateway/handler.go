package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sebuszqo/BillPlatform/internal/finance/domain"
	"github.com/sebuszqo/BillPlatform/internal/region"
	"github.com/shopspring/decimal"
)

const (
	billDateLayout = "2006-01-02"
	// moneyScale is the number of decimal places stored for amounts and limits.
	moneyScale = 2
)

type registerUserRequest struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	PassWord string `json:"passWord"`
}

type addBillRequest struct {
	BillTypeID string          `json:"billTypeID"`
	IndUserID  string          `json:"indUserID"`
	Amount     decimal.Decimal `json:"amount"`
	BillDate   string          `json:"billDate"`
	Remark     string          `json:"remark"`
}

type addBillTypeRequest struct {
	UserID       string `json:"userID"`
	BillTypeName string `json:"billTypeName"`
	Icon         string `json:"icon"`
}

type updateLimitRequest struct {
	UserID   string          `json:"userID"`
	NewLimit decimal.Decimal `json:"newLimit"`
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /IndUser/RegisterUser", h.RegisterUser)
	mux.HandleFunc("GET /IndUser/GetUserIDByEmail", h.GetUserIDByEmail)
	mux.HandleFunc("POST /IndUser/AddIndUserBill", h.AddIndUserBill)
	mux.HandleFunc("POST /IndUser/AddBillType", h.AddBillType)
	mux.HandleFunc("GET /IndUser/GetAllBill", h.GetAllBill)
	mux.HandleFunc("GET /IndUser/GetAllBillByType", h.GetAllBillByType)
	mux.HandleFunc("GET /IndUser/GetAllBillType", h.GetAllBillType)
	mux.HandleFunc("GET /IndUser/GetMonthLimit", h.GetMonthLimit)
	mux.HandleFunc("POST /IndUser/UpdateMonthLimit", h.UpdateMonthLimit)
	mux.HandleFunc("GET /IndUser/GetPromaryID", h.GetPromaryID)
	mux.HandleFunc("GET /IndUser/GetCityID", h.GetCityID)
	mux.HandleFunc("GET /Test-GetCityNameByProID", h.GetCityNameByProID)
	mux.HandleFunc("GET /Test-GetProIDandName", h.GetProIDandName)
}

func decodeBody(r *http.Request, dst interface{}) *Failure {
	if r.Body == nil || r.Body == http.NoBody {
		return fail(KindEmptyInput, msgEmptyInput)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &Failure{Kind: KindEmptyInput, Msg: msgInvalidBody, Err: err}
	}
	return nil
}

// positiveInt parses a query value, returning 0 for anything that is not a
// positive integer that fits the 32-bit id columns.
func positiveInt(raw string) int {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n <= 0 {
		return 0
	}
	return int(n)
}

func fitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(moneyScale))
}

func parseBillDate(raw string) (time.Time, error) {
	if t, err := time.Parse(billDateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var body registerUserRequest
	decodeErr := decodeBody(r, &body)

	h.serve(w, r, request{
		op: opRegisterUser,
		validate: func() *Failure {
			if decodeErr != nil {
				return decodeErr
			}
			return required(body.Email, body.UserName, body.PassWord)
		},
		call: func(ctx context.Context) (interface{}, error) {
			_, err := h.users.Register(ctx, body.PassWord, body.UserName, body.Email)
			return nil, err
		},
	})
}

func (h *Handler) GetUserIDByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	h.serve(w, r, request{
		op:       opGetUserIDByEmail,
		validate: func() *Failure { return required(email) },
		refs:     []reference{emailRef(email)},
		call: func(ctx context.Context) (interface{}, error) {
			return h.users.UserIDByEmail(ctx, email)
		},
	})
}

func (h *Handler) AddIndUserBill(w http.ResponseWriter, r *http.Request) {
	var body addBillRequest
	decodeErr := decodeBody(r, &body)

	var billDate time.Time
	var refs []reference
	if h.verifyBillReferences {
		refs = []reference{userRef(body.IndUserID), categoryRef(body.BillTypeID)}
	}

	h.serve(w, r, request{
		op: opAddIndUserBill,
		validate: func() *Failure {
			if decodeErr != nil {
				return decodeErr
			}
			if f := required(body.BillTypeID, body.IndUserID); f != nil {
				return f
			}
			if !fitsMoneyScale(body.Amount) {
				return fail(KindEmptyInput, msgInvalidAmount)
			}
			if body.BillDate != "" {
				t, err := parseBillDate(body.BillDate)
				if err != nil {
					return &Failure{Kind: KindEmptyInput, Msg: msgInvalidBillDate, Err: err}
				}
				billDate = t
			}
			return nil
		},
		refs: refs,
		call: func(ctx context.Context) (interface{}, error) {
			bill := &domain.Bill{
				UserID:     body.IndUserID,
				CategoryID: body.BillTypeID,
				Amount:     body.Amount,
				BillDate:   billDate,
				Remark:     body.Remark,
			}
			return nil, h.bills.AddBill(ctx, bill)
		},
	})
}

func (h *Handler) AddBillType(w http.ResponseWriter, r *http.Request) {
	var body addBillTypeRequest
	decodeErr := decodeBody(r, &body)

	h.serve(w, r, request{
		op: opAddBillType,
		validate: func() *Failure {
			if decodeErr != nil {
				return decodeErr
			}
			return required(body.UserID, body.BillTypeName, body.Icon)
		},
		refs: []reference{userRef(body.UserID)},
		call: func(ctx context.Context) (interface{}, error) {
			_, err := h.categories.CreateCategory(ctx, body.UserID, body.BillTypeName, body.Icon)
			return nil, err
		},
	})
}

func (h *Handler) GetAllBill(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userID")

	h.serve(w, r, request{
		op:       opGetAllBill,
		validate: func() *Failure { return required(userID) },
		refs:     []reference{userRef(userID)},
		call: func(ctx context.Context) (interface{}, error) {
			return h.bills.AllBillsForUser(ctx, userID)
		},
	})
}

func (h *Handler) GetAllBillByType(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID, typeID := query.Get("userID"), query.Get("typeID")

	h.serve(w, r, request{
		op:       opGetAllBillByType,
		validate: func() *Failure { return required(userID, typeID) },
		refs:     []reference{userRef(userID), categoryRef(typeID)},
		call: func(ctx context.Context) (interface{}, error) {
			return h.bills.AllBillsForUserAndCategory(ctx, userID, typeID)
		},
	})
}

func (h *Handler) GetAllBillType(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userID")

	h.serve(w, r, request{
		op:       opGetAllBillType,
		validate: func() *Failure { return required(userID) },
		refs:     []reference{userRef(userID)},
		call: func(ctx context.Context) (interface{}, error) {
			return h.categories.UserCategories(ctx, userID)
		},
	})
}

func (h *Handler) GetMonthLimit(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userID")

	h.serve(w, r, request{
		op:       opGetMonthLimit,
		validate: func() *Failure { return required(userID) },
		refs:     []reference{userRef(userID)},
		call: func(ctx context.Context) (interface{}, error) {
			limit, err := h.limits.GetMonthlyLimit(ctx, userID)
			if err != nil || !limit.Valid {
				return nil, err
			}
			return amount(limit.Decimal), nil
		},
	})
}

func (h *Handler) UpdateMonthLimit(w http.ResponseWriter, r *http.Request) {
	var body updateLimitRequest
	decodeErr := decodeBody(r, &body)

	h.serve(w, r, request{
		op: opUpdateMonthLimit,
		validate: func() *Failure {
			if decodeErr != nil {
				return &Failure{Kind: KindEmptyInput, Msg: msgInvalidLimit, Err: decodeErr}
			}
			if body.UserID == "" || !body.NewLimit.IsPositive() || !fitsMoneyScale(body.NewLimit) {
				return fail(KindEmptyInput, msgInvalidLimit)
			}
			return nil
		},
		refs: []reference{userRef(body.UserID)},
		call: func(ctx context.Context) (interface{}, error) {
			updated, err := h.limits.UpdateMonthlyLimit(ctx, body.UserID, body.NewLimit)
			if err != nil {
				return nil, err
			}
			return amount(updated), nil
		},
	})
}

func (h *Handler) GetPromaryID(w http.ResponseWriter, r *http.Request) {
	proName := r.URL.Query().Get("proName")

	h.serve(w, r, request{
		op: opGetPromaryID,
		validate: func() *Failure {
			if proName == "" {
				return fail(KindEmptyInput, msgEmptyParam)
			}
			return nil
		},
		call: func(ctx context.Context) (interface{}, error) {
			id, err := h.regions.ProvinceIDByName(ctx, proName)
			if err != nil {
				return nil, err
			}
			if id == region.NotFoundID {
				return nil, fail(KindNotFound, msgProvinceNotFound)
			}
			return id, nil
		},
	})
}

func (h *Handler) GetCityID(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cityName := query.Get("cityName")
	proID := positiveInt(query.Get("proID"))

	h.serve(w, r, request{
		op: opGetCityID,
		validate: func() *Failure {
			if cityName == "" || proID == 0 {
				return fail(KindEmptyInput, msgEmptyParam)
			}
			return nil
		},
		refs: []reference{provinceRef(proID)},
		call: func(ctx context.Context) (interface{}, error) {
			id, err := h.regions.CityIDByName(ctx, cityName, proID)
			if err != nil {
				return nil, err
			}
			if id == region.NotFoundID {
				return nil, fail(KindNotFound, msgCityNotFound)
			}
			return id, nil
		},
	})
}

func (h *Handler) GetCityNameByProID(w http.ResponseWriter, r *http.Request) {
	proID := positiveInt(r.URL.Query().Get("proID"))

	h.serve(w, r, request{
		op: opGetCityNameByProID,
		validate: func() *Failure {
			if proID == 0 {
				return fail(KindEmptyInput, msgEmptyParam)
			}
			return nil
		},
		refs: []reference{provinceRef(proID)},
		call: func(ctx context.Context) (interface{}, error) {
			names, err := h.regions.CityNamesByProvince(ctx, proID)
			if err != nil {
				return nil, err
			}
			if names == nil {
				names = []string{}
			}
			return names, nil
		},
	})
}

func (h *Handler) GetProIDandName(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, request{
		op: opGetProIDandName,
		call: func(ctx context.Context) (interface{}, error) {
			provinces, err := h.regions.Provinces(ctx)
			if err != nil {
				return nil, err
			}
			if provinces == nil {
				provinces = []region.Province{}
			}
			return provinces, nil
		},
	})
}
