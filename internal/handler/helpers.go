package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"expense-api/internal/logging"
	"expense-api/internal/middleware"
	"expense-api/internal/models"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
)

type userResp struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResp(u *models.User) userResp {
	return userResp{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// currentUser fetches the user placed by the auth middleware, answering 401
// itself when it is missing.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Could not validate credentials")
		return nil, false
	}
	return user, true
}

// respondError maps store errors to status codes. Unknown errors are logged
// and hidden behind a generic 500.
func respondError(c *gin.Context, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		util.Error(c, http.StatusBadRequest, util.CodeDuplicate, "Email already registered")
	case errors.Is(err, store.ErrBudgetExists):
		util.Error(c, http.StatusBadRequest, util.CodeDuplicate, "Budget already exists for this category and month")
	case errors.Is(err, store.ErrInvalidInput):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, store.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Not found")
	default:
		_ = c.Error(err)
		log.Error(op, logging.FieldError, err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
	}
}

// optionalIntQuery reads an integer query parameter. Absent, empty and zero
// values all mean "no filter".
func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	if v == 0 {
		return nil, nil
	}
	return &v, nil
}

// requiredPeriod reads month and year query parameters, both mandatory.
func requiredPeriod(c *gin.Context) (store.Period, bool) {
	month, errM := strconv.Atoi(c.Query("month"))
	year, errY := strconv.Atoi(c.Query("year"))
	if errM != nil || errY != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month and year are required integers")
		return store.Period{}, false
	}
	if err := util.ValidateMonth(month); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return store.Period{}, false
	}
	return store.Period{Year: year, Month: month}, true
}
