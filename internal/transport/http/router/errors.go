package router

import (
	"errors"
	"time"

	"go-task-manager/internal/domain"
	httpez "go-task-manager/internal/transport/http/ez"
)

// httpErr 把 service 层错误映射为带状态码的响应错误。
// 注意 update（合并 403）与 delete（404/403 拆开）的策略不同，是既有接口行为。
func httpErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrMissingTitle),
		errors.Is(err, domain.ErrInvalidStatusFilter),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority):
		return httpez.BadRequest(err.Error())
	case errors.Is(err, domain.ErrNotAuthorizedOrMissing),
		errors.Is(err, domain.ErrNotTaskOwner):
		return httpez.Forbidden(err.Error())
	case errors.Is(err, domain.ErrTaskNotFound):
		return httpez.NotFound(err.Error())
	default:
		return httpez.Internal(err)
	}
}

// parseDueDate 接受 "2006-01-02" 或 RFC3339；空串表示未提供
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, httpez.BadRequest("Invalid dueDate format")
}
