package domain

import "errors"

// 错误文案即对外 message，由 transport 层映射 HTTP 状态码。
// update 的 403（合并 not-found）与 delete 的 404/403（拆分）是既有接口行为，
// 两边保持不一致。
var (
	ErrMissingName        = errors.New("Name is required")
	ErrInvalidEmail       = errors.New("Invalid email format")
	ErrDuplicateEmail     = errors.New("Email already registered")
	ErrWeakPassword       = errors.New("Password must be at least 8 characters long, include 1 uppercase, 1 lowercase, 1 number, and 1 special character.")
	ErrInvalidCredentials = errors.New("Invalid email or password")

	ErrMissingTitle        = errors.New("Title is required")
	ErrInvalidStatusFilter = errors.New("Please provide a valid status: 'pending' or 'completed'")
	ErrInvalidStatus       = errors.New("Status must be 'pending' or 'completed'")
	ErrInvalidPriority     = errors.New("Priority must be 'low', 'medium', or 'high'")

	ErrTaskNotFound           = errors.New("Task not found")
	ErrNotTaskOwner           = errors.New("Not authorized to delete this task")
	ErrNotAuthorizedOrMissing = errors.New("You are not authorized to update this task or it does not exist")

	ErrUserNotFound = errors.New("user not found")
)
