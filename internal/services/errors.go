package services

import (
	"errors"

	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/pkg/apperrors"
)

// handleRepoError переводит ошибки репозиториев в ошибки API
func handleRepoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrUsernameAlreadyExists
	default:
		return apperrors.InternalError(err)
	}
}

// apperrorsInternal оборачивает неожиданную ошибку хранилища, не трогая уже готовые AppError
func apperrorsInternal(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
