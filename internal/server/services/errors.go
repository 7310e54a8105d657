package services

import "errors"

var (
	ErrDB                    = errors.New("database error")
	ErrNotFound              = errors.New("not found")
	ErrStorageNotFound       = errors.New("storage not found")
	ErrConnectStorage        = errors.New("failed to connect to storage")
	ErrPutFileToStorage      = errors.New("failed to put file to storage")
	ErrDeleteFileFromStorage = errors.New("failed to delete file from storage")
	ErrInvalidCredentials    = errors.New("invalid login or password")
)
