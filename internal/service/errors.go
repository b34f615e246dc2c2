package service

import "errors"

var (
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrForbidden        = errors.New("recipe belongs to another user")
	ErrStepNotFound     = errors.New("step not found")
	ErrTextTooLarge     = errors.New("recipe text too large")
	ErrImageUnavailable = errors.New("image storage is not configured")
	ErrInvalidImage     = errors.New("upload is not an image")
	ErrInvalidToken     = errors.New("invalid token")
)
