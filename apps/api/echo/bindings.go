package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/iterhub/eduhub/core"
)

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	// DataResponse is the `{success, data}` envelope the web client expects
	// on list endpoints.
	DataResponse struct {
		Success bool        `json:"success"`
		Data    interface{} `json:"data"`
	}

	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}

	SubmitRequest struct {
		IsSubmitted *bool `json:"isSubmitted" validate:"required"`
	}

	ReviewRequest struct {
		Correct *bool `json:"correct" validate:"required"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return validate.Struct(lr)
}

func newDataResponse(data interface{}) DataResponse {
	return DataResponse{Success: true, Data: data}
}
