package external

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"yrweather/internal/types"
)

// validate checks request parameters before any network call. It is safe for
// concurrent use once built.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("registering %s validation: %v", tag, err))
		}
	}

	must("radar_area", func(fl validator.FieldLevel) bool {
		return types.RadarArea(fl.Field().String()).Valid()
	})
	must("radar_type", func(fl validator.FieldLevel) bool {
		return types.RadarType(fl.Field().String()).Valid()
	})
	must("radar_content", func(fl validator.FieldLevel) bool {
		return types.RadarContent(fl.Field().String()).Valid()
	})
	must("satellite_area", func(fl validator.FieldLevel) bool {
		return types.SatelliteArea(fl.Field().String()).Valid()
	})
	must("satellite_type", func(fl validator.FieldLevel) bool {
		return types.SatelliteImageType(fl.Field().String()).Valid()
	})
	must("satellite_size", func(fl validator.FieldLevel) bool {
		return types.SatelliteSize(fl.Field().String()).Valid()
	})
	must("forecast_kind", func(fl validator.FieldLevel) bool {
		return types.ForecastKind(fl.Field().String()).Valid()
	})
	must("text_kind", func(fl validator.FieldLevel) bool {
		return types.TextForecastKind(fl.Field().String()).Valid()
	})
	must("area_type", func(fl validator.FieldLevel) bool {
		return types.TextAreaType(fl.Field().String()).Valid()
	})
	must("utcoffset", func(fl validator.FieldLevel) bool {
		return types.IsUTCOffset(fl.Field().String())
	})
	return v
}

// validateParams runs struct validation and translates the first failure
// into an AppError with the most specific validation code.
func validateParams(params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return types.NewAppError(types.ErrCodeValidationInvalidArgument, "invalid parameters", err)
	}

	fe := verrs[0]
	code := types.ErrCodeValidationInvalidArgument
	switch fe.Tag() {
	case "latitude":
		code = types.ErrCodeValidationInvalidLat
	case "longitude":
		code = types.ErrCodeValidationInvalidLon
	case "datetime":
		code = types.ErrCodeValidationInvalidTime
	case "required":
		code = types.ErrCodeValidationMissingField
	}

	return types.NewAppErrorWithDetails(code,
		fmt.Sprintf("invalid %s: %v", strings.ToLower(fe.Field()), fe.Value()),
		err,
		map[string]any{"field": fe.Field(), "rule": fe.Tag()},
	)
}
