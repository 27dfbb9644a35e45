// api/util/validation_util.go

package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	orbit_errors "github.com/orbitpm/api/errors"
	"github.com/orbitpm/api/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{validate: validator.New()}
}

// ValidateStruct runs tag-based validation and folds failures into
// field-level messages.
func (v *ValidationUtil) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = fmt.Sprintf("%s is required", fe.Field())
		case "email":
			fields[fe.Field()] = fmt.Sprintf("%s must be a valid email address", fe.Field())
		default:
			fields[fe.Field()] = fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return &orbit_errors.ValidationError{Fields: fields}
}

func (v *ValidationUtil) ValidatePrincipal(p model.Principal) error {
	if p.ID == "" {
		return fmt.Errorf("principal ID cannot be empty")
	}
	if p.Email == "" {
		return fmt.Errorf("principal email cannot be empty")
	}
	if p.Type == "" {
		return fmt.Errorf("principal type cannot be empty")
	}
	// Add more validation rules as needed
	return nil
}

func (v *ValidationUtil) ValidateWorkspace(w model.Workspace) error {
	if w.ID == "" {
		return fmt.Errorf("workspace ID cannot be empty")
	}
	if w.Name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	if w.OwnerID == "" {
		return fmt.Errorf("workspace owner cannot be empty")
	}
	return nil
}
