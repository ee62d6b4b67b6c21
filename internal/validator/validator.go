package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxFileSize is the upload cap: 10 MiB, matching the original forms.
const MaxFileSize = 10 * 1024 * 1024

// Content types the upload forms accept.
var allowedFileTypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/jpeg",
	"image/png",
}

var allowedExtension = regexp.MustCompile(`(?i)\.(pdf|xlsx|docx|jpg|jpeg|png)$`)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterValidation("upload_type", validateUploadType)
	v.RegisterValidation("upload_name", validateUploadName)

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// validateUploadType checks the declared content type against the
// PDF/XLSX/DOCX/JPG/PNG allow-list.
func validateUploadType(fl validator.FieldLevel) bool {
	fileType := fl.Field().String()
	for _, allowed := range allowedFileTypes {
		if fileType == allowed {
			return true
		}
	}
	return false
}

// validateUploadName checks the file name carries an allowed extension.
func validateUploadName(fl validator.FieldLevel) bool {
	return allowedExtension.MatchString(strings.ToLower(fl.Field().String()))
}
