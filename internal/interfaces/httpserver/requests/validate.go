package requests

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages maps a failing field namespace to the message returned to clients.
var fieldMessages = map[string]string{
	"CreateMessageRequest.role":              "role is required",
	"CreateMessageRequest.content":           "content is required",
	"UpdateMessageRequest.messageId":         "messageId is required",
	"UpdateMessageRequest.content":           "content is required",
	"CreateArtifactRequest.artifact":         "artifact name and content are required",
	"CreateArtifactRequest.artifact.name":    "artifact name and content are required",
	"CreateArtifactRequest.artifact.content": "artifact name and content are required",
	"UpdateArtifactRequest.artifactId":       "artifactId is required",
	"CreateToolResultRequest.toolName":       "toolName is required",
	"UpdateToolResultRequest.toolResultId":   "toolResultId is required",
}

// Validate checks req against its validate tags and returns the first failure as a
// client-facing message. It returns "" when req is valid.
func Validate(req any) string {
	err := validate.Struct(req)
	if err == nil {
		return ""
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request body"
	}
	if msg, ok := fieldMessages[fieldErrs[0].Namespace()]; ok {
		return msg
	}
	return fieldErrs[0].Field() + " is invalid"
}
