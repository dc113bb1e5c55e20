// Package handlers holds the response helpers and views shared by the HTTP
// handler packages.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report JSON field names in validation errors.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// Error writes {"error": msg} with status.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ServerError logs err and answers 500 without leaking it.
func ServerError(c *gin.Context, what string, err error) {
	log.Printf("❌ %s: %v", what, err)
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// BindError turns a ShouldBindJSON failure into a 400 with a readable
// message.
func BindError(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, bindMessage(err))
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s: expected %s", typeErr.Field, typeErr.Type)
	}
	if errors.Is(err, io.EOF) {
		return "Request body is empty"
	}
	return "Invalid JSON body"
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": this field is required"
	case "email":
		return field + ": enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: must be at least %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s: must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s: must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s: must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
	}
}
