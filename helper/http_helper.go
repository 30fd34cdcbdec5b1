package helper

import (
	"net/http"
	"strings"
	"unicode"

	"blog-platform-api/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	validator "gopkg.in/go-playground/validator.v9"
	enTranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

// HTTPHelper owns input validation and the error envelope for requests that
// never reach the GraphQL executor (bad JSON, wrong method body).
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

func NewHTTPHelper() *HTTPHelper {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)

	return &HTTPHelper{Validate: validate, Translator: translator}
}

// ValidateStruct runs validator tags and folds failures into a single
// ValidationError with translated per-field messages.
func (h *HTTPHelper) ValidateStruct(input interface{}) error {
	err := h.Validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := map[string][]string{}
	for _, fieldError := range validationErrors {
		key := Underscore(fieldError.Field())
		fields[key] = append(fields[key], fieldError.Translate(h.Translator))
	}

	return &models.ValidationError{Fields: fields}
}

// SendBadRequest writes a GraphQL-shaped error body so clients can treat
// transport-level failures and resolver failures uniformly.
func (h *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"errors": []gin.H{
			{
				"message":    message,
				"extensions": gin.H{"code": models.CodeBadUserInput},
			},
		},
	})
}

// Underscore converts a Go field name to its snake_case wire form, keeping
// initialisms together (PostID -> post_id).
func Underscore(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && unicode.IsLower(runes[i-1]) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
