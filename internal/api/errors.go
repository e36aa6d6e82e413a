package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ecopontos-backend-go/internal/core"
	"ecopontos-backend-go/internal/identity"
	"ecopontos-backend-go/internal/models"
)

type errorMapping struct {
	target error
	status int
	kind   string
	detail string
}

// errorMappings is checked in order with errors.Is.
var errorMappings = []errorMapping{
	{core.ErrCollectionPointNotFound, http.StatusNotFound, models.ErrorKindNotFound, "Ecoponto não encontrado."},
	{core.ErrNoRatings, http.StatusNotFound, models.ErrorKindNotFound, "Nenhuma avaliação encontrada para este ecoponto."},
	{core.ErrSuggestionNotFound, http.StatusNotFound, models.ErrorKindNotFound, "Sugestão não encontrada."},
	{core.ErrUserNotFound, http.StatusNotFound, models.ErrorKindNotFound, "Usuário não encontrado no banco de dados."},
	{core.ErrSuggestionAlreadyResolved, http.StatusConflict, models.ErrorKindConflict, "A sugestão já foi aprovada ou rejeitada."},
	{core.ErrEmailAlreadyExists, http.StatusConflict, models.ErrorKindConflict, "O e-mail já está em uso."},
	{core.ErrNoFieldsToUpdate, http.StatusBadRequest, models.ErrorKindValidation, "Nenhum campo informado para atualização."},
	{core.ErrInvalidID, http.StatusBadRequest, models.ErrorKindValidation, "Identificador inválido."},
	{identity.ErrInvalidToken, http.StatusUnauthorized, models.ErrorKindUnauthorized, "Token de autenticação inválido."},
}

// respondError writes the error body for err. Unmapped errors answer 500 with a generic
// detail; the cause is attached to the context for the request logger.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status == http.StatusUnauthorized {
				c.Header("WWW-Authenticate", "Bearer")
			}
			c.JSON(m.status, models.ErrorResponse{Error: m.kind, Detail: m.detail})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:  models.ErrorKindUpstream,
		Detail: "Erro ao processar a requisição no serviço de dados.",
	})
}

// bindJSON decodes and validates the request body into obj, answering 400 on failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:  models.ErrorKindValidation,
		Detail: validationDetail(err),
	})
	return false
}

func validationDetail(err error) string {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fieldProblem(fe))
		}
		return "Dados inválidos: " + strings.Join(parts, "; ")
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Dados inválidos: campo '%s' deve ser do tipo %s.", typeErr.Field, typeErr.Type.String())
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return "Corpo da requisição não é um JSON válido."
	default:
		return "Dados inválidos: " + err.Error()
	}
}

func fieldProblem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("campo '%s' é obrigatório", fe.Field())
	case "email":
		return fmt.Sprintf("campo '%s' deve ser um e-mail válido", fe.Field())
	case "min":
		return fmt.Sprintf("campo '%s' deve ter pelo menos %s caracteres", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("campo '%s' falhou na regra '%s'", fe.Field(), fe.Tag())
	}
}

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report the JSON name of a field.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}
