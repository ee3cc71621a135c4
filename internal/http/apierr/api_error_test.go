package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/crm-graphql/internal/apperr"
	"github.com/tuanvumaihuynh/crm-graphql/internal/http/apierr"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("Should map business errors by status", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{apperr.CustomerNotFoundErr, http.StatusNotFound},
			{apperr.EmailAlreadyExistsErr, http.StatusConflict},
			{apperr.InvalidEmailFormatErr, http.StatusBadRequest},
			{apperr.NoProductsSelectedErr, http.StatusBadRequest},
			{apperr.InvalidProductIDsErr, http.StatusUnprocessableEntity},
			{fmt.Errorf("ping: %w", apperr.DatabaseUnavailableErr), http.StatusServiceUnavailable},
		}

		for _, c := range cases {
			res := apierr.New(c.err)
			assert.Equal(t, c.code, res.StatusCode, c.err.Error())
		}

		res := apierr.New(apperr.InvalidProductIDsErr)
		assert.Equal(t, apperr.InvalidProductIDsCode, res.Code)
		assert.Equal(t, "One or more product IDs are invalid.", res.Message)
	})

	t.Run("Should list field validation errors", func(t *testing.T) {
		type input struct {
			Email string `validate:"required,email"`
		}
		err := validator.MustNewDefaultValidator().Validate(input{Email: "nope"})
		require.Error(t, err)

		res := apierr.New(err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.NotNil(t, res.Details)
		assert.Equal(t, "Email", (*res.Details)[0].Field)
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		assert.Equal(t, apierr.InternalServerErr, apierr.New(errors.New("boom")))
	})
}
