package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerParams struct {
	Username string `binding:"required,username"`
	Email    string `binding:"required,email"`
}

func TestCustomValidator_Username(t *testing.T) {
	v := NewCustomValidator()
	engine, ok := v.Engine().(*validator.Validate)
	require.True(t, ok)
	require.NoError(t, RegisterTags(engine))

	tests := []struct {
		name    string
		params  registerParams
		wantErr bool
	}{
		{name: "valid", params: registerParams{Username: "note_user", Email: "a@b.io"}},
		{name: "too short", params: registerParams{Username: "ab", Email: "a@b.io"}, wantErr: true},
		{name: "bad chars", params: registerParams{Username: "no spaces", Email: "a@b.io"}, wantErr: true},
		{name: "bad email", params: registerParams{Username: "note_user", Email: "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(&tt.params)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomValidator_SliceAndNil(t *testing.T) {
	v := NewCustomValidator()
	engine := v.Engine().(*validator.Validate)
	require.NoError(t, RegisterTags(engine))

	assert.NoError(t, v.ValidateStruct(nil))
	assert.Error(t, v.ValidateStruct([]registerParams{{Username: "ok_user", Email: "x@y.io"}, {}}))
}

func TestSetup_TranslatesWithJSONNames(t *testing.T) {
	uni, err := Setup()
	require.NoError(t, err)

	type loginParams struct {
		Credentials string `json:"credentials" binding:"required"`
	}
	err = binding.Validator.ValidateStruct(&loginParams{})
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	enTrans, _ := uni.GetTranslator("en")
	assert.Equal(t, "credentials is a required field", verrs[0].Translate(enTrans))
}
