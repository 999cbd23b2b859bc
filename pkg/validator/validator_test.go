package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type periodRequest struct {
	Title  string `validate:"required"`
	Period string `validate:"omitempty,discussion_period"`
}

func TestValidate_DiscussionPeriod(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&periodRequest{Title: "x", Period: "2 days 3 hours"}))
	assert.NoError(t, v.Validate(&periodRequest{Title: "x", Period: "12"}))
	assert.NoError(t, v.Validate(&periodRequest{Title: "x"}))
	assert.Error(t, v.Validate(&periodRequest{Title: "x", Period: "next week"}))
}

func TestValidate_Required(t *testing.T) {
	assert.Error(t, New().Validate(&periodRequest{}))
}

type wireRequest struct {
	Title    string `json:"title" validate:"required"`
	PageSize int    `query:"page_size" validate:"max=100"`
	Internal string `validate:"required"`
}

func TestFieldErrors_UsesWireNames(t *testing.T) {
	err := New().Validate(&wireRequest{PageSize: 500})

	assert.Equal(t, map[string]string{
		"title":     "required",
		"page_size": "max",
		"Internal":  "required",
	}, FieldErrors(err))
	assert.Nil(t, FieldErrors(assert.AnError))
	assert.Nil(t, FieldErrors(nil))
}
