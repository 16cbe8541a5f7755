package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"recipebox/internal/domain"
)

func TestFromErrorMapsTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: score out of range", domain.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: recipe", domain.ErrNotFound), http.StatusNotFound},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"forbidden", fmt.Errorf("%w: not the owner", domain.ErrForbidden), http.StatusForbidden},
		{"conflict", fmt.Errorf("%w: already rated", domain.ErrConflict), http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			FromError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
