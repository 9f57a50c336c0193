package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "mongodb://127.0.0.1:27017", conf.URL)
	assert.Equal(t, "test", conf.DatabaseName)
}

func TestNewDefaults(t *testing.T) {
	os.Unsetenv("SWEEP_PERIOD")
	os.Unsetenv("INACTIVITY_WINDOW")
	os.Unsetenv("DEFAULT_PAGE_SIZE")
	os.Unsetenv("VALIDATE_RECIPIENT")
	conf := New()

	assert.Equal(t, 15*time.Second, conf.SweepPeriod)
	assert.Equal(t, 10*time.Second, conf.InactivityWindow)
	assert.Equal(t, int64(100), conf.DefaultPageSize)
	assert.Equal(t, int64(500), conf.MaxPageSize)
	assert.True(t, conf.ValidateRecipient)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"response": "error it borked, bad request"}`, rr.Body.String())
}
