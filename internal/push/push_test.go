package push

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		status int
		want   Outcome
	}{
		{http.StatusCreated, Delivered},
		{http.StatusOK, Delivered},
		{http.StatusNotFound, Gone},
		{http.StatusGone, Gone},
		{http.StatusBadRequest, Transient},
		{http.StatusRequestEntityTooLarge, Transient},
		{http.StatusTooManyRequests, Transient},
		{http.StatusInternalServerError, Transient},
		{http.StatusBadGateway, Transient},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.status), "status %d", c.status)
	}
}

func TestPayloadMarshalOmitsEmptyFields(t *testing.T) {
	body, err := json.Marshal(&Payload{
		Title: "t",
		Body:  "b",
		Icon:  "/icon.png",
		Data:  Data{Type: "emotion", Emotion: "love"},
	})
	assert.NoError(t, err)
	assert.NotContains(t, string(body), "image")
	assert.Contains(t, string(body), `"emotion":"love"`)
}
