package render

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write a twirp error as json with its mapped http status
func Error(w http.ResponseWriter, err error) {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	if err := json.NewEncoder(w).Encode(H{
		"code": twerr.Code(),
		"msg":  twerr.Msg(),
	}); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.InvalidArgumentError("request", err.Error()))
}

// NotFound not found error
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, twirp.NotFoundError(msg))
}
