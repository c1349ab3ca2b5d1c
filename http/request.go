package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/programme-lv/contest/srvcerror"
)

func (httpserver *HttpServer) decodeJson(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, httpserver.maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return srvcerror.ErrInvalidRequest("request body too large").
				SetHttpStatusCode(http.StatusRequestEntityTooLarge)
		}
		return srvcerror.ErrInvalidRequest("malformed json body").SetDebug(err)
	}
	if err := httpserver.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return srvcerror.ErrInvalidRequest(verrs[0].Field() + " failed " + verrs[0].Tag() + " check")
		}
		return srvcerror.ErrInvalidRequest(err.Error())
	}
	return nil
}

func parseUserUUID(raw string) (uuid.UUID, error) {
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, srvcerror.ErrInvalidRequest("invalid user uuid " + strconv.Quote(raw))
	}
	return u, nil
}

// parseTop reads the optional top query parameter. Absent means all.
func parseTop(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, srvcerror.ErrInvalidRequest("top must be a non-negative integer")
	}
	return n, nil
}
