package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/logger"
)

// InternalErrorMessage is all a client learns about an internal error.
const InternalErrorMessage = "A system error occurred"

var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError answers {"error": message} with the status err carries. Internal
// errors are logged and hidden behind InternalErrorMessage.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.Status(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.Error("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		message = InternalErrorMessage
	}
	WriteJSON(w, status, errorResponse{Error: message})
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to write response", "error", err)
	}
}

func GetIP(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	if net.ParseIP(ip) != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	for _, ip := range strings.Split(r.Header.Get("X-FORWARDED-FOR"), ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", fmt.Errorf("bad remote address %q: %w", r.RemoteAddr, err)
	}
	if net.ParseIP(ip) != nil {
		return ip, nil
	}
	return "", fmt.Errorf("no valid ip found")
}

// DecodeValidate decodes a json body into body and checks its validate tags.
func DecodeValidate(r io.Reader, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return errors.Input("Required field %s is missing or invalid", fieldErrs[0].Field())
		}
		return errors.Input("Required fields missing")
	}
	return nil
}

func Decode(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request decoding failed", "error", err)
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			return errors.Input("Field %s must be of type %s", typeErr.Field, typeErr.Type)
		}
		return errors.Input("Body is invalid json")
	}
	return nil
}
