package apperr

import (
	"net/http"

	"github.com/2beens/evolvx/pkg"

	log "github.com/sirupsen/logrus"
)

// WriteHTTP writes err as a JSON error response. Client errors carry the error text,
// server side failures only a generic message.
func WriteHTTP(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	switch status {
	case http.StatusServiceUnavailable:
		log.Warnf("dependency unavailable: %s", err)
		pkg.WriteJSONError(w, "service temporarily unavailable, try again", status)
	case http.StatusInternalServerError:
		log.Errorf("internal error: %s", err)
		pkg.WriteJSONError(w, "internal server error", status)
	default:
		pkg.WriteJSONError(w, err.Error(), status)
	}
}
