package social

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/auth"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type SendRequestBody struct {
	FriendID int `json:"friend_id"`
}

type RespondBody struct {
	Action string `json:"action"`
}

type RequestResponse struct {
	Message      string `json:"message"`
	FriendshipID int    `json:"friendship_id"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := ParseListFilter(r.URL.Query().Get("status"))
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	friends, err := handler.service.List(ctx, userID, filter)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, friends, http.StatusOK)
}

func (handler *Handler) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.send_request")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body SendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Tracef("friend request, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid friend request json", http.StatusBadRequest)
		return
	}

	id, err := handler.service.SendRequest(ctx, userID, body.FriendID)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, RequestResponse{
		Message:      "Friend request sent successfully",
		FriendshipID: id,
	}, http.StatusCreated)
}

func (handler *Handler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.respond")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	friendshipID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var body RespondBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Tracef("respond to friend request, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	status, err := handler.service.Respond(ctx, userID, friendshipID, body.Action)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	message := "Friend request accepted"
	if status == StatusRejected {
		message = "Friend request rejected"
	}
	log.Tracef("%s: %d", message, friendshipID)

	pkg.WriteJSON(w, RequestResponse{
		Message:      message,
		FriendshipID: friendshipID,
	}, http.StatusOK)
}
